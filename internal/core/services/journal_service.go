package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/utils/accounting"
)

// journalService provides the transaction journal, receipt log and category catalog.
type journalService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	receiptRepo portsrepo.ReceiptRepositoryFacade
	catalog     []domain.CategoryTemplate
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalClock overrides the clock used for default timestamps.
func WithJournalClock(now Clock) JournalServiceOption {
	return func(s *journalService) {
		s.Now = now
	}
}

// WithCategoryCatalog sets the category templates offered for pre-filling transactions.
func WithCategoryCatalog(catalog []domain.CategoryTemplate) JournalServiceOption {
	return func(s *journalService) {
		s.catalog = append([]domain.CategoryTemplate(nil), catalog...)
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(txnRepo portsrepo.TransactionRepositoryFacade, receiptRepo portsrepo.ReceiptRepositoryFacade, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		txnRepo:     txnRepo,
		receiptRepo: receiptRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (*domain.FinancialTransaction, error) {
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.GrossAmount <= 0 {
		return nil, fmt.Errorf("%w: gross amount must be positive", apperrors.ErrValidation)
	}
	note := strings.TrimSpace(req.Note)
	if note == "" {
		return nil, fmt.Errorf("%w: note is required", apperrors.ErrValidation)
	}
	if req.CostAmount != nil && *req.CostAmount < 0 {
		return nil, fmt.Errorf("%w: cost amount must not be negative", apperrors.ErrValidation)
	}
	status := req.PaymentStatus
	if status == "" {
		status = domain.Settled
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, status)
	}

	now := s.CurrentTime()
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	var cost *int64
	if req.CostAmount != nil {
		c := *req.CostAmount
		cost = &c
	}

	txn := domain.FinancialTransaction{
		TransactionID: uuid.NewString(),
		Kind:          req.Kind,
		GrossAmount:   req.GrossAmount,
		CostAmount:    cost,
		Note:          note,
		Category:      strings.TrimSpace(req.Category),
		OccurredAt:    occurredAt,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		PaymentStatus: status,
		CreatedAt:     now,
	}

	if err := s.txnRepo.AppendTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to append transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", string(txn.Kind)),
		slog.Int64("gross_amount", txn.GrossAmount))
	return &txn, nil
}

func (s *journalService) GetTransaction(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

func (s *journalService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.FinancialTransaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, err
	}
	return accounting.ListByFilter(txns, accounting.TransactionFilter{
		SearchText:    params.Search,
		Kind:          params.Kind,
		PaymentStatus: params.PaymentStatus,
	}), nil
}

func (s *journalService) Totals(ctx context.Context) (domain.LedgerTotals, error) {
	txns, err := s.txnRepo.ListTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for totals")
		return domain.LedgerTotals{}, err
	}
	return accounting.Totals(txns), nil
}

func (s *journalService) ListCategoryTemplates(_ context.Context) []domain.CategoryTemplate {
	return append([]domain.CategoryTemplate(nil), s.catalog...)
}

func (s *journalService) ApplyCategoryTemplate(ctx context.Context, categoryID string) domain.TransactionPrefill {
	prefill := accounting.ApplyCategoryTemplate(categoryID, s.catalog)
	if !prefill.Matched && categoryID != "" {
		s.LogDebug(ctx, "Unknown category template", slog.String("category_id", categoryID))
	}
	return prefill
}

func (s *journalService) RecordReceipt(ctx context.Context, req dto.RecordReceiptRequest) (*domain.Receipt, error) {
	if req.Total <= 0 {
		return nil, fmt.Errorf("%w: receipt total must be positive", apperrors.ErrValidation)
	}
	now := s.CurrentTime()
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}
	receipt := domain.Receipt{
		ReceiptID:  uuid.NewString(),
		Total:      req.Total,
		Note:       strings.TrimSpace(req.Note),
		OccurredAt: occurredAt,
		CreatedAt:  now,
	}
	if err := s.receiptRepo.AppendReceipt(ctx, receipt); err != nil {
		s.LogError(ctx, err, "Failed to append receipt", slog.String("receipt_id", receipt.ReceiptID))
		return nil, fmt.Errorf("failed to append receipt: %w", err)
	}
	return &receipt, nil
}

func (s *journalService) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	return s.receiptRepo.ListReceipts(ctx)
}
