package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/utils/accounting"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	txnRepo     portsrepo.TransactionReader
	receiptRepo portsrepo.ReceiptReader
	debtRepo    portsrepo.DebtAccountReader
}

// NewReportingService creates a new reporting service over the journal, receipt log and debt ledger.
func NewReportingService(txnRepo portsrepo.TransactionReader, receiptRepo portsrepo.ReceiptReader, debtRepo portsrepo.DebtAccountReader) portssvc.ReportingService {
	return &reportingService{
		txnRepo:     txnRepo,
		receiptRepo: receiptRepo,
		debtRepo:    debtRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Summary aggregates the journal and receipts over window. Inputs are snapshots,
// so concurrent appends never produce a half-updated summary.
func (s *reportingService) Summary(ctx context.Context, window domain.PeriodWindow, now time.Time) (*domain.FinancialSummary, error) {
	window, err := domain.ParsePeriodWindow(string(window))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	txns, err := s.txnRepo.ListTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for summary")
		return nil, err
	}
	receipts, err := s.receiptRepo.ListReceipts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receipts for summary")
		return nil, err
	}

	summary := accounting.Summarize(txns, receipts, window, now)
	return &summary, nil
}

func (s *reportingService) ExportSummary(ctx context.Context, window domain.PeriodWindow, now time.Time) ([]dto.SummaryExportRow, error) {
	summary, err := s.Summary(ctx, window, now)
	if err != nil {
		return nil, err
	}
	return dto.ToSummaryExportRows(summary), nil
}

func (s *reportingService) ExportDebtors(ctx context.Context, now time.Time) ([]dto.DebtorExportRow, error) {
	accounts, err := s.debtRepo.ListDebtAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list debt accounts for export")
		return nil, err
	}
	return dto.ToDebtorExportRows(accounts, now), nil
}
