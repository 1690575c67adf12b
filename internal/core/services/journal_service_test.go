package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/core/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/repositories/ledger"
)

type JournalServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	now time.Time
	svc portssvc.JournalSvcFacade
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2025, time.June, 4, 9, 30, 0, 0, time.UTC)
	repos := newMemoryRepos(s.T())
	s.svc = services.NewJournalService(
		repos.TransactionRepo,
		repos.ReceiptRepo,
		services.WithJournalClock(func() time.Time { return s.now }),
		services.WithCategoryCatalog([]domain.CategoryTemplate{
			{CategoryID: "haircut", Name: "Haircut", GrossAmount: 15000, CostAmount: 2000},
			{CategoryID: "shave", GrossAmount: 5000},
		}),
	)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func int64Ptr(v int64) *int64 { return &v }

func (s *JournalServiceTestSuite) record(req dto.RecordTransactionRequest) *domain.FinancialTransaction {
	txn, err := s.svc.RecordTransaction(s.ctx, req)
	s.Require().NoError(err)
	return txn
}

func (s *JournalServiceTestSuite) TestRecordTransaction_Defaults() {
	txn := s.record(dto.RecordTransactionRequest{Kind: domain.Income, GrossAmount: 1200, Note: " sale "})

	s.NotEmpty(txn.TransactionID)
	s.Equal("sale", txn.Note)
	s.Equal(domain.Settled, txn.PaymentStatus)
	s.Equal(s.now, txn.OccurredAt)
	s.Nil(txn.CostAmount)

	got, err := s.svc.GetTransaction(s.ctx, txn.TransactionID)
	s.Require().NoError(err)
	s.Equal(txn.TransactionID, got.TransactionID)
}

func (s *JournalServiceTestSuite) TestRecordTransaction_Validation() {
	tests := []struct {
		name string
		req  dto.RecordTransactionRequest
	}{
		{"zero gross", dto.RecordTransactionRequest{Kind: domain.Income, GrossAmount: 0, Note: "x"}},
		{"negative gross", dto.RecordTransactionRequest{Kind: domain.Expense, GrossAmount: -1, Note: "x"}},
		{"empty note", dto.RecordTransactionRequest{Kind: domain.Income, GrossAmount: 10, Note: "  "}},
		{"unknown kind", dto.RecordTransactionRequest{Kind: "refund", GrossAmount: 10, Note: "x"}},
		{"negative cost", dto.RecordTransactionRequest{Kind: domain.Income, GrossAmount: 10, Note: "x", CostAmount: int64Ptr(-1)}},
		{"bad status", dto.RecordTransactionRequest{Kind: domain.Income, GrossAmount: 10, Note: "x", PaymentStatus: "maybe"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.RecordTransaction(s.ctx, tt.req)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}

	all, err := s.svc.ListTransactions(s.ctx, dto.ListTransactionsParams{})
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *JournalServiceTestSuite) TestListTransactions_Filters() {
	s.record(dto.RecordTransactionRequest{Kind: domain.Income, GrossAmount: 100, Note: "Tea for Juma", CustomerName: "Juma"})
	s.record(dto.RecordTransactionRequest{Kind: domain.Expense, GrossAmount: 40, Note: "Rent"})
	s.record(dto.RecordTransactionRequest{Kind: domain.Income, GrossAmount: 70, Note: "coffee", CustomerName: "Wanjiru", PaymentStatus: domain.Owed})
	s.record(dto.RecordTransactionRequest{Kind: domain.Expense, GrossAmount: 15, Note: "Tea leaves", PaymentStatus: domain.Owed})

	all, err := s.svc.ListTransactions(s.ctx, dto.ListTransactionsParams{})
	s.Require().NoError(err)
	s.Len(all, 4)

	expenses, err := s.svc.ListTransactions(s.ctx, dto.ListTransactionsParams{Kind: domain.Expense})
	s.Require().NoError(err)
	s.Len(expenses, 2)
	for _, e := range expenses {
		s.Equal(domain.Expense, e.Kind)
		s.Contains(all, e)
	}

	tea, err := s.svc.ListTransactions(s.ctx, dto.ListTransactionsParams{Search: "TEA"})
	s.Require().NoError(err)
	s.Len(tea, 2)

	owedTea, err := s.svc.ListTransactions(s.ctx, dto.ListTransactionsParams{Search: "tea", PaymentStatus: domain.Owed})
	s.Require().NoError(err)
	s.Require().Len(owedTea, 1)
	s.Equal("Tea leaves", owedTea[0].Note)

	byCustomer, err := s.svc.ListTransactions(s.ctx, dto.ListTransactionsParams{Search: "wanj"})
	s.Require().NoError(err)
	s.Len(byCustomer, 1)
}

func (s *JournalServiceTestSuite) TestTotals() {
	s.record(dto.RecordTransactionRequest{Kind: domain.Income, GrossAmount: 100, Note: "a"})
	s.record(dto.RecordTransactionRequest{Kind: domain.Income, GrossAmount: 50, Note: "b", PaymentStatus: domain.Owed})
	s.record(dto.RecordTransactionRequest{Kind: domain.Expense, GrossAmount: 30, Note: "c"})

	totals, err := s.svc.Totals(s.ctx)
	s.Require().NoError(err)
	s.Equal(domain.LedgerTotals{Income: 150, Expense: 30, Owed: 50}, totals)
}

func (s *JournalServiceTestSuite) TestCategoryTemplates() {
	s.Len(s.svc.ListCategoryTemplates(s.ctx), 2)

	prefill := s.svc.ApplyCategoryTemplate(s.ctx, "haircut")
	s.True(prefill.Matched)
	s.Equal("Haircut", prefill.Category)
	s.Equal(int64(15000), prefill.GrossAmount)
	s.Equal(int64(2000), prefill.CostAmount)

	s.Equal("shave", s.svc.ApplyCategoryTemplate(s.ctx, "shave").Category)
	s.Equal(domain.TransactionPrefill{}, s.svc.ApplyCategoryTemplate(s.ctx, "unknown"))
	s.Equal(domain.TransactionPrefill{}, s.svc.ApplyCategoryTemplate(s.ctx, ""))
}

func (s *JournalServiceTestSuite) TestReceipts() {
	_, err := s.svc.RecordReceipt(s.ctx, dto.RecordReceiptRequest{Total: 0})
	s.ErrorIs(err, apperrors.ErrValidation)

	r, err := s.svc.RecordReceipt(s.ctx, dto.RecordReceiptRequest{Total: 450, Note: "till"})
	s.Require().NoError(err)
	s.Equal(s.now, r.OccurredAt)

	receipts, err := s.svc.ListReceipts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(receipts, 1)
	s.Equal(int64(450), receipts[0].Total)
}

func TestJournalService_FailedAppendIsNotVisible(t *testing.T) {
	ctx := context.Background()
	kv := new(MockKeyValueStore)
	kv.On("Load", mock.Anything, mock.Anything).Return(nil, false, nil)
	kv.On("Save", mock.Anything, ledger.KeyTransactions, mock.Anything).Return(errors.New("disk full"))

	txnRepo, err := ledger.NewTransactionRepository(ctx, kv)
	require.NoError(t, err)
	receiptRepo, err := ledger.NewReceiptRepository(ctx, kv)
	require.NoError(t, err)
	svc := services.NewJournalService(txnRepo, receiptRepo)

	_, err = svc.RecordTransaction(ctx, dto.RecordTransactionRequest{Kind: domain.Income, GrossAmount: 10, Note: "x"})
	require.Error(t, err)

	all, err := svc.ListTransactions(ctx, dto.ListTransactionsParams{})
	require.NoError(t, err)
	assert.Empty(t, all)
}
