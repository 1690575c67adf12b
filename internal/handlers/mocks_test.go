package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// --- Mock DebtService ---
type MockDebtService struct {
	mock.Mock
}

var _ portssvc.DebtSvcFacade = (*MockDebtService)(nil)

func (m *MockDebtService) GetDebtor(ctx context.Context, accountID string) (*domain.DebtAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtAccount), args.Error(1)
}

func (m *MockDebtService) ListDebtors(ctx context.Context) ([]domain.DebtAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtAccount), args.Error(1)
}

func (m *MockDebtService) ListOverdue(ctx context.Context, now time.Time) ([]domain.DebtAccount, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtAccount), args.Error(1)
}

func (m *MockDebtService) RunningBalanceHistory(ctx context.Context, accountID string) ([]domain.RunningBalanceEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RunningBalanceEntry), args.Error(1)
}

func (m *MockDebtService) CreateDebtor(ctx context.Context, req dto.CreateDebtorRequest) (*domain.DebtAccount, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtAccount), args.Error(1)
}

func (m *MockDebtService) RecordMovement(ctx context.Context, accountID string, req dto.RecordMovementRequest) (*domain.DebtMovement, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtMovement), args.Error(1)
}

func (m *MockDebtService) PayOff(ctx context.Context, accountID string) (*domain.DebtMovement, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtMovement), args.Error(1)
}

func (m *MockDebtService) SetDueDate(ctx context.Context, accountID string, dueDate *time.Time) (*domain.DebtAccount, error) {
	args := m.Called(ctx, accountID, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtAccount), args.Error(1)
}

func (m *MockDebtService) DeleteDebtor(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockDebtService) ComposeReminder(ctx context.Context, accountID string, now time.Time) (*domain.Reminder, error) {
	args := m.Called(ctx, accountID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reminder), args.Error(1)
}

func (m *MockDebtService) SendReminder(ctx context.Context, accountID string, now time.Time) (*domain.Reminder, error) {
	args := m.Called(ctx, accountID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reminder), args.Error(1)
}

func (m *MockDebtService) DispatchOverdueReminders(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) GetTransaction(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}

func (m *MockJournalService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.FinancialTransaction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialTransaction), args.Error(1)
}

func (m *MockJournalService) Totals(ctx context.Context) (domain.LedgerTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.LedgerTotals), args.Error(1)
}

func (m *MockJournalService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}

func (m *MockJournalService) ListCategoryTemplates(ctx context.Context) []domain.CategoryTemplate {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CategoryTemplate)
}

func (m *MockJournalService) ApplyCategoryTemplate(ctx context.Context, categoryID string) domain.TransactionPrefill {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(domain.TransactionPrefill)
}

func (m *MockJournalService) RecordReceipt(ctx context.Context, req dto.RecordReceiptRequest) (*domain.Receipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockJournalService) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

func (m *MockReportingService) Summary(ctx context.Context, window domain.PeriodWindow, now time.Time) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, window, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}

func (m *MockReportingService) ExportSummary(ctx context.Context, window domain.PeriodWindow, now time.Time) ([]dto.SummaryExportRow, error) {
	args := m.Called(ctx, window, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.SummaryExportRow), args.Error(1)
}

func (m *MockReportingService) ExportDebtors(ctx context.Context, now time.Time) ([]dto.DebtorExportRow, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.DebtorExportRow), args.Error(1)
}
