package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// TransactionReaderSvc defines read operations for the transaction journal.
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error)

	// ListTransactions returns journal entries matching params, AND-combined.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.FinancialTransaction, error)

	// Totals returns whole-journal income, expense and owed sums.
	Totals(ctx context.Context) (domain.LedgerTotals, error)
}

// TransactionWriterSvc defines the append-only write side of the journal.
type TransactionWriterSvc interface {
	RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (*domain.FinancialTransaction, error)
}

// CategorySvc exposes the category template catalog.
type CategorySvc interface {
	ListCategoryTemplates(ctx context.Context) []domain.CategoryTemplate

	// ApplyCategoryTemplate pre-fills amounts from a known template; unknown ids yield blank values.
	ApplyCategoryTemplate(ctx context.Context, categoryID string) domain.TransactionPrefill
}

// ReceiptSvc defines operations on the point-of-sale receipt log.
type ReceiptSvc interface {
	RecordReceipt(ctx context.Context, req dto.RecordReceiptRequest) (*domain.Receipt, error)
	ListReceipts(ctx context.Context) ([]domain.Receipt, error)
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	CategorySvc
	ReceiptSvc
}
