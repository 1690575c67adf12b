package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// TransactionReader defines read operations for the financial transaction journal.
type TransactionReader interface {
	// FindTransactionByID retrieves one transaction. Returns apperrors.ErrNotFound if missing.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error)

	// ListTransactions returns a snapshot of the journal in append order.
	ListTransactions(ctx context.Context) ([]domain.FinancialTransaction, error)
}

// TransactionWriter defines the append-only write side of the journal.
type TransactionWriter interface {
	AppendTransaction(ctx context.Context, txn domain.FinancialTransaction) error
}

// ReceiptReader defines read operations for the point-of-sale receipt log.
type ReceiptReader interface {
	ListReceipts(ctx context.Context) ([]domain.Receipt, error)
}

// ReceiptWriter defines the append-only write side of the receipt log.
type ReceiptWriter interface {
	AppendReceipt(ctx context.Context, receipt domain.Receipt) error
}

// TransactionRepositoryFacade combines the journal interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// ReceiptRepositoryFacade combines the receipt log interfaces.
type ReceiptRepositoryFacade interface {
	ReceiptReader
	ReceiptWriter
}
