package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// DebtAccountReader defines read operations for debt account data.
// Returned accounts are copies; mutating them never affects stored state.
type DebtAccountReader interface {
	// FindDebtAccountByID retrieves an account with its movements. Returns apperrors.ErrNotFound if missing.
	FindDebtAccountByID(ctx context.Context, accountID string) (*domain.DebtAccount, error)

	// ListDebtAccounts returns a consistent snapshot of every account in creation order.
	ListDebtAccounts(ctx context.Context) ([]domain.DebtAccount, error)
}

// DebtAccountWriter defines write operations for debt account data.
type DebtAccountWriter interface {
	// SaveDebtAccount inserts or replaces an account and its movements atomically.
	SaveDebtAccount(ctx context.Context, account domain.DebtAccount) error

	// DeleteDebtAccount discards an account and all its movements. Returns apperrors.ErrNotFound if missing.
	DeleteDebtAccount(ctx context.Context, accountID string) error
}

// AccountLocker serializes mutations per account.
type AccountLocker interface {
	// LockAccount blocks until the caller holds the account's mutation lock.
	LockAccount(accountID string) (unlock func())
}

// DebtAccountRepositoryFacade combines all debt account repository interfaces.
type DebtAccountRepositoryFacade interface {
	DebtAccountReader
	DebtAccountWriter
	AccountLocker
}
