package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
)

// DebtAccountRepository keeps debt accounts in memory and persists the full
// account list on every write. In-memory state only changes after a successful save.
type DebtAccountRepository struct {
	BaseRepository
	mu       sync.RWMutex
	accounts []domain.DebtAccount // Creation order
	index    map[string]int
	locks    *keyedMutex
}

// NewDebtAccountRepository loads the stored accounts from kv.
func NewDebtAccountRepository(ctx context.Context, kv portsrepo.KeyValueStore) (*DebtAccountRepository, error) {
	r := &DebtAccountRepository{
		BaseRepository: BaseRepository{KV: kv, Key: KeyDebtAccounts},
		locks:          newKeyedMutex(),
	}
	var stored []domain.DebtAccount
	if err := r.loadDocument(ctx, &stored); err != nil {
		return nil, err
	}
	r.accounts = stored
	r.index = buildIndex(stored)
	return r, nil
}

var _ portsrepo.DebtAccountRepositoryFacade = (*DebtAccountRepository)(nil)

func buildIndex(accounts []domain.DebtAccount) map[string]int {
	index := make(map[string]int, len(accounts))
	for i, acc := range accounts {
		index[acc.AccountID] = i
	}
	return index
}

// LockAccount serializes mutations of a single account.
func (r *DebtAccountRepository) LockAccount(accountID string) func() {
	return r.locks.Lock(accountID)
}

// FindDebtAccountByID returns a deep copy of the account.
func (r *DebtAccountRepository) FindDebtAccountByID(ctx context.Context, accountID string) (*domain.DebtAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: debt account %s", apperrors.ErrNotFound, accountID)
	}
	acc := r.accounts[i].Clone()
	return &acc, nil
}

// ListDebtAccounts returns deep copies of all accounts in creation order.
func (r *DebtAccountRepository) ListDebtAccounts(ctx context.Context) ([]domain.DebtAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.DebtAccount, len(r.accounts))
	for i := range r.accounts {
		out[i] = r.accounts[i].Clone()
	}
	return out, nil
}

// SaveDebtAccount inserts or replaces the account.
func (r *DebtAccountRepository) SaveDebtAccount(ctx context.Context, account domain.DebtAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]domain.DebtAccount, len(r.accounts), len(r.accounts)+1)
	copy(next, r.accounts)
	if i, ok := r.index[account.AccountID]; ok {
		next[i] = account.Clone()
	} else {
		next = append(next, account.Clone())
	}

	if err := r.saveDocument(ctx, next); err != nil {
		return err
	}
	r.accounts = next
	r.index = buildIndex(next)
	return nil
}

// DeleteDebtAccount removes the account and its movements.
func (r *DebtAccountRepository) DeleteDebtAccount(ctx context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[accountID]
	if !ok {
		return fmt.Errorf("%w: debt account %s", apperrors.ErrNotFound, accountID)
	}
	next := make([]domain.DebtAccount, 0, len(r.accounts)-1)
	next = append(next, r.accounts[:i]...)
	next = append(next, r.accounts[i+1:]...)

	if err := r.saveDocument(ctx, next); err != nil {
		return err
	}
	r.accounts = next
	r.index = buildIndex(next)
	return nil
}
