package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
)

// Stable storage keys for the ledger documents.
const (
	KeyDebtAccounts = "debt_accounts"
	KeyTransactions = "financial_transactions"
	KeyReceipts     = "receipts"
)

// BaseRepository provides JSON load/save of one ledger document through the storage collaborator.
type BaseRepository struct {
	KV  portsrepo.KeyValueStore
	Key string
}

// loadDocument decodes the document stored under r.Key into out. Absent keys leave out untouched.
func (r *BaseRepository) loadDocument(ctx context.Context, out any) error {
	raw, ok, err := r.KV.Load(ctx, r.Key)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", r.Key, err)
	}
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", r.Key, err)
	}
	return nil
}

// saveDocument encodes doc and stores it under r.Key.
func (r *BaseRepository) saveDocument(ctx context.Context, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", r.Key, err)
	}
	if err := r.KV.Save(ctx, r.Key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", r.Key, err)
	}
	return nil
}

// keyedMutex hands out one mutex per key and forgets it once nobody holds or waits on it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// NewRepositoryProvider loads every ledger document from kv and returns the repositories backed by it.
func NewRepositoryProvider(ctx context.Context, kv portsrepo.KeyValueStore) (portsrepo.RepositoryProvider, error) {
	debtRepo, err := NewDebtAccountRepository(ctx, kv)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	txnRepo, err := NewTransactionRepository(ctx, kv)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	receiptRepo, err := NewReceiptRepository(ctx, kv)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	return portsrepo.RepositoryProvider{
		DebtRepo:        debtRepo,
		TransactionRepo: txnRepo,
		ReceiptRepo:     receiptRepo,
	}, nil
}
