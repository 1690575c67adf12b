package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
)

// TransactionRepository is the append-only financial transaction journal.
type TransactionRepository struct {
	BaseRepository
	mu           sync.RWMutex
	transactions []domain.FinancialTransaction
}

// NewTransactionRepository loads the stored journal from kv.
func NewTransactionRepository(ctx context.Context, kv portsrepo.KeyValueStore) (*TransactionRepository, error) {
	r := &TransactionRepository{BaseRepository: BaseRepository{KV: kv, Key: KeyTransactions}}
	if err := r.loadDocument(ctx, &r.transactions); err != nil {
		return nil, err
	}
	return r, nil
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func cloneTransaction(t domain.FinancialTransaction) domain.FinancialTransaction {
	if t.CostAmount != nil {
		cost := *t.CostAmount
		t.CostAmount = &cost
	}
	return t
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.transactions {
		if t.TransactionID == transactionID {
			found := cloneTransaction(t)
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
}

func (r *TransactionRepository) ListTransactions(ctx context.Context) ([]domain.FinancialTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.FinancialTransaction, len(r.transactions))
	for i, t := range r.transactions {
		out[i] = cloneTransaction(t)
	}
	return out, nil
}

// AppendTransaction persists the journal with txn appended, then commits it in memory.
func (r *TransactionRepository) AppendTransaction(ctx context.Context, txn domain.FinancialTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]domain.FinancialTransaction, len(r.transactions), len(r.transactions)+1)
	copy(next, r.transactions)
	next = append(next, cloneTransaction(txn))

	if err := r.saveDocument(ctx, next); err != nil {
		return err
	}
	r.transactions = next
	return nil
}

// ReceiptRepository is the append-only point-of-sale receipt log.
type ReceiptRepository struct {
	BaseRepository
	mu       sync.RWMutex
	receipts []domain.Receipt
}

// NewReceiptRepository loads the stored receipts from kv.
func NewReceiptRepository(ctx context.Context, kv portsrepo.KeyValueStore) (*ReceiptRepository, error) {
	r := &ReceiptRepository{BaseRepository: BaseRepository{KV: kv, Key: KeyReceipts}}
	if err := r.loadDocument(ctx, &r.receipts); err != nil {
		return nil, err
	}
	return r, nil
}

var _ portsrepo.ReceiptRepositoryFacade = (*ReceiptRepository)(nil)

func (r *ReceiptRepository) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Receipt, len(r.receipts))
	copy(out, r.receipts)
	return out, nil
}

func (r *ReceiptRepository) AppendReceipt(ctx context.Context, receipt domain.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]domain.Receipt, len(r.receipts), len(r.receipts)+1)
	copy(next, r.receipts)
	next = append(next, receipt)

	if err := r.saveDocument(ctx, next); err != nil {
		return err
	}
	r.receipts = next
	return nil
}
