package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/shop_ledger/internal/adapters/kvstore/memory"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/core/ports"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/repositories/ledger"
)

// --- Mock KeyValueStore ---
type MockKeyValueStore struct {
	mock.Mock
}

var _ portsrepo.KeyValueStore = (*MockKeyValueStore)(nil)

func (m *MockKeyValueStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Bool(1), args.Error(2)
}

func (m *MockKeyValueStore) Save(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// --- Mock ReminderPublisher ---
type MockReminderPublisher struct {
	mock.Mock
}

var _ ports.ReminderPublisher = (*MockReminderPublisher)(nil)

func (m *MockReminderPublisher) PublishReminder(ctx context.Context, reminder domain.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

// newMemoryRepos wires the ledger repositories over a fresh in-memory store.
func newMemoryRepos(t *testing.T) portsrepo.RepositoryProvider {
	t.Helper()
	repos, err := ledger.NewRepositoryProvider(context.Background(), memory.NewKeyValueStore())
	require.NoError(t, err)
	return repos
}
