package memory

import (
	"context"
	"sync"

	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
)

// KeyValueStore keeps ledger documents in process memory. Nothing survives a restart.
type KeyValueStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewKeyValueStore creates an empty in-memory store.
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{data: make(map[string][]byte)}
}

var _ portsrepo.KeyValueStore = (*KeyValueStore)(nil)

func (s *KeyValueStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *KeyValueStore) Save(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}
