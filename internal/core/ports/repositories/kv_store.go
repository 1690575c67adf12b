package repositories

import "context"

// KeyValueStore is the storage collaborator the ledger persists through.
// Values are JSON documents stored under stable keys.
type KeyValueStore interface {
	// Load returns the value stored under key. The boolean is false when the key is absent.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error
}
