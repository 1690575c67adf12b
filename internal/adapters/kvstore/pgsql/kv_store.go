package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// KeyValueStore persists ledger documents as JSONB rows in PostgreSQL.
type KeyValueStore struct {
	Pool *pgxpool.Pool
}

// NewKeyValueStore creates a store over an existing pool. Run RunMigrations first.
func NewKeyValueStore(pool *pgxpool.Pool) *KeyValueStore {
	return &KeyValueStore{Pool: pool}
}

var _ portsrepo.KeyValueStore = (*KeyValueStore)(nil)

func (s *KeyValueStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	err := s.Pool.QueryRow(ctx, `SELECT value FROM ledger_documents WHERE key = $1`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load document %s: %w", key, err)
	}
	return raw, true, nil
}

func (s *KeyValueStore) Save(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO ledger_documents (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at;
	`
	if _, err := s.Pool.Exec(ctx, query, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save document %s: %w", key, err)
	}
	return nil
}
