package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"lakshya-career-assistant/internal/domain"
	"lakshya-career-assistant/internal/domain/ports/repository"
)

var _ repository.KeyValueStore = (*StateRepo)(nil)

// StateRepo persists assistant state documents in Postgres, one row per
// storage key. Schema:
//
//	CREATE TABLE IF NOT EXISTS assistant_state (
//	    key        TEXT PRIMARY KEY,
//	    value      JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type StateRepo struct {
	pool *pgxpool.Pool
}

func NewStateRepo(pool *pgxpool.Pool) *StateRepo {
	return &StateRepo{pool: pool}
}

func (r *StateRepo) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM assistant_state WHERE key = $1;`
	var value []byte
	if err := r.pool.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get state %s: %w", key, err)
	}
	return value, nil
}

func (r *StateRepo) Set(ctx context.Context, key string, value []byte) error {
	const q = `
INSERT INTO assistant_state (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET
  value = EXCLUDED.value,
  updated_at = NOW();`
	if _, err := r.pool.Exec(ctx, q, key, value); err != nil {
		return fmt.Errorf("set state %s: %w", key, err)
	}
	return nil
}

func (r *StateRepo) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM assistant_state WHERE key = $1;`
	if _, err := r.pool.Exec(ctx, q, key); err != nil {
		return fmt.Errorf("delete state %s: %w", key, err)
	}
	return nil
}
