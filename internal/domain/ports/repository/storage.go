package repository

import "context"

// KeyValueStore is the persistence port for whole-document JSON state
// (the saved-jobs set and per-identity chat envelopes). Implementations
// must treat an absent key as ErrNotFound and must never hand back
// partially written content.
//
// Callers own the decode step so that malformed stored bytes can degrade
// to an empty structure instead of failing the page flow.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
