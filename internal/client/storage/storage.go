// Package storage provides the opaque key-value engine the session layer
// persists credentials and cached profiles into. Values are byte slices;
// a missing key reads as (nil, nil), never as an error.
package storage

import "context"

// Store is the minimal contract the session layer depends on.
type Store interface {
	// Get returns the value for key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys starting with prefix, sorted ascending.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Clear removes every key in the store.
	Clear(ctx context.Context) error
}

// Batcher is an optional extension: stores whose backend supports
// transactions run fn against a transactional Store view, committing on nil
// and rolling back on error. Callers must type-assert and fall back to
// per-key writes when the store does not implement it.
type Batcher interface {
	Batch(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}
