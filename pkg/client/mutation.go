package client

import "context"

// MutationFunc performs a write against the API.
type MutationFunc func(ctx context.Context) error

// Mutator runs writes and keeps the query cache consistent: declared keys are
// invalidated only after the write succeeds.
type Mutator struct {
	cache *Cache
}

// NewMutator creates a mutation executor bound to a cache.
func NewMutator(cache *Cache) *Mutator {
	return &Mutator{cache: cache}
}

// Do runs the mutation. On success every declared key prefix is invalidated;
// on failure the cache is left untouched.
func (m *Mutator) Do(ctx context.Context, fn MutationFunc, invalidates ...Key) error {
	if err := fn(ctx); err != nil {
		return err
	}
	for _, key := range invalidates {
		m.cache.Invalidate(key)
	}
	return nil
}
