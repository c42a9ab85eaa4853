package seqstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/patrickmn/go-cache"

	"github.com/cyberinferno/go-sequential/sequence"
)

// MemoryStore is an in-memory implementation of the Store interface.
// It uses go-cache for storage, so snapshots live only as long as the
// process. It suits tests and callers that checkpoint between goroutines
// rather than across restarts.
type MemoryStore[T sequence.Unsigned] struct {
	cache *cache.Cache
}

// NewMemoryStore creates a new in-memory store instance.
//
// Returns:
//   - A new MemoryStore instance
func NewMemoryStore[T sequence.Unsigned]() Store[T] {
	return &MemoryStore[T]{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Save writes the snapshot under the given name, overwriting any previous
// snapshot under that name.
func (s *MemoryStore[T]) Save(ctx context.Context, name string, st sequence.State[T]) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.cache.Set(name, st, cache.NoExpiration)
	return nil
}

// Load returns the snapshot saved under the given name, or ErrNotFound
// when the name is unknown.
func (s *MemoryStore[T]) Load(ctx context.Context, name string) (sequence.State[T], error) {
	var zero sequence.State[T]

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	default:
	}

	val, found := s.cache.Get(name)
	if !found {
		return zero, ErrNotFound
	}

	st, ok := val.(sequence.State[T])
	if !ok {
		return zero, fmt.Errorf("unexpected type in store for name %s", name)
	}

	return st, nil
}

// Delete removes the snapshot under the given name. Unknown names are
// ignored.
func (s *MemoryStore[T]) Delete(ctx context.Context, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.cache.Delete(name)
	return nil
}

// Names lists every saved name in lexical order.
func (s *MemoryStore[T]) Names(ctx context.Context) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	items := s.cache.Items()
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}
