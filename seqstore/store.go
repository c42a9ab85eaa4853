// Package seqstore persists sequence state across process restarts.
//
// A Store holds named sequence snapshots. Backends range from an
// in-process map for tests to Redis, Pebble and SQLite for durable or
// shared deployments. All backends implement the same interface, so a
// caller can switch persistence strategies without touching the code
// that produces values.
package seqstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/cyberinferno/go-sequential/sequence"
)

// ErrNotFound is returned by Load when no state has been saved under the
// requested name. Callers typically treat it as "start fresh" rather than
// as a failure.
var ErrNotFound = errors.New("seqstore: sequence state not found")

// Store saves and restores sequence snapshots by name.
//
// Implementations must be safe for concurrent use. A state saved under a
// name fully replaces any previous state under that name.
type Store[T sequence.Unsigned] interface {
	// Save writes the snapshot under the given name, overwriting any
	// previous snapshot.
	Save(ctx context.Context, name string, st sequence.State[T]) error

	// Load returns the snapshot saved under the given name, or
	// ErrNotFound when the name is unknown.
	Load(ctx context.Context, name string) (sequence.State[T], error)

	// Delete removes the snapshot under the given name. Deleting an
	// unknown name is not an error.
	Delete(ctx context.Context, name string) error

	// Names lists every saved name in lexical order.
	Names(ctx context.Context) ([]string, error)
}

// narrow converts a stored uint64 back to the sequence's value type,
// rejecting values the type cannot represent. Backends that widen to
// uint64 on disk share this check so that loading a uint64 snapshot into
// a uint8 store fails loudly instead of truncating.
func narrow[T sequence.Unsigned](v uint64) (T, error) {
	var zero T
	if v > uint64(sequence.MaxValue[T]()) {
		return zero, fmt.Errorf("seqstore: stored value %d does not fit the sequence value type", v)
	}
	return T(v), nil
}
