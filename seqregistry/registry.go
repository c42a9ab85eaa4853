// Package seqregistry hands out named, shared sequences. A Registry
// materializes sequences on first use, restores them from an optional
// seqstore backend, and checkpoints live state back to it. The sequences
// it returns are safe for concurrent producers.
package seqregistry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/cyberinferno/go-sequential/logger"
	"github.com/cyberinferno/go-sequential/seqstore"
	"github.com/cyberinferno/go-sequential/sequence"
)

// ErrNoStore is returned by persistence operations on a registry built
// without a store.
var ErrNoStore = errors.New("seqregistry: no store configured")

// Config configures a Registry.
type Config[T sequence.Unsigned] struct {
	// Store persists sequence state across restarts. Leave nil for a
	// purely in-memory registry.
	Store seqstore.Store[T]

	// Logger receives registry log entries. Leave nil to discard them.
	Logger logger.Logger

	// Start is the first value of newly materialized sequences.
	Start T

	// Step is the distance between productions of newly materialized
	// sequences. Zero falls back to 1 so the zero Config still counts.
	Step T
}

// Registry manages a set of named sequences sharing one value type.
// Asking for the same name always yields the same SharedSequence
// instance, so every producer in the process draws from one line of
// values.
type Registry[T sequence.Unsigned] struct {
	store seqstore.Store[T]
	log   logger.Logger
	start T
	step  T

	mu    sync.RWMutex
	seqs  map[string]*SharedSequence[T]
	group singleflight.Group
}

// New creates a Registry from the given configuration.
//
// Parameters:
//   - cfg: Registry configuration; the zero value yields an in-memory
//     registry counting from 0 in steps of 1
//
// Returns:
//   - A new Registry instance
func New[T sequence.Unsigned](cfg Config[T]) *Registry[T] {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	step := cfg.Step
	if step == 0 {
		step = 1
	}

	return &Registry[T]{
		store: cfg.Store,
		log:   log,
		start: cfg.Start,
		step:  step,
		seqs:  make(map[string]*SharedSequence[T]),
	}
}

// Get returns the shared sequence registered under the given name,
// materializing it on first use. When a store is configured the first Get
// restores persisted state; otherwise (or when the store has no snapshot)
// the sequence starts fresh from the configured Start and Step.
//
// The singleflight group ensures that concurrent first requests for the
// same name materialize exactly one sequence.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - name: The sequence name to look up or materialize
//
// Returns:
//   - The shared sequence registered under the name
//   - An error if restoring from the store fails
func (r *Registry[T]) Get(ctx context.Context, name string) (*SharedSequence[T], error) {
	r.mu.RLock()
	shared, ok := r.seqs[name]
	r.mu.RUnlock()
	if ok {
		return shared, nil
	}

	val, err, _ := r.group.Do(name, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		// Another goroutine might have already materialized it
		r.mu.RLock()
		existing, ok := r.seqs[name]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}

		seq, err := r.materialize(ctx, name)
		if err != nil {
			return nil, err
		}

		created := &SharedSequence[T]{name: name, seq: seq}
		r.mu.Lock()
		r.seqs[name] = created
		r.mu.Unlock()

		return created, nil
	})
	if err != nil {
		return nil, err
	}

	shared, ok = val.(*SharedSequence[T])
	if !ok {
		return nil, fmt.Errorf("unexpected type in registry for name %s", name)
	}

	return shared, nil
}

// materialize builds the sequence for a name that has no cached instance.
func (r *Registry[T]) materialize(ctx context.Context, name string) (*sequence.Sequence[T], error) {
	if r.store == nil {
		r.log.Debug("materialized fresh sequence", logger.Field{Key: "name", Value: name})
		return sequence.NewWithStartAndStep(r.start, r.step), nil
	}

	st, err := r.store.Load(ctx, name)
	if err != nil {
		if errors.Is(err, seqstore.ErrNotFound) {
			r.log.Debug("materialized fresh sequence", logger.Field{Key: "name", Value: name})
			return sequence.NewWithStartAndStep(r.start, r.step), nil
		}
		return nil, fmt.Errorf("seqregistry: load %q: %w", name, err)
	}

	r.log.Debug("restored sequence from store",
		logger.Field{Key: "name", Value: name},
		logger.Field{Key: "current", Value: uint64(st.Current)},
		logger.Field{Key: "exhausted", Value: st.Exhausted},
	)

	return sequence.FromState(st), nil
}

// Register installs a prepared sequence under the given name, replacing
// any cached instance. It is the way to hand the registry a sequence with
// a shape Get would not build, such as a zero-step constant.
//
// Parameters:
//   - name: The name to register the sequence under
//   - seq: The sequence to share; the registry takes ownership
//
// Returns:
//   - The shared wrapper now registered under the name
func (r *Registry[T]) Register(name string, seq *sequence.Sequence[T]) *SharedSequence[T] {
	shared := &SharedSequence[T]{name: name, seq: seq}

	r.mu.Lock()
	r.seqs[name] = shared
	r.mu.Unlock()

	r.log.Debug("registered sequence",
		logger.Field{Key: "name", Value: name},
		logger.Field{Key: "start", Value: uint64(seq.Start())},
		logger.Field{Key: "step", Value: uint64(seq.Step())},
	)

	return shared
}

// Checkpoint saves the named sequence's current state to the store.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - name: The sequence to checkpoint
//
// Returns:
//   - ErrNoStore when the registry has no store, an error if the save
//     fails or the name is unknown
func (r *Registry[T]) Checkpoint(ctx context.Context, name string) error {
	if r.store == nil {
		return ErrNoStore
	}

	r.mu.RLock()
	shared, ok := r.seqs[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("seqregistry: unknown sequence %q", name)
	}

	if err := r.store.Save(ctx, name, shared.State()); err != nil {
		return fmt.Errorf("seqregistry: checkpoint %q: %w", name, err)
	}

	r.log.Debug("checkpointed sequence", logger.Field{Key: "name", Value: name})
	return nil
}

// CheckpointAll saves every cached sequence's state to the store. Saves
// run concurrently; the first failure cancels the rest and is returned.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//
// Returns:
//   - ErrNoStore when the registry has no store, otherwise the first save
//     error if any
func (r *Registry[T]) CheckpointAll(ctx context.Context) error {
	if r.store == nil {
		return ErrNoStore
	}

	r.mu.RLock()
	shared := make([]*SharedSequence[T], 0, len(r.seqs))
	for _, s := range r.seqs {
		shared = append(shared, s)
	}
	r.mu.RUnlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range shared {
		g.Go(func() error {
			if err := r.store.Save(ctx, s.Name(), s.State()); err != nil {
				return fmt.Errorf("seqregistry: checkpoint %q: %w", s.Name(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r.log.Debug("checkpointed all sequences", logger.Field{Key: "count", Value: len(shared)})
	return nil
}

// Remove forgets the cached sequence and deletes its snapshot from the
// store when one is configured. The next Get materializes a fresh
// sequence.
func (r *Registry[T]) Remove(ctx context.Context, name string) error {
	r.mu.Lock()
	delete(r.seqs, name)
	r.mu.Unlock()

	if r.store == nil {
		return nil
	}

	if err := r.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("seqregistry: remove %q: %w", name, err)
	}

	r.log.Debug("removed sequence", logger.Field{Key: "name", Value: name})
	return nil
}

// Names lists the cached sequence names in lexical order. Snapshots that
// exist only in the store are not included; list those with the store's
// own Names method.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.seqs))
	for name := range r.seqs {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}
