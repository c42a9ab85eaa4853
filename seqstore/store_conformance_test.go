package seqstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberinferno/go-sequential/sequence"
)

// runStoreSuite exercises the Store contract against one backend. Every
// backend test runs this same suite so behavior stays aligned across
// memory, file, Pebble and SQLite.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store[uint64]) {
	t.Helper()

	t.Run("load of an unknown name", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Load(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("save then load resumes identically", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		seq := sequence.NewWithStartAndStep[uint64](100, 7)
		seq.Next()
		seq.Next()
		require.NoError(t, store.Save(ctx, "orders", seq.State()))

		st, err := store.Load(ctx, "orders")
		require.NoError(t, err)

		restored := sequence.FromState(st)
		want, wantOk := seq.Next()
		got, gotOk := restored.Next()
		assert.Equal(t, wantOk, gotOk)
		assert.Equal(t, want, got)
	})

	t.Run("save overwrites previous state", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "invoices", sequence.NewWithStart[uint64](1).State()))
		require.NoError(t, store.Save(ctx, "invoices", sequence.NewWithStart[uint64](500).State()))

		st, err := store.Load(ctx, "invoices")
		require.NoError(t, err)
		assert.Equal(t, uint64(500), st.Start)
	})

	t.Run("exhaustion flag survives", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		seq := sequence.New[uint64]()
		seq.ContinueAfter(sequence.MaxValue[uint64]() - 1)
		seq.Next()
		require.True(t, seq.IsExhausted())
		require.NoError(t, store.Save(ctx, "latched", seq.State()))

		st, err := store.Load(ctx, "latched")
		require.NoError(t, err)
		assert.True(t, st.Exhausted)

		_, ok := sequence.FromState(st).Next()
		assert.False(t, ok, "a restored latched sequence must not produce")
	})

	t.Run("delete removes the snapshot", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "short-lived", sequence.New[uint64]().State()))
		require.NoError(t, store.Delete(ctx, "short-lived"))

		_, err := store.Load(ctx, "short-lived")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete of an unknown name is a no-op", func(t *testing.T) {
		store := newStore(t)
		assert.NoError(t, store.Delete(context.Background(), "never-saved"))
	})

	t.Run("names come back sorted", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		for _, name := range []string{"invoices", "audit", "orders"} {
			require.NoError(t, store.Save(ctx, name, sequence.New[uint64]().State()))
		}

		names, err := store.Names(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"audit", "invoices", "orders"}, names)
	})
}
