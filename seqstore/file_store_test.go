package seqstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cyberinferno/go-sequential/sequence"
)

func TestFileStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store[uint64] {
		store, err := NewFileStore[uint64](t.TempDir())
		require.NoError(t, err)
		return store
	})
}

func TestFileStore_layout(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore[uint64](dir)
	require.NoError(t, err)

	st := sequence.NewWithStartAndStep[uint64](9, 3).State()
	require.NoError(t, store.Save(context.Background(), "orders", st))

	// One YAML file per name, readable by any YAML tooling.
	data, err := os.ReadFile(filepath.Join(dir, "orders.yaml"))
	require.NoError(t, err)

	var decoded sequence.State[uint64]
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, st, decoded)
}

func TestFileStore_reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore[uint64](dir)
	require.NoError(t, err)

	seq := sequence.NewWithStartAndStep[uint64](1000, 10)
	seq.Next()
	require.NoError(t, store.Save(ctx, "orders", seq.State()))

	reopened, err := NewFileStore[uint64](dir)
	require.NoError(t, err)

	st, err := reopened.Load(ctx, "orders")
	require.NoError(t, err)

	got, ok := sequence.FromState(st).Next()
	require.True(t, ok)
	assert.Equal(t, uint64(1010), got)
}

func TestFileStore_rejectsUnsafeNames(t *testing.T) {
	store, err := NewFileStore[uint64](t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	st := sequence.New[uint64]().State()

	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		t.Run(fmt.Sprintf("%q", name), func(t *testing.T) {
			assert.Error(t, store.Save(ctx, name, st))

			_, err := store.Load(ctx, name)
			assert.Error(t, err)
		})
	}
}

func TestFileStore_emptyDir(t *testing.T) {
	_, err := NewFileStore[uint64]("  ")
	assert.Error(t, err)
}
