package seqstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/cockroachdb/pebble"

	"github.com/cyberinferno/go-sequential/sequence"
)

const pebbleKeyPrefix = "seq/"

// stateRecordLen is the fixed width of an encoded snapshot:
// [start:8][current:8][step:8][exhausted:1].
const stateRecordLen = 3*8 + 1

// stateRecord is the on-disk form of a snapshot, widened to uint64 so
// every sequence value type shares one encoding.
type stateRecord struct {
	Start     uint64
	Current   uint64
	Step      uint64
	Exhausted bool
}

// binary encoding: [start:8][current:8][step:8][exhausted:1]
func encodeState(r stateRecord) []byte {
	buf := make([]byte, stateRecordLen)
	binary.BigEndian.PutUint64(buf[0:8], r.Start)
	binary.BigEndian.PutUint64(buf[8:16], r.Current)
	binary.BigEndian.PutUint64(buf[16:24], r.Step)
	if r.Exhausted {
		buf[24] = 1
	}
	return buf
}

func decodeState(b []byte) (stateRecord, error) {
	if len(b) != stateRecordLen {
		return stateRecord{}, errors.New("invalid state record length")
	}
	return stateRecord{
		Start:     binary.BigEndian.Uint64(b[0:8]),
		Current:   binary.BigEndian.Uint64(b[8:16]),
		Step:      binary.BigEndian.Uint64(b[16:24]),
		Exhausted: b[24] != 0,
	}, nil
}

// PebbleStore persists snapshots in an embedded Pebble database. Every
// save is written through with pebble.Sync, so an acknowledged
// checkpoint survives a crash.
type PebbleStore[T sequence.Unsigned] struct {
	db *pebble.DB
}

// OpenPebbleStore opens (or creates) a Pebble database at the given
// directory.
//
// Parameters:
//   - dir: Directory for the Pebble database files
//
// Returns:
//   - A new PebbleStore instance; callers must Close it when done
//   - An error if the database cannot be opened
func OpenPebbleStore[T sequence.Unsigned](dir string) (*PebbleStore[T], error) {
	db, err := pebble.Open(dir, &pebble.Options{
		DisableWAL: false, // we WANT durability
	})
	if err != nil {
		return nil, err
	}
	return &PebbleStore[T]{db: db}, nil
}

// Close closes the underlying database.
func (s *PebbleStore[T]) Close() error {
	return s.db.Close()
}

// Save writes the snapshot under "seq/<name>", synced to disk before it
// returns.
func (s *PebbleStore[T]) Save(ctx context.Context, name string, st sequence.State[T]) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	rec := stateRecord{
		Start:     uint64(st.Start),
		Current:   uint64(st.Current),
		Step:      uint64(st.Step),
		Exhausted: st.Exhausted,
	}
	return s.db.Set(keyFor(name), encodeState(rec), pebble.Sync)
}

// Load returns the snapshot saved under "seq/<name>", or ErrNotFound when
// the key is absent.
func (s *PebbleStore[T]) Load(ctx context.Context, name string) (sequence.State[T], error) {
	var zero sequence.State[T]

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	default:
	}

	val, closer, err := s.db.Get(keyFor(name))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("seqstore: pebble get %s: %w", name, err)
	}
	defer closer.Close()

	rec, err := decodeState(val)
	if err != nil {
		return zero, fmt.Errorf("seqstore: decode state for %s: %w", name, err)
	}

	var st sequence.State[T]
	if st.Start, err = narrow[T](rec.Start); err != nil {
		return zero, err
	}
	if st.Current, err = narrow[T](rec.Current); err != nil {
		return zero, err
	}
	if st.Step, err = narrow[T](rec.Step); err != nil {
		return zero, err
	}
	st.Exhausted = rec.Exhausted

	return st, nil
}

// Delete removes the snapshot under "seq/<name>". Missing keys are
// ignored.
func (s *PebbleStore[T]) Delete(ctx context.Context, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return s.db.Delete(keyFor(name), pebble.Sync)
}

// Names lists every saved name in lexical order. Pebble iterates keys in
// byte order, so no extra sort is needed.
func (s *PebbleStore[T]) Names(ctx context.Context) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// '0' is '/'+1, so the bound covers every key under the prefix.
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(pebbleKeyPrefix),
		UpperBound: []byte("seq0"),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var names []string
	for iter.First(); iter.Valid(); iter.Next() {
		names = append(names, strings.TrimPrefix(string(iter.Key()), pebbleKeyPrefix))
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	return names, nil
}

func keyFor(name string) []byte {
	return []byte(pebbleKeyPrefix + name)
}
