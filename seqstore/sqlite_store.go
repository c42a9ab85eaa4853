package seqstore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/cyberinferno/go-sequential/sequence"
)

//go:embed sqlite_schema.sql
var sqliteSchema string

// SQLiteStore persists snapshots in a SQLite database. Numeric fields
// travel as decimal text because SQLite integers are signed 64-bit and
// would reject the upper half of the uint64 range.
type SQLiteStore[T sequence.Unsigned] struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) a SQLite-backed store.
//
// Parameters:
//   - dsn: Database connection string, e.g. "file:sequences.db"
//
// Returns:
//   - A new SQLiteStore instance; callers must Close it when done
//   - An error if the database cannot be opened or migrated
func OpenSQLiteStore[T sequence.Unsigned](dsn string) (*SQLiteStore[T], error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("seqstore: open sqlite: %w", err)
	}

	// Enable WAL mode for concurrent reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seqstore: set WAL mode: %w", err)
	}

	// Create schema.
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seqstore: create schema: %w", err)
	}

	return &SQLiteStore[T]{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore[T]) Close() error {
	return s.db.Close()
}

// Save upserts the snapshot row for the given name.
func (s *SQLiteStore[T]) Save(ctx context.Context, name string, st sequence.State[T]) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sequences (name, start, current, step, exhausted)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   start = excluded.start,
		   current = excluded.current,
		   step = excluded.step,
		   exhausted = excluded.exhausted`,
		name,
		strconv.FormatUint(uint64(st.Start), 10),
		strconv.FormatUint(uint64(st.Current), 10),
		strconv.FormatUint(uint64(st.Step), 10),
		st.Exhausted,
	)
	if err != nil {
		return fmt.Errorf("seqstore: save %s: %w", name, err)
	}
	return nil
}

// Load returns the snapshot row for the given name, or ErrNotFound when
// no row exists.
func (s *SQLiteStore[T]) Load(ctx context.Context, name string) (sequence.State[T], error) {
	var zero sequence.State[T]

	var (
		startStr   string
		currentStr string
		stepStr    string
		exhausted  bool
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT start, current, step, exhausted FROM sequences WHERE name = ?`, name,
	).Scan(&startStr, &currentStr, &stepStr, &exhausted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("seqstore: load %s: %w", name, err)
	}

	var st sequence.State[T]
	if st.Start, err = parseStored[T]("start", startStr); err != nil {
		return zero, err
	}
	if st.Current, err = parseStored[T]("current", currentStr); err != nil {
		return zero, err
	}
	if st.Step, err = parseStored[T]("step", stepStr); err != nil {
		return zero, err
	}
	st.Exhausted = exhausted

	return st, nil
}

// Delete removes the snapshot row for the given name. Missing rows are
// ignored.
func (s *SQLiteStore[T]) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM sequences WHERE name = ?`, name,
	); err != nil {
		return fmt.Errorf("seqstore: delete %s: %w", name, err)
	}
	return nil
}

// Names lists every saved name in lexical order.
func (s *SQLiteStore[T]) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sequences ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("seqstore: list names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("seqstore: scan name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// parseStored decodes one decimal text column back into the sequence's
// value type.
func parseStored[T sequence.Unsigned](field, raw string) (T, error) {
	var zero T
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return zero, fmt.Errorf("seqstore: parse %s %q: %w", field, raw, err)
	}
	t, err := narrow[T](v)
	if err != nil {
		return zero, err
	}
	return t, nil
}
