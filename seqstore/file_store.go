package seqstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cyberinferno/go-sequential/sequence"
)

const stateFileExt = ".yaml"

// FileStore persists each snapshot as a YAML file in a local directory,
// one file per sequence name. Writes go through a temp file and rename so
// a crash mid-write never leaves a torn snapshot behind.
type FileStore[T sequence.Unsigned] struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at the given directory,
// creating the directory if needed.
//
// Parameters:
//   - dir: Directory that will hold one YAML file per sequence name
//
// Returns:
//   - A new FileStore instance
//   - An error if the directory cannot be created
func NewFileStore[T sequence.Unsigned](dir string) (Store[T], error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("seqstore: store directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("seqstore: create store dir: %w", err)
	}
	return &FileStore[T]{dir: dir}, nil
}

// Save writes the snapshot to <dir>/<name>.yaml, replacing any previous
// file atomically.
func (s *FileStore[T]) Save(ctx context.Context, name string, st sequence.State[T]) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := validateName(name); err != nil {
		return err
	}

	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("seqstore: encode state for %s: %w", name, err)
	}

	path := s.path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("seqstore: write temp state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("seqstore: replace state file: %w", err)
	}
	return nil
}

// Load reads the snapshot from <dir>/<name>.yaml. A missing file maps to
// ErrNotFound.
func (s *FileStore[T]) Load(ctx context.Context, name string) (sequence.State[T], error) {
	var zero sequence.State[T]

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	default:
	}

	if err := validateName(name); err != nil {
		return zero, err
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("seqstore: read state for %s: %w", name, err)
	}

	var st sequence.State[T]
	if err := yaml.Unmarshal(data, &st); err != nil {
		return zero, fmt.Errorf("seqstore: decode state for %s: %w", name, err)
	}
	return st, nil
}

// Delete removes the snapshot file. Missing files are ignored.
func (s *FileStore[T]) Delete(ctx context.Context, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := validateName(name); err != nil {
		return err
	}

	if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("seqstore: delete state for %s: %w", name, err)
	}
	return nil
}

// Names lists every saved name in lexical order, derived from the
// directory listing.
func (s *FileStore[T]) Names(ctx context.Context) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("seqstore: list store dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), stateFileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), stateFileExt))
	}
	sort.Strings(names)

	return names, nil
}

func (s *FileStore[T]) path(name string) string {
	return filepath.Join(s.dir, name+stateFileExt)
}

// validateName rejects names that would escape the store directory once
// turned into a file name.
func validateName(name string) error {
	if name == "" {
		return errors.New("seqstore: sequence name is empty")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("seqstore: sequence name %q must not contain path separators", name)
	}
	return nil
}
