package seqregistry

import (
	"sync"

	"github.com/cyberinferno/go-sequential/sequence"
)

// SharedSequence is a named sequence guarded by a mutex so multiple
// goroutines can draw values without further coordination. Two goroutines
// can never observe the same production.
type SharedSequence[T sequence.Unsigned] struct {
	name string
	mu   sync.Mutex
	seq  *sequence.Sequence[T]
}

// Name returns the name the sequence is registered under.
func (s *SharedSequence[T]) Name() string {
	return s.name
}

// Next produces the next value.
//
// Returns:
//   - The produced value and true, or the zero value and false once the
//     sequence is exhausted
func (s *SharedSequence[T]) Next() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Next()
}

// Peek returns the value the next production would yield, without
// producing it. Note that another goroutine may produce that value
// between Peek and a following Next.
func (s *SharedSequence[T]) Peek() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Peek()
}

// FastForward advances the sequence by the given amount without
// producing the skipped values.
func (s *SharedSequence[T]) FastForward(skipBy T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.FastForward(skipBy)
}

// ContinueAfter moves the sequence past an externally observed value.
func (s *SharedSequence[T]) ContinueAfter(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq.ContinueAfter(v)
}

// Reset rewinds the sequence to its configured start and clears
// exhaustion.
func (s *SharedSequence[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq.Reset()
}

// IsExhausted reports whether the sequence has latched.
func (s *SharedSequence[T]) IsExhausted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.IsExhausted()
}

// State snapshots the sequence for persistence.
func (s *SharedSequence[T]) State() sequence.State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.State()
}
