// Package sequence provides a monotonic sequence-number generator over any
// unsigned integer width. A Sequence yields successive values on demand,
// supports skipping ahead, and halts cleanly when the next value would
// exceed the maximum of the chosen width: arithmetic is always checked,
// never wrapping.
//
// A Sequence is a plain value type with no locks, no goroutines and no I/O.
// Programs sharing one generator across goroutines must provide their own
// mutual exclusion; the seqregistry package offers a ready-made wrapper.
package sequence

import "errors"

// ErrOverflow is returned by FastForward when the requested jump would
// exceed the maximum value of the sequence width. The sequence is left
// unchanged, so callers may retry with a smaller jump or abandon it.
var ErrOverflow = errors.New("sequence: jump exceeds maximum value of type")

// Sequence produces monotonically increasing integer numbers of width T,
// starting from a configurable origin and advancing by a fixed step.
//
// Once the next value would exceed the maximum of T, the sequence latches
// an exhausted flag: the last representable value is still delivered, every
// later Next returns nothing, and only an explicit Reset revives it. Values
// already produced are never reissued except after such a Reset.
//
// The zero value is a frozen sequence (start 0, step 0) that yields 0
// forever and never exhausts; use New for a counting sequence.
type Sequence[T Unsigned] struct {
	start     T
	current   T
	step      T
	exhausted bool
}

// New creates a Sequence that starts with 0 and increments by 1.
//
// Returns:
//   - A new Sequence producing 0, 1, 2, ...
func New[T Unsigned]() *Sequence[T] {
	return NewWithStartAndStep[T](0, 1)
}

// NewWithStart creates a Sequence that starts with the given value and
// increments by 1.
//
// Parameters:
//   - start: The first value the sequence will produce
//
// Returns:
//   - A new Sequence producing start, start+1, start+2, ...
func NewWithStart[T Unsigned](start T) *Sequence[T] {
	return NewWithStartAndStep(start, 1)
}

// NewWithStep creates a Sequence that starts with 0 and increments by the
// given step. A zero step is accepted and produces a constant sequence that
// never exhausts, since adding zero can never overflow.
//
// Parameters:
//   - step: The increment applied after each produced value
//
// Returns:
//   - A new Sequence producing 0, step, 2*step, ...
func NewWithStep[T Unsigned](step T) *Sequence[T] {
	return NewWithStartAndStep(0, step)
}

// NewWithStartAndStep creates a fully configured Sequence. No validation is
// performed on either argument; see NewWithStep for the zero-step behavior.
//
// Parameters:
//   - start: The first value the sequence will produce
//   - step: The increment applied after each produced value
//
// Returns:
//   - A new Sequence producing start, start+step, start+2*step, ...
func NewWithStartAndStep[T Unsigned](start, step T) *Sequence[T] {
	return &Sequence[T]{
		start:   start,
		current: start,
		step:    step,
	}
}

// NewAfter creates a Sequence that starts with last+1 and increments by 1,
// guaranteeing that last itself is never produced. If last is already the
// maximum of T there is nothing representable after it and the returned
// sequence is born exhausted; note that resetting such a sequence replays
// from last, as Reset is an explicit permission to reissue.
//
// Parameters:
//   - last: The highest value already in use
//
// Returns:
//   - A new Sequence producing last+1, last+2, ...
func NewAfter[T Unsigned](last T) *Sequence[T] {
	next, ok := CheckedAdd(last, 1)
	if !ok {
		return &Sequence[T]{start: last, current: last, step: 1, exhausted: true}
	}
	return NewWithStartAndStep(next, 1)
}

// Next produces the next value of the sequence.
//
// An exhausted sequence returns nothing and has no side effect. Otherwise
// the current value is delivered and the sequence advances by its step; if
// that advance would overflow T, the exhausted flag latches but the value
// already committed is still returned, and only the following call comes
// back empty.
//
// Returns:
//   - The produced value, or the zero value of T when nothing is produced
//   - true if a value was produced, false if the sequence is exhausted
func (s *Sequence[T]) Next() (T, bool) {
	if s.exhausted {
		var zero T
		return zero, false
	}

	result := s.current
	candidate, ok := CheckedAdd(s.current, s.step)
	if !ok {
		s.exhausted = true
		return result, true
	}

	s.current = candidate
	return result, true
}

// Peek returns the value the next successful production would deliver,
// without mutating any state. It deliberately ignores the exhausted flag:
// peeking is a read-only probe and must never have the latching side effect
// production has, so callers that care should consult IsExhausted
// separately.
//
// Returns:
//   - The value Next would produce if the sequence were not exhausted
func (s *Sequence[T]) Peek() T {
	return s.current
}

// FastForward jumps the sequence ahead by skipBy, independent of the
// configured step. The jump only ever moves forward; there is no operation
// that decreases the current value other than Reset.
//
// A successful jump updates the current value only. It never latches the
// exhausted flag: exhaustion detection belongs solely to the production
// path, so a jump landing exactly on the maximum of T is valid and the
// following Next delivers that maximum before latching.
//
// Parameters:
//   - skipBy: The amount to add to the current value
//
// Returns:
//   - nil on success, or ErrOverflow (state unchanged) when the jump would
//     exceed the maximum of T
func (s *Sequence[T]) FastForward(skipBy T) error {
	next, ok := CheckedAdd(s.current, skipBy)
	if !ok {
		return ErrOverflow
	}
	s.current = next
	return nil
}

// ContinueAfter guarantees that v is never produced, raising the current
// value to v+step if necessary. Calls that name a value the sequence has
// already moved past are no-ops; the sequence only ever moves forward.
//
// If v+step overflows T there is no representable value after v and the
// sequence latches exhausted. A zero-step sequence cannot move at all: when
// pinned exactly at v it likewise latches exhausted, otherwise it already
// never produces v and is left alone.
//
// Parameters:
//   - v: The value to continue after, typically the highest value already
//     issued elsewhere
func (s *Sequence[T]) ContinueAfter(v T) {
	if s.exhausted {
		return
	}
	if s.step == 0 {
		if s.current == v {
			s.exhausted = true
		}
		return
	}

	candidate, ok := CheckedAdd(v, s.step)
	if !ok {
		s.exhausted = true
		return
	}
	if candidate > s.current {
		s.current = candidate
	}
}

// Reset rewinds the sequence to its original start value and clears the
// exhausted flag. This is the only way to reuse a sequence after exhaustion
// or to replay already-issued values; it is always explicit, never implied.
func (s *Sequence[T]) Reset() {
	s.current = s.start
	s.exhausted = false
}

// IsExhausted reports whether the sequence has latched its terminal state.
// Exhaustion is not an error: it simply means no more values are available
// until an explicit Reset.
//
// Returns:
//   - true once an advance has overflowed the maximum of T, false otherwise
func (s *Sequence[T]) IsExhausted() bool {
	return s.exhausted
}

// Start returns the immutable origin value recorded at construction.
func (s *Sequence[T]) Start() T {
	return s.start
}

// Step returns the fixed increment applied on each production.
func (s *Sequence[T]) Step() T {
	return s.step
}
