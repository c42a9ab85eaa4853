package sequence

import "iter"

// Values returns an iterator that drains the sequence, yielding successive
// productions until exhaustion or until the consumer breaks. Iteration
// advances the sequence like repeated Next calls: breaking early leaves the
// sequence positioned at the first unyielded value.
//
// A zero-step sequence never exhausts, so ranging over it without a break
// does not terminate; the consumer owns termination in that case.
//
// Returns:
//   - An iter.Seq usable with range
func (s *Sequence[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := s.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// NewAfterHighest creates a Sequence that starts after the highest value
// yielded by the iterator, guaranteeing none of the seen values is ever
// produced. An empty iterator behaves like NewAfter(0): the sequence starts
// at 1, leaving 0 free to mean "no value" as ID schemes conventionally do.
//
// Parameters:
//   - values: The values already in use, in any order
//
// Returns:
//   - A new Sequence producing max(values)+1, max(values)+2, ...
func NewAfterHighest[T Unsigned](values iter.Seq[T]) *Sequence[T] {
	var highest T
	for v := range values {
		if v > highest {
			highest = v
		}
	}
	return NewAfter(highest)
}
