package sequence

import "encoding/json"

// State is the plain-data snapshot of a Sequence: the three numeric fields
// plus the exhausted flag, in stable order. It exists so external
// serialization frameworks can persist and restore a generator without this
// package importing any of them: the framework owns the encoding format,
// this package owns only the field values.
//
// The exhausted flag must be carried once latched: after the latch the
// current field still holds the last issued value (the produce path
// delivers it and cannot advance), so a restore that dropped the flag would
// reissue that value. Decoders that encounter state without the flag (for
// example written by a producer that recomputes it lazily) may default it
// to false, which is correct for every state saved before exhaustion.
type State[T Unsigned] struct {
	Start     T    `json:"start" yaml:"start"`
	Current   T    `json:"current" yaml:"current"`
	Step      T    `json:"step" yaml:"step"`
	Exhausted bool `json:"exhausted" yaml:"exhausted"`
}

// State returns a snapshot of the sequence's four fields. Restoring it with
// FromState yields a generator that behaves identically to this one at the
// moment of the snapshot: same next production, same exhaustion status.
//
// Returns:
//   - The current State of the sequence
func (s *Sequence[T]) State() State[T] {
	return State[T]{
		Start:     s.start,
		Current:   s.current,
		Step:      s.step,
		Exhausted: s.exhausted,
	}
}

// FromState reconstructs a Sequence from a snapshot. The fields are adopted
// verbatim; there are no invalid-argument errors, mirroring construction.
//
// Parameters:
//   - st: A snapshot previously obtained from State (possibly after a
//     serialization round trip)
//
// Returns:
//   - A new Sequence that resumes exactly where the snapshot was taken
func FromState[T Unsigned](st State[T]) *Sequence[T] {
	return &Sequence[T]{
		start:     st.Start,
		current:   st.Current,
		step:      st.Step,
		exhausted: st.Exhausted,
	}
}

// MarshalJSON implements json.Marshaler by encoding the State snapshot in
// its stable field order: start, current, step, exhausted.
func (s *Sequence[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.State())
}

// UnmarshalJSON implements json.Unmarshaler. Input missing the exhausted
// field decodes with the flag clear; see State for why that is safe.
func (s *Sequence[T]) UnmarshalJSON(data []byte) error {
	var st State[T]
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	*s = *FromState(st)
	return nil
}
