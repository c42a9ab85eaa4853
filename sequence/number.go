package sequence

// Unsigned is the set of integer widths a Sequence can produce: 8, 16, 32
// and 64 bits plus the platform-native uint. The tilde terms admit named
// types, so domain-specific widths such as `type TicketNo uint32` work
// directly as sequence element types.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// MaxValue returns the maximum representable value of T, the point at which
// a Sequence of that width exhausts.
//
// Returns:
//   - The all-bits-set value of T (e.g. 255 for uint8)
func MaxValue[T Unsigned]() T {
	var zero T
	return ^zero
}

// CheckedAdd adds a and b with overflow detection instead of the silent
// wraparound of the + operator. Every mutation of a Sequence goes through
// this function; nothing in this package wraps silently.
//
// Parameters:
//   - a: The first addend
//   - b: The second addend
//
// Returns:
//   - The sum, or the zero value of T when the addition overflows
//   - true if the sum is representable in T, false on overflow
func CheckedAdd[T Unsigned](a, b T) (T, bool) {
	sum := a + b
	if sum < a {
		var zero T
		return zero, false
	}
	return sum, true
}
