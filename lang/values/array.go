package values

import "fmt"

// Array is a shared, ordered sequence of optional values: a nil entry means
// the cell is uninitialized (spec §3). Arrays are always handled through a
// pointer so that two variable bindings can observe and mutate the same
// backing sequence.
type Array struct {
	elems []Value
}

var _ Value = (*Array)(nil)

// NewArray allocates an array of the given length, every cell starting
// absent.
func NewArray(length int) *Array {
	return &Array{elems: make([]Value, length)}
}

func (a *Array) Type() string { return "array" }
func (a *Array) String() string {
	return fmt.Sprintf("array(len=%d)", len(a.elems))
}

// Len returns the number of cells in the array.
func (a *Array) Len() int { return len(a.elems) }

// Get returns the value at index i, or an error if i is out of range or the
// cell is uninitialized.
func (a *Array) Get(i int) (Value, error) {
	if i < 0 || i >= len(a.elems) {
		return nil, fmt.Errorf("array index %d is out of bounds", i)
	}
	if a.elems[i] == nil {
		return nil, fmt.Errorf("reference to uninitialized array value")
	}
	return a.elems[i], nil
}

// Set stores v at index i, which must be in range.
func (a *Array) Set(i int, v Value) error {
	if i < 0 || i >= len(a.elems) {
		return fmt.Errorf("array index %d is out of bounds", i)
	}
	a.elems[i] = v
	return nil
}
