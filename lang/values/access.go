package values

import "fmt"

// Index implements a[i] (spec §4.3 rule 5): a must be an Array and i must be
// Int32.
func Index(a, i Value) (Value, error) {
	arr, ok := a.(*Array)
	if !ok {
		return nil, fmt.Errorf("cannot index into %s value", a.Type())
	}
	idx, ok := i.(Int32)
	if !ok {
		return nil, fmt.Errorf("can only index arrays with int32, got %s", i.Type())
	}
	return arr.Get(int(idx))
}

// Field implements a.f (spec §4.3 rule 6): a must be a Struct.
func Field(a Value, name string) (Value, error) {
	s, ok := a.(*Struct)
	if !ok {
		return nil, fmt.Errorf("cannot access field %q of %s value", name, a.Type())
	}
	v, ok := s.Get(name)
	if !ok {
		return nil, fmt.Errorf("struct has no field %q", name)
	}
	if v == nil {
		return nil, fmt.Errorf("field %q is uninitialized", name)
	}
	return v, nil
}
