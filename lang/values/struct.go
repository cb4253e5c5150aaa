package values

import (
	"fmt"
	"strings"
)

// Struct is a shared, insertion-ordered mapping from field name to value
// (spec §3). It is kept as a dedicated slice-plus-index type rather than a
// hash map because field order must be preserved for iteration and
// rendering, and no map implementation in the example pack preserves
// insertion order (see DESIGN.md).
type Struct struct {
	keys []string
	idx  map[string]int
	vals []Value
}

var _ Value = (*Struct)(nil)

// NewStruct returns an empty struct value.
func NewStruct() *Struct {
	return &Struct{idx: make(map[string]int)}
}

func (s *Struct) Type() string { return "struct" }

func (s *Struct) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		if s.vals[i] == nil {
			sb.WriteString("<undefined>")
		} else {
			sb.WriteString(s.vals[i].String())
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

// Declare adds a new, initially-absent field. It fails if the name is
// already declared in this struct (spec §3: "Field names within a struct
// are unique; redeclaring fails.").
func (s *Struct) Declare(name string) error {
	if _, ok := s.idx[name]; ok {
		return fmt.Errorf("field %q is already declared", name)
	}
	s.idx[name] = len(s.keys)
	s.keys = append(s.keys, name)
	s.vals = append(s.vals, nil)
	return nil
}

// DeclareAndSet declares name (failing on redeclaration) and immediately
// binds it to v.
func (s *Struct) DeclareAndSet(name string, v Value) error {
	if err := s.Declare(name); err != nil {
		return err
	}
	s.vals[len(s.vals)-1] = v
	return nil
}

// Get returns the field's value and whether it is declared at all. A
// declared-but-absent field returns (nil, true); the caller must
// distinguish "not declared" from "declared but uninitialized" itself if it
// needs to (Field reports the two cases with different errors).
func (s *Struct) Get(name string) (Value, bool) {
	i, ok := s.idx[name]
	if !ok {
		return nil, false
	}
	return s.vals[i], true
}

// Set overwrites an already-declared field's value.
func (s *Struct) Set(name string, v Value) error {
	i, ok := s.idx[name]
	if !ok {
		return fmt.Errorf("no such field %q", name)
	}
	s.vals[i] = v
	return nil
}

// Keys returns the field names in declaration order. Callers must not
// modify the result.
func (s *Struct) Keys() []string { return s.keys }

// Len returns the number of declared fields.
func (s *Struct) Len() int { return len(s.keys) }
