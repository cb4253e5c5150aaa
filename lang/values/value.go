// Package values implements the runtime value model: a tagged union over
// {int32, int64, float32, float64, bool, array, struct} with per-operator
// dispatch and numeric promotion (spec §3, §4.3). The design follows the
// teacher's machine.Value shape (a thin interface plus standalone dispatch
// functions) rather than polymorphic methods with overload resolution, so
// that the promotion ladder lives in one place instead of scattered across
// every pair of concrete types.
package values

import "fmt"

// Value is implemented by every runtime value decode-bin manipulates.
type Value interface {
	// Type returns a short name for the value's dynamic type, used in error
	// messages ("int32", "int64", "float32", "float64", "bool", "array",
	// "struct").
	Type() string
	String() string
}

type (
	Int32   int32
	Int64   int64
	Float32 float32
	Float64 float64
	Bool    bool
)

func (Int32) Type() string   { return "int32" }
func (Int64) Type() string   { return "int64" }
func (Float32) Type() string { return "float32" }
func (Float64) Type() string { return "float64" }
func (Bool) Type() string    { return "bool" }

func (v Int32) String() string   { return fmt.Sprintf("%d", int32(v)) }
func (v Int64) String() string   { return fmt.Sprintf("%d", int64(v)) }
func (v Float32) String() string { return fmt.Sprintf("%g", float32(v)) }
func (v Float64) String() string { return fmt.Sprintf("%g", float64(v)) }
func (v Bool) String() string    { return fmt.Sprintf("%t", bool(v)) }

var (
	_ Value = Int32(0)
	_ Value = Int64(0)
	_ Value = Float32(0)
	_ Value = Float64(0)
	_ Value = Bool(false)
)

// IsScalar reports whether v is one of the five scalar variants (as opposed
// to Array or Struct).
func IsScalar(v Value) bool {
	switch v.(type) {
	case Int32, Int64, Float32, Float64, Bool:
		return true
	default:
		return false
	}
}

// IsIntegral reports whether v is Int32, Int64 or Bool — the types that may
// be operands of the bitwise operators (spec §4.3 rule 2).
func IsIntegral(v Value) bool {
	switch v.(type) {
	case Int32, Int64, Bool:
		return true
	default:
		return false
	}
}

// ToBool interprets any scalar as a boolean, per spec §4.4's "any scalar is
// acceptable, yielding value != 0".
func ToBool(v Value) (bool, error) {
	switch v := v.(type) {
	case Bool:
		return bool(v), nil
	case Int32:
		return v != 0, nil
	case Int64:
		return v != 0, nil
	case Float32:
		return v != 0, nil
	case Float64:
		return v != 0, nil
	default:
		return false, fmt.Errorf("cannot interpret %s as a boolean", v.Type())
	}
}
