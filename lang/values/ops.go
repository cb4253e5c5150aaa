package values

import (
	"fmt"

	"github.com/Earthcomputer/decode-bin/lang/token"
)

// rank orders the four numeric scalar types (plus Bool, which promotes to
// Int32) for the promotion ladder of spec §4.3 rule 3: Float64 > Float32 >
// Int64 > Int32/Bool.
func rank(v Value) int {
	switch v.(type) {
	case Float64:
		return 4
	case Float32:
		return 3
	case Int64:
		return 2
	case Int32, Bool:
		return 1
	default:
		return 0
	}
}

func asInt64(v Value) int64 {
	switch v := v.(type) {
	case Bool:
		if v {
			return 1
		}
		return 0
	case Int32:
		return int64(v)
	case Int64:
		return int64(v)
	}
	return 0
}

func asFloat64(v Value) float64 {
	switch v := v.(type) {
	case Bool:
		if v {
			return 1
		}
		return 0
	case Int32:
		return float64(v)
	case Int64:
		return float64(v)
	case Float32:
		return float64(v)
	case Float64:
		return float64(v)
	}
	return 0
}

// promote converts x and y to a common numeric type per the ladder, then
// invokes the matching arithmetic closure. Integer ranks (Int32/Int64) are
// computed with onInt directly in int64 arithmetic — never routed through
// float64, which would round mantissas beyond 2^53 and replace Int32's
// defined two's-complement wraparound with an out-of-range float64 cast.
// Truncating an int64 result to int32 below reproduces that wraparound
// exactly, since the sum/difference/product of two int32 operands always
// fits in int64 first.
func promote(x, y Value, onInt func(a, b int64) int64, onF32, onF64 func(a, b float64) float64) (Value, bool) {
	target := rank(x)
	if ry := rank(y); ry > target {
		target = ry
	}
	switch target {
	case 4:
		return Float64(onF64(asFloat64(x), asFloat64(y))), true
	case 3:
		return Float32(onF32(asFloat64(x), asFloat64(y))), true
	case 2:
		return Int64(onInt(asInt64(x), asInt64(y))), true
	case 1:
		return Int32(int32(onInt(asInt64(x), asInt64(y)))), true
	}
	return nil, false
}

// Binary evaluates x op y with numeric promotion (spec §4.3). It is the sole
// entry point binary expressions should call; it never inspects anything
// beyond the two operand values and the operator.
func Binary(op token.Kind, x, y Value) (Value, error) {
	switch op {
	case token.PLUS:
		if v, ok := numericBinary(x, y,
			func(a, b int64) int64 { return a + b },
			func(a, b float64) float64 { return a + b }); ok {
			return v, nil
		}
	case token.MINUS:
		if v, ok := numericBinary(x, y,
			func(a, b int64) int64 { return a - b },
			func(a, b float64) float64 { return a - b }); ok {
			return v, nil
		}
	case token.STAR:
		if v, ok := numericBinary(x, y,
			func(a, b int64) int64 { return a * b },
			func(a, b float64) float64 { return a * b }); ok {
			return v, nil
		}
	case token.SLASH:
		return divide(x, y)
	case token.EQEQ:
		eq, err := Equal(x, y)
		return Bool(eq), err
	case token.NEQ:
		eq, err := Equal(x, y)
		return Bool(!eq), err
	case token.LT, token.LE, token.GT, token.GE:
		return compareOrder(op, x, y)
	case token.ANDAND:
		bx, err := ToBool(x)
		if err != nil {
			return nil, err
		}
		by, err := ToBool(y)
		if err != nil {
			return nil, err
		}
		return Bool(bx && by), nil
	case token.OROR:
		bx, err := ToBool(x)
		if err != nil {
			return nil, err
		}
		by, err := ToBool(y)
		if err != nil {
			return nil, err
		}
		return Bool(bx || by), nil
	case token.PERCENT, token.AMP, token.PIPE, token.CARET, token.SHL, token.SHR:
		return integralBinary(op, x, y)
	}
	return nil, fmt.Errorf("undefined operator %s for operands (%s, %s)", op.GoString(), x.Type(), y.Type())
}

func numericBinary(x, y Value, onInt func(a, b int64) int64, onFloat func(a, b float64) float64) (Value, bool) {
	if !IsScalar(x) || !IsScalar(y) {
		return nil, false
	}
	return promote(x, y, onInt, onFloat, onFloat)
}

func divide(x, y Value) (Value, error) {
	if !IsScalar(x) || !IsScalar(y) {
		return nil, fmt.Errorf("undefined operator / for operands (%s, %s)", x.Type(), y.Type())
	}
	target := rank(x)
	if ry := rank(y); ry > target {
		target = ry
	}
	switch target {
	case 4:
		return Float64(asFloat64(x) / asFloat64(y)), nil
	case 3:
		return Float32(float32(asFloat64(x)) / float32(asFloat64(y))), nil
	case 2:
		d := asInt64(y)
		if d == 0 {
			return nil, fmt.Errorf("integer division by zero")
		}
		return Int64(asInt64(x) / d), nil
	default:
		d := asInt64(y)
		if d == 0 {
			return nil, fmt.Errorf("integer division by zero")
		}
		return Int32(int32(asInt64(x) / d)), nil
	}
}

func integralBinary(op token.Kind, x, y Value) (Value, error) {
	if !IsIntegral(x) || !IsIntegral(y) {
		return nil, fmt.Errorf("operator %s requires integral operands, got (%s, %s)", op.GoString(), x.Type(), y.Type())
	}
	is64 := rank(x) == 2 || rank(y) == 2
	a, b := asInt64(x), asInt64(y)
	var r int64
	switch op {
	case token.PERCENT:
		if b == 0 {
			return nil, fmt.Errorf("integer modulo by zero")
		}
		r = a % b
	case token.AMP:
		r = a & b
	case token.PIPE:
		r = a | b
	case token.CARET:
		r = a ^ b
	case token.SHL:
		r = a << uint(b)
	case token.SHR:
		r = a >> uint(b)
	}
	if is64 {
		return Int64(r), nil
	}
	return Int32(int32(r)), nil
}

func compareOrder(op token.Kind, x, y Value) (Value, error) {
	if !IsScalar(x) || !IsScalar(y) {
		return nil, fmt.Errorf("undefined operator %s for operands (%s, %s)", op.GoString(), x.Type(), y.Type())
	}
	target := rank(x)
	if ry := rank(y); ry > target {
		target = ry
	}
	var less, greater bool
	if target >= 3 {
		a, b := asFloat64(x), asFloat64(y)
		less, greater = a < b, a > b
	} else {
		a, b := asInt64(x), asInt64(y)
		less, greater = a < b, a > b
	}
	switch op {
	case token.LT:
		return Bool(less), nil
	case token.LE:
		return Bool(less || !greater), nil
	case token.GT:
		return Bool(greater), nil
	case token.GE:
		return Bool(greater || !less), nil
	}
	panic("unreachable")
}

// Equal implements spec §4.3 rule: numeric equality for scalar pairs,
// identity equality for Array/Struct pairs. Values of mismatched broad
// category (scalar vs. composite) simply compare unequal.
func Equal(x, y Value) (bool, error) {
	switch xv := x.(type) {
	case *Array:
		yv, ok := y.(*Array)
		return ok && xv == yv, nil
	case *Struct:
		yv, ok := y.(*Struct)
		return ok && xv == yv, nil
	}
	if !IsScalar(x) || !IsScalar(y) {
		return false, nil
	}
	target := rank(x)
	if ry := rank(y); ry > target {
		target = ry
	}
	if target >= 3 {
		return asFloat64(x) == asFloat64(y), nil
	}
	return asInt64(x) == asInt64(y), nil
}

// Unary evaluates op applied to v (spec §4.3 rule 4).
func Unary(op token.Kind, v Value) (Value, error) {
	switch op {
	case token.PLUS:
		if !IsScalar(v) {
			return nil, fmt.Errorf("undefined operator unary + for operand %s", v.Type())
		}
		return v, nil
	case token.MINUS:
		switch v := v.(type) {
		case Int32:
			return -v, nil
		case Int64:
			return -v, nil
		case Float32:
			return -v, nil
		case Float64:
			return -v, nil
		case Bool:
			if v {
				return Int32(-1), nil
			}
			return Int32(0), nil
		}
	case token.BANG:
		b, err := ToBool(v)
		if err != nil {
			return nil, err
		}
		return Bool(!b), nil
	case token.TILDE:
		if !IsIntegral(v) {
			return nil, fmt.Errorf("operator ~ requires an integral operand, got %s", v.Type())
		}
		if rank(v) == 2 {
			return Int64(^asInt64(v)), nil
		}
		return Int32(int32(^asInt64(v))), nil
	}
	return nil, fmt.Errorf("undefined operator unary %s for operand %s", op.GoString(), v.Type())
}
