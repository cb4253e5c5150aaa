package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Earthcomputer/decode-bin/lang/ast"
)

// parseNumericLiteral consumes the current INT or FLOAT token and evaluates
// it per spec §4.2: radix detection, optional fractional part and exponent,
// optional suffix, materializing one of the five numeric ast.LitKind
// values. Unlike the reference implementation's 64-bit accumulator, which
// silently stops accumulating on overflow and can lose precision on long
// fractions, digits are handed to the standard library's string-to-number
// routines (the preferred resolution of the open question in DESIGN.md).
func (p *parser) parseNumericLiteral() ast.Expr {
	tok := p.advance()
	kind, value, err := evalNumericLiteral(tok.Text)
	if err != nil {
		p.fail(tok, err.Error())
		panic("unreachable")
	}
	return &ast.Literal{Range: ast.NewRange(tok, tok), Kind: kind, Raw: tok.Text, Value: value}
}

// digitVal returns c's value as a digit (0-35 for '0'-'9','a'-'z','A'-'Z'),
// or a value >= 16 for anything else, so callers can test `digitVal(c) <
// radix` uniformly without a separate "is this even alphanumeric" check.
func digitVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 99
	}
}

// evalNumericLiteral implements the radix detection, integer/float split,
// and suffix rules of spec §4.2, mirroring the structure (if not the
// overflow-prone arithmetic) of original_source's literal_expression.
func evalNumericLiteral(text string) (ast.LitKind, any, error) {
	radix := 10
	digitsStart := 0
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			radix, digitsStart = 16, 2
		case 'b', 'B':
			radix, digitsStart = 2, 2
		default:
			radix, digitsStart = 8, 1
		}
	}

	intEnd := digitsStart
	for intEnd < len(text) && digitVal(text[intEnd]) < radix {
		intEnd++
	}

	if radix == 8 {
		// Octal is downgraded to decimal as soon as a fractional part or a
		// decimal exponent appears (spec §4.1/§4.2); re-scan the integer part
		// under radix 10.
		decEnd := 0
		for decEnd < len(text) && digitVal(text[decEnd]) < 10 {
			decEnd++
		}
		if decEnd < len(text) && (text[decEnd] == '.' || text[decEnd] == 'e' || text[decEnd] == 'E') {
			radix, digitsStart, intEnd = 10, 0, decEnd
		}
	}
	hasDot := intEnd < len(text) && text[intEnd] == '.'

	last := text[len(text)-1]
	isFloat := hasDot
	if radix == 10 {
		isFloat = isFloat || strings.ContainsAny(text, "eE")
	}
	if radix == 16 {
		isFloat = isFloat || strings.ContainsAny(text, "pP")
	}
	if radix != 16 && (last == 'f' || last == 'F' || last == 'd' || last == 'D') {
		isFloat = true
	}

	if !isFloat {
		return evalIntLiteral(text, radix, digitsStart, intEnd)
	}
	return evalFloatLiteral(text, radix, digitsStart, intEnd, hasDot)
}

// evalIntLiteral implements spec §4.2's integer rules: suffix l/L selects
// Int64 (a decimal value above math.MaxInt64 fails; a non-decimal value up
// to 2^64-1 wraps into the signed 64-bit range); otherwise the literal is
// Int32, failing if a decimal value exceeds 2^31-1, while non-decimal
// (hex/octal/binary) values up to 2^32-1 wrap into the signed 32-bit range
// by reinterpretation (so 0xFFFFFFFF is Int32(-1)).
func evalIntLiteral(text string, radix, digitsStart, intEnd int) (ast.LitKind, any, error) {
	end := len(text)
	suffixL := false
	if end > digitsStart {
		switch text[end-1] {
		case 'l', 'L':
			suffixL = true
			end--
		}
	}
	if intEnd != end {
		return 0, nil, fmt.Errorf("malformed numeric literal %q", text)
	}
	digits := text[digitsStart:intEnd]
	if digits == "" {
		return 0, nil, fmt.Errorf("malformed numeric literal %q", text)
	}
	mantissa, err := strconv.ParseUint(digits, radix, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("numeric literal %q is malformed or too large", text)
	}
	if suffixL {
		if radix == 10 && mantissa > uint64(math.MaxInt64) {
			return 0, nil, fmt.Errorf("integer literal %q overflows int64", text)
		}
		return ast.LitInt64, int64(mantissa), nil
	}
	if radix == 10 {
		if mantissa > uint64(math.MaxInt32) {
			return 0, nil, fmt.Errorf("integer literal %q overflows int32", text)
		}
	} else if mantissa > uint64(math.MaxUint32) {
		return 0, nil, fmt.Errorf("integer literal %q overflows int32", text)
	}
	return ast.LitInt32, int32(uint32(mantissa)), nil
}

// evalFloatLiteral implements spec §4.2's floating rules: fractional digits
// only for decimal/hex radixes, decimal exponent `e/E` or hex exponent
// `p/P`, optional `d/D` then optional `f/F` suffix (the latter selecting
// Float32 over the default Float64). The mantissa/fraction/exponent are
// reassembled into a literal strconv.ParseFloat understands directly
// (including Go's native hex-float syntax), rather than scaling a
// hand-accumulated mantissa by repeated multiplication/division.
func evalFloatLiteral(text string, radix, digitsStart, intEnd int, hasDot bool) (ast.LitKind, any, error) {
	if hasDot && radix != 10 && radix != 16 {
		return 0, nil, fmt.Errorf("malformed numeric literal %q", text)
	}

	idx := intEnd
	fracStart, fracEnd := idx, idx
	if hasDot {
		idx++ // consume '.'
		fracStart = idx
		for idx < len(text) && digitVal(text[idx]) < radix {
			idx++
		}
		fracEnd = idx
	}

	expStart, expEnd := idx, idx
	hasExp := idx < len(text) && ((radix == 10 && (text[idx] == 'e' || text[idx] == 'E')) ||
		(radix == 16 && (text[idx] == 'p' || text[idx] == 'P')))
	if hasExp {
		idx++
		if idx < len(text) && (text[idx] == '+' || text[idx] == '-') {
			idx++
		}
		expDigitsFrom := idx
		for idx < len(text) && text[idx] >= '0' && text[idx] <= '9' {
			idx++
		}
		if idx == expDigitsFrom {
			return 0, nil, fmt.Errorf("exponent has no digits")
		}
		expEnd = idx
	}

	isFloat32 := false
	if idx < len(text) && (text[idx] == 'd' || text[idx] == 'D') {
		idx++
	}
	if idx < len(text) && (text[idx] == 'f' || text[idx] == 'F') {
		isFloat32 = true
		idx++
	}
	if idx != len(text) {
		return 0, nil, fmt.Errorf("malformed numeric literal %q", text)
	}

	mantissa := text[digitsStart:intEnd]
	frac := ""
	if hasDot {
		frac = text[fracStart:fracEnd]
	}
	if mantissa == "" && frac == "" {
		return 0, nil, fmt.Errorf("malformed numeric literal %q", text)
	}

	var canon strings.Builder
	if radix == 16 {
		canon.WriteString("0x")
	}
	if mantissa == "" {
		canon.WriteByte('0')
	} else {
		canon.WriteString(mantissa)
	}
	if hasDot {
		canon.WriteByte('.')
		canon.WriteString(frac)
	}
	if radix == 16 {
		if hasExp {
			canon.WriteString(text[expStart:expEnd])
		} else {
			canon.WriteString("p0") // Go's hex-float syntax requires an exponent
		}
	} else if hasExp {
		canon.WriteString(text[expStart:expEnd])
	}

	f, err := strconv.ParseFloat(canon.String(), 64)
	if err != nil {
		return 0, nil, fmt.Errorf("malformed numeric literal %q", text)
	}
	if isFloat32 {
		return ast.LitFloat32, float32(f), nil
	}
	return ast.LitFloat64, f, nil
}
