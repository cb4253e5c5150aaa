package scanner

import "github.com/Earthcomputer/decode-bin/lang/token"

// scanNumber consumes a numeric literal starting at i (spec §4.1): radix is
// 0x/0X hex, 0b/0B binary, leading 0 octal (downgraded to decimal if a '.'
// or decimal exponent appears), otherwise decimal. It validates the two
// tokenizer-level malformed cases named by spec §4.1 (a 0x/0b prefix with no
// following digit, and an exponent marker not followed by digits), leaving
// numeric *value* evaluation (overflow, suffix selection) to the parser per
// spec §4.2.
func (s *Scanner) scanNumber(runes []rune, i int, lineNo uint32) (token.Kind, int) {
	n := len(runes)
	start := i
	radix := 10

	isHexDigit := func(c rune) bool {
		return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	}
	isBinDigit := func(c rune) bool { return c == '0' || c == '1' }

	switch {
	case runes[i] == '0' && i+1 < n && (runes[i+1] == 'x' || runes[i+1] == 'X'):
		radix = 16
		i += 2
		if i >= n || !isHexDigit(runes[i]) {
			s.error(lineNo, uint32(start), "malformed hex integer literal")
			return token.INT, i
		}
		for i < n && isHexDigit(runes[i]) {
			i++
		}

	case runes[i] == '0' && i+1 < n && (runes[i+1] == 'b' || runes[i+1] == 'B'):
		radix = 2
		i += 2
		if i >= n || !isBinDigit(runes[i]) {
			s.error(lineNo, uint32(start), "malformed binary integer literal")
			return token.INT, i
		}
		for i < n && isBinDigit(runes[i]) {
			i++
		}

	case runes[i] == '0' && i+1 < n && isDigit(runes[i+1]):
		radix = 8
		for i < n && isDigit(runes[i]) {
			i++
		}

	default:
		for i < n && isDigit(runes[i]) {
			i++
		}
	}

	isFloat := false

	// fractional part: only meaningful for decimal/octal-downgraded-to-decimal
	// and hexadecimal (hex floats use a 'p' exponent, spec §4.2).
	if radix != 2 && i < n && runes[i] == '.' {
		isFloat = true
		i++
		digitOK := isDigit
		if radix == 16 {
			digitOK = isHexDigit
		}
		for i < n && digitOK(runes[i]) {
			i++
		}
	}

	// exponent: 'e'/'E' for decimal, 'p'/'P' for hexadecimal.
	expChars := "eE"
	if radix == 16 {
		expChars = "pP"
	}
	if radix != 2 && i < n && containsRune(expChars, runes[i]) {
		isFloat = true
		expStart := i
		i++
		if i < n && (runes[i] == '+' || runes[i] == '-') {
			i++
		}
		if i >= n || !isDigit(runes[i]) {
			s.error(lineNo, uint32(expStart), "exponent has no digits")
			return token.FLOAT, i
		}
		for i < n && isDigit(runes[i]) {
			i++
		}
	}

	// suffix: f/F/d/D force float, l/L only meaningful for integers.
	if i < n {
		switch runes[i] {
		case 'f', 'F', 'd', 'D':
			isFloat = true
			i++
		case 'l', 'L':
			if !isFloat {
				i++
			}
		}
	}

	if isFloat {
		return token.FLOAT, i
	}
	return token.INT, i
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
