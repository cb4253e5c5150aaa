package scanner

import "github.com/Earthcomputer/decode-bin/lang/token"

// scanQuoted consumes a string or char literal starting at i, bounded by
// quote. The closing quote is escaped when preceded by an odd count of
// consecutive backslashes (spec §4.1); an unterminated literal on the line
// is a tokenizer error, since this language accepts single-line
// quotations only.
func (s *Scanner) scanQuoted(runes []rune, i int, lineNo uint32, quote rune) (token.Kind, int) {
	n := len(runes)
	start := i
	i++ // skip opening quote
	for i < n {
		if runes[i] == quote {
			backslashes := 0
			for j := i - 1; j >= start+1 && runes[j] == '\\'; j-- {
				backslashes++
			}
			if backslashes%2 == 0 {
				i++ // include closing quote
				kind := token.STRING
				if quote == '\'' {
					kind = token.CHAR
				}
				return kind, i
			}
		}
		i++
	}

	s.error(lineNo, uint32(start), "unterminated string or char literal")
	kind := token.STRING
	if quote == '\'' {
		kind = token.CHAR
	}
	return kind, n
}
