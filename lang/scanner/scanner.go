// Package scanner tokenizes decode-bin source text. It is a per-character
// state machine carrying its state across line boundaries, the way
// lang/scanner/scanner.go in the teacher's own tree is built, adapted to the
// decode-bin token set and to the line-oriented tokenizer design of spec
// §4.1.
package scanner

import (
	gotoken "go/token"

	"github.com/Earthcomputer/decode-bin/lang/source"
	"github.com/Earthcomputer/decode-bin/lang/token"
)

// Scanner tokenizes a Buffer into a slice of Tokens. It proceeds
// left-to-right across each line, carrying block-comment state across line
// boundaries (spec §4.1: "state is carried across line boundaries so block
// comments can span lines").
type Scanner struct {
	buf *source.Buffer
	err func(line, col uint32, msg string)

	// block comment state, carried across lines
	inBlockComment bool
	blockStartLine uint32
	blockStartCol  uint32
}

// New creates a Scanner over buf. err is invoked for every tokenizer error
// encountered, and scanning continues afterwards so the caller can decide
// whether to abort: an illegal character is emitted as an ILLEGAL token, a
// malformed or unterminated literal keeps its literal kind, and an unclosed
// block comment emits no token.
func New(buf *source.Buffer, err func(line, col uint32, msg string)) *Scanner {
	return &Scanner{buf: buf, err: err}
}

// Tokenize scans every line of buf and returns the resulting token slice,
// terminated by a synthetic EOF token positioned one column past the last
// real token (spec §3: end-of-stream is a synthetic token one column past
// the last real one).
func Tokenize(buf *source.Buffer) ([]token.Token, error) {
	var errs token.ErrorList
	s := New(buf, func(line, col uint32, msg string) {
		errs.Add(gotoken.Position{Filename: buf.Name, Line: int(line), Column: int(col) + 1}, msg)
	})

	var toks []token.Token
	for lineNo := 1; lineNo <= len(buf.Lines); lineNo++ {
		toks = append(toks, s.scanLine(uint32(lineNo))...)
	}
	if s.inBlockComment {
		errs.Add(gotoken.Position{Filename: buf.Name, Line: int(s.blockStartLine), Column: int(s.blockStartCol) + 1}, "unterminated block comment")
	}

	lastLine, lastCol := uint32(1), uint32(0)
	if n := len(buf.Lines); n > 0 {
		lastLine = uint32(n)
		lastCol = uint32(len([]rune(buf.Lines[n-1])))
	}
	if n := len(toks); n > 0 {
		last := toks[n-1]
		lastLine, lastCol = last.Line, last.EndCol()
	}
	toks = append(toks, token.Token{Kind: token.EOF, Text: "", Line: lastLine, Col: lastCol})

	errs.Sort()
	return toks, errs.Err()
}

func (s *Scanner) scanLine(lineNo uint32) []token.Token {
	runes := []rune(s.buf.Line(lineNo))
	n := len(runes)
	var toks []token.Token

	i := 0
	if s.inBlockComment {
		i = s.continueBlockComment(runes, 0)
		if s.inBlockComment {
			return toks // whole line swallowed by the comment
		}
	}

	for i < n {
		c := runes[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case isWordStart(c):
			start := i
			for i < n && isWordChar(runes[i]) {
				i++
			}
			lit := string(runes[start:i])
			toks = append(toks, token.Token{Kind: token.LookupIdent(lit), Text: lit, Line: lineNo, Col: uint32(start)})

		case isDigit(c) || (c == '.' && i+1 < n && isDigit(runes[i+1])):
			start := i
			kind, end := s.scanNumber(runes, i, lineNo)
			toks = append(toks, token.Token{Kind: kind, Text: string(runes[start:end]), Line: lineNo, Col: uint32(start)})
			i = end

		case c == '\'' || c == '"':
			start := i
			kind, end := s.scanQuoted(runes, i, lineNo, c)
			toks = append(toks, token.Token{Kind: kind, Text: string(runes[start:end]), Line: lineNo, Col: uint32(start)})
			i = end

		case c == '/' && i+1 < n && runes[i+1] == '/':
			i = n // line comment consumes the rest of the line

		case c == '/' && i+1 < n && runes[i+1] == '*':
			s.inBlockComment = true
			s.blockStartLine = lineNo
			s.blockStartCol = uint32(i)
			i = s.continueBlockComment(runes, i+2)
			if s.inBlockComment {
				return toks
			}

		default:
			start := i
			kind, end := s.scanOperator(runes, i, lineNo)
			toks = append(toks, token.Token{Kind: kind, Text: string(runes[start:end]), Line: lineNo, Col: uint32(start)})
			i = end
		}
	}
	return toks
}

// continueBlockComment scans runes starting at from looking for the closing
// "*/"; if found, clears s.inBlockComment and returns the index just past
// it, otherwise consumes the rest of the line and returns len(runes).
func (s *Scanner) continueBlockComment(runes []rune, from int) int {
	n := len(runes)
	for i := from; i < n; i++ {
		if runes[i] == '*' && i+1 < n && runes[i+1] == '/' {
			s.inBlockComment = false
			return i + 2
		}
	}
	return n
}

func (s *Scanner) error(line, col uint32, msg string) {
	if s.err != nil {
		s.err(line, col, msg)
	}
}

func isWordStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordChar(c rune) bool {
	return isWordStart(c) || isDigit(c)
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }
