package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Earthcomputer/decode-bin/lang/scanner"
	"github.com/Earthcomputer/decode-bin/lang/source"
	"github.com/Earthcomputer/decode-bin/lang/token"
)

func tokenize(t *testing.T, text string) []token.Token {
	t.Helper()
	buf := source.NewBuffer("test.dbin", text)
	toks, err := scanner.Tokenize(buf)
	require.NoError(t, err)
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestTokenizeBasic(t *testing.T) {
	toks := tokenize(t, "var x = 3 + 4;")
	require.Equal(t, []token.Kind{
		token.VAR, token.IDENT, token.EQ, token.INT, token.PLUS, token.INT, token.SEMI, token.EOF,
	}, kinds(toks))

	require.Equal(t, "x", toks[1].Text)
	require.Equal(t, uint32(1), toks[1].Line)
	require.Equal(t, uint32(4), toks[1].Col)

	require.Equal(t, "3", toks[3].Text)
	require.Equal(t, "4", toks[5].Text)

	eof := toks[len(toks)-1]
	require.Equal(t, token.EOF, eof.Kind)
	require.Equal(t, "", eof.Text)
	require.Equal(t, uint32(1), eof.Line)
	require.Equal(t, uint32(14), eof.Col) // one past the trailing ';'
}

func TestTokenizeLineComment(t *testing.T) {
	toks := tokenize(t, "var x; // trailing comment\nvar y;")
	require.Equal(t, []token.Kind{
		token.VAR, token.IDENT, token.SEMI,
		token.VAR, token.IDENT, token.SEMI,
		token.EOF,
	}, kinds(toks))
	require.Equal(t, uint32(2), toks[3].Line) // second "var" is on line 2
}

func TestTokenizeBlockCommentSpansLines(t *testing.T) {
	toks := tokenize(t, "var x; /* this\nspans\nlines */ var y;")
	require.Equal(t, []token.Kind{
		token.VAR, token.IDENT, token.SEMI,
		token.VAR, token.IDENT, token.SEMI,
		token.EOF,
	}, kinds(toks))
	require.Equal(t, uint32(3), toks[3].Line)
}

func TestTokenizeUnterminatedBlockComment(t *testing.T) {
	buf := source.NewBuffer("test.dbin", "var x; /* never closed")
	_, err := scanner.Tokenize(buf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated block comment")
}

func TestTokenizeStringAndCharLiterals(t *testing.T) {
	toks := tokenize(t, `var s = "hello \"world\""; var c = 'x';`)
	require.Equal(t, []token.Kind{
		token.VAR, token.IDENT, token.EQ, token.STRING, token.SEMI,
		token.VAR, token.IDENT, token.EQ, token.CHAR, token.SEMI,
		token.EOF,
	}, kinds(toks))
	require.Equal(t, `"hello \"world\""`, toks[3].Text)
	require.Equal(t, `'x'`, toks[8].Text)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	buf := source.NewBuffer("test.dbin", `var s = "never closed;`)
	_, err := scanner.Tokenize(buf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated string or char literal")
}

func TestTokenizeIllegalCharacter(t *testing.T) {
	buf := source.NewBuffer("test.dbin", "var x = @;")
	_, err := scanner.Tokenize(buf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "illegal character")
}

func TestTokenizeNumberKinds(t *testing.T) {
	cases := []struct {
		text string
		kind token.Kind
	}{
		{"123", token.INT},
		{"0x7F", token.INT},
		{"0b101", token.INT},
		{"017", token.INT},
		{"2147483647l", token.INT},
		{"1.5", token.FLOAT},
		{"1.5e10", token.FLOAT},
		{"0x1p4", token.FLOAT},
		{"0.1f", token.FLOAT},
		{".5", token.FLOAT},
	}
	for _, c := range cases {
		toks := tokenize(t, c.text+";")
		require.Equal(t, c.kind, toks[0].Kind, "text=%q", c.text)
		require.Equal(t, c.text, toks[0].Text, "text=%q", c.text)
	}
}

func TestTokenizeMalformedHexLiteral(t *testing.T) {
	buf := source.NewBuffer("test.dbin", "var x = 0x;")
	_, err := scanner.Tokenize(buf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "malformed hex integer literal")
}

func TestTokenizeExponentNoDigits(t *testing.T) {
	buf := source.NewBuffer("test.dbin", "var x = 1.0e;")
	_, err := scanner.Tokenize(buf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "exponent has no digits")
}

func TestTokenizeNamespacedIdentifier(t *testing.T) {
	toks := tokenize(t, "std::little_endian;")
	require.Equal(t, []token.Kind{
		token.IDENT, token.COLONCOLON, token.IDENT, token.SEMI, token.EOF,
	}, kinds(toks))
	require.Equal(t, "std", toks[0].Text)
	require.Equal(t, "little_endian", toks[2].Text)
}

func TestTokenizeOperatorMaximalMunch(t *testing.T) {
	toks := tokenize(t, "a <<= b >>= c != d <= e >= f == g && h || i ++ j --;")
	require.Equal(t, []token.Kind{
		token.IDENT, token.SHLEQ,
		token.IDENT, token.SHREQ,
		token.IDENT, token.NEQ,
		token.IDENT, token.LE,
		token.IDENT, token.GE,
		token.IDENT, token.EQEQ,
		token.IDENT, token.ANDAND,
		token.IDENT, token.OROR,
		token.IDENT, token.INC,
		token.IDENT, token.DEC,
		token.SEMI, token.EOF,
	}, kinds(toks))
}

func TestTokenizeReconstructionRoundTrip(t *testing.T) {
	// Re-tokenizing the concatenation of token texts separated by single
	// spaces reproduces the same token sequence, modulo positions (spec §8).
	toks := tokenize(t, "var abc = 3 + foo.bar[1] * (baz << 2);")
	var sb []byte
	for i, tok := range toks {
		if tok.Kind == token.EOF {
			break
		}
		if i > 0 {
			sb = append(sb, ' ')
		}
		sb = append(sb, tok.Text...)
	}
	again := tokenize(t, string(sb))
	require.Equal(t, kinds(toks), kinds(again))
	for i := range toks {
		if toks[i].Kind == token.EOF {
			continue
		}
		require.Equal(t, toks[i].Text, again[i].Text)
	}
}
