package scanner

import "github.com/Earthcomputer/decode-bin/lang/token"

// operators lists every punctuation/operator spelling recognized by the
// tokenizer, longest first within each starting character so that maximal
// munch (spec §4.1) is a simple linear scan.
var operators = []struct {
	text string
	kind token.Kind
}{
	{"<<=", token.SHLEQ},
	{">>=", token.SHREQ},
	{"::", token.COLONCOLON},
	{"<<", token.SHL},
	{">>", token.SHR},
	{"+=", token.PLUSEQ},
	{"-=", token.MINUSEQ},
	{"*=", token.STAREQ},
	{"/=", token.SLASHEQ},
	{"%=", token.PERCENTEQ},
	{"&=", token.AMPEQ},
	{"|=", token.PIPEEQ},
	{"^=", token.CARETEQ},
	{"++", token.INC},
	{"--", token.DEC},
	{"&&", token.ANDAND},
	{"||", token.OROR},
	{"==", token.EQEQ},
	{"!=", token.NEQ},
	{"<=", token.LE},
	{">=", token.GE},
	{"+", token.PLUS},
	{"-", token.MINUS},
	{"*", token.STAR},
	{"/", token.SLASH},
	{"%", token.PERCENT},
	{"&", token.AMP},
	{"|", token.PIPE},
	{"^", token.CARET},
	{"~", token.TILDE},
	{"!", token.BANG},
	{"?", token.QUESTION},
	{":", token.COLON},
	{"(", token.LPAREN},
	{")", token.RPAREN},
	{"[", token.LBRACK},
	{"]", token.RBRACK},
	{"{", token.LBRACE},
	{"}", token.RBRACE},
	{",", token.COMMA},
	{";", token.SEMI},
	{".", token.DOT},
	{"<", token.LT},
	{">", token.GT},
	{"=", token.EQ},
}

// scanOperator matches the longest operator spelling starting at i. If no
// operator starts there, it reports an illegal character and consumes one
// rune so the scanner always makes progress.
func (s *Scanner) scanOperator(runes []rune, i int, lineNo uint32) (token.Kind, int) {
	rest := string(runes[i:])
	for _, op := range operators {
		if len(rest) >= len(op.text) && rest[:len(op.text)] == op.text {
			return op.kind, i + len(op.text)
		}
	}
	s.error(lineNo, uint32(i), "illegal character "+string(runes[i]))
	return token.ILLEGAL, i + 1
}
