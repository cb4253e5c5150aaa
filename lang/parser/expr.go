package parser

import (
	"github.com/Earthcomputer/decode-bin/lang/ast"
	"github.com/Earthcomputer/decode-bin/lang/token"
)

// binaryLevels lists the operator set recognized at each of the ten binary
// precedence levels (spec §4.2), from lowest (index 0, ||) to highest
// (index 9, * / %). The reference parser recurses into the same level for
// the right operand at each of these levels, which makes them
// right-associative; this implementation left-associates instead (the
// preferred resolution of the open question in DESIGN.md).
var binaryLevels = [][]token.Kind{
	{token.OROR},
	{token.ANDAND},
	{token.PIPE},
	{token.CARET},
	{token.AMP},
	{token.EQEQ, token.NEQ},
	{token.LT, token.LE, token.GT, token.GE},
	{token.SHL, token.SHR},
	{token.PLUS, token.MINUS},
	{token.STAR, token.SLASH, token.PERCENT},
}

// parseExpr parses a full expression, starting at the lowest precedence
// level (level 1, ||).
func (p *parser) parseExpr() ast.Expr {
	return p.parseBinary(0)
}

// parseBinary implements grammar levels 1-10 by precedence climbing: level
// lvl parses its left operand one level higher, then folds in zero or more
// same-level operators left-associatively.
func (p *parser) parseBinary(lvl int) ast.Expr {
	if lvl >= len(binaryLevels) {
		return p.parseUnary()
	}
	left := p.parseBinary(lvl + 1)
	for p.atAny(binaryLevels[lvl]) {
		opTok := p.advance()
		right := p.parseBinary(lvl + 1)
		begin, _ := left.Span()
		_, end := right.Span()
		left = &ast.BinaryOp{
			Range: ast.NewRange(begin, end),
			Left:  left,
			Op:    opTok.Kind,
			OpTok: opTok,
			Right: right,
		}
	}
	return left
}

// atAny reports whether the current token's kind is one of ks.
func (p *parser) atAny(ks []token.Kind) bool {
	for _, k := range ks {
		if p.at(k) {
			return true
		}
	}
	return false
}

// parseUnary implements grammar level 11: prefix +, -, !, ~ (which recurse,
// so chains like !!x parse), and prefix ++/-- (which apply only to a bare
// identifier and do not chain, matching the reference grammar).
func (p *parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.PLUS, token.MINUS, token.BANG, token.TILDE:
		opTok := p.advance()
		operand := p.parseUnary()
		_, end := operand.Span()
		return &ast.UnaryOp{Range: ast.NewRange(opTok, end), Op: opTok.Kind, OpTok: opTok, Operand: operand}
	case token.INC, token.DEC:
		opTok := p.advance()
		nameTok := p.expect(token.IDENT)
		delta := int32(1)
		if opTok.Kind == token.DEC {
			delta = -1
		}
		return &ast.PreIncrement{Range: ast.NewRange(opTok, nameTok), Name: nameTok.Text, Delta: delta}
	}
	return p.parsePostfix()
}

// parsePostfix implements grammar level 12: a builtin call when a bare
// identifier is immediately followed by '(', post ++/-- on a bare
// identifier, and then field access / indexing chained over level 13.
func (p *parser) parsePostfix() ast.Expr {
	if p.at(token.IDENT) {
		nameTok := p.cur()
		if p.peekAt(1).Kind == token.INC || p.peekAt(1).Kind == token.DEC {
			p.advance() // name
			opTok := p.advance()
			delta := int32(1)
			if opTok.Kind == token.DEC {
				delta = -1
			}
			return &ast.PostIncrement{Range: ast.NewRange(nameTok, opTok), Name: nameTok.Text, Delta: delta}
		}
		if p.peekAt(1).Kind == token.LPAREN {
			return p.parseBuiltinCallExpr()
		}
	}

	e := p.parseParen()
	for {
		switch p.cur().Kind {
		case token.DOT:
			p.advance()
			fieldTok := p.expect(token.IDENT)
			begin, _ := e.Span()
			e = &ast.FieldAccess{Range: ast.NewRange(begin, fieldTok), Receiver: e, Name: fieldTok.Text}
		case token.LBRACK:
			p.advance()
			idx := p.parseExpr()
			endTok := p.expect(token.RBRACK)
			begin, _ := e.Span()
			e = &ast.IndexExpr{Range: ast.NewRange(begin, endTok), Receiver: e, Index: idx}
		default:
			return e
		}
	}
}

// parseBuiltinCallExpr parses `name(arg, arg, ...)` as an expression,
// invoked only when parsePostfix has already confirmed the identifier is
// immediately followed by '('.
func (p *parser) parseBuiltinCallExpr() ast.Expr {
	nameTok := p.advance()
	p.expect(token.LPAREN)
	var args []ast.Expr
	if !p.at(token.RPAREN) {
		for {
			args = append(args, p.parseExpr())
			if !p.at(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	endTok := p.expect(token.RPAREN)
	return &ast.BuiltinCallExpr{Range: ast.NewRange(nameTok, endTok), Name: nameTok.Text, Args: args}
}

// parseParen implements grammar level 13.
func (p *parser) parseParen() ast.Expr {
	if p.at(token.LPAREN) {
		begin := p.advance()
		inner := p.parseExpr()
		end := p.expect(token.RPAREN)
		return &ast.ParenExpr{Range: ast.NewRange(begin, end), Inner: inner}
	}
	return p.parsePrimary()
}

// parsePrimary implements grammar level 14: literals, true/false, and
// identifiers (optionally namespaced as ns::name).
func (p *parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.Literal{Range: ast.NewRange(tok, tok), Kind: ast.LitBool, Raw: tok.Text, Value: tok.Kind == token.TRUE}
	case token.INT, token.FLOAT:
		return p.parseNumericLiteral()
	case token.IDENT:
		return p.parseVarReference()
	}
	p.fail(tok, "unexpected "+tok.Kind.GoString()+" in expression")
	panic("unreachable")
}

// parseVarReference parses a variable reference, folding in one optional
// `::` namespace segment into a single "ns::name" Name (spec §4.2).
func (p *parser) parseVarReference() ast.Expr {
	nameTok := p.advance()
	name := nameTok.Text
	end := nameTok
	if p.at(token.COLONCOLON) {
		p.advance()
		segTok := p.expect(token.IDENT)
		name += "::" + segTok.Text
		end = segTok
	}
	return &ast.VarReference{Range: ast.NewRange(nameTok, end), Name: name}
}
