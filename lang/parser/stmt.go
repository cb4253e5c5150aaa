package parser

import (
	"github.com/Earthcomputer/decode-bin/lang/ast"
	"github.com/Earthcomputer/decode-bin/lang/token"
)

// parseStmt implements statement selection (spec §4.2): dispatch by the
// first-token keyword; otherwise peek the second token to tell an
// assignment, an increment, a builtin call and a struct-reference apart.
func (p *parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.SWITCH:
		return p.parseSwitch()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.SEMI:
		return p.parseEmpty()
	case token.VAR:
		return p.parseVarDecl()
	case token.INC, token.DEC:
		return p.parseIncrementStmt()
	}

	second := p.peekAt(1)
	switch {
	case second.Kind == token.EQ || second.Kind.IsAssignOp():
		return p.parseAssignment()
	case second.Kind == token.INC || second.Kind == token.DEC:
		return p.parseIncrementStmt()
	case second.Kind == token.LPAREN:
		return p.parseBuiltinCallStmt()
	}
	return p.parseStructRefStmt()
}

// wrapBlock wraps a bare statement body (an if/while/do-while whose body
// wasn't written as a `{ ... }` block) in a synthetic single-statement
// Block carrying the same source range, so every control-flow node's
// branches are uniformly *ast.Block.
func wrapBlock(s ast.Stmt) *ast.Block {
	if b, ok := s.(*ast.Block); ok {
		return b
	}
	begin, end := s.Span()
	return &ast.Block{Range: ast.NewRange(begin, end), Stmts: []ast.Stmt{s}}
}

func (p *parser) parseBlock() *ast.Block {
	begin := p.expect(token.LBRACE)
	var stmts []ast.Stmt
	for !p.at(token.RBRACE) {
		stmts = append(stmts, p.parseStmt())
	}
	end := p.expect(token.RBRACE)
	return &ast.Block{Range: ast.NewRange(begin, end), Stmts: stmts}
}

func (p *parser) parseIf() ast.Stmt {
	begin := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	then := wrapBlock(p.parseStmt())
	_, end := then.Span()

	var elseStmt ast.Stmt
	if _, ok := p.accept(token.ELSE); ok {
		es := p.parseStmt()
		if _, isIf := es.(*ast.If); isIf {
			elseStmt = es
		} else {
			elseStmt = wrapBlock(es)
		}
		_, end = elseStmt.Span()
	}
	return &ast.If{Range: ast.NewRange(begin, end), Cond: cond, Then: then, Else: elseStmt}
}

func (p *parser) parseWhile() ast.Stmt {
	begin := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	body := wrapBlock(p.parseStmt())
	_, end := body.Span()
	return &ast.While{Range: ast.NewRange(begin, end), Cond: cond, Body: body}
}

func (p *parser) parseDoWhile() ast.Stmt {
	begin := p.expect(token.DO)
	body := wrapBlock(p.parseStmt())
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	end := p.expect(token.SEMI)
	return &ast.DoWhile{Range: ast.NewRange(begin, end), Body: body, Cond: cond}
}

func (p *parser) parseSwitch() ast.Stmt {
	begin := p.expect(token.SWITCH)
	p.expect(token.LPAREN)
	scrutinee := p.parseExpr()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)

	var body []ast.Stmt
	var cases []ast.CaseClause
	defaultIndex := -1
	for !p.at(token.RBRACE) {
		switch p.cur().Kind {
		case token.CASE:
			p.advance()
			val := p.parseExpr()
			p.expect(token.COLON)
			cases = append(cases, ast.CaseClause{Value: val, BodyIndex: len(body)})
		case token.DEFAULT:
			tok := p.advance()
			if defaultIndex >= 0 {
				p.fail(tok, "duplicate default case")
			}
			p.expect(token.COLON)
			defaultIndex = len(body)
		default:
			body = append(body, p.parseStmt())
		}
	}
	end := p.expect(token.RBRACE)
	if defaultIndex < 0 {
		defaultIndex = len(body)
	}
	return &ast.Switch{Range: ast.NewRange(begin, end), Value: scrutinee, Body: body, Cases: cases, DefaultIndex: defaultIndex}
}

func (p *parser) parseBreak() ast.Stmt {
	begin := p.expect(token.BREAK)
	end := p.expect(token.SEMI)
	return &ast.Break{Range: ast.NewRange(begin, end)}
}

func (p *parser) parseContinue() ast.Stmt {
	begin := p.expect(token.CONTINUE)
	end := p.expect(token.SEMI)
	return &ast.Continue{Range: ast.NewRange(begin, end)}
}

func (p *parser) parseEmpty() ast.Stmt {
	tok := p.expect(token.SEMI)
	return &ast.Empty{Range: ast.NewRange(tok, tok)}
}

func (p *parser) parseVarDecl() ast.Stmt {
	begin := p.expect(token.VAR)
	var items []ast.VarDeclItem
	for {
		decl := p.parseDeclarator()
		var init ast.Expr
		if len(decl.Dimensions) == 0 {
			if _, ok := p.accept(token.EQ); ok {
				init = p.parseExpr()
			}
		}
		items = append(items, ast.VarDeclItem{Declarator: decl, Init: init})
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	end := p.expect(token.SEMI)
	return &ast.VarDecl{Range: ast.NewRange(begin, end), Items: items}
}

// parseDeclarator parses a name followed by zero or more `[expr]` dimension
// subscripts (spec §3).
func (p *parser) parseDeclarator() ast.Declarator {
	nameTok := p.expect(token.IDENT)
	d := ast.Declarator{Name: nameTok.Text, NameTok: nameTok}
	for p.at(token.LBRACK) {
		p.advance()
		dim := p.parseExpr()
		p.expect(token.RBRACK)
		d.Dimensions = append(d.Dimensions, dim)
	}
	return d
}

func (p *parser) parseAssignment() ast.Stmt {
	nameTok := p.expect(token.IDENT)
	opTok := p.advance()
	rhs := p.parseExpr()
	end := p.expect(token.SEMI)
	return &ast.Assignment{
		Range:    ast.NewRange(nameTok, end),
		Name:     nameTok.Text,
		NameTok:  nameTok,
		Op:       opTok.Kind,
		Rhs:      rhs,
		Compound: opTok.Kind != token.EQ,
	}
}

// parseIncrementStmt desugars `++x;`/`x++;`/`--x;`/`x--;` into `x = x + 1;`
// / `x = x - 1;` (spec §4.2), matching original_source's var_incr_statement.
func (p *parser) parseIncrementStmt() ast.Stmt {
	var begin, nameTok, opTok token.Token
	if p.at(token.INC) || p.at(token.DEC) {
		opTok = p.advance()
		nameTok = p.expect(token.IDENT)
		begin = opTok
	} else {
		nameTok = p.expect(token.IDENT)
		opTok = p.advance()
		begin = nameTok
	}
	delta := token.PLUS
	if opTok.Kind == token.DEC {
		delta = token.MINUS
	}
	end := p.expect(token.SEMI)

	oneLit := &ast.Literal{Range: ast.NewRange(begin, end), Kind: ast.LitInt32, Raw: "1", Value: int32(1)}
	varRef := &ast.VarReference{Range: ast.NewRange(begin, end), Name: nameTok.Text}
	rhs := &ast.BinaryOp{Range: ast.NewRange(begin, end), Left: varRef, Op: delta, OpTok: opTok, Right: oneLit}
	return &ast.Assignment{Range: ast.NewRange(begin, end), Name: nameTok.Text, NameTok: nameTok, Op: token.EQ, Rhs: rhs, Compound: false}
}

func (p *parser) parseBuiltinCallStmt() ast.Stmt {
	nameTok := p.expect(token.IDENT)
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
	p.expect(token.RPAREN)
	end := p.expect(token.SEMI)
	return &ast.BuiltinCallStmt{Range: ast.NewRange(nameTok, end), Name: nameTok.Text, Args: args}
}
