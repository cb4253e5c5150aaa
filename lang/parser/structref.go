package parser

import (
	"github.com/Earthcomputer/decode-bin/lang/ast"
	"github.com/Earthcomputer/decode-bin/lang/token"
)

// parseStructRefStmt parses a struct-reference statement: a type reference,
// zero or more per-statement modifiers (currently only `hide`), then a
// comma-separated list of declarators (spec §4.2, §3).
func (p *parser) parseStructRefStmt() ast.Stmt {
	begin := p.cur()
	typeRef := p.parseStructTypeRef()

	modifiers := map[ast.ModifierKind]any{}
	for p.at(token.HIDE) {
		tok := p.advance()
		if _, dup := modifiers[ast.HideModifier]; dup {
			p.fail(tok, "duplicate modifier 'hide'")
		}
		modifiers[ast.HideModifier] = true
	}

	var decls []ast.Declarator
	for !p.at(token.SEMI) {
		decls = append(decls, p.parseDeclarator())
		if p.at(token.SEMI) {
			break
		}
		p.expect(token.COMMA)
	}
	end := p.expect(token.SEMI)
	return &ast.StructRef{Range: ast.NewRange(begin, end), Type: typeRef, Modifiers: modifiers, Declarators: decls}
}

// parseStructTypeRef parses a struct-type reference (spec §4.2): optional
// `array_value <id>` modifiers, then either one of
// struct/enum/flags/union/choose (a Declaring reference — enum/flags
// recursively parse an element-type reference first) or, absent both a
// keyword and a modifier, a bare name (a Resolving reference).
func (p *parser) parseStructTypeRef() ast.StructTypeRef {
	begin := p.cur()
	modifiers := map[ast.ModifierKind]any{}
	isDecl := false
	for p.at(token.ARRAY_VALUE) {
		isDecl = true
		tok := p.advance()
		if _, dup := modifiers[ast.ArrayValueModifier]; dup {
			p.fail(tok, "duplicate modifier 'array_value'")
		}
		idTok := p.expect(token.IDENT)
		modifiers[ast.ArrayValueModifier] = idTok.Text
	}

	var kind ast.StructKind
	switch p.cur().Kind {
	case token.STRUCT:
		p.advance()
		isDecl = true
		kind = ast.KindStruct
	case token.ENUM:
		p.advance()
		isDecl = true
		kind = ast.KindEnum
		modifiers[ast.ElementTypeModifier] = p.parseStructTypeRef()
	case token.FLAGS:
		p.advance()
		isDecl = true
		kind = ast.KindFlags
		modifiers[ast.ElementTypeModifier] = p.parseStructTypeRef()
	case token.UNION:
		p.advance()
		isDecl = true
		kind = ast.KindUnion
	case token.CHOOSE:
		p.advance()
		isDecl = true
		kind = ast.KindChoose
	default:
		if isDecl {
			p.fail(p.cur(), "expected struct, enum, flags, union or choose, found "+p.cur().Kind.GoString())
		}
	}

	if !isDecl {
		nameTok := p.expect(token.IDENT)
		return &ast.ResolvingRef{Range: ast.NewRange(nameTok, nameTok), Name: nameTok.Text}
	}

	body := &ast.StructBody{Kind: kind, Modifiers: modifiers}
	if !p.at(token.LBRACE) {
		nameTok := p.expect(token.IDENT)
		body.Name = nameTok.Text
		body.NameTok = nameTok
	}
	bodyBegin := p.expect(token.LBRACE)
	var stmts []ast.Stmt
	for !p.at(token.RBRACE) {
		stmts = append(stmts, p.parseStmt())
	}
	bodyEnd := p.expect(token.RBRACE)
	body.Range = ast.NewRange(bodyBegin, bodyEnd)
	body.Stmts = stmts

	return &ast.DeclaringRef{Range: ast.NewRange(begin, bodyEnd), Body: body}
}
