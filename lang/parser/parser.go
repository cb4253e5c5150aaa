package parser

import (
	gotoken "go/token"
	"go/scanner"

	"github.com/Earthcomputer/decode-bin/lang/ast"
	"github.com/Earthcomputer/decode-bin/lang/token"
)

// Parse turns a tokenized decode-bin source file into a top-level block of
// statements. name is used only for error position reporting. The returned
// error, if non-nil, is a *scanner.Error wrapping the single offending
// token.
func Parse(name string, toks []token.Token) (program *ast.Block, err error) {
	p := newParser(name, toks)
	defer func() {
		if r := recover(); r != nil {
			if r != errParseAbort {
				panic(r)
			}
			err = &scanner.Error{
				Pos: gotoken.Position{Filename: p.name, Line: int(p.err.tok.Line), Column: int(p.err.tok.Col) + 1},
				Msg: p.err.msg,
			}
		}
	}()

	begin := p.cur()
	var stmts []ast.Stmt
	for !p.at(token.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	end := p.cur() // synthetic EOF token
	return &ast.Block{Stmts: stmts, Range: ast.NewRange(begin, end)}, nil
}
