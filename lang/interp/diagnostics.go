package interp

import (
	"fmt"
	"strings"

	"github.com/Earthcomputer/decode-bin/lang/ast"
	"github.com/Earthcomputer/decode-bin/lang/source"
)

// Diagnostic is what Run returns in place of a struct value on failure: the
// underlying error plus the statement and expression stacks pinned at the
// point it occurred (spec §4.7 — "errors are caught at the top-level
// execute" — and §6's rendering format).
type Diagnostic struct {
	Err                   error
	ExecutingStatements   []ast.Stmt
	EvaluatingExpressions []ast.Expr
}

func (c *Context) newDiagnostic(err error) *Diagnostic {
	return &Diagnostic{
		Err:                   err,
		ExecutingStatements:   append([]ast.Stmt(nil), c.executingStatements...),
		EvaluatingExpressions: append([]ast.Expr(nil), c.evaluatingExpressions...),
	}
}

func (d *Diagnostic) Error() string { return d.Err.Error() }

// Render formats the diagnostic against buf per spec §6: the source range of
// the deepest node being evaluated (or, failing that, executed) when the
// error occurred, with a caret underline, followed by one
// "  at <file>:<line>:<col>" header per enclosing statement, innermost
// first, so the caller can see the whole call-like chain of struct/loop
// bodies the failure unwound through.
func (d *Diagnostic) Render(buf *source.Buffer) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", d.Err.Error())

	switch {
	case len(d.EvaluatingExpressions) > 0:
		begin, end := d.EvaluatingExpressions[len(d.EvaluatingExpressions)-1].Span()
		sb.WriteString(buf.Range(begin, end))
	case len(d.ExecutingStatements) > 0:
		begin, end := d.ExecutingStatements[len(d.ExecutingStatements)-1].Span()
		sb.WriteString(buf.Range(begin, end))
	}

	for i := len(d.ExecutingStatements) - 1; i >= 0; i-- {
		begin, _ := d.ExecutingStatements[i].Span()
		fmt.Fprintf(&sb, "  at %s:%d:%d\n", buf.Name, begin.Line, begin.Col+1)
	}
	return sb.String()
}
