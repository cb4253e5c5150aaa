package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Earthcomputer/decode-bin/lang/ast"
	"github.com/Earthcomputer/decode-bin/lang/parser"
	"github.com/Earthcomputer/decode-bin/lang/scanner"
	"github.com/Earthcomputer/decode-bin/lang/source"
	"github.com/Earthcomputer/decode-bin/lang/token"
)

func mustParse(t *testing.T, src string) *ast.Block {
	t.Helper()
	buf := source.NewBuffer("test.dbin", src)
	toks, err := scanner.Tokenize(buf)
	require.NoError(t, err)
	prog, err := parser.Parse("test.dbin", toks)
	require.NoError(t, err)
	return prog
}

func mustFailParse(t *testing.T, src string) error {
	t.Helper()
	buf := source.NewBuffer("test.dbin", src)
	toks, err := scanner.Tokenize(buf)
	require.NoError(t, err)
	_, err = parser.Parse("test.dbin", toks)
	require.Error(t, err)
	return err
}

func TestParseVarDeclWithMultipleDeclarators(t *testing.T) {
	prog := mustParse(t, `var a = 1, b, c = 2;`)
	require.Len(t, prog.Stmts, 1)
	vd := prog.Stmts[0].(*ast.VarDecl)
	require.Len(t, vd.Items, 3)
	require.Equal(t, "a", vd.Items[0].Declarator.Name)
	require.NotNil(t, vd.Items[0].Init)
	require.Equal(t, "b", vd.Items[1].Declarator.Name)
	require.Nil(t, vd.Items[1].Init)
	require.Equal(t, "c", vd.Items[2].Declarator.Name)
	require.NotNil(t, vd.Items[2].Init)
}

func TestParseLeftAssociativeBinaryOps(t *testing.T) {
	// Adopted resolution of the open question in DESIGN.md: left-associative
	// parsing, so "a - b - c" groups as (a - b) - c.
	prog := mustParse(t, `var x = a - b - c;`)
	vd := prog.Stmts[0].(*ast.VarDecl)
	top := vd.Items[0].Init.(*ast.BinaryOp)
	require.Equal(t, token.MINUS, top.Op)
	right := top.Right.(*ast.VarReference)
	require.Equal(t, "c", right.Name)
	left := top.Left.(*ast.BinaryOp)
	require.Equal(t, token.MINUS, left.Op)
	require.Equal(t, "a", left.Left.(*ast.VarReference).Name)
	require.Equal(t, "b", left.Right.(*ast.VarReference).Name)
}

func TestParseOperatorPrecedence(t *testing.T) {
	// "a + b * c" must parse as a + (b * c), not (a + b) * c.
	prog := mustParse(t, `var x = a + b * c;`)
	vd := prog.Stmts[0].(*ast.VarDecl)
	top := vd.Items[0].Init.(*ast.BinaryOp)
	require.Equal(t, token.PLUS, top.Op)
	require.Equal(t, "a", top.Left.(*ast.VarReference).Name)
	mul := top.Right.(*ast.BinaryOp)
	require.Equal(t, token.STAR, mul.Op)
}

func TestParseUnaryChaining(t *testing.T) {
	prog := mustParse(t, `var x = !!a;`)
	vd := prog.Stmts[0].(*ast.VarDecl)
	outer := vd.Items[0].Init.(*ast.UnaryOp)
	require.Equal(t, token.BANG, outer.Op)
	inner := outer.Operand.(*ast.UnaryOp)
	require.Equal(t, token.BANG, inner.Op)
}

func TestParsePostfixChainFieldAndIndex(t *testing.T) {
	prog := mustParse(t, `var x = a.b[0].c;`)
	vd := prog.Stmts[0].(*ast.VarDecl)
	fa := vd.Items[0].Init.(*ast.FieldAccess)
	require.Equal(t, "c", fa.Name)
	idx := fa.Receiver.(*ast.IndexExpr)
	inner := idx.Receiver.(*ast.FieldAccess)
	require.Equal(t, "b", inner.Name)
}

func TestParsePreAndPostIncrementExpressions(t *testing.T) {
	prog := mustParse(t, `var x = ++a; var y = a++;`)
	vd1 := prog.Stmts[0].(*ast.VarDecl)
	pre := vd1.Items[0].Init.(*ast.PreIncrement)
	require.Equal(t, "a", pre.Name)
	require.Equal(t, int32(1), pre.Delta)

	vd2 := prog.Stmts[1].(*ast.VarDecl)
	post := vd2.Items[0].Init.(*ast.PostIncrement)
	require.Equal(t, "a", post.Name)
	require.Equal(t, int32(1), post.Delta)
}

func TestParseIncrementStatementDesugarsToAssignment(t *testing.T) {
	prog := mustParse(t, `a++; --b;`)
	require.Len(t, prog.Stmts, 2)

	assign1 := prog.Stmts[0].(*ast.Assignment)
	require.Equal(t, "a", assign1.Name)
	require.False(t, assign1.Compound)
	rhs1 := assign1.Rhs.(*ast.BinaryOp)
	require.Equal(t, token.PLUS, rhs1.Op)

	assign2 := prog.Stmts[1].(*ast.Assignment)
	require.Equal(t, "b", assign2.Name)
	rhs2 := assign2.Rhs.(*ast.BinaryOp)
	require.Equal(t, token.MINUS, rhs2.Op)
}

func TestParseNamespacedIdentifier(t *testing.T) {
	prog := mustParse(t, `var x = std::little_endian;`)
	vd := prog.Stmts[0].(*ast.VarDecl)
	ref := vd.Items[0].Init.(*ast.VarReference)
	require.Equal(t, "std::little_endian", ref.Name)
}

func TestParseBuiltinCallStatementAndExpr(t *testing.T) {
	prog := mustParse(t, `foo(1, 2); var x = bar(3);`)
	call := prog.Stmts[0].(*ast.BuiltinCallStmt)
	require.Equal(t, "foo", call.Name)
	require.Len(t, call.Args, 2)

	vd := prog.Stmts[1].(*ast.VarDecl)
	callExpr := vd.Items[0].Init.(*ast.BuiltinCallExpr)
	require.Equal(t, "bar", callExpr.Name)
	require.Len(t, callExpr.Args, 1)
}

func TestParseIfElseIfChain(t *testing.T) {
	prog := mustParse(t, `if (a) { } else if (b) { } else { }`)
	outer := prog.Stmts[0].(*ast.If)
	require.NotNil(t, outer.Then)
	elseIf, ok := outer.Else.(*ast.If)
	require.True(t, ok)
	require.NotNil(t, elseIf.Else)
	_, ok = elseIf.Else.(*ast.Block)
	require.True(t, ok)
}

func TestParseBareStatementBodyWrappedInBlock(t *testing.T) {
	prog := mustParse(t, `while (a) b = 1;`)
	w := prog.Stmts[0].(*ast.While)
	require.Len(t, w.Body.Stmts, 1)
	_, ok := w.Body.Stmts[0].(*ast.Assignment)
	require.True(t, ok)
}

func TestParseSwitchCasesAndDefaultIndex(t *testing.T) {
	prog := mustParse(t, `switch (x) { case 1: a = 1; break; default: a = 2; case 3: a = 3; }`)
	sw := prog.Stmts[0].(*ast.Switch)
	require.Len(t, sw.Cases, 2)
	require.Equal(t, 0, sw.Cases[0].BodyIndex)
	require.Equal(t, 3, sw.Cases[1].BodyIndex)
	require.Equal(t, 2, sw.DefaultIndex)
	require.Len(t, sw.Body, 4)
}

func TestParseSwitchNoDefaultIndexIsOnePastEnd(t *testing.T) {
	prog := mustParse(t, `switch (x) { case 1: a = 1; }`)
	sw := prog.Stmts[0].(*ast.Switch)
	require.Equal(t, len(sw.Body), sw.DefaultIndex)
}

func TestParseStructRefDeclaringAndResolving(t *testing.T) {
	prog := mustParse(t, `struct Point { } a; Point b;`)
	ref1 := prog.Stmts[0].(*ast.StructRef)
	decl, ok := ref1.Type.(*ast.DeclaringRef)
	require.True(t, ok)
	require.Equal(t, "Point", decl.Body.Name)
	require.Equal(t, ast.KindStruct, decl.Body.Kind)

	ref2 := prog.Stmts[1].(*ast.StructRef)
	resolving, ok := ref2.Type.(*ast.ResolvingRef)
	require.True(t, ok)
	require.Equal(t, "Point", resolving.Name)
}

func TestParseEnumElementType(t *testing.T) {
	prog := mustParse(t, `enum int32 Color { } c;`)
	ref := prog.Stmts[0].(*ast.StructRef)
	decl := ref.Type.(*ast.DeclaringRef)
	require.Equal(t, ast.KindEnum, decl.Body.Kind)
	elemRef, ok := decl.Body.Modifiers[ast.ElementTypeModifier].(ast.StructTypeRef)
	require.True(t, ok)
	resolving, ok := elemRef.(*ast.ResolvingRef)
	require.True(t, ok)
	require.Equal(t, "int32", resolving.Name)
}

func TestParseStructRefWithDimensions(t *testing.T) {
	prog := mustParse(t, `struct Point { } points[3];`)
	ref := prog.Stmts[0].(*ast.StructRef)
	require.Len(t, ref.Declarators, 1)
	require.Len(t, ref.Declarators[0].Dimensions, 1)
}

func TestParseHideModifier(t *testing.T) {
	prog := mustParse(t, `struct S { } hide s;`)
	ref := prog.Stmts[0].(*ast.StructRef)
	_, ok := ref.Modifiers[ast.HideModifier]
	require.True(t, ok)
}

func TestParseArrayValueModifier(t *testing.T) {
	prog := mustParse(t, `array_value items struct { } a;`)
	ref := prog.Stmts[0].(*ast.StructRef)
	decl := ref.Type.(*ast.DeclaringRef)
	require.Equal(t, "items", decl.Body.Modifiers[ast.ArrayValueModifier])
}

func TestParseErrorUnexpectedToken(t *testing.T) {
	err := mustFailParse(t, `var x = ;`)
	require.Contains(t, err.Error(), "unexpected")
}

func TestParseErrorDuplicateDefaultCase(t *testing.T) {
	err := mustFailParse(t, `switch (x) { default: a = 1; default: a = 2; }`)
	require.Contains(t, err.Error(), "duplicate default")
}

func TestParseErrorDuplicateHideModifier(t *testing.T) {
	err := mustFailParse(t, `struct S { } hide hide s;`)
	require.Contains(t, err.Error(), "duplicate modifier")
}

func TestParseErrorMissingSemicolon(t *testing.T) {
	err := mustFailParse(t, `var x = 1`)
	require.Contains(t, err.Error(), "expected ';'")
}

func TestSpanCoversWholeProgram(t *testing.T) {
	prog := mustParse(t, "var a = 1;\nvar b = 2;")
	begin, end := prog.Span()
	require.Equal(t, uint32(1), begin.Line)
	require.Equal(t, uint32(0), begin.Col)
	require.Equal(t, uint32(2), end.Line)
}
