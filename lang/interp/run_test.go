package interp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Earthcomputer/decode-bin/lang/ast"
	"github.com/Earthcomputer/decode-bin/lang/parser"
	"github.com/Earthcomputer/decode-bin/lang/scanner"
	"github.com/Earthcomputer/decode-bin/lang/source"
	"github.com/Earthcomputer/decode-bin/lang/values"
)

// parseProgram tokenizes and parses src, failing the test on any front-end
// error. White-box tests in this package run the resulting statements
// directly against a Context so they can inspect frame-local state that
// Run's public API (the root struct and a Diagnostic) doesn't expose.
func parseProgram(t *testing.T, src string) *ast.Block {
	t.Helper()
	buf := source.NewBuffer("test.dbin", src)
	toks, err := scanner.Tokenize(buf)
	require.NoError(t, err)
	prog, err := parser.Parse("test.dbin", toks)
	require.NoError(t, err)
	return prog
}

func execProgram(t *testing.T, ctx *Context, prog *ast.Block) error {
	t.Helper()
	for _, stmt := range prog.Stmts {
		if err := ctx.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Scenario 1 (spec §8): a block-scoped shadow of "a" does not leak out, and
// mutating "b" inside the block is visible afterwards since "b" itself was
// declared outside it.
func TestScenarioBlockScopingAndShadowing(t *testing.T) {
	prog := parseProgram(t, `var a = 3; var b = a + 2; { var a = 7; b = b + a; }`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	require.Len(t, ctx.frames, 1, "the block's frame must be popped on exit")

	a, ok := ctx.frames[0].vars.Get("a")
	require.True(t, ok)
	require.Equal(t, values.Int32(3), a)

	b, ok := ctx.frames[0].vars.Get("b")
	require.True(t, ok)
	require.Equal(t, values.Int32(12), b)
}

// Scenario 2 (spec §8): a while loop counts up to 4.
func TestScenarioWhileLoop(t *testing.T) {
	prog := parseProgram(t, `var i = 0; while (i < 4) { i = i + 1; }`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	i, ok := ctx.frames[0].vars.Get("i")
	require.True(t, ok)
	require.Equal(t, values.Int32(4), i)
}

// Scenario 3 (spec §8): switch without a break falls through to the next
// case's statements.
func TestScenarioSwitchFallthrough(t *testing.T) {
	prog := parseProgram(t, `var n = 0; switch (2) { case 1: n = 10; break; case 2: n = 20; case 3: n = 30; }`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	n, ok := ctx.frames[0].vars.Get("n")
	require.True(t, ok)
	require.Equal(t, values.Int32(30), n)
}

// Scenario 4 (spec §8): 1.5 is a Float64 literal, so multiplying it by the
// Int32 literal 2 promotes 2 to Float64 and yields Float64(3.0), per spec
// §4.3 rule 3's ladder.
func TestScenarioNumericPromotion(t *testing.T) {
	prog := parseProgram(t, `var x = 1.5; var y = x * 2;`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	y, ok := ctx.frames[0].vars.Get("y")
	require.True(t, ok)
	require.Equal(t, values.Float64(3.0), y)
}

// Scenario 5 (spec §8): a variable declared in one if-branch is invisible
// after the if statement; referencing it fails, and the diagnostic stacks
// pin the failing variable declaration and its initializer expression.
func TestScenarioIfBranchScopeNotVisibleAfter(t *testing.T) {
	prog := parseProgram(t, `if (0) { var z = 1; } else { var z = 2; } var w = z;`)
	ctx := New(DefaultCollaborator{})
	err := execProgram(t, ctx, prog)
	require.Error(t, err)
	require.Contains(t, err.Error(), "undefined variable")

	require.Len(t, ctx.executingStatements, 1)
	_, isVarDecl := ctx.executingStatements[0].(*ast.VarDecl)
	require.True(t, isVarDecl)

	require.Len(t, ctx.evaluatingExpressions, 1)
	_, isVarRef := ctx.evaluatingExpressions[0].(*ast.VarReference)
	require.True(t, isVarRef)
}

// Scenario 6 (spec §8): an increment statement adds one in place, and a
// post-increment expression yields a copy of the prior value.
func TestScenarioIncrementStatementsAndExpressions(t *testing.T) {
	prog := parseProgram(t, `var k = 1; k++; var m = k++;`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	k, ok := ctx.frames[0].vars.Get("k")
	require.True(t, ok)
	require.Equal(t, values.Int32(3), k)

	m, ok := ctx.frames[0].vars.Get("m")
	require.True(t, ok)
	require.Equal(t, values.Int32(2), m)
}

func TestPreIncrementExpression(t *testing.T) {
	prog := parseProgram(t, `var k = 1; var m = ++k;`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	k, _ := ctx.frames[0].vars.Get("k")
	require.Equal(t, values.Int32(2), k)
	m, _ := ctx.frames[0].vars.Get("m")
	require.Equal(t, values.Int32(2), m)
}

func TestRedeclarationInSameFrameFails(t *testing.T) {
	prog := parseProgram(t, `var a = 1; var a = 2;`)
	ctx := New(DefaultCollaborator{})
	err := execProgram(t, ctx, prog)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already declared")
}

func TestShadowingInNestedBlockSucceeds(t *testing.T) {
	prog := parseProgram(t, `var a = 1; { var a = 2; }`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))
}

func TestBreakInsideNestedLoopOnlyExitsInnermost(t *testing.T) {
	prog := parseProgram(t, `
		var total = 0;
		var i = 0;
		while (i < 3) {
			var j = 0;
			while (j < 10) {
				if (j == 2) { break; }
				total = total + 1;
				j = j + 1;
			}
			i = i + 1;
		}
	`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	total, _ := ctx.frames[0].vars.Get("total")
	require.Equal(t, values.Int32(6), total)
	require.False(t, ctx.broken)
	require.False(t, ctx.continued)
	require.Zero(t, ctx.pendingPops)
}

func TestContinueSkipsRestOfLoopBody(t *testing.T) {
	prog := parseProgram(t, `
		var sum = 0;
		var i = 0;
		while (i < 5) {
			i = i + 1;
			if (i == 3) { continue; }
			sum = sum + i;
		}
	`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	sum, _ := ctx.frames[0].vars.Get("sum")
	require.Equal(t, values.Int32(12), sum) // 1+2+4+5, 3 skipped
}

func TestDoWhileRunsBodyAtLeastOnce(t *testing.T) {
	prog := parseProgram(t, `var i = 0; do { i = i + 1; } while (i < 0);`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	i, _ := ctx.frames[0].vars.Get("i")
	require.Equal(t, values.Int32(1), i)
}

func TestSwitchWithoutDefaultNoMatchRunsNothing(t *testing.T) {
	prog := parseProgram(t, `var n = 0; switch (99) { case 1: n = 10; break; }`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	n, _ := ctx.frames[0].vars.Get("n")
	require.Equal(t, values.Int32(0), n)
}

func TestContinueInSwitchPropagatesToEnclosingLoop(t *testing.T) {
	// Adopted resolution of the open question in DESIGN.md: continue inside
	// a switch propagates to the enclosing loop rather than being swallowed.
	prog := parseProgram(t, `
		var sum = 0;
		var i = 0;
		while (i < 4) {
			i = i + 1;
			switch (i) {
			case 2:
				continue;
			}
			sum = sum + i;
		}
	`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	sum, _ := ctx.frames[0].vars.Get("sum")
	require.Equal(t, values.Int32(8), sum) // 1+3+4, 2 skipped by continue
}

// Assignment is a statement form only (spec §3's Assignment variant), so
// these use an expression that would fail if ever evaluated (division by
// zero) to detect whether the right operand was skipped.
func TestShortCircuitAndDoesNotEvaluateRightOnFalseLeft(t *testing.T) {
	prog := parseProgram(t, `var r = 0 && (1 / 0);`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	r, _ := ctx.frames[0].vars.Get("r")
	require.Equal(t, values.Bool(false), r)
}

func TestShortCircuitOrDoesNotEvaluateRightOnTrueLeft(t *testing.T) {
	prog := parseProgram(t, `var r = 1 || (1 / 0);`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	r, _ := ctx.frames[0].vars.Get("r")
	require.Equal(t, values.Bool(true), r)
}

func TestLogicalAndEvaluatesRightWhenLeftTrue(t *testing.T) {
	prog := parseProgram(t, `var r = 1 && (1 / 0);`)
	ctx := New(DefaultCollaborator{})
	err := execProgram(t, ctx, prog)
	require.Error(t, err, "right operand must be evaluated (and fail) when the left is truthy")
}

func TestMultiDimensionalVarArrayOnlyAllocatesOuterDimension(t *testing.T) {
	prog := parseProgram(t, `var grid[2][3];`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	v, ok := ctx.frames[0].vars.Get("grid")
	require.True(t, ok)
	arr, ok := v.(*values.Array)
	require.True(t, ok)
	require.Equal(t, 2, arr.Len())

	_, err := arr.Get(0)
	require.ErrorContains(t, err, "uninitialized")
}

func TestCompoundAssignmentOperators(t *testing.T) {
	prog := parseProgram(t, `var x = 10; x += 5; x -= 2; x *= 3; x /= 2; x %= 4;`)
	ctx := New(DefaultCollaborator{})
	require.NoError(t, execProgram(t, ctx, prog))

	x, _ := ctx.frames[0].vars.Get("x")
	// ((10+5-2)*3/2)%4 = (13*3/2)%4 = (39/2)%4 = 19%4 = 3
	require.Equal(t, values.Int32(3), x)
}

func TestCompoundAssignmentOnUndeclaredFails(t *testing.T) {
	prog := parseProgram(t, `x += 1;`)
	ctx := New(DefaultCollaborator{})
	err := execProgram(t, ctx, prog)
	require.Error(t, err)
}

func TestFieldAccessOnNonStructFails(t *testing.T) {
	prog := parseProgram(t, `var a = 1; var b = a.x;`)
	ctx := New(DefaultCollaborator{})
	err := execProgram(t, ctx, prog)
	require.Error(t, err)
}
