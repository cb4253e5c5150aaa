// Package interp implements the tree-walking evaluator that runs a parsed
// decode-bin program: frame-stack variable scoping, the struct-type
// registry, break/continue propagation and the diagnostic stacks used to
// render errors (spec §3, §4.4-§4.7, §6).
package interp

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/Earthcomputer/decode-bin/lang/ast"
	"github.com/Earthcomputer/decode-bin/lang/values"
)

// Frame is one entry of the interpreter's frame stack (spec §4.4): a set of
// locally declared variables plus, for struct-reference bodies, the struct
// value currently being populated. currentStruct is nil for frames pushed by
// a bare block, while/do-while body or switch body.
type Frame struct {
	vars          *swiss.Map[string, values.Value]
	currentStruct *values.Struct
}

func newFrame(currentStruct *values.Struct) *Frame {
	return &Frame{vars: swiss.NewMap[string, values.Value](4), currentStruct: currentStruct}
}

// declare binds a new name in this frame's locals, failing if it is already
// declared in this same frame (spec §3: redeclaration in the same scope is
// an error; shadowing an outer scope's name is not).
func (f *Frame) declare(name string, v values.Value) error {
	if _, ok := f.vars.Get(name); ok {
		return fmt.Errorf("variable %q is already declared in this scope", name)
	}
	f.vars.Put(name, v)
	return nil
}

// Context holds all state threaded through one execution of a program: the
// frame stack, the struct-type registry, the break/continue flags and the
// two diagnostic stacks (spec §4.6, §4.7).
type Context struct {
	collab Collaborator

	frames []*Frame

	structTypes     *swiss.Map[string, *ast.StructBody]
	structTypeNames []string // insertion order, kept alongside structTypes for diagnostics

	broken    bool
	continued bool

	// pendingPops counts diagnostic-stack entries (see executingStatements)
	// that were left pinned by a break/continue unwind and are still waiting
	// for the loop or switch that will consume the flag to pop them, mirroring
	// the reference implementation's executing_statements_to_remove.
	pendingPops int

	executingStatements   []ast.Stmt
	evaluatingExpressions []ast.Expr
}

// New creates a fresh Context with a single root frame, whose current-struct
// accumulates top-level struct-reference declarations (spec §4.4: "the root
// frame is created once... and destroyed on program end").
func New(collab Collaborator) *Context {
	root := newFrame(values.NewStruct())
	ctx := &Context{
		collab:      collab,
		frames:      []*Frame{root},
		structTypes: swiss.NewMap[string, *ast.StructBody](8),
	}
	declareUniverse(root)
	return ctx
}

func (c *Context) topFrame() *Frame { return c.frames[len(c.frames)-1] }

func (c *Context) pushFrame(currentStruct *values.Struct) {
	c.frames = append(c.frames, newFrame(currentStruct))
}

func (c *Context) popFrame() {
	c.frames = c.frames[:len(c.frames)-1]
}

// popPending discards the statements pinned on executingStatements since the
// last break/continue was raised, once the loop or switch that owns
// consuming the flag has decided to do so.
func (c *Context) popPending() {
	n := c.pendingPops
	c.pendingPops = 0
	c.executingStatements = c.executingStatements[:len(c.executingStatements)-n]
}

// enclosingStruct returns the current-struct of the innermost frame that has
// one set, walking outward from the top of the stack. The root frame always
// has one, so this never returns nil.
func (c *Context) enclosingStruct() *values.Struct {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].currentStruct != nil {
			return c.frames[i].currentStruct
		}
	}
	return nil
}

// Run executes program against a fresh Context and returns the populated
// root struct, or the first diagnostic raised (spec §4.7: "errors are caught
// at the top-level execute").
func Run(program *ast.Block, collab Collaborator) (*values.Struct, *Diagnostic) {
	ctx := New(collab)
	for _, stmt := range program.Stmts {
		if err := ctx.execStmt(stmt); err != nil {
			return nil, ctx.newDiagnostic(err)
		}
		if ctx.broken {
			return nil, ctx.newDiagnostic(fmt.Errorf("break statement not handled"))
		}
		if ctx.continued {
			return nil, ctx.newDiagnostic(fmt.Errorf("continue statement not handled"))
		}
	}
	return ctx.frames[0].currentStruct, nil
}
