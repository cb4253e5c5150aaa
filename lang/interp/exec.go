package interp

import (
	"fmt"

	"github.com/Earthcomputer/decode-bin/lang/ast"
	"github.com/Earthcomputer/decode-bin/lang/values"
)

// execStmt pushes s onto the diagnostic statement stack, dispatches to its
// handler, and on a clean return either pops it again or, if the handler
// leaves a break/continue flag set, leaves it pinned and bumps pendingPops
// (spec §4.7). On error it is left on the stack too, becoming part of the
// trace rendered for the failing diagnostic.
func (c *Context) execStmt(s ast.Stmt) error {
	c.executingStatements = append(c.executingStatements, s)

	if err := c.dispatchStmt(s); err != nil {
		return err
	}

	if c.broken || c.continued {
		c.pendingPops++
		return nil
	}
	c.executingStatements = c.executingStatements[:len(c.executingStatements)-1]
	return nil
}

func (c *Context) dispatchStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.Block:
		return c.execBlock(s)
	case *ast.If:
		return c.execIf(s)
	case *ast.While:
		return c.execWhile(s)
	case *ast.DoWhile:
		return c.execDoWhile(s)
	case *ast.Switch:
		return c.execSwitch(s)
	case *ast.Break:
		c.broken = true
		return nil
	case *ast.Continue:
		c.continued = true
		return nil
	case *ast.Empty:
		return nil
	case *ast.VarDecl:
		return c.execVarDecl(s)
	case *ast.Assignment:
		return c.execAssignment(s)
	case *ast.BuiltinCallStmt:
		return c.execBuiltinCallStmt(s)
	case *ast.StructRef:
		return c.execStructRef(s)
	default:
		return fmt.Errorf("unhandled statement type %T", s)
	}
}

// execBlock pushes a scope frame, runs its statements in order until they
// run out or a break/continue flag appears, then always pops the scope
// frame regardless of which of those happened (spec §4.4).
func (c *Context) execBlock(b *ast.Block) error {
	c.pushFrame(nil)
	defer c.popFrame()
	for _, stmt := range b.Stmts {
		if err := c.execStmt(stmt); err != nil {
			return err
		}
		if c.broken || c.continued {
			break
		}
	}
	return nil
}

func (c *Context) execIf(n *ast.If) error {
	cond, err := c.evalExpr(n.Cond)
	if err != nil {
		return err
	}
	b, err := values.ToBool(cond)
	if err != nil {
		return err
	}
	if b {
		return c.execStmt(n.Then)
	}
	if n.Else != nil {
		return c.execStmt(n.Else)
	}
	return nil
}

// execWhile consumes both break and continue: either one stops or repeats
// the loop and pops every statement pinned since it was raised (spec §4.4,
// §4.7).
func (c *Context) execWhile(n *ast.While) error {
	for {
		cond, err := c.evalExpr(n.Cond)
		if err != nil {
			return err
		}
		b, err := values.ToBool(cond)
		if err != nil {
			return err
		}
		if !b {
			return nil
		}
		if err := c.execStmt(n.Body); err != nil {
			return err
		}
		if c.broken {
			c.broken = false
			c.popPending()
			return nil
		}
		if c.continued {
			c.continued = false
			c.popPending()
		}
	}
}

func (c *Context) execDoWhile(n *ast.DoWhile) error {
	for {
		if err := c.execStmt(n.Body); err != nil {
			return err
		}
		if c.broken {
			c.broken = false
			c.popPending()
			return nil
		}
		if c.continued {
			c.continued = false
			c.popPending()
		}
		cond, err := c.evalExpr(n.Cond)
		if err != nil {
			return err
		}
		b, err := values.ToBool(cond)
		if err != nil {
			return err
		}
		if !b {
			return nil
		}
	}
}

// execSwitch evaluates the scrutinee against each case in order, falling
// back to the default (or the end of the body, if there is none), then runs
// statements from the chosen index onward in a single pushed frame. It
// consumes break itself; continue is left set so it propagates out to an
// enclosing loop (the adopted resolution of the open question in
// DESIGN.md — the reference implementation treats continue inside switch as
// a no-op, which this deliberately changes).
func (c *Context) execSwitch(n *ast.Switch) error {
	scrutinee, err := c.evalExpr(n.Value)
	if err != nil {
		return err
	}

	target := n.DefaultIndex
	for _, cc := range n.Cases {
		caseVal, err := c.evalExpr(cc.Value)
		if err != nil {
			return err
		}
		eq, err := values.Equal(scrutinee, caseVal)
		if err != nil {
			return err
		}
		if eq {
			target = cc.BodyIndex
			break
		}
	}

	c.pushFrame(nil)
	defer c.popFrame()
	for i := target; i < len(n.Body); i++ {
		if err := c.execStmt(n.Body[i]); err != nil {
			return err
		}
		if c.broken {
			c.broken = false
			c.popPending()
			return nil
		}
		if c.continued {
			return nil
		}
	}
	return nil
}

func (c *Context) execVarDecl(n *ast.VarDecl) error {
	frame := c.topFrame()
	for _, item := range n.Items {
		if len(item.Declarator.Dimensions) > 0 {
			// Only the outermost dimension is allocated (the adopted
			// resolution of the open question in DESIGN.md): every cell of
			// that array starts absent, and reading one fails.
			size, err := c.evalArraySize(item.Declarator.Dimensions[0])
			if err != nil {
				return err
			}
			if err := frame.declare(item.Declarator.Name, values.NewArray(size)); err != nil {
				return err
			}
			continue
		}

		var v values.Value
		if item.Init != nil {
			vv, err := c.evalExpr(item.Init)
			if err != nil {
				return err
			}
			v = vv
		}
		if err := frame.declare(item.Declarator.Name, v); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) evalArraySize(e ast.Expr) (int, error) {
	dv, err := c.evalExpr(e)
	if err != nil {
		return 0, err
	}
	n, ok := dv.(values.Int32)
	if !ok {
		return 0, fmt.Errorf("array size must be int32, got %s", dv.Type())
	}
	if n < 0 {
		return 0, fmt.Errorf("array size must be non-negative, got %d", n)
	}
	return int(n), nil
}

func (c *Context) execAssignment(n *ast.Assignment) error {
	frame, inStruct, err := c.findVarLocation(n.Name)
	if err != nil {
		return err
	}

	rhs, err := c.evalExpr(n.Rhs)
	if err != nil {
		return err
	}

	newVal := rhs
	if n.Compound {
		cur, err := c.readVarLocation(frame, inStruct, n.Name)
		if err != nil {
			return err
		}
		op, ok := assignOps[n.Op]
		if !ok {
			return fmt.Errorf("unknown compound-assignment operator %s", n.Op.GoString())
		}
		newVal, err = op(cur, rhs)
		if err != nil {
			return err
		}
	}
	return c.storeVarLocation(frame, inStruct, n.Name, newVal)
}

func (c *Context) execBuiltinCallStmt(n *ast.BuiltinCallStmt) error {
	args, err := c.evalArgs(n.Args)
	if err != nil {
		return err
	}
	return c.collab.ExecuteBuiltin(n.Name, args)
}

func (c *Context) evalArgs(exprs []ast.Expr) ([]values.Value, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	args := make([]values.Value, len(exprs))
	for i, e := range exprs {
		v, err := c.evalExpr(e)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// findVarLocation resolves name to the frame that declares it, searching
// from the innermost frame outward and, within each frame, its current
// struct's fields before its own locals (spec §4.5's variable-reference
// resolution order).
func (c *Context) findVarLocation(name string) (frame *Frame, inStruct bool, err error) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		f := c.frames[i]
		if f.currentStruct != nil {
			if _, ok := f.currentStruct.Get(name); ok {
				return f, true, nil
			}
		}
		if _, ok := f.vars.Get(name); ok {
			return f, false, nil
		}
	}
	return nil, false, fmt.Errorf("reference to undefined variable %q", name)
}

func (c *Context) readVarLocation(f *Frame, inStruct bool, name string) (values.Value, error) {
	var v values.Value
	var ok bool
	if inStruct {
		v, ok = f.currentStruct.Get(name)
	} else {
		v, ok = f.vars.Get(name)
	}
	if !ok || v == nil {
		return nil, fmt.Errorf("reference to undefined variable %q", name)
	}
	return v, nil
}

func (c *Context) storeVarLocation(f *Frame, inStruct bool, name string, v values.Value) error {
	if inStruct {
		return f.currentStruct.Set(name, v)
	}
	f.vars.Put(name, v)
	return nil
}
