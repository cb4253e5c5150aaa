package interp

import (
	"fmt"

	"github.com/Earthcomputer/decode-bin/lang/ast"
	"github.com/Earthcomputer/decode-bin/lang/token"
	"github.com/Earthcomputer/decode-bin/lang/values"
)

// evalExpr pushes e onto the diagnostic expression stack, evaluates it, and
// pops it again before returning a value (spec §4.7). Unlike statements,
// expressions are never pinned: break/continue can only be set by a
// statement, never observed mid-expression.
func (c *Context) evalExpr(e ast.Expr) (values.Value, error) {
	c.evaluatingExpressions = append(c.evaluatingExpressions, e)
	v, err := c.dispatchExpr(e)
	if err != nil {
		return nil, err
	}
	c.evaluatingExpressions = c.evaluatingExpressions[:len(c.evaluatingExpressions)-1]
	return v, nil
}

func (c *Context) dispatchExpr(e ast.Expr) (values.Value, error) {
	switch e := e.(type) {
	case *ast.Literal:
		return evalLiteral(e)
	case *ast.VarReference:
		return c.lookupVar(e.Name)
	case *ast.BinaryOp:
		return c.evalBinary(e)
	case *ast.UnaryOp:
		return c.evalUnary(e)
	case *ast.FieldAccess:
		return c.evalFieldAccess(e)
	case *ast.IndexExpr:
		return c.evalIndex(e)
	case *ast.PreIncrement:
		return c.evalPreIncrement(e)
	case *ast.PostIncrement:
		return c.evalPostIncrement(e)
	case *ast.BuiltinCallExpr:
		return c.evalBuiltinCall(e)
	case *ast.ParenExpr:
		return c.evalExpr(e.Inner)
	default:
		return nil, fmt.Errorf("unhandled expression type %T", e)
	}
}

func evalLiteral(lit *ast.Literal) (values.Value, error) {
	switch lit.Kind {
	case ast.LitInt32:
		return values.Int32(lit.Value.(int32)), nil
	case ast.LitInt64:
		return values.Int64(lit.Value.(int64)), nil
	case ast.LitFloat32:
		return values.Float32(lit.Value.(float32)), nil
	case ast.LitFloat64:
		return values.Float64(lit.Value.(float64)), nil
	case ast.LitBool:
		return values.Bool(lit.Value.(bool)), nil
	default:
		return nil, fmt.Errorf("unhandled literal kind %v", lit.Kind)
	}
}

func (c *Context) lookupVar(name string) (values.Value, error) {
	frame, inStruct, err := c.findVarLocation(name)
	if err != nil {
		return nil, err
	}
	return c.readVarLocation(frame, inStruct, name)
}

// evalBinary special-cases && and || to short-circuit (the adopted
// resolution of the open question in DESIGN.md): values.Binary receives
// both operands already evaluated, so it can't skip the right side itself.
func (c *Context) evalBinary(n *ast.BinaryOp) (values.Value, error) {
	left, err := c.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case token.ANDAND:
		lb, err := values.ToBool(left)
		if err != nil {
			return nil, err
		}
		if !lb {
			return values.Bool(false), nil
		}
		right, err := c.evalExpr(n.Right)
		if err != nil {
			return nil, err
		}
		rb, err := values.ToBool(right)
		if err != nil {
			return nil, err
		}
		return values.Bool(rb), nil
	case token.OROR:
		lb, err := values.ToBool(left)
		if err != nil {
			return nil, err
		}
		if lb {
			return values.Bool(true), nil
		}
		right, err := c.evalExpr(n.Right)
		if err != nil {
			return nil, err
		}
		rb, err := values.ToBool(right)
		if err != nil {
			return nil, err
		}
		return values.Bool(rb), nil
	}

	right, err := c.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	return values.Binary(n.Op, left, right)
}

func (c *Context) evalUnary(n *ast.UnaryOp) (values.Value, error) {
	v, err := c.evalExpr(n.Operand)
	if err != nil {
		return nil, err
	}
	return values.Unary(n.Op, v)
}

func (c *Context) evalFieldAccess(n *ast.FieldAccess) (values.Value, error) {
	recv, err := c.evalExpr(n.Receiver)
	if err != nil {
		return nil, err
	}
	return values.Field(recv, n.Name)
}

func (c *Context) evalIndex(n *ast.IndexExpr) (values.Value, error) {
	recv, err := c.evalExpr(n.Receiver)
	if err != nil {
		return nil, err
	}
	idx, err := c.evalExpr(n.Index)
	if err != nil {
		return nil, err
	}
	return values.Index(recv, idx)
}

// evalPreIncrement and evalPostIncrement are only reachable from expression
// context (spec §4.2): as a statement, ++x/x++ instead desugars to an
// ast.Assignment at parse time. Pre yields the updated value; post yields a
// copy of the value before the update.
func (c *Context) evalPreIncrement(n *ast.PreIncrement) (values.Value, error) {
	frame, inStruct, err := c.findVarLocation(n.Name)
	if err != nil {
		return nil, err
	}
	cur, err := c.readVarLocation(frame, inStruct, n.Name)
	if err != nil {
		return nil, err
	}
	next, err := values.Binary(token.PLUS, cur, values.Int32(n.Delta))
	if err != nil {
		return nil, err
	}
	if err := c.storeVarLocation(frame, inStruct, n.Name, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (c *Context) evalPostIncrement(n *ast.PostIncrement) (values.Value, error) {
	frame, inStruct, err := c.findVarLocation(n.Name)
	if err != nil {
		return nil, err
	}
	cur, err := c.readVarLocation(frame, inStruct, n.Name)
	if err != nil {
		return nil, err
	}
	next, err := values.Binary(token.PLUS, cur, values.Int32(n.Delta))
	if err != nil {
		return nil, err
	}
	if err := c.storeVarLocation(frame, inStruct, n.Name, next); err != nil {
		return nil, err
	}
	return cur, nil
}

func (c *Context) evalBuiltinCall(n *ast.BuiltinCallExpr) (values.Value, error) {
	args, err := c.evalArgs(n.Args)
	if err != nil {
		return nil, err
	}
	return c.collab.EvaluateBuiltin(n.Name, args)
}
