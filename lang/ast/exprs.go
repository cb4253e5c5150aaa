package ast

import "github.com/Earthcomputer/decode-bin/lang/token"

// LitKind identifies the scalar type a LiteralExpr evaluates to.
type LitKind int8

const (
	LitInt32 LitKind = iota
	LitInt64
	LitFloat32
	LitFloat64
	LitBool
)

type (
	// Literal is a literal scalar value, already evaluated at parse time
	// (spec §4.2: "Numeric literal evaluation (done at parse time...)").
	Literal struct {
		Range
		Kind  LitKind
		Raw   string
		Value any // int32 | int64 | float32 | float64 | bool
	}

	// VarReference looks up a variable by name, optionally namespaced
	// (ns::name), searching the frame stack innermost-out (spec §4.5).
	VarReference struct {
		Range
		Name string
	}

	// BinaryOp applies a binary operator to Left and Right.
	BinaryOp struct {
		Range
		Left  Expr
		Op    token.Kind
		OpTok token.Token
		Right Expr
	}

	// UnaryOp applies a prefix unary operator (+, -, !, ~) to Operand.
	UnaryOp struct {
		Range
		Op      token.Kind
		OpTok   token.Token
		Operand Expr
	}

	// FieldAccess evaluates Receiver (must be a struct) and returns its Name
	// field.
	FieldAccess struct {
		Range
		Receiver Expr
		Name     string
	}

	// IndexExpr evaluates Receiver (must be an array) at index Index (must be
	// Int32).
	IndexExpr struct {
		Range
		Receiver Expr
		Index    Expr
	}

	// PreIncrement desugars to `name = name + delta` as a statement; as an
	// expression, it assigns then yields the new value. Delta is +1 or -1.
	PreIncrement struct {
		Range
		Name  string
		Delta int32
	}

	// PostIncrement yields a copy of the prior value, then assigns the
	// incremented value. Delta is +1 or -1.
	PostIncrement struct {
		Range
		Name  string
		Delta int32
	}

	// BuiltinCallExpr evaluates Args left-to-right and dispatches to the
	// external builtin registry for a value.
	BuiltinCallExpr struct {
		Range
		Name string
		Args []Expr
	}

	// ParenExpr is a parenthesized expression, kept as its own node so its
	// span includes the parentheses even though evaluation simply delegates
	// to Inner.
	ParenExpr struct {
		Range
		Inner Expr
	}
)

func (*Literal) exprNode()         {}
func (*VarReference) exprNode()    {}
func (*BinaryOp) exprNode()        {}
func (*UnaryOp) exprNode()         {}
func (*FieldAccess) exprNode()     {}
func (*IndexExpr) exprNode()       {}
func (*PreIncrement) exprNode()    {}
func (*PostIncrement) exprNode()   {}
func (*BuiltinCallExpr) exprNode() {}
func (*ParenExpr) exprNode()       {}
