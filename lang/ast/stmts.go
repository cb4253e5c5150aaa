package ast

import "github.com/Earthcomputer/decode-bin/lang/token"

type (
	// Block is an ordered sequence of statements, executed in a fresh frame.
	Block struct {
		Range
		Stmts []Stmt
	}

	// If is a condition, a then-branch and an optional else-branch.
	If struct {
		Range
		Cond Expr
		Then *Block
		Else Stmt // *Block, *If (else-if), or nil
	}

	// While loops while Cond is truthy, testing before each iteration.
	While struct {
		Range
		Cond Expr
		Body *Block
	}

	// DoWhile loops while Cond is truthy, testing after each iteration.
	DoWhile struct {
		Range
		Body *Block
		Cond Expr
	}

	// CaseClause pairs a case's value expression with the index into the
	// Switch's Body at which that case's statements begin.
	CaseClause struct {
		Value      Expr
		BodyIndex  int
	}

	// Switch evaluates Value, finds the first matching CaseClause (per spec
	// §4.3 equality), and executes Body from that clause's BodyIndex onward
	// (or from DefaultIndex if none matched). DefaultIndex is len(Body) (one
	// past the last statement) when no default clause is present.
	Switch struct {
		Range
		Value        Expr
		Body         []Stmt
		Cases        []CaseClause
		DefaultIndex int
	}

	// Break sets the context's broken flag.
	Break struct {
		Range
	}

	// Continue sets the context's continued flag.
	Continue struct {
		Range
	}

	// Empty is a bare ';' with no effect.
	Empty struct {
		Range
	}

	// VarDeclItem pairs a declarator with an optional initializer expression.
	VarDeclItem struct {
		Declarator Declarator
		Init       Expr // nil if absent
	}

	// VarDecl allocates one frame entry per declarator.
	VarDecl struct {
		Range
		Items []VarDeclItem
	}

	// Assignment stores into an existing variable. Compound is true for
	// operator-assignments (+=, -=, ...); Op is token.EQ for a pure assignment.
	Assignment struct {
		Range
		Name     string
		NameTok  token.Token
		Op       token.Kind
		Rhs      Expr
		Compound bool
	}

	// BuiltinCallStmt invokes an externally registered builtin for effect.
	BuiltinCallStmt struct {
		Range
		Name string
		Args []Expr
	}

	// StructRef declares one or more fields in the current struct, either
	// primitive or of a nested struct body, for each of its Declarators.
	// Modifiers here are per-declaration-site qualifiers (currently only
	// HideModifier); type-level qualifiers (array_value, element_type) live
	// on the referenced StructBody.
	StructRef struct {
		Range
		Type        StructTypeRef
		Modifiers   map[ModifierKind]any
		Declarators []Declarator
	}
)

func (*Block) stmtNode()           {}
func (*If) stmtNode()              {}
func (*While) stmtNode()           {}
func (*DoWhile) stmtNode()         {}
func (*Switch) stmtNode()          {}
func (*Break) stmtNode()           {}
func (*Continue) stmtNode()        {}
func (*Empty) stmtNode()           {}
func (*VarDecl) stmtNode()         {}
func (*Assignment) stmtNode()      {}
func (*BuiltinCallStmt) stmtNode() {}
func (*StructRef) stmtNode()       {}
