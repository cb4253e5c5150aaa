// Package ast defines the abstract syntax tree produced by the decode-bin
// parser: statements, expressions, declarators and struct-type references.
// Every node carries the begin and end tokens of the source range that
// produced it (spec §3), including synthetic nodes built by desugaring
// (e.g. pre-/post-increment, spec §4.2).
package ast

import "github.com/Earthcomputer/decode-bin/lang/token"

// Node is implemented by every statement and expression node.
type Node interface {
	// Span returns the first and last token that produced this node,
	// inclusive on both ends.
	Span() (begin, end token.Token)
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Range is embedded in every concrete node to hold its source range and
// implement Span(). It is exported so that the parser (and any other
// package building synthetic nodes, e.g. desugared increments) can
// construct nodes directly with a keyed struct literal.
type Range struct {
	Begin token.Token
	End   token.Token
}

func (r Range) Span() (begin, end token.Token) { return r.Begin, r.End }

// NewRange is a convenience constructor for Range.
func NewRange(begin, end token.Token) Range { return Range{Begin: begin, End: end} }

// Declarator is a name together with zero or more array-dimension
// expressions (spec §3).
type Declarator struct {
	Name       string
	NameTok    token.Token
	Dimensions []Expr
}

// ModifierKind identifies a named qualifier attached either to a struct type
// (ArrayValueModifier, ElementTypeModifier) or to a struct-reference
// statement (HideModifier), per the glossary.
type ModifierKind int8

const (
	ArrayValueModifier ModifierKind = iota
	ElementTypeModifier
	HideModifier
)

// StructKind identifies which of the five composite kinds a StructBody
// declares. The core only needs to record which kind was declared; the
// concrete semantics of each kind are an external collaborator's concern
// (spec §1).
type StructKind int8

const (
	KindStruct StructKind = iota
	KindEnum
	KindFlags
	KindUnion
	KindChoose
)

func (k StructKind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindFlags:
		return "flags"
	case KindUnion:
		return "union"
	case KindChoose:
		return "choose"
	default:
		return "unknown"
	}
}

// StructBody is the shared shape of struct/enum/flags/union/choose bodies:
// a kind, optional modifiers, an optional name (which registers the type by
// that name when resolved) and an ordered list of statements.
type StructBody struct {
	Range
	Kind      StructKind
	Modifiers map[ModifierKind]any // array_value: string; element_type: StructTypeRef
	Name      string               // "" if anonymous
	NameTok   token.Token
	Stmts     []Stmt
}

// StructTypeRef is either a Declaring reference (a freshly parsed body,
// optionally named, which registers the type) or a Resolving reference (just
// a name, resolved — and failing if unknown — at evaluation time).
type StructTypeRef interface {
	Node
	structTypeRef()
}

// DeclaringRef carries a freshly parsed struct body.
type DeclaringRef struct {
	Range
	Body *StructBody
}

func (*DeclaringRef) structTypeRef() {}

// ResolvingRef carries only a name, resolved against the struct-type
// registry at evaluation time.
type ResolvingRef struct {
	Range
	Name string
}

func (*ResolvingRef) structTypeRef() {}
