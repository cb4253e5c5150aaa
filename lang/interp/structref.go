package interp

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/Earthcomputer/decode-bin/lang/ast"
	"github.com/Earthcomputer/decode-bin/lang/values"
)

// Collaborator is the external boundary spec §1 and §4.6 hand off to
// whatever embeds this package: the actual byte-stream reader/writer that
// backs a struct reference, and the builtin functions a program calls.
// decode-bin's core only knows how to declare and enter/exit a nested
// record; what begin_struct_ref does with "hide" or how a builtin turns its
// arguments into bytes read or written is entirely up to the implementation
// supplied here.
type Collaborator interface {
	// BeginStructRef is called once a struct-reference statement has
	// resolved its type and is about to execute its body for the declarator
	// named name. modifiers carries both the type's own modifiers
	// (array_value, element_type) and the statement's (hide), merged.
	// It returns the (initially empty) struct value that the body's
	// statements will populate.
	BeginStructRef(name string, modifiers map[ast.ModifierKind]any) (*values.Struct, error)

	// EndStructRef is called once every statement of a struct-reference
	// body has executed successfully, with the struct value BeginStructRef
	// produced (by then populated by the body).
	EndStructRef(s *values.Struct) error

	// ExecuteBuiltin calls a builtin used in statement position, with no
	// return value expected.
	ExecuteBuiltin(name string, args []values.Value) error

	// EvaluateBuiltin calls a builtin used in expression position.
	EvaluateBuiltin(name string, args []values.Value) (values.Value, error)
}

// execStructRef implements spec §4.4's struct-reference statement: resolve
// the type, then for each declarator either build a single nested struct or
// (if it carries dimensions) a multidimensional array of them, finally
// binding the result under the declarator's name in the enclosing
// current-struct.
func (c *Context) execStructRef(n *ast.StructRef) error {
	body, err := c.resolveStructType(n.Type)
	if err != nil {
		return err
	}

	modifiers := make(map[ast.ModifierKind]any, len(body.Modifiers)+len(n.Modifiers))
	for k, v := range body.Modifiers {
		modifiers[k] = v
	}
	for k, v := range n.Modifiers {
		modifiers[k] = v
	}

	for _, decl := range n.Declarators {
		var val values.Value
		if len(decl.Dimensions) == 0 {
			val, err = c.buildStructRefLeaf(decl.Name, modifiers, body)
		} else {
			dims, derr := c.evalDimensions(decl.Dimensions)
			if derr != nil {
				return derr
			}
			val, err = c.buildStructRefArray(decl.Name, modifiers, body, dims, nil)
		}
		if err != nil {
			return err
		}
		if err := c.enclosingStruct().DeclareAndSet(decl.Name, val); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) evalDimensions(exprs []ast.Expr) ([]int, error) {
	dims := make([]int, len(exprs))
	for i, e := range exprs {
		n, err := c.evalArraySize(e)
		if err != nil {
			return nil, err
		}
		dims[i] = n
	}
	return dims, nil
}

// buildStructRefLeaf runs body's statements against a fresh struct value
// obtained from the collaborator, in its own pushed frame (spec §4.4, §4.6).
func (c *Context) buildStructRefLeaf(name string, modifiers map[ast.ModifierKind]any, body *ast.StructBody) (*values.Struct, error) {
	s, err := c.collab.BeginStructRef(name, modifiers)
	if err != nil {
		return nil, err
	}
	c.pushFrame(s)
	for _, stmt := range body.Stmts {
		if err := c.execStmt(stmt); err != nil {
			c.popFrame()
			return nil, err
		}
	}
	c.popFrame()
	if err := c.collab.EndStructRef(s); err != nil {
		return nil, err
	}
	return s, nil
}

// buildStructRefArray recursively allocates every dimension (unlike a plain
// var array, every leaf of a struct-reference array is built eagerly, since
// each one is itself a nested record the collaborator must visit). Leaves
// are named name[i0][i1]... so the collaborator can tell them apart.
func (c *Context) buildStructRefArray(name string, modifiers map[ast.ModifierKind]any, body *ast.StructBody, dims, indices []int) (*values.Array, error) {
	arr := values.NewArray(dims[0])
	for i := 0; i < dims[0]; i++ {
		idx := append(append([]int{}, indices...), i)
		leafName := arrayLeafName(name, idx)

		var v values.Value
		var err error
		if len(dims) == 1 {
			v, err = c.buildStructRefLeaf(leafName, modifiers, body)
		} else {
			v, err = c.buildStructRefArray(name, modifiers, body, dims[1:], idx)
		}
		if err != nil {
			return nil, err
		}
		if err := arr.Set(i, v); err != nil {
			return nil, err
		}
	}
	return arr, nil
}

func arrayLeafName(name string, idx []int) string {
	var sb strings.Builder
	sb.WriteString(name)
	for _, i := range idx {
		fmt.Fprintf(&sb, "[%d]", i)
	}
	return sb.String()
}

// resolveStructType implements spec §4.4's two struct-type-reference forms:
// a Declaring reference registers its body (if named) and returns it
// directly; a Resolving reference looks its name up in the registry,
// failing with the sorted list of known names if it isn't there.
func (c *Context) resolveStructType(ref ast.StructTypeRef) (*ast.StructBody, error) {
	switch r := ref.(type) {
	case *ast.DeclaringRef:
		if r.Body.Name != "" {
			if _, exists := c.structTypes.Get(r.Body.Name); exists {
				return nil, fmt.Errorf("struct type %q is already declared", r.Body.Name)
			}
			c.structTypes.Put(r.Body.Name, r.Body)
			c.structTypeNames = append(c.structTypeNames, r.Body.Name)
		}
		return r.Body, nil
	case *ast.ResolvingRef:
		body, ok := c.structTypes.Get(r.Name)
		if !ok {
			return nil, fmt.Errorf("struct type %q not found (known types: %s)", r.Name, c.knownStructTypeNames())
		}
		return body, nil
	default:
		return nil, fmt.Errorf("unhandled struct type reference %T", ref)
	}
}

func (c *Context) knownStructTypeNames() string {
	names := append([]string(nil), c.structTypeNames...)
	slices.Sort(names)
	return strings.Join(names, ", ")
}
