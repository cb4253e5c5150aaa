package interp

import (
	"fmt"

	"github.com/Earthcomputer/decode-bin/lang/ast"
	"github.com/Earthcomputer/decode-bin/lang/values"
)

// DefaultCollaborator is a minimal Collaborator: struct references are
// entered and left with no side effect beyond allocating the struct value
// itself, and every builtin call fails. It exists because the concrete
// binary-stream reader and builtin registry are out of scope for this
// package (spec §1) but something has to satisfy the interface for the CLI
// and for tests that don't exercise either.
type DefaultCollaborator struct{}

var _ Collaborator = DefaultCollaborator{}

func (DefaultCollaborator) BeginStructRef(name string, modifiers map[ast.ModifierKind]any) (*values.Struct, error) {
	return values.NewStruct(), nil
}

func (DefaultCollaborator) EndStructRef(s *values.Struct) error { return nil }

func (DefaultCollaborator) ExecuteBuiltin(name string, args []values.Value) error {
	return fmt.Errorf("builtin %q is not implemented", name)
}

func (DefaultCollaborator) EvaluateBuiltin(name string, args []values.Value) (values.Value, error) {
	return nil, fmt.Errorf("builtin %q is not implemented", name)
}
