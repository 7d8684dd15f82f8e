package sema

import (
	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/types"
)

// resolveTypeExpr maps a written type annotation to its TypeID. Type names
// are plain identifiers; only the builtin primitives exist, so anything
// else is unknown. Errors resolve to the error type so downstream checks
// stay quiet.
func (tc *typeChecker) resolveTypeExpr(id ast.TypeID) types.TypeID {
	node := tc.builder.Types.Get(id)
	if node == nil {
		return tc.types.Builtins().Error
	}
	b := tc.types.Builtins()
	switch tc.nameText(node.Name) {
	case "int":
		return b.Int
	case "float":
		return b.Float
	case "bool":
		return b.Bool
	case "string":
		return b.String
	case "void":
		return b.Void
	}
	tc.report(diag.SemaUnknownType, node.Span, "unknown type name '%s'", tc.nameText(node.Name))
	return b.Error
}
