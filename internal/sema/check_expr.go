package sema

import (
	"strconv"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/source"
	"flint/internal/symbols"
	"flint/internal/types"
)

// typeExpr computes and memoizes the type of one expression. Every failure
// yields the error type, which downstream checks treat as already reported.
func (tc *typeChecker) typeExpr(exprID ast.ExprID) types.TypeID {
	if cached, ok := tc.result.ExprTypes[exprID]; ok {
		return cached
	}
	ty := tc.typeExprUncached(exprID)
	tc.result.ExprTypes[exprID] = ty
	return ty
}

func (tc *typeChecker) typeExprUncached(exprID ast.ExprID) types.TypeID {
	expr := tc.builder.Exprs.Get(exprID)
	b := tc.types.Builtins()
	if expr == nil {
		return b.Error
	}

	switch expr.Kind {
	case ast.ExprIdent:
		return tc.typeIdent(exprID)

	case ast.ExprLit:
		lit, _ := tc.builder.Exprs.Literal(exprID)
		return tc.typeLiteral(exprID, lit)

	case ast.ExprBinary:
		bin, _ := tc.builder.Exprs.Binary(exprID)
		if bin.Op == ast.ExprBinaryAssign {
			return tc.typeAssign(exprID, bin)
		}
		left := tc.typeExpr(bin.Left)
		right := tc.typeExpr(bin.Right)
		result, ok := tc.types.BinaryResult(bin.Op, left, right)
		if !ok {
			tc.report(diag.SemaInvalidOperator, expr.Span,
				"operator '%s' is not defined for '%s' and '%s'",
				bin.Op, tc.typeLabel(left), tc.typeLabel(right))
			return b.Error
		}
		return result

	case ast.ExprUnary:
		un, _ := tc.builder.Exprs.Unary(exprID)
		operand := tc.typeExpr(un.Operand)
		result, ok := tc.types.UnaryResult(un.Op, operand)
		if !ok {
			tc.report(diag.SemaInvalidOperator, expr.Span,
				"operator '%s' is not defined for '%s'", un.Op, tc.typeLabel(operand))
			return b.Error
		}
		return result

	case ast.ExprCall:
		call, _ := tc.builder.Exprs.Call(exprID)
		return tc.typeCall(exprID, call)

	case ast.ExprGroup:
		group, _ := tc.builder.Exprs.Group(exprID)
		return tc.typeExpr(group.Inner)
	}
	return b.Error
}

// typeIdent types an identifier in value position. Function names only
// make sense as callees; typeCall bypasses this path for them.
func (tc *typeChecker) typeIdent(exprID ast.ExprID) types.TypeID {
	b := tc.types.Builtins()
	sym := tc.bindingSymbol(exprID)
	if sym == nil {
		return b.Error // unresolved, already reported
	}
	switch sym.Kind {
	case symbols.SymbolVar, symbols.SymbolParam:
		if sym.Type == types.NoTypeID {
			return b.Error
		}
		return sym.Type
	case symbols.SymbolFn, symbols.SymbolExtern:
		ident, _ := tc.builder.Exprs.Ident(exprID)
		tc.report(diag.SemaTypeMismatch, tc.builder.Exprs.Get(exprID).Span,
			"function '%s' must be called", tc.nameText(ident.Name))
		return b.Error
	}
	return b.Error
}

func (tc *typeChecker) typeLiteral(exprID ast.ExprID, lit *ast.ExprLiteralData) types.TypeID {
	b := tc.types.Builtins()
	span := tc.builder.Exprs.Get(exprID).Span
	switch lit.Kind {
	case ast.LitInt:
		text, _ := tc.symbols.Table.Strings.Lookup(lit.Value)
		if _, err := strconv.ParseInt(text, 10, 64); err != nil {
			tc.report(diag.LexBadNumber, span, "integer literal out of range")
			return b.Error
		}
		return b.Int
	case ast.LitFloat:
		text, _ := tc.symbols.Table.Strings.Lookup(lit.Value)
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			tc.report(diag.LexBadNumber, span, "float literal out of range")
			return b.Error
		}
		return b.Float
	case ast.LitString:
		return b.String
	case ast.LitBool:
		return b.Bool
	}
	return b.Error
}

// typeAssign checks 'target = value'. The target must be a mutable
// variable; the parser already rejected non-identifier targets. The
// expression yields the target's type so assignments chain.
func (tc *typeChecker) typeAssign(exprID ast.ExprID, bin *ast.ExprBinaryData) types.TypeID {
	b := tc.types.Builtins()
	valueType := tc.typeExpr(bin.Right)

	target := tc.builder.Exprs.Get(bin.Left)
	if target == nil || target.Kind != ast.ExprIdent {
		// reported by the parser as an invalid assignment target
		return b.Error
	}
	sym := tc.bindingSymbol(bin.Left)
	if sym == nil {
		tc.result.ExprTypes[bin.Left] = b.Error
		return b.Error
	}

	ident, _ := tc.builder.Exprs.Ident(bin.Left)
	name := tc.nameText(ident.Name)
	switch {
	case sym.Kind == symbols.SymbolFn || sym.Kind == symbols.SymbolExtern:
		tc.report(diag.SemaImmutableAssign, target.Span, "cannot assign to function '%s'", name)
		tc.result.ExprTypes[bin.Left] = b.Error
		return b.Error
	case sym.Kind == symbols.SymbolParam:
		tc.report(diag.SemaImmutableAssign, target.Span, "cannot assign to parameter '%s'", name)
	case !sym.Flags.Has(symbols.FlagMutable):
		tc.report(diag.SemaImmutableAssign, target.Span,
			"cannot assign to '%s': declared with 'let'", name)
	}

	targetType := sym.Type
	if targetType == types.NoTypeID {
		targetType = b.Error
	}
	tc.result.ExprTypes[bin.Left] = targetType

	valueSpan := tc.builder.Exprs.Get(bin.Right).Span
	switch {
	case tc.types.Kind(valueType) == types.KindVoid:
		tc.report(diag.SemaVoidValue, valueSpan, "assigned expression has no value")
	case !tc.isError(targetType) && !tc.isError(valueType) && valueType != targetType:
		tc.report(diag.SemaTypeMismatch, valueSpan,
			"type mismatch: expected '%s', found '%s'",
			tc.typeLabel(targetType), tc.typeLabel(valueType))
	}
	return targetType
}

func (tc *typeChecker) typeCall(exprID ast.ExprID, call *ast.ExprCallData) types.TypeID {
	b := tc.types.Builtins()
	span := tc.builder.Exprs.Get(exprID).Span

	callee := tc.unwrapGroups(call.Callee)
	target := tc.builder.Exprs.Get(callee)
	if target == nil {
		return b.Error
	}
	if target.Kind != ast.ExprIdent {
		tc.typeExpr(call.Callee)
		for _, arg := range call.Args {
			tc.typeExpr(arg)
		}
		tc.report(diag.SemaNotCallable, target.Span, "expression is not callable")
		return b.Error
	}

	sym := tc.bindingSymbol(callee)
	if sym == nil {
		for _, arg := range call.Args {
			tc.typeExpr(arg)
		}
		tc.result.ExprTypes[callee] = b.Error
		return b.Error
	}

	ident, _ := tc.builder.Exprs.Ident(callee)
	name := tc.nameText(ident.Name)

	if sym.Builtin == symbols.BuiltinPrint {
		return tc.typePrintCall(callee, call, span)
	}
	if sym.Kind != symbols.SymbolFn && sym.Kind != symbols.SymbolExtern {
		for _, arg := range call.Args {
			tc.typeExpr(arg)
		}
		tc.report(diag.SemaNotCallable, target.Span, "'%s' is not a function", name)
		tc.result.ExprTypes[callee] = b.Error
		return b.Error
	}

	sig, ok := tc.types.FnInfo(sym.Type)
	if !ok {
		for _, arg := range call.Args {
			tc.typeExpr(arg)
		}
		tc.result.ExprTypes[callee] = b.Error
		return b.Error
	}
	tc.result.ExprTypes[callee] = sym.Type

	if len(call.Args) != len(sig.Params) {
		for _, arg := range call.Args {
			tc.typeExpr(arg)
		}
		tc.report(diag.SemaArgumentError, span,
			"'%s' expects %d arguments, found %d", name, len(sig.Params), len(call.Args))
		return sig.Result
	}
	for idx, arg := range call.Args {
		argType := tc.typeExpr(arg)
		want := sig.Params[idx]
		if tc.isError(argType) || tc.isError(want) || argType == want {
			continue
		}
		tc.report(diag.SemaTypeMismatch, tc.builder.Exprs.Get(arg).Span,
			"argument %d to '%s': expected '%s', found '%s'",
			idx+1, name, tc.typeLabel(want), tc.typeLabel(argType))
	}
	return sig.Result
}

// typePrintCall handles the polymorphic print builtin: one argument of any
// primitive value type.
func (tc *typeChecker) typePrintCall(callee ast.ExprID, call *ast.ExprCallData, span source.Span) types.TypeID {
	b := tc.types.Builtins()
	argTypes := make([]types.TypeID, 0, len(call.Args))
	for _, arg := range call.Args {
		argTypes = append(argTypes, tc.typeExpr(arg))
	}
	tc.result.ExprTypes[callee] = tc.types.RegisterFn(argTypes, b.Void)

	if len(call.Args) != 1 {
		tc.report(diag.SemaArgumentError, span,
			"'print' expects 1 argument, found %d", len(call.Args))
		return b.Void
	}
	argType := argTypes[0]
	switch tc.types.Kind(argType) {
	case types.KindInt, types.KindFloat, types.KindBool, types.KindString, types.KindError:
		// printable
	default:
		tc.report(diag.SemaTypeMismatch, tc.builder.Exprs.Get(call.Args[0]).Span,
			"'print' cannot take a value of type '%s'", tc.typeLabel(argType))
	}
	return b.Void
}

func (tc *typeChecker) unwrapGroups(exprID ast.ExprID) ast.ExprID {
	for {
		expr := tc.builder.Exprs.Get(exprID)
		if expr == nil || expr.Kind != ast.ExprGroup {
			return exprID
		}
		group, _ := tc.builder.Exprs.Group(exprID)
		exprID = group.Inner
	}
}

func (tc *typeChecker) bindingSymbol(exprID ast.ExprID) *symbols.Symbol {
	id, ok := tc.symbols.Bindings[exprID]
	if !ok || !id.IsValid() {
		return nil
	}
	return tc.symbols.Table.Symbol(id)
}
