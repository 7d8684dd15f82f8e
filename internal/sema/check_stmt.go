package sema

import (
	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/types"
)

func (tc *typeChecker) checkStmt(stmtID ast.StmtID) {
	stmt := tc.builder.Stmts.Get(stmtID)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		block, _ := tc.builder.Stmts.Block(stmtID)
		for _, inner := range block.Stmts {
			tc.checkStmt(inner)
		}

	case ast.StmtVar:
		tc.checkVarStmt(stmtID)

	case ast.StmtReturn:
		tc.checkReturnStmt(stmtID)

	case ast.StmtIf:
		ifData, _ := tc.builder.Stmts.If(stmtID)
		tc.checkCondition(ifData.Cond)
		tc.checkStmt(ifData.Then)
		if ifData.Else.IsValid() {
			tc.checkStmt(ifData.Else)
		}

	case ast.StmtWhile:
		while, _ := tc.builder.Stmts.While(stmtID)
		tc.checkCondition(while.Cond)
		tc.checkStmt(while.Body)

	case ast.StmtExpr:
		exprStmt, _ := tc.builder.Stmts.ExprStmt(stmtID)
		tc.typeExpr(exprStmt.Expr)

	case ast.StmtBreak, ast.StmtContinue:
		// validated by the resolver
	}
}

// checkVarStmt types a var/let declaration. With an annotation the
// initializer must match it exactly; without one the variable takes the
// initializer's type.
func (tc *typeChecker) checkVarStmt(stmtID ast.StmtID) {
	decl, _ := tc.builder.Stmts.Var(stmtID)
	b := tc.types.Builtins()

	var declared types.TypeID
	if decl.Type.IsValid() {
		declared = tc.resolveTypeExpr(decl.Type)
		if tc.types.Kind(declared) == types.KindVoid {
			tc.report(diag.SemaVoidValue, decl.NameSpan,
				"variable '%s' cannot have type 'void'", tc.nameText(decl.Name))
			declared = b.Error
		}
	}

	bound := declared
	if decl.Value.IsValid() {
		valueType := tc.typeExpr(decl.Value)
		valueSpan := tc.builder.Exprs.Get(decl.Value).Span
		switch {
		case tc.types.Kind(valueType) == types.KindVoid:
			tc.report(diag.SemaVoidValue, valueSpan,
				"initializer of '%s' has no value", tc.nameText(decl.Name))
			valueType = b.Error
		case declared != types.NoTypeID && !tc.isError(declared) && !tc.isError(valueType) && valueType != declared:
			tc.report(diag.SemaTypeMismatch, valueSpan,
				"type mismatch: expected '%s', found '%s'",
				tc.typeLabel(declared), tc.typeLabel(valueType))
		}
		if bound == types.NoTypeID {
			bound = valueType
		}
	}
	if bound == types.NoTypeID {
		bound = b.Error
	}

	if sym := tc.symbols.VarSymbols[stmtID]; sym.IsValid() {
		tc.symbols.Table.Symbol(sym).Type = bound
	}
}

func (tc *typeChecker) checkReturnStmt(stmtID ast.StmtID) {
	ret, _ := tc.builder.Stmts.Return(stmtID)
	stmt := tc.builder.Stmts.Get(stmtID)
	isVoid := tc.types.Kind(tc.fnReturn) == types.KindVoid

	if !ret.Value.IsValid() {
		if !isVoid && !tc.isError(tc.fnReturn) {
			tc.report(diag.SemaTypeMismatch, stmt.Span,
				"missing return value: function returns '%s'", tc.typeLabel(tc.fnReturn))
		}
		return
	}

	valueType := tc.typeExpr(ret.Value)
	valueSpan := tc.builder.Exprs.Get(ret.Value).Span
	switch {
	case isVoid:
		if !tc.isError(valueType) {
			tc.report(diag.SemaTypeMismatch, valueSpan,
				"cannot return a value from a void function")
		}
	case tc.types.Kind(valueType) == types.KindVoid:
		tc.report(diag.SemaVoidValue, valueSpan, "return value has no value")
	case !tc.isError(tc.fnReturn) && !tc.isError(valueType) && valueType != tc.fnReturn:
		tc.report(diag.SemaTypeMismatch, valueSpan,
			"type mismatch: expected '%s', found '%s'",
			tc.typeLabel(tc.fnReturn), tc.typeLabel(valueType))
	}
}

func (tc *typeChecker) checkCondition(condID ast.ExprID) {
	condType := tc.typeExpr(condID)
	if tc.isError(condType) {
		return
	}
	if tc.types.Kind(condType) != types.KindBool {
		tc.report(diag.SemaConditionNotBool, tc.builder.Exprs.Get(condID).Span,
			"condition must be 'bool', found '%s'", tc.typeLabel(condType))
	}
}
