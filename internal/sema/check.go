package sema

import (
	"fmt"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/source"
	"flint/internal/symbols"
	"flint/internal/types"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
	Symbols  *symbols.Result
	Types    *types.Interner
}

// Result stores semantic artefacts produced by the checker. Symbol types
// are written into the symbol table itself; everything keyed by AST node
// lives here.
type Result struct {
	TypeInterner *types.Interner
	// ExprTypes records the type of every checked expression. After an
	// error-free pass no entry is NoTypeID or the error type.
	ExprTypes map[ast.ExprID]types.TypeID
	// FnTypes records the signature type of each fn and extern item.
	FnTypes map[ast.ItemID]types.TypeID
}

// Check types every declaration and expression of one resolved file.
// Signatures are established for all items first, then bodies are checked
// in declaration order, so calls can reference functions declared later.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	res := Result{
		ExprTypes: make(map[ast.ExprID]types.TypeID, 64),
		FnTypes:   make(map[ast.ItemID]types.TypeID, 8),
	}
	if opts.Types != nil {
		res.TypeInterner = opts.Types
	} else {
		res.TypeInterner = types.NewInterner()
	}
	if builder == nil || fileID == ast.NoFileID || opts.Symbols == nil {
		return res
	}

	tc := typeChecker{
		builder:  builder,
		fileID:   fileID,
		reporter: opts.Reporter,
		symbols:  opts.Symbols,
		types:    res.TypeInterner,
		result:   &res,
	}
	tc.run()
	return res
}

type typeChecker struct {
	builder  *ast.Builder
	fileID   ast.FileID
	reporter diag.Reporter
	symbols  *symbols.Result
	types    *types.Interner
	result   *Result

	// fnReturn is the declared result type of the function whose body is
	// being checked.
	fnReturn     types.TypeID
	fnReturnSpan source.Span
}

func (tc *typeChecker) run() {
	file := tc.builder.Files.Get(tc.fileID)
	if file == nil {
		return
	}
	for _, itemID := range file.Items {
		tc.establishSignature(itemID)
	}
	for _, itemID := range file.Items {
		tc.checkItemBody(itemID)
	}
}

func (tc *typeChecker) establishSignature(itemID ast.ItemID) {
	var (
		paramsStart ast.FnParamID
		paramsCount uint32
		returnType  ast.TypeID
	)
	switch tc.builder.Items.Get(itemID).Kind {
	case ast.ItemFn:
		fn, _ := tc.builder.Items.Fn(itemID)
		paramsStart, paramsCount, returnType = fn.ParamsStart, fn.ParamsCount, fn.ReturnType
	case ast.ItemExtern:
		ext, _ := tc.builder.Items.Extern(itemID)
		paramsStart, paramsCount, returnType = ext.ParamsStart, ext.ParamsCount, ext.ReturnType
	default:
		return
	}

	params := tc.builder.Items.Params(paramsStart, paramsCount)
	paramTypes := make([]types.TypeID, 0, len(params))
	for _, param := range params {
		paramTypes = append(paramTypes, tc.resolveParamType(param))
	}

	result := tc.types.Builtins().Void
	if returnType.IsValid() {
		result = tc.resolveTypeExpr(returnType)
	}

	sig := tc.types.RegisterFn(paramTypes, result)
	tc.result.FnTypes[itemID] = sig
	if sym := tc.symbols.ItemSymbols[itemID]; sym.IsValid() {
		tc.symbols.Table.Symbol(sym).Type = sig
	}
	for idx, sym := range tc.symbols.ParamSymbols[itemID] {
		if sym.IsValid() && idx < len(paramTypes) {
			tc.symbols.Table.Symbol(sym).Type = paramTypes[idx]
		}
	}
}

// resolveParamType resolves one parameter annotation; parameters of void
// type are rejected since no value can be passed.
func (tc *typeChecker) resolveParamType(param ast.FnParam) types.TypeID {
	resolved := tc.resolveTypeExpr(param.Type)
	if tc.types.Kind(resolved) == types.KindVoid {
		tc.report(diag.SemaVoidValue, param.Span,
			"parameter '%s' cannot have type 'void'", tc.nameText(param.Name))
		return tc.types.Builtins().Error
	}
	return resolved
}

func (tc *typeChecker) checkItemBody(itemID ast.ItemID) {
	fn, ok := tc.builder.Items.Fn(itemID)
	if !ok {
		return // externs have no body
	}
	tc.fnReturn = tc.types.Builtins().Void
	if sig, ok := tc.types.FnInfo(tc.result.FnTypes[itemID]); ok {
		tc.fnReturn = sig.Result
	}
	tc.fnReturnSpan = fn.NameSpan
	if fn.Body.IsValid() {
		tc.checkStmt(fn.Body)
	}
}

func (tc *typeChecker) report(code diag.Code, sp source.Span, format string, args ...any) {
	if tc.reporter == nil {
		return
	}
	tc.reporter.Report(code, diag.SevError, sp, fmt.Sprintf(format, args...), nil)
}

func (tc *typeChecker) nameText(name source.StringID) string {
	return tc.symbols.Table.NameText(name)
}

func (tc *typeChecker) typeLabel(id types.TypeID) string {
	return tc.types.String(id)
}

func (tc *typeChecker) isError(id types.TypeID) bool {
	return id == tc.types.Builtins().Error || id == types.NoTypeID
}
