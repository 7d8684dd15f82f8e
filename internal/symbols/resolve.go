package symbols

import (
	"fmt"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/source"
	"flint/internal/types"
)

type ResolveOptions struct {
	Reporter diag.Reporter
	// Types is used to build prelude signatures. Required.
	Types *types.Interner
	// Prelude overrides BuiltinPrelude when non-nil.
	Prelude []PreludeEntry
}

// Result maps AST nodes back to the symbols they declare or reference.
type Result struct {
	Table     *Table
	File      ast.FileID
	FileScope ScopeID
	// Bindings resolves every identifier expression to its symbol.
	Bindings map[ast.ExprID]SymbolID
	// ItemSymbols maps fn and extern items to their hoisted symbols.
	ItemSymbols map[ast.ItemID]SymbolID
	// VarSymbols maps var/let statements to the symbols they introduce.
	VarSymbols map[ast.StmtID]SymbolID
	// ParamSymbols lists parameter symbols per function, in declaration
	// order.
	ParamSymbols map[ast.ItemID][]SymbolID
	// BodyScopes maps fn items to their function scopes.
	BodyScopes map[ast.ItemID]ScopeID
}

// ResolveFile builds the scope tree for one parsed file and binds every
// identifier. Functions and externs are hoisted file-wide; variables are
// visible only after their own declaration, so an initializer cannot
// reference the name it initializes.
func ResolveFile(builder *ast.Builder, file ast.FileID, strings *source.Interner, opts ResolveOptions) Result {
	table := NewTable(strings)
	res := Result{
		Table:        table,
		File:         file,
		Bindings:     make(map[ast.ExprID]SymbolID, 64),
		ItemSymbols:  make(map[ast.ItemID]SymbolID, 8),
		VarSymbols:   make(map[ast.StmtID]SymbolID, 16),
		ParamSymbols: make(map[ast.ItemID][]SymbolID, 8),
		BodyScopes:   make(map[ast.ItemID]ScopeID, 8),
	}

	fileNode := builder.Files.Get(file)
	if fileNode == nil {
		return res
	}

	w := &walker{
		b:   builder,
		r:   NewResolver(table, opts.Reporter),
		res: &res,
	}

	fileScope := w.r.Enter(ScopeFile, ast.NoItemID, fileNode.Span)
	res.FileScope = fileScope
	table.SetFileRoot(file, fileScope)

	prelude := opts.Prelude
	if prelude == nil {
		prelude = BuiltinPrelude(opts.Types)
	}
	w.r.installPrelude(fileScope, strings, prelude)

	// Hoisting pass: every fn and extern is declared before any body is
	// looked at, so call order in source does not matter.
	for _, itemID := range fileNode.Items {
		w.declareItem(itemID)
	}
	for _, itemID := range fileNode.Items {
		w.resolveItemBody(itemID)
	}

	w.r.Leave()
	return res
}

type walker struct {
	b         *ast.Builder
	r         *Resolver
	res       *Result
	loopDepth int
}

func (w *walker) declareItem(itemID ast.ItemID) {
	switch w.b.Items.Get(itemID).Kind {
	case ast.ItemFn:
		fn, _ := w.b.Items.Fn(itemID)
		sym, _ := w.r.Declare(Symbol{
			Name: fn.Name,
			Kind: SymbolFn,
			Span: fn.NameSpan,
			Decl: SymbolDecl{Item: itemID},
		})
		w.res.ItemSymbols[itemID] = sym
	case ast.ItemExtern:
		ext, _ := w.b.Items.Extern(itemID)
		sym, _ := w.r.Declare(Symbol{
			Name: ext.Name,
			Kind: SymbolExtern,
			Span: ext.NameSpan,
			Decl: SymbolDecl{Item: itemID},
		})
		w.res.ItemSymbols[itemID] = sym
	}
}

func (w *walker) resolveItemBody(itemID ast.ItemID) {
	fn, ok := w.b.Items.Fn(itemID)
	if !ok {
		return // externs have no body
	}

	fnScope := w.r.Enter(ScopeFunction, itemID, fn.Span)
	w.res.BodyScopes[itemID] = fnScope

	params := w.b.Items.Params(fn.ParamsStart, fn.ParamsCount)
	paramSyms := make([]SymbolID, 0, len(params))
	for idx, param := range params {
		sym, _ := w.r.Declare(Symbol{
			Name: param.Name,
			Kind: SymbolParam,
			Span: param.NameSpan,
			Decl: SymbolDecl{Item: itemID, Param: uint32(idx)},
		})
		paramSyms = append(paramSyms, sym)
	}
	w.res.ParamSymbols[itemID] = paramSyms

	if fn.Body.IsValid() {
		w.resolveStmt(fn.Body)
	}
	w.r.Leave()
}

func (w *walker) resolveStmt(stmtID ast.StmtID) {
	stmt := w.b.Stmts.Get(stmtID)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		block, _ := w.b.Stmts.Block(stmtID)
		owner := ast.NoItemID
		if sc := w.r.table.Scope(w.r.CurrentScope()); sc != nil {
			owner = sc.Owner
		}
		w.r.Enter(ScopeBlock, owner, stmt.Span)
		for _, inner := range block.Stmts {
			w.resolveStmt(inner)
		}
		w.r.Leave()

	case ast.StmtVar:
		decl, _ := w.b.Stmts.Var(stmtID)
		// The initializer is resolved before the name is bound, so
		// 'var x = x;' reports an undefined reference, not a cycle.
		if decl.Value.IsValid() {
			w.resolveExpr(decl.Value)
		}
		var flags SymbolFlags
		if decl.Mutable {
			flags |= FlagMutable
		}
		sym, _ := w.r.Declare(Symbol{
			Name:  decl.Name,
			Kind:  SymbolVar,
			Flags: flags,
			Span:  decl.NameSpan,
			Decl:  SymbolDecl{Stmt: stmtID},
		})
		w.res.VarSymbols[stmtID] = sym

	case ast.StmtReturn:
		ret, _ := w.b.Stmts.Return(stmtID)
		if ret.Value.IsValid() {
			w.resolveExpr(ret.Value)
		}

	case ast.StmtBreak:
		if w.loopDepth == 0 {
			w.report(diag.SemaBreakOutsideLoop, stmt.Span, "'break' outside of a loop")
		}

	case ast.StmtContinue:
		if w.loopDepth == 0 {
			w.report(diag.SemaContinueOutsideLoop, stmt.Span, "'continue' outside of a loop")
		}

	case ast.StmtIf:
		ifData, _ := w.b.Stmts.If(stmtID)
		w.resolveExpr(ifData.Cond)
		w.resolveStmt(ifData.Then)
		if ifData.Else.IsValid() {
			w.resolveStmt(ifData.Else)
		}

	case ast.StmtWhile:
		while, _ := w.b.Stmts.While(stmtID)
		w.resolveExpr(while.Cond)
		w.loopDepth++
		w.resolveStmt(while.Body)
		w.loopDepth--

	case ast.StmtExpr:
		exprStmt, _ := w.b.Stmts.ExprStmt(stmtID)
		w.resolveExpr(exprStmt.Expr)
	}
}

func (w *walker) resolveExpr(exprID ast.ExprID) {
	expr := w.b.Exprs.Get(exprID)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent:
		ident, _ := w.b.Exprs.Ident(exprID)
		sym := w.r.Lookup(ident.Name)
		if !sym.IsValid() {
			w.report(diag.SemaUndefinedReference, expr.Span,
				fmt.Sprintf("undefined name '%s'", w.r.table.NameText(ident.Name)))
			return
		}
		w.res.Bindings[exprID] = sym

	case ast.ExprLit:
		// nothing to bind

	case ast.ExprBinary:
		bin, _ := w.b.Exprs.Binary(exprID)
		w.resolveExpr(bin.Left)
		w.resolveExpr(bin.Right)

	case ast.ExprUnary:
		un, _ := w.b.Exprs.Unary(exprID)
		w.resolveExpr(un.Operand)

	case ast.ExprCall:
		call, _ := w.b.Exprs.Call(exprID)
		w.resolveExpr(call.Callee)
		for _, arg := range call.Args {
			w.resolveExpr(arg)
		}

	case ast.ExprGroup:
		group, _ := w.b.Exprs.Group(exprID)
		w.resolveExpr(group.Inner)
	}
}

func (w *walker) report(code diag.Code, sp source.Span, msg string) {
	if w.r.reporter == nil {
		return
	}
	w.r.reporter.Report(code, diag.SevError, sp, msg, nil)
}
