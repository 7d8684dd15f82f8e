package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"flint/internal/ast"
	"flint/internal/source"
)

// DumpAST writes an indented tree of the parsed file. Output is meant for
// humans inspecting the parser, not for tools; the shape follows node
// nesting, one node per line.
func DumpAST(w io.Writer, b *ast.Builder, fileID ast.FileID, strs *source.Interner) error {
	p := &astPrinter{w: w, b: b, strs: strs}
	file := b.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("no such file node")
	}
	p.line(0, "file")
	for _, item := range file.Items {
		p.item(1, item)
	}
	return p.err
}

type astPrinter struct {
	w    io.Writer
	b    *ast.Builder
	strs *source.Interner
	err  error
}

func (p *astPrinter) line(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *astPrinter) name(id source.StringID) string {
	s, _ := p.strs.Lookup(id)
	return s
}

func (p *astPrinter) typeName(id ast.TypeID) string {
	if !id.IsValid() {
		return "void"
	}
	te := p.b.Types.Get(id)
	if te == nil {
		return "?"
	}
	return p.name(te.Name)
}

func (p *astPrinter) signature(params []ast.FnParam, ret ast.TypeID) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, param := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", p.name(param.Name), p.typeName(param.Type))
	}
	sb.WriteString(") -> ")
	sb.WriteString(p.typeName(ret))
	return sb.String()
}

func (p *astPrinter) item(depth int, id ast.ItemID) {
	item := p.b.Items.Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemFn:
		fn, _ := p.b.Items.Fn(id)
		params := p.b.Items.Params(fn.ParamsStart, fn.ParamsCount)
		p.line(depth, "fn %s %s", p.name(fn.Name), p.signature(params, fn.ReturnType))
		p.stmt(depth+1, fn.Body)
	case ast.ItemExtern:
		ext, _ := p.b.Items.Extern(id)
		params := p.b.Items.Params(ext.ParamsStart, ext.ParamsCount)
		p.line(depth, "extern fn %s %s", p.name(ext.Name), p.signature(params, ext.ReturnType))
	}
}

func (p *astPrinter) stmt(depth int, id ast.StmtID) {
	stmt := p.b.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		block, _ := p.b.Stmts.Block(id)
		p.line(depth, "block")
		for _, inner := range block.Stmts {
			p.stmt(depth+1, inner)
		}
	case ast.StmtVar:
		decl, _ := p.b.Stmts.Var(id)
		kw := "let"
		if decl.Mutable {
			kw = "var"
		}
		if decl.Type.IsValid() {
			p.line(depth, "%s %s: %s", kw, p.name(decl.Name), p.typeName(decl.Type))
		} else {
			p.line(depth, "%s %s", kw, p.name(decl.Name))
		}
		if decl.Value.IsValid() {
			p.expr(depth+1, decl.Value)
		}
	case ast.StmtReturn:
		ret, _ := p.b.Stmts.Return(id)
		p.line(depth, "return")
		if ret.Value.IsValid() {
			p.expr(depth+1, ret.Value)
		}
	case ast.StmtBreak:
		p.line(depth, "break")
	case ast.StmtContinue:
		p.line(depth, "continue")
	case ast.StmtIf:
		ifData, _ := p.b.Stmts.If(id)
		p.line(depth, "if")
		p.expr(depth+1, ifData.Cond)
		p.stmt(depth+1, ifData.Then)
		if ifData.Else.IsValid() {
			p.line(depth, "else")
			p.stmt(depth+1, ifData.Else)
		}
	case ast.StmtWhile:
		while, _ := p.b.Stmts.While(id)
		p.line(depth, "while")
		p.expr(depth+1, while.Cond)
		p.stmt(depth+1, while.Body)
	case ast.StmtExpr:
		exprStmt, _ := p.b.Stmts.ExprStmt(id)
		p.line(depth, "expr")
		p.expr(depth+1, exprStmt.Expr)
	}
}

func (p *astPrinter) expr(depth int, id ast.ExprID) {
	expr := p.b.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent:
		ident, _ := p.b.Exprs.Ident(id)
		p.line(depth, "ident %s", p.name(ident.Name))
	case ast.ExprLit:
		lit, _ := p.b.Exprs.Literal(id)
		p.line(depth, "lit %s %s", lit.Kind, p.name(lit.Value))
	case ast.ExprBinary:
		bin, _ := p.b.Exprs.Binary(id)
		p.line(depth, "binary %s", bin.Op)
		p.expr(depth+1, bin.Left)
		p.expr(depth+1, bin.Right)
	case ast.ExprUnary:
		un, _ := p.b.Exprs.Unary(id)
		p.line(depth, "unary %s", un.Op)
		p.expr(depth+1, un.Operand)
	case ast.ExprCall:
		call, _ := p.b.Exprs.Call(id)
		p.line(depth, "call")
		p.expr(depth+1, call.Callee)
		for _, arg := range call.Args {
			p.expr(depth+1, arg)
		}
	case ast.ExprGroup:
		group, _ := p.b.Exprs.Group(id)
		p.line(depth, "group")
		p.expr(depth+1, group.Inner)
	}
}
