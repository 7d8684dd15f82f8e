package mir

import (
	"fmt"

	"fortio.org/safecast"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/sema"
	"flint/internal/source"
	"flint/internal/symbols"
	"flint/internal/types"
)

// Options configure lowering of one file.
type Options struct {
	Reporter diag.Reporter
}

// LowerModule converts a checked file to MIR. It assumes resolution and
// checking succeeded; the only diagnostic it can add is MissingReturn,
// which needs control-flow knowledge the checker does not have.
func LowerModule(builder *ast.Builder, fileID ast.FileID, symRes *symbols.Result, semaRes *sema.Result, opts Options) *Module {
	out := &Module{
		FuncBySym: make(map[symbols.SymbolID]FuncID),
	}
	if builder == nil || symRes == nil || semaRes == nil {
		return out
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return out
	}

	nextID := FuncID(0)
	for _, itemID := range file.Items {
		switch builder.Items.Get(itemID).Kind {
		case ast.ItemExtern:
			out.Externs = append(out.Externs, lowerExtern(builder, itemID, symRes, semaRes))
		case ast.ItemFn:
			id := nextID
			nextID++
			l := &funcLowerer{
				out:        out,
				builder:    builder,
				symbols:    symRes,
				sema:       semaRes,
				types:      semaRes.TypeInterner,
				reporter:   opts.Reporter,
				symToLocal: make(map[symbols.SymbolID]LocalID),
				nextTemp:   1,
			}
			f := l.lowerFunc(id, itemID)
			if f == nil {
				continue
			}
			out.Funcs = append(out.Funcs, f)
			if f.Sym.IsValid() {
				out.FuncBySym[f.Sym] = id
			}
		}
	}
	return out
}

func lowerExtern(builder *ast.Builder, itemID ast.ItemID, symRes *symbols.Result, semaRes *sema.Result) Extern {
	ext, _ := builder.Items.Extern(itemID)
	out := Extern{
		Sym:  symRes.ItemSymbols[itemID],
		Name: symRes.Table.NameText(ext.Name),
		Span: ext.Span,
	}
	if sig, ok := semaRes.TypeInterner.FnInfo(semaRes.FnTypes[itemID]); ok {
		out.Params = append(out.Params, sig.Params...)
		out.Result = sig.Result
	}
	return out
}

type loopCtx struct {
	breakTarget    BlockID
	continueTarget BlockID
}

type funcLowerer struct {
	out      *Module
	builder  *ast.Builder
	symbols  *symbols.Result
	sema     *sema.Result
	types    *types.Interner
	reporter diag.Reporter

	f   *Func
	cur BlockID
	// reach[i] is true once an edge from a reachable block targets block i.
	// Lowering is structured, so a block's reachability is final before it
	// emits edges of its own.
	reach []bool

	symToLocal map[symbols.SymbolID]LocalID
	nextTemp   uint32
	loopStack  []loopCtx
}

func (l *funcLowerer) lowerFunc(id FuncID, itemID ast.ItemID) *Func {
	fn, ok := l.builder.Items.Fn(itemID)
	if !ok {
		return nil
	}

	result := l.types.Builtins().Void
	if sig, ok := l.types.FnInfo(l.sema.FnTypes[itemID]); ok {
		result = sig.Result
	}

	l.f = &Func{
		ID:     id,
		Sym:    l.symbols.ItemSymbols[itemID],
		Name:   l.symbols.Table.NameText(fn.Name),
		Span:   fn.Span,
		Result: result,
	}

	params := l.builder.Items.Params(fn.ParamsStart, fn.ParamsCount)
	l.f.ParamCount = len(params)
	for idx, paramSym := range l.symbols.ParamSymbols[itemID] {
		sym := l.symbols.Table.Symbol(paramSym)
		name := "_"
		span := source.Span{}
		if idx < len(params) {
			name = l.symbols.Table.NameText(params[idx].Name)
			span = params[idx].Span
		}
		l.ensureLocal(paramSym, name, sym.Type, span)
	}

	entry := l.newBlock()
	l.f.Entry = entry
	l.cur = entry
	l.reach[entry] = true

	if fn.Body.IsValid() {
		l.lowerStmt(fn.Body)
	}

	// Implicit fallthrough. A predecessor-less final block means every
	// path already returned; only a reachable non-returning fallthrough
	// in a non-void function gets the single MissingReturn.
	if !l.curBlock().Terminated() {
		switch {
		case !l.reach[l.cur]:
			l.setTerm(&Terminator{Kind: TermUnreachable})
		case l.types.Kind(l.f.Result) == types.KindVoid:
			l.setTerm(&Terminator{Kind: TermReturn})
		default:
			l.reportMissingReturn(fn)
			l.setTerm(&Terminator{Kind: TermUnreachable})
		}
	}
	for i := range l.f.Blocks {
		if l.f.Blocks[i].Term.Kind == TermNone {
			l.f.Blocks[i].Term.Kind = TermUnreachable
		}
	}
	return l.f
}

func (l *funcLowerer) reportMissingReturn(fn *ast.FnItem) {
	if l.reporter == nil {
		return
	}
	l.reporter.Report(diag.LowerMissingReturn, diag.SevError, fn.NameSpan,
		fmt.Sprintf("function '%s' does not return a value on every path", l.f.Name), nil)
}

func (l *funcLowerer) curBlock() *Block {
	if l.f == nil {
		return nil
	}
	idx := int(l.cur)
	if idx < 0 || idx >= len(l.f.Blocks) {
		return nil
	}
	return &l.f.Blocks[idx]
}

func (l *funcLowerer) newBlock() BlockID {
	raw, err := safecast.Conv[int32](len(l.f.Blocks))
	if err != nil {
		panic(fmt.Errorf("mir: block id overflow: %w", err))
	}
	id := BlockID(raw)
	l.f.Blocks = append(l.f.Blocks, Block{ID: id, Term: Terminator{Kind: TermNone}})
	l.reach = append(l.reach, false)
	return id
}

func (l *funcLowerer) startBlock(id BlockID) {
	l.cur = id
}

func (l *funcLowerer) setTerm(t *Terminator) {
	b := l.curBlock()
	if b == nil || b.Terminated() || t == nil {
		return
	}
	b.Term = *t
	if !l.reach[l.cur] {
		return
	}
	switch t.Kind {
	case TermGoto:
		l.markReachable(t.Goto.Target)
	case TermIf:
		l.markReachable(t.If.Then)
		l.markReachable(t.If.Else)
	}
}

func (l *funcLowerer) markReachable(id BlockID) {
	idx := int(id)
	if idx >= 0 && idx < len(l.reach) {
		l.reach[idx] = true
	}
}

func (l *funcLowerer) emit(ins *Instr) {
	b := l.curBlock()
	if b == nil || b.Terminated() || ins == nil {
		return
	}
	b.Instrs = append(b.Instrs, *ins)
}

func (l *funcLowerer) ensureLocal(sym symbols.SymbolID, name string, ty types.TypeID, span source.Span) LocalID {
	if l.f == nil || !sym.IsValid() {
		return NoLocalID
	}
	if existing, ok := l.symToLocal[sym]; ok {
		return existing
	}
	raw, err := safecast.Conv[int32](len(l.f.Locals))
	if err != nil {
		panic(fmt.Errorf("mir: local id overflow: %w", err))
	}
	id := LocalID(raw)
	l.symToLocal[sym] = id
	l.f.Locals = append(l.f.Locals, Local{Sym: sym, Type: ty, Name: name, Span: span})
	return id
}

func (l *funcLowerer) newTemp(ty types.TypeID, hint string, span source.Span) LocalID {
	raw, err := safecast.Conv[int32](len(l.f.Locals))
	if err != nil {
		panic(fmt.Errorf("mir: local id overflow: %w", err))
	}
	id := LocalID(raw)
	name := fmt.Sprintf("tmp_%s%d", hint, l.nextTemp)
	l.nextTemp++
	l.f.Locals = append(l.f.Locals, Local{Sym: symbols.NoSymbolID, Type: ty, Name: name, Span: span})
	return id
}
