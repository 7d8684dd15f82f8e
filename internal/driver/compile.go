package driver

import (
	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/mir"
	"flint/internal/observ"
	"flint/internal/sema"
	"flint/internal/source"
	"flint/internal/symbols"
	"flint/internal/types"
)

// UnitResult is the outcome of compiling one file to MIR. Stages that did
// not run because an earlier one failed leave their fields nil; Bag is
// always set.
type UnitResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Symbols *symbols.Result
	Sema    *sema.Result
	Types   *types.Interner
	Module  *mir.Module
	Bag     *diag.Bag
}

// Failed reports whether compilation stopped before producing MIR.
func (r *UnitResult) Failed() bool {
	return r == nil || r.Bag.HasErrors()
}

// CompileUnit runs the full front end over one file: lex and parse, then
// resolve, check and lower. The pipeline stops at the first stage that
// left error diagnostics in the bag.
func CompileUnit(cfg Config) (*UnitResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	return compileLoaded(fs, fileID, cfg), nil
}

// CompileSource compiles in-memory source under the given name. Used by
// tests and embedders; diagnostics resolve against the virtual file.
func CompileSource(name string, src []byte, cfg Config) *UnitResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return compileLoaded(fs, fileID, cfg)
}

func compileLoaded(fs *source.FileSet, fileID source.FileID, cfg Config) *UnitResult {
	var timer *observ.Timer
	if cfg.Timings {
		timer = observ.NewTimer()
	}
	begin := func(name string) int {
		if timer == nil {
			return -1
		}
		return timer.Begin(name)
	}
	end := func(idx int) {
		if timer != nil {
			timer.End(idx, "")
		}
	}
	finish := func(res *UnitResult) *UnitResult {
		if timer != nil {
			appendTimingDiagnostic(res.Bag, fs.Get(fileID).Path, timer)
		}
		return res
	}

	phase := begin("parse")
	pr, _ := parseLoaded(fs, fileID, cfg.maxDiagnostics())
	end(phase)
	res := &UnitResult{
		FileSet: pr.FileSet,
		File:    pr.File,
		Builder: pr.Builder,
		FileID:  pr.FileID,
		Bag:     pr.Bag,
	}
	if res.Bag.HasErrors() {
		return finish(res)
	}
	reporter := diag.BagReporter{Bag: res.Bag}

	phase = begin("resolve")
	res.Types = types.NewInterner()
	syms := symbols.ResolveFile(res.Builder, res.FileID, source.Strings(), symbols.ResolveOptions{
		Reporter: reporter,
		Types:    res.Types,
	})
	end(phase)
	res.Symbols = &syms
	if res.Bag.HasErrors() {
		return finish(res)
	}

	phase = begin("check")
	semaRes := sema.Check(res.Builder, res.FileID, sema.Options{
		Reporter: reporter,
		Symbols:  res.Symbols,
		Types:    res.Types,
	})
	end(phase)
	res.Sema = &semaRes
	if res.Bag.HasErrors() {
		return finish(res)
	}

	phase = begin("lower")
	res.Module = mir.LowerModule(res.Builder, res.FileID, res.Symbols, res.Sema, mir.Options{Reporter: reporter})
	end(phase)
	return finish(res)
}
