package driver

import (
	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/lexer"
	"flint/internal/parser"
	"flint/internal/source"
)

// ParseResult carries a parsed file and its AST arenas.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse lexes and parses one file. Identifiers go into the process-wide
// string table.
func Parse(cfg Config) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	return parseLoaded(fs, fileID, cfg.maxDiagnostics())
}

func parseLoaded(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) (*ParseResult, error) {
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	result := parser.ParseFile(fs, lx, builder, source.Strings(), parser.Options{Reporter: reporter})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  result.File,
		Bag:     bag,
	}, nil
}
