// Package parser builds the arena AST from the token stream. It recovers
// from errors by resynchronizing to statement or item boundaries, so a
// single parse reports as many findings as possible.
package parser

import (
	"slices"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/lexer"
	"flint/internal/source"
	"flint/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error cap has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds the state for parsing one file.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	interner *source.Interner
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span of the last consumed token, for diagnostics at EOF
}

// ParseFile is the entry point for parsing a single file. It requires an
// already constructed lexer over the source.File.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	interner *source.Interner,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		interner: interner,
		file:     arenas.Files.New(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems is the top-level loop: parse items until EOF.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
		} else {
			p.arenas.PushItem(p.file, itemID)
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseItem dispatches on the first token of a top-level construct.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwFn:
		return p.parseFnItem()
	case token.KwExtern:
		return p.parseExternItem()
	default:
		p.report(diag.SynUnexpectedToken, diag.SevError, p.lx.Peek().Span,
			"expected 'fn' or 'extern' at top level, got "+p.lx.Peek().Kind.String())
		return ast.NoItemID, false
	}
}

// resyncTop recovers after a top-level error: skip to ';', the start of the
// next item, or EOF. A found ';' is consumed.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) && !p.atOr(token.Semicolon, token.KwFn, token.KwExtern) {
		p.advance()
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// parseIdent expects an Ident token and interns its text.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.interner.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got "+p.lx.Peek().Kind.String())
	return source.NoStringID, p.getDiagnosticSpan(), false
}

// parseType expects a type annotation: a bare type name.
func (p *Parser) parseType() (ast.TypeID, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.Types.New(p.interner.Intern(tok.Text), tok.Span), true
	}
	p.err(diag.SynExpectType, "expected type name, got "+p.lx.Peek().Kind.String())
	return ast.NoTypeID, false
}
