package parser

import (
	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/token"
)

// parseExternItem parses: 'extern' 'fn' Ident '(' params ')' ['->' Type] ';'
func (p *Parser) parseExternItem() (ast.ItemID, bool) {
	externTok := p.advance() // 'extern'

	if _, ok := p.expect(token.KwFn, diag.SynUnexpectedToken, "expected 'fn' after 'extern'"); !ok {
		return ast.NoItemID, false
	}

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	params, ok := p.parseFnParams()
	if !ok {
		return ast.NoItemID, false
	}

	returnType := ast.NoTypeID
	if p.at(token.Arrow) {
		p.advance()
		returnType, ok = p.parseType()
		if !ok {
			return ast.NoItemID, false
		}
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after extern declaration")
	if !ok {
		return ast.NoItemID, false
	}

	span := externTok.Span.Cover(semi.Span)
	return p.arenas.Items.NewExtern(name, nameSpan, params, returnType, span), true
}
