package parser

import (
	"flint/internal/ast"
	"flint/internal/token"
)

// parseIfStmt parses: 'if' Expr Block ['else' (IfStmt | Block)]
// An 'else if' chain nests as the Else statement of the outer if.
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	kw := p.advance() // 'if'

	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	then, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	els := ast.NoStmtID
	endSpan := p.arenas.Stmts.Get(then).Span
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			els, ok = p.parseIfStmt()
		} else {
			els, ok = p.parseBlock()
		}
		if !ok {
			return ast.NoStmtID, false
		}
		endSpan = p.arenas.Stmts.Get(els).Span
	}

	return p.arenas.Stmts.NewIf(kw.Span.Cover(endSpan), cond, then, els), true
}

// parseWhileStmt parses: 'while' Expr Block
func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	kw := p.advance() // 'while'

	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	span := kw.Span.Cover(p.arenas.Stmts.Get(body).Span)
	return p.arenas.Stmts.NewWhile(span, cond, body), true
}
