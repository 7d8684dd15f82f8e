package parser

import (
	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/token"
)

// parseBlock parses: '{' {Stmt} '}'
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	lbrace, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}

	var stmts []ast.StmtID
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.report(diag.SynUnclosedBrace, diag.SevError, lbrace.Span, "unclosed '{'")
			return ast.NoStmtID, false
		}
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		stmts = append(stmts, stmt)
	}
	rbrace := p.advance() // '}'

	span := lbrace.Span.Cover(rbrace.Span)
	return p.arenas.Stmts.NewBlock(span, stmts), true
}

// parseStmt dispatches on the first token of a statement.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwVar, token.KwLet:
		return p.parseVarStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwBreak:
		tok := p.advance()
		semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after 'break'")
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewBreak(tok.Span.Cover(semi.Span)), true
	case token.KwContinue:
		tok := p.advance()
		semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after 'continue'")
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewContinue(tok.Span.Cover(semi.Span)), true
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.LBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

// parseVarStmt parses: ('var'|'let') Ident [':' Type] '=' Expr ';'
func (p *Parser) parseVarStmt() (ast.StmtID, bool) {
	kw := p.advance()
	mutable := kw.Kind == token.KwVar

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}

	typ := ast.NoTypeID
	if p.at(token.Colon) {
		p.advance()
		typ, ok = p.parseType()
		if !ok {
			return ast.NoStmtID, false
		}
	}

	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in declaration"); !ok {
		return ast.NoStmtID, false
	}

	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration")
	if !ok {
		return ast.NoStmtID, false
	}

	span := kw.Span.Cover(semi.Span)
	return p.arenas.Stmts.NewVar(span, name, nameSpan, typ, value, mutable), true
}

// parseReturnStmt parses: 'return' [Expr] ';'
func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	kw := p.advance()

	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		value, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after return")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(kw.Span.Cover(semi.Span), value), true
}

// parseExprStmt parses: Expr ';'
func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExprStmt(start.Cover(semi.Span), expr), true
}

// resyncStmt recovers after a statement error: skip to just past ';', or to
// a token that can start a statement, or to '}' / EOF.
func (p *Parser) resyncStmt() {
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace,
			token.KwVar, token.KwLet, token.KwReturn, token.KwBreak,
			token.KwContinue, token.KwIf, token.KwWhile:
			return
		}
		p.advance()
	}
}
