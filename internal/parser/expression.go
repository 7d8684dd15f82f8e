package parser

import (
	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/source"
	"flint/internal/token"
)

// parseExpr is the entry point for expression parsing.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr implements precedence climbing. minPrec is the lowest
// operator precedence this level may consume.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()

		prec, isRightAssoc := p.getBinaryOperatorPrec(tok.Kind)
		if prec < minPrec || prec < 0 {
			break
		}

		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}

		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after '"+opTok.Text+"'")
			return ast.NoExprID, false
		}

		op := p.tokenKindToBinaryOp(opTok.Kind)
		if op == ast.ExprBinaryAssign {
			// only a plain name can be assigned to
			if lhs := p.arenas.Exprs.Get(left); lhs != nil && lhs.Kind != ast.ExprIdent {
				p.report(diag.SynInvalidAssignTarget, diag.SevError, lhs.Span,
					"left side of '=' must be a variable name")
			}
		}
		leftSpan := p.arenas.Exprs.Get(left).Span
		rightSpan := p.arenas.Exprs.Get(right).Span
		finalSpan := leftSpan.Cover(rightSpan)

		left = p.arenas.Exprs.NewBinary(finalSpan, op, left, right)
	}

	return left, true
}

// parseUnaryExpr handles prefix operators.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.ExprUnaryOp
		span source.Span
	}

	var prefixes []prefixOp
	for {
		op, ok := p.getUnaryOperator(p.lx.Peek().Kind)
		if !ok {
			break
		}
		opTok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: opTok.Span})
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// apply prefixes right to left
	for i := len(prefixes) - 1; i >= 0; i-- {
		exprSpan := p.arenas.Exprs.Get(expr).Span
		finalSpan := prefixes[i].span.Cover(exprSpan)
		expr = p.arenas.Exprs.NewUnary(finalSpan, prefixes[i].op, expr)
	}

	return expr, true
}

// parsePostfixExpr handles call suffixes.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for p.at(token.LParen) {
		expr, ok = p.parseCallExpr(expr)
		if !ok {
			return ast.NoExprID, false
		}
	}
	return expr, true
}

// parseCallExpr parses the argument list of callee(args...).
func (p *Parser) parseCallExpr(callee ast.ExprID) (ast.ExprID, bool) {
	lparen := p.advance() // '('

	var args []ast.ExprID
	for !p.at(token.RParen) {
		if p.at(token.EOF) {
			p.report(diag.SynUnclosedParen, diag.SevError, lparen.Span, "unclosed '(' in call")
			return ast.NoExprID, false
		}
		arg, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	rparen, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after arguments")
	if !ok {
		return ast.NoExprID, false
	}

	span := p.arenas.Exprs.Get(callee).Span.Cover(rparen.Span)
	return p.arenas.Exprs.NewCall(span, callee, args), true
}

// parsePrimaryExpr handles identifiers, literals, and parenthesized
// expressions.
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.interner.Intern(tok.Text)), true

	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitInt, p.interner.Intern(tok.Text)), true

	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitFloat, p.interner.Intern(tok.Text)), true

	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitString, p.interner.Intern(tok.Text)), true

	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitBool, p.interner.Intern(tok.Text)), true

	case token.LParen:
		lparen := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		rparen, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewGroup(lparen.Span.Cover(rparen.Span), inner), true

	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+tok.Kind.String())
		return ast.NoExprID, false
	}
}
