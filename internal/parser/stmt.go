package parser

import (
	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/token"
)

// parseBlockExpr parses `{ stmt* [tail] }` into an ExprBlock.
func (p *Parser) parseBlockExpr() (ast.ExprID, bool) {
	start := p.next.Span.Start
	if !p.Consume(token.LBrace, "statements block") {
		return ast.NoExprID, false
	}

	var data ast.BlockData
loop:
	for {
		switch p.next.Kind {
		case token.RBrace:
			break loop
		case token.EOF:
			p.Unexpected(diag.Kinds(token.RBrace), "statements block")
			return ast.NoExprID, false
		case token.Semicolon:
			p.Advance() // пустой statement
			continue
		}

		stmt, tail, ok := p.parseStmt()
		if !ok {
			return ast.NoExprID, false
		}
		if tail.IsValid() {
			data.Tail = tail
			break
		}
		data.Stmts = append(data.Stmts, stmt)
	}

	if !p.Consume(token.RBrace, "statements block") {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewBlock(p.spanFrom(start), data), true
}

// parseStmt returns either a statement or, for a final expression without
// `;`, the block's tail expression.
func (p *Parser) parseStmt() (ast.StmtID, ast.ExprID, bool) {
	start := p.next.Span.Start
	switch p.next.Kind {
	case token.KwReturn, token.KwDefer:
		kind, node := ast.StmtReturn, "return statement"
		if p.at(token.KwDefer) {
			kind, node = ast.StmtDefer, "defer statement"
		}
		p.Advance()
		value, ok := p.parseExpr()
		if !ok || !p.Consume(token.Semicolon, node) {
			return ast.NoStmtID, ast.NoExprID, false
		}
		return p.b.Stmts.New(kind, p.spanFrom(start), value), ast.NoExprID, true

	case token.KwBreak, token.KwContinue:
		kind, node := ast.StmtBreak, "break statement"
		if p.at(token.KwContinue) {
			kind, node = ast.StmtContinue, "continue statement"
		}
		p.Advance()
		if !p.Consume(token.Semicolon, node) {
			return ast.NoStmtID, ast.NoExprID, false
		}
		return p.b.Stmts.New(kind, p.spanFrom(start), ast.NoExprID), ast.NoExprID, true

	case token.KwLet:
		stmt, ok := p.parseLet()
		return stmt, ast.NoExprID, ok
	}

	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, ast.NoExprID, false
	}
	switch {
	case p.b.Exprs.Get(expr).Kind.WithBlock():
		return p.b.Stmts.NewExpr(p.spanFrom(start), expr, false), ast.NoExprID, true
	case p.at(token.Semicolon):
		p.Advance()
		return p.b.Stmts.NewExpr(p.spanFrom(start), expr, true), ast.NoExprID, true
	case p.at(token.RBrace):
		return ast.NoStmtID, expr, true
	}
	p.Unexpected(diag.Kinds(token.Semicolon), "expression statement")
	return ast.NoStmtID, ast.NoExprID, false
}

func (p *Parser) parseLet() (ast.StmtID, bool) {
	start := p.next.Span.Start
	p.Advance() // let
	pat, ok := p.parsePattern()
	if !ok {
		return ast.NoStmtID, false
	}
	typ := ast.NoTypeID
	if p.at(token.Colon) {
		p.Advance()
		if typ, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.Consume(token.Assign, "let statement") {
		return ast.NoStmtID, false
	}
	value, ok := p.parseExpr()
	if !ok || !p.Consume(token.Semicolon, "let statement") {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewLet(p.spanFrom(start), pat, typ, value), true
}
