package parser

import (
	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/token"
)

// primaryExpected is what may start an expression.
var primaryExpected = diag.Expected{
	"integer literal",
	"float literal",
	"string literal",
	"character literal",
	"boolean literal",
	token.Hash.String(),
	token.Pipe.String(),
	token.LParen.String(),
	token.LBrace.String(),
	token.LBracket.String(),
	"identifier",
	token.KwIf.String(),
	token.KwWhile.String(),
	token.KwMatch.String(),
	token.KwLoop.String(),
}

// ParseExpr parses an expression whose operators bind tighter than prec.
func (p *Parser) ParseExpr(prec token.Precedence, ignoreStruct bool) (ast.ExprID, bool) {
	start := p.next.Span.Start
	left, ok := p.parsePrimary(ignoreStruct)
	if !ok {
		return ast.NoExprID, false
	}

	for prec < token.PrecedenceOf(p.next.Kind) {
		switch k := p.next.Kind; {
		case k == token.LParen:
			left, ok = p.parseCall(start, left)
		case k == token.Dot:
			left, ok = p.parseProperty(start, left)
		case k == token.LBracket:
			left, ok = p.parseGenericArgsExpr(start, left)
		case k == token.KwAs:
			left, ok = p.parseCast(start, left)
		case k == token.LBrace:
			if ignoreStruct {
				return left, true
			}
			left, ok = p.parseStructLiteral(start, left)
		case k.IsBinaryOp():
			left, ok = p.parseBinary(start, left, ignoreStruct)
		case k.IsPostfixOp():
			left, ok = p.parsePostfix(start, left)
		default:
			return left, true
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
	return left, true
}

func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.ParseExpr(token.PrecLowest, false)
}

// parseCondition parses an expression that is followed by a block.
func (p *Parser) parseCondition() (ast.ExprID, bool) {
	return p.ParseExpr(token.PrecLowest, true)
}

func (p *Parser) parsePrimary(ignoreStruct bool) (ast.ExprID, bool) {
	switch k := p.next.Kind; {
	case k.IsLiteral():
		return p.parseLiteral()
	case k == token.Ident:
		p.Advance()
		return p.b.Exprs.NewIdent(p.current.Span, ast.IdentData{Name: p.ident(p.current).Name}), true
	case k == token.LParen:
		return p.parseParenthesized()
	case k == token.LBracket:
		return p.parseListExpr()
	case k == token.LBrace:
		return p.parseBlockExpr()
	case k == token.Pipe, k == token.OrOr:
		return p.parseClosure()
	case k == token.Hash:
		return p.parseTupleExpr()
	case k == token.KwIf:
		return p.parseIf()
	case k == token.KwMatch:
		return p.parseMatch()
	case k == token.KwWhile:
		return p.parseWhile()
	case k == token.KwLoop:
		return p.parseLoop()
	case k.IsPrefixOp():
		return p.parsePrefix(ignoreStruct)
	}
	p.Unexpected(primaryExpected, "expression")
	return ast.NoExprID, false
}

func (p *Parser) parsePrefix(ignoreStruct bool) (ast.ExprID, bool) {
	op := p.next
	p.Advance()
	inner, ok := p.ParseExpr(token.PrecUnary, ignoreStruct)
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewUnary(ast.ExprPrefix, p.spanFrom(op.Span.Start), ast.UnaryData{
		Op:      op.Kind,
		OpSpan:  op.Span,
		Operand: inner,
	}), true
}

func (p *Parser) parsePostfix(start uint32, left ast.ExprID) (ast.ExprID, bool) {
	p.Advance()
	op := p.current
	return p.b.Exprs.NewUnary(ast.ExprPostfix, p.spanFrom(start), ast.UnaryData{
		Op:      op.Kind,
		OpSpan:  op.Span,
		Operand: left,
	}), true
}

func (p *Parser) parseBinary(start uint32, left ast.ExprID, ignoreStruct bool) (ast.ExprID, bool) {
	op := p.next
	p.Advance()
	right, ok := p.ParseExpr(token.PrecedenceOf(op.Kind), ignoreStruct)
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewBinary(p.spanFrom(start), ast.BinaryData{
		Op:     op.Kind,
		OpSpan: op.Span,
		Left:   left,
		Right:  right,
	}), true
}

func (p *Parser) parseCall(start uint32, left ast.ExprID) (ast.ExprID, bool) {
	p.Advance() // (
	var args []ast.ExprID
	ok := p.parseList(token.RParen, "call arguments list", func() bool {
		arg, ok := p.parseExpr()
		args = append(args, arg)
		return ok
	})
	if !ok {
		return ast.NoExprID, false
	}
	p.Advance() // )
	return p.b.Exprs.NewCall(p.spanFrom(start), ast.CallData{Callee: left, Args: args}), true
}

func (p *Parser) parseProperty(start uint32, left ast.ExprID) (ast.ExprID, bool) {
	p.Advance() // .
	name, ok := p.ConsumeIdent("property")
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewProperty(p.spanFrom(start), ast.PropertyData{Left: left, Name: name}), true
}

func (p *Parser) parseGenericArgsExpr(start uint32, left ast.ExprID) (ast.ExprID, bool) {
	args, ok := p.parseTypeArgs()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewGenericArgs(p.spanFrom(start), ast.GenericArgsData{Left: left, Args: args}), true
}

func (p *Parser) parseCast(start uint32, left ast.ExprID) (ast.ExprID, bool) {
	p.Advance() // as
	typ, ok := p.parseType()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewCast(p.spanFrom(start), ast.CastData{Value: left, Type: typ}), true
}

func (p *Parser) parseStructLiteral(start uint32, left ast.ExprID) (ast.ExprID, bool) {
	p.Advance() // {
	var fields []ast.StructField
	ok := p.parseList(token.RBrace, "struct expression", func() bool {
		name, ok := p.ConsumeIdent("struct field")
		if !ok {
			return false
		}
		field := ast.StructField{Name: name}
		if p.at(token.Colon) {
			p.Advance()
			if field.Value, ok = p.parseExpr(); !ok {
				return false
			}
		}
		fields = append(fields, field)
		return true
	})
	if !ok {
		return ast.NoExprID, false
	}
	p.Advance() // }
	return p.b.Exprs.NewStruct(p.spanFrom(start), ast.StructData{Left: left, Fields: fields}), true
}

func (p *Parser) parseParenthesized() (ast.ExprID, bool) {
	start := p.next.Span.Start
	p.Advance() // (
	inner, ok := p.ParseExpr(token.PrecLowest, false)
	if !ok || !p.Consume(token.RParen, "parenthesized expression") {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewParen(p.spanFrom(start), ast.ParenData{Inner: inner}), true
}

func (p *Parser) parseListExpr() (ast.ExprID, bool) {
	start := p.next.Span.Start
	p.Advance() // [
	elems, ok := p.parseExprList(token.RBracket, "list expression")
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewElems(ast.ExprList, p.spanFrom(start), ast.ElemsData{Elems: elems}), true
}

func (p *Parser) parseTupleExpr() (ast.ExprID, bool) {
	start := p.next.Span.Start
	p.Advance() // #
	if !p.Consume(token.LParen, "tuple expression") {
		return ast.NoExprID, false
	}
	elems, ok := p.parseExprList(token.RParen, "tuple expression")
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewElems(ast.ExprTuple, p.spanFrom(start), ast.ElemsData{Elems: elems}), true
}

// parseExprList parses expressions up to closer and consumes the closer.
func (p *Parser) parseExprList(closer token.Kind, node string) ([]ast.ExprID, bool) {
	var elems []ast.ExprID
	ok := p.parseList(closer, node, func() bool {
		e, ok := p.parseExpr()
		elems = append(elems, e)
		return ok
	})
	if !ok {
		return nil, false
	}
	p.Advance()
	return elems, true
}

func (p *Parser) parseClosure() (ast.ExprID, bool) {
	start := p.next.Span.Start
	var params []ast.Param

	// `||` лексится одним токеном: замыкание без параметров
	if p.at(token.OrOr) {
		p.Advance()
	} else {
		p.Advance() // |
		ok := p.parseList(token.Pipe, "function expression parameters", func() bool {
			param, ok := p.parseParam(false)
			params = append(params, param)
			return ok
		})
		if !ok {
			return ast.NoExprID, false
		}
		p.Advance() // |
	}

	ret := ast.NoTypeID
	if p.at(token.Colon) {
		p.Advance()
		var ok bool
		if ret, ok = p.parseType(); !ok {
			return ast.NoExprID, false
		}
	}
	body, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewClosure(p.spanFrom(start), ast.ClosureData{Params: params, Return: ret, Body: body}), true
}

// parseIf parses an if / else if / else chain iteratively.
func (p *Parser) parseIf() (ast.ExprID, bool) {
	start := p.next.Span.Start
	p.Advance() // if

	var data ast.IfData
	for {
		cond, ok := p.parseCondition()
		if !ok {
			return ast.NoExprID, false
		}
		body, ok := p.parseBlockExpr()
		if !ok {
			return ast.NoExprID, false
		}
		data.Branches = append(data.Branches, ast.IfBranch{Cond: cond, Body: body})

		if !p.at(token.KwElse) {
			break
		}
		p.Advance() // else
		if !p.at(token.KwIf) {
			if data.Else, ok = p.parseBlockExpr(); !ok {
				return ast.NoExprID, false
			}
			break
		}
		p.Advance() // if
	}
	return p.b.Exprs.NewIf(p.spanFrom(start), data), true
}

func (p *Parser) parseWhile() (ast.ExprID, bool) {
	start := p.next.Span.Start
	p.Advance() // while
	cond, ok := p.parseCondition()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewWhile(p.spanFrom(start), ast.WhileData{Cond: cond, Body: body}), true
}

func (p *Parser) parseLoop() (ast.ExprID, bool) {
	start := p.next.Span.Start
	p.Advance() // loop
	body, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewLoop(p.spanFrom(start), ast.LoopData{Body: body}), true
}

// parseMatch parses `match scrutinee { pattern => expr, ... }`. A comma
// after an arm whose body ends in a block may be omitted.
func (p *Parser) parseMatch() (ast.ExprID, bool) {
	start := p.next.Span.Start
	p.Advance() // match
	scrutinee, ok := p.parseCondition()
	if !ok || !p.Consume(token.LBrace, "match expression block") {
		return ast.NoExprID, false
	}

	var arms []ast.MatchArm
	lastWithBlock := false
	ok = p.parseListSep(token.RBrace, "match expression block", func() bool {
		armStart := p.next.Span.Start
		pat, ok := p.parsePattern()
		if !ok || !p.Consume(token.FatArrow, "match expression unit") {
			return false
		}
		body, ok := p.parseExpr()
		if !ok {
			return false
		}
		lastWithBlock = p.b.Exprs.Get(body).Kind.WithBlock()
		arms = append(arms, ast.MatchArm{Pattern: pat, Body: body, Span: p.spanFrom(armStart)})
		return true
	}, func() bool { return lastWithBlock })
	if !ok {
		return ast.NoExprID, false
	}
	p.Advance() // }
	return p.b.Exprs.NewMatch(p.spanFrom(start), ast.MatchData{Scrutinee: scrutinee, Arms: arms}), true
}
