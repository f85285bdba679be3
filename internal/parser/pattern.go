package parser

import (
	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/token"
)

var patternExpected = diag.Expected{
	"literal",
	"identifier",
	token.DotDot.String(),
	token.Hash.String(),
	token.LBracket.String(),
	token.LParen.String(),
}

// parsePattern parses `p | q | ...`; alternation binds loosest.
func (p *Parser) parsePattern() (ast.PatternID, bool) {
	start := p.next.Span.Start
	first, ok := p.parseSinglePattern()
	if !ok {
		return ast.NoPatternID, false
	}
	if !p.at(token.Pipe) {
		return first, true
	}
	alts := []ast.PatternID{first}
	for p.at(token.Pipe) {
		p.Advance()
		alt, ok := p.parseSinglePattern()
		if !ok {
			return ast.NoPatternID, false
		}
		alts = append(alts, alt)
	}
	return p.b.Patterns.New(ast.PatOr, p.spanFrom(start), &ast.PatternData{Elems: alts}), true
}

func (p *Parser) parseSinglePattern() (ast.PatternID, bool) {
	start := p.next.Span.Start
	switch k := p.next.Kind; {
	case k.IsLiteral():
		lit, ok := p.parseLiteral()
		if !ok {
			return ast.NoPatternID, false
		}
		return p.b.Patterns.New(ast.PatLiteral, p.spanFrom(start), &ast.PatternData{Literal: lit}), true

	case k == token.Minus:
		// отрицательные числа: `-1`, `-2.5`
		op := p.next
		p.Advance()
		if !p.at(token.IntLit) && !p.at(token.FloatLit) {
			p.Unexpected(diag.Expected{"integer literal", "float literal"}, "pattern")
			return ast.NoPatternID, false
		}
		lit, _ := p.parseLiteral()
		neg := p.b.Exprs.NewUnary(ast.ExprPrefix, p.spanFrom(start), ast.UnaryData{Op: op.Kind, OpSpan: op.Span, Operand: lit})
		return p.b.Patterns.New(ast.PatLiteral, p.spanFrom(start), &ast.PatternData{Literal: neg}), true

	case k == token.Ident:
		if p.next.Text == "_" {
			p.Advance()
			return p.b.Patterns.New(ast.PatWildcard, p.current.Span, nil), true
		}
		return p.parsePathPattern()

	case k == token.DotDot:
		p.Advance()
		return p.b.Patterns.New(ast.PatRest, p.current.Span, nil), true

	case k == token.Hash:
		p.Advance()
		if !p.Consume(token.LParen, "tuple pattern") {
			return ast.NoPatternID, false
		}
		elems, ok := p.parsePatternList(token.RParen, "tuple pattern")
		if !ok {
			return ast.NoPatternID, false
		}
		return p.b.Patterns.New(ast.PatTuple, p.spanFrom(start), &ast.PatternData{Elems: elems}), true

	case k == token.LBracket:
		p.Advance()
		elems, ok := p.parsePatternList(token.RBracket, "list pattern")
		if !ok {
			return ast.NoPatternID, false
		}
		return p.b.Patterns.New(ast.PatList, p.spanFrom(start), &ast.PatternData{Elems: elems}), true

	case k == token.LParen:
		p.Advance()
		inner, ok := p.parsePattern()
		if !ok || !p.Consume(token.RParen, "grouped pattern") {
			return ast.NoPatternID, false
		}
		return p.b.Patterns.New(ast.PatGroup, p.spanFrom(start), &ast.PatternData{Sub: inner}), true
	}

	p.Unexpected(patternExpected, "pattern")
	return ast.NoPatternID, false
}

// parsePathPattern handles everything that starts with a name:
// `x`, `x @ p`, `a.b`, `Some(p)`, `Point { x, y: p, .. }`.
func (p *Parser) parsePathPattern() (ast.PatternID, bool) {
	start := p.next.Span.Start
	path, ok := p.parsePath("path pattern")
	if !ok {
		return ast.NoPatternID, false
	}

	switch {
	case p.at(token.LParen):
		p.Advance()
		elems, ok := p.parsePatternList(token.RParen, "tuple-like pattern")
		if !ok {
			return ast.NoPatternID, false
		}
		return p.b.Patterns.New(ast.PatTupleLike, p.spanFrom(start), &ast.PatternData{Path: path, Elems: elems}), true

	case p.at(token.LBrace):
		return p.parseStructPattern(start, path)

	case path.IsSingle():
		data := &ast.PatternData{Name: path.Last()}
		if p.at(token.At) {
			p.Advance()
			if data.Sub, ok = p.parsePattern(); !ok {
				return ast.NoPatternID, false
			}
		}
		return p.b.Patterns.New(ast.PatIdent, p.spanFrom(start), data), true
	}
	return p.b.Patterns.New(ast.PatPath, p.spanFrom(start), &ast.PatternData{Path: path}), true
}

func (p *Parser) parseStructPattern(start uint32, path ast.Path) (ast.PatternID, bool) {
	p.Advance() // {
	data := &ast.PatternData{Path: path}
	ok := p.parseList(token.RBrace, "struct pattern", func() bool {
		if p.at(token.DotDot) {
			p.Advance()
			data.HasRest = true
			return true
		}
		name, ok := p.ConsumeIdent("struct pattern field")
		if !ok {
			return false
		}
		field := ast.StructPatternField{Name: name}
		if p.at(token.Colon) {
			p.Advance()
			if field.Pattern, ok = p.parsePattern(); !ok {
				return false
			}
		}
		data.Fields = append(data.Fields, field)
		return true
	})
	if !ok {
		return ast.NoPatternID, false
	}
	p.Advance() // }
	return p.b.Patterns.New(ast.PatStruct, p.spanFrom(start), data), true
}

// parsePatternList parses patterns up to closer and consumes the closer.
func (p *Parser) parsePatternList(closer token.Kind, node string) ([]ast.PatternID, bool) {
	var out []ast.PatternID
	ok := p.parseList(closer, node, func() bool {
		pat, ok := p.parsePattern()
		out = append(out, pat)
		return ok
	})
	if !ok {
		return nil, false
	}
	p.Advance()
	return out, true
}
