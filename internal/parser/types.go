package parser

import (
	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/source"
	"stellar/internal/token"
)

var typeExpected = diag.Expected{
	"identifier",
	token.Hash.String(),
	token.KwFun.String(),
	token.KwDyn.String(),
}

func (p *Parser) parseType() (ast.TypeID, bool) {
	start := p.next.Span.Start
	switch p.next.Kind {
	case token.Ident:
		if p.next.Text == "_" {
			p.Advance()
			return p.b.Types.NewInfer(p.current.Span), true
		}
		path, ok := p.parsePath("type path")
		if !ok {
			return ast.NoTypeID, false
		}
		var args []ast.TypeID
		if p.at(token.LBracket) {
			if args, ok = p.parseTypeArgs(); !ok {
				return ast.NoTypeID, false
			}
		}
		return p.b.Types.NewPath(p.spanFrom(start), path, args), true

	case token.Hash:
		p.Advance()
		if !p.Consume(token.LParen, "tuple type") {
			return ast.NoTypeID, false
		}
		elems, ok := p.parseTypeList(token.RParen, "tuple type")
		if !ok {
			return ast.NoTypeID, false
		}
		return p.b.Types.NewTuple(p.spanFrom(start), elems), true

	case token.KwFun:
		p.Advance()
		if !p.Consume(token.LParen, "function type") {
			return ast.NoTypeID, false
		}
		params, ok := p.parseTypeList(token.RParen, "function type parameters")
		if !ok {
			return ast.NoTypeID, false
		}
		ret := ast.NoTypeID
		if p.at(token.Colon) {
			p.Advance()
			if ret, ok = p.parseType(); !ok {
				return ast.NoTypeID, false
			}
		}
		return p.b.Types.NewFun(p.spanFrom(start), params, ret), true

	case token.KwDyn:
		p.Advance()
		bounds, ok := p.parseBounds()
		if !ok {
			return ast.NoTypeID, false
		}
		return p.b.Types.NewDyn(p.spanFrom(start), bounds), true
	}

	p.Unexpected(typeExpected, "type")
	return ast.NoTypeID, false
}

// parseTypeArgs parses `[T, U]`, brackets included.
func (p *Parser) parseTypeArgs() ([]ast.TypeID, bool) {
	if !p.Consume(token.LBracket, "generic arguments") {
		return nil, false
	}
	return p.parseTypeList(token.RBracket, "generic arguments")
}

// parseTypeList parses types up to closer and consumes the closer.
func (p *Parser) parseTypeList(closer token.Kind, node string) ([]ast.TypeID, bool) {
	var out []ast.TypeID
	ok := p.parseList(closer, node, func() bool {
		t, ok := p.parseType()
		out = append(out, t)
		return ok
	})
	if !ok {
		return nil, false
	}
	p.Advance()
	return out, true
}

// parseBounds parses `A + B + C`.
func (p *Parser) parseBounds() ([]ast.TypeID, bool) {
	var bounds []ast.TypeID
	for {
		t, ok := p.parseType()
		if !ok {
			return nil, false
		}
		bounds = append(bounds, t)
		if !p.at(token.Plus) {
			return bounds, true
		}
		p.Advance()
	}
}

// parsePath parses `a.b.c`.
func (p *Parser) parsePath(node string) (ast.Path, bool) {
	first, ok := p.ConsumeIdent(node)
	if !ok {
		return ast.Path{}, false
	}
	path := ast.Path{Segments: []ast.Ident{first}}
	for p.at(token.Dot) {
		p.Advance()
		seg, ok := p.ConsumeIdent(node)
		if !ok {
			return ast.Path{}, false
		}
		path.Segments = append(path.Segments, seg)
	}
	path.Span = source.Span{File: p.file, Start: first.Span.Start, End: p.current.Span.End}
	return path, true
}

// parseGenerics parses an optional `[T: A + B = D, ...]` parameter list.
func (p *Parser) parseGenerics() ([]ast.GenericParam, bool) {
	if !p.at(token.LBracket) {
		return nil, true
	}
	p.Advance()
	var params []ast.GenericParam
	ok := p.parseList(token.RBracket, "generic parameters", func() bool {
		name, ok := p.ConsumeIdent("generic parameter")
		if !ok {
			return false
		}
		gp := ast.GenericParam{Name: name}
		if p.at(token.Colon) {
			p.Advance()
			if gp.Bounds, ok = p.parseBounds(); !ok {
				return false
			}
		}
		if p.at(token.Assign) {
			p.Advance()
			if gp.Default, ok = p.parseType(); !ok {
				return false
			}
		}
		params = append(params, gp)
		return true
	})
	if !ok {
		return nil, false
	}
	p.Advance() // ]
	return params, true
}

// parseWhere parses an optional `where T: A + B, U: C` clause. The clause
// ends before `{`, `;` or anything that is not a `,`.
func (p *Parser) parseWhere() ([]ast.WherePredicate, bool) {
	if !p.at(token.KwWhere) {
		return nil, true
	}
	p.Advance()
	var preds []ast.WherePredicate
	for {
		typ, ok := p.parseType()
		if !ok || !p.Consume(token.Colon, "where clause") {
			return nil, false
		}
		bounds, ok := p.parseBounds()
		if !ok {
			return nil, false
		}
		preds = append(preds, ast.WherePredicate{Type: typ, Bounds: bounds})

		if !p.at(token.Comma) {
			return preds, true
		}
		p.Advance()
		if p.at(token.LBrace) || p.at(token.Semicolon) {
			return preds, true
		}
	}
}
