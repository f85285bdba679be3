package parser

import (
	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/source"
	"stellar/internal/token"
)

var itemExpected = diag.Kinds(
	token.KwImport,
	token.KwFun,
	token.KwStruct,
	token.KwEnum,
	token.KwInterface,
	token.KwType,
)

// parseItem parses one module-level item with its leading doc comments and
// visibility.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	doc, hasDoc := p.ConsumeDocComments(false)
	start := p.next.Span.Start
	vis := p.ConsumeVisibility()
	hdr := ast.Item{Vis: vis, Doc: doc, HasDoc: hasDoc}

	switch p.next.Kind {
	case token.KwImport:
		if vis.Public {
			p.report(diag.UnnecessaryVisibility{Pub: vis.Span, Context: diag.InImport}.Build())
		}
		return p.parseImport(start, hdr)
	case token.KwFun:
		return p.parseFun(start, hdr)
	case token.KwStruct:
		return p.parseStruct(start, hdr)
	case token.KwEnum:
		return p.parseEnum(start, hdr)
	case token.KwInterface:
		return p.parseInterface(start, hdr)
	case token.KwType:
		return p.parseTypeAlias(start, hdr)
	}

	p.Unexpected(itemExpected, "item")
	return ast.NoItemID, false
}

// import std.io as stdio;
func (p *Parser) parseImport(start uint32, hdr ast.Item) (ast.ItemID, bool) {
	p.Advance() // import
	path, ok := p.parsePath("import path")
	if !ok {
		return ast.NoItemID, false
	}
	data := ast.ImportItem{Path: path}
	if p.at(token.KwAs) {
		p.Advance()
		if data.Alias, ok = p.ConsumeIdent("import alias"); !ok {
			return ast.NoItemID, false
		}
	}
	if !p.Consume(token.Semicolon, "import") {
		return ast.NoItemID, false
	}
	hdr.Span = p.spanFrom(start)
	return p.b.Items.NewImport(hdr, data), true
}

func (p *Parser) parseFun(start uint32, hdr ast.Item) (ast.ItemID, bool) {
	p.Advance() // fun
	var ok bool
	if hdr.Name, ok = p.ConsumeIdent("function name"); !ok {
		return ast.NoItemID, false
	}

	var data ast.FunItem
	if data.Generics, ok = p.parseGenerics(); !ok {
		return ast.NoItemID, false
	}
	if !p.Consume(token.LParen, "function") {
		return ast.NoItemID, false
	}
	ok = p.parseList(token.RParen, "function parameters", func() bool {
		param, ok := p.parseParam(true)
		data.Params = append(data.Params, param)
		return ok
	})
	if !ok {
		return ast.NoItemID, false
	}
	p.Advance() // )

	data.Return = ast.NoTypeID
	if p.at(token.Colon) {
		p.Advance()
		if data.Return, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}
	if data.Where, ok = p.parseWhere(); !ok {
		return ast.NoItemID, false
	}

	data.Body = ast.NoExprID
	switch p.next.Kind {
	case token.Semicolon:
		p.Advance()
	case token.LBrace:
		if data.Body, ok = p.parseBlockExpr(); !ok {
			return ast.NoItemID, false
		}
	default:
		p.Unexpected(diag.Kinds(token.Semicolon, token.LBrace), "function")
		return ast.NoItemID, false
	}

	hdr.Span = p.spanFrom(start)
	return p.b.Items.NewFun(hdr, data), true
}

// parseParam parses `name [: Type] [= default]`. Function parameters must
// carry a type, except for a bare `self`. Closure parameters take neither a
// required type nor a default: the closing `|` would read as an operator.
func (p *Parser) parseParam(requireType bool) (ast.Param, bool) {
	start := p.next.Span.Start
	name, ok := p.ConsumeIdent("function parameter")
	if !ok {
		return ast.Param{}, false
	}
	param := ast.Param{Name: name, Type: ast.NoTypeID, Default: ast.NoExprID}

	if p.at(token.Colon) {
		p.Advance()
		if param.Type, ok = p.parseType(); !ok {
			return ast.Param{}, false
		}
	} else if requireType && name.Name != source.SymSelfValue {
		p.Unexpected(diag.Kinds(token.Colon), "function parameter")
		return ast.Param{}, false
	}

	if requireType && p.at(token.Assign) {
		p.Advance()
		if param.Default, ok = p.parseExpr(); !ok {
			return ast.Param{}, false
		}
	}
	param.Span = p.spanFrom(start)
	return param, true
}

func (p *Parser) parseStruct(start uint32, hdr ast.Item) (ast.ItemID, bool) {
	p.Advance() // struct
	var ok bool
	if hdr.Name, ok = p.ConsumeIdent("struct name"); !ok {
		return ast.NoItemID, false
	}

	var data ast.StructItem
	if data.Generics, ok = p.parseGenerics(); !ok {
		return ast.NoItemID, false
	}
	if p.at(token.KwImplements) {
		p.Advance()
		for {
			t, ok := p.parseType()
			if !ok {
				return ast.NoItemID, false
			}
			data.Implements = append(data.Implements, t)
			if !p.at(token.Comma) {
				break
			}
			p.Advance()
		}
	}
	if data.Where, ok = p.parseWhere(); !ok {
		return ast.NoItemID, false
	}

	switch p.next.Kind {
	case token.Semicolon:
		p.Advance()
		data.Opaque = true
	case token.LBrace:
		p.Advance()
		if data.Fields, ok = p.parseFields("struct fields"); !ok {
			return ast.NoItemID, false
		}
	default:
		p.Unexpected(diag.Kinds(token.Semicolon, token.LBrace), "struct")
		return ast.NoItemID, false
	}

	hdr.Span = p.spanFrom(start)
	return p.b.Items.NewStruct(hdr, data), true
}

// parseFields parses `[///doc] [pub] name: Type, ...}` after the opening
// brace and consumes the closing one.
func (p *Parser) parseFields(node string) ([]ast.FieldDecl, bool) {
	var fields []ast.FieldDecl
	ok := p.parseList(token.RBrace, node, func() bool {
		doc, hasDoc := p.ConsumeDocComments(false)
		start := p.next.Span.Start
		f := ast.FieldDecl{Doc: doc, HasDoc: hasDoc, Vis: p.ConsumeVisibility()}
		var ok bool
		if f.Name, ok = p.ConsumeIdent("struct field"); !ok {
			return false
		}
		if !p.Consume(token.Colon, "struct field") {
			return false
		}
		if f.Type, ok = p.parseType(); !ok {
			return false
		}
		f.Span = p.spanFrom(start)
		fields = append(fields, f)
		return true
	})
	if !ok {
		return nil, false
	}
	p.Advance() // }
	return fields, true
}

func (p *Parser) parseEnum(start uint32, hdr ast.Item) (ast.ItemID, bool) {
	p.Advance() // enum
	var ok bool
	if hdr.Name, ok = p.ConsumeIdent("enum name"); !ok {
		return ast.NoItemID, false
	}

	var data ast.EnumItem
	if data.Generics, ok = p.parseGenerics(); !ok {
		return ast.NoItemID, false
	}
	if data.Where, ok = p.parseWhere(); !ok {
		return ast.NoItemID, false
	}
	if !p.Consume(token.LBrace, "enum") {
		return ast.NoItemID, false
	}

	ok = p.parseList(token.RBrace, "enum variants", func() bool {
		v, ok := p.parseVariant()
		data.Variants = append(data.Variants, v)
		return ok
	})
	if !ok {
		return ast.NoItemID, false
	}
	p.Advance() // }

	hdr.Span = p.spanFrom(start)
	return p.b.Items.NewEnum(hdr, data), true
}

// parseVariant parses `A`, `A(T, U)` or `A { x: T }`.
func (p *Parser) parseVariant() (ast.EnumVariant, bool) {
	doc, hasDoc := p.ConsumeDocComments(false)
	start := p.next.Span.Start
	name, ok := p.ConsumeIdent("enum variant")
	if !ok {
		return ast.EnumVariant{}, false
	}
	v := ast.EnumVariant{Kind: ast.VariantUnit, Doc: doc, HasDoc: hasDoc, Name: name}

	switch p.next.Kind {
	case token.LParen:
		p.Advance()
		v.Kind = ast.VariantTuple
		if v.Tuple, ok = p.parseTypeList(token.RParen, "enum variant"); !ok {
			return ast.EnumVariant{}, false
		}
	case token.LBrace:
		p.Advance()
		v.Kind = ast.VariantStruct
		if v.Fields, ok = p.parseFields("enum variant fields"); !ok {
			return ast.EnumVariant{}, false
		}
	}
	v.Span = p.spanFrom(start)
	return v, true
}

func (p *Parser) parseInterface(start uint32, hdr ast.Item) (ast.ItemID, bool) {
	p.Advance() // interface
	var ok bool
	if hdr.Name, ok = p.ConsumeIdent("interface name"); !ok {
		return ast.NoItemID, false
	}

	var data ast.InterfaceItem
	if data.Generics, ok = p.parseGenerics(); !ok {
		return ast.NoItemID, false
	}
	if p.at(token.Colon) {
		p.Advance()
		if data.Supers, ok = p.parseBounds(); !ok {
			return ast.NoItemID, false
		}
	}
	if data.Where, ok = p.parseWhere(); !ok {
		return ast.NoItemID, false
	}
	if !p.Consume(token.LBrace, "interface") {
		return ast.NoItemID, false
	}

	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.Unexpected(diag.Kinds(token.RBrace), "interface methods")
			return ast.NoItemID, false
		}
		method, ok := p.parseInterfaceMethod()
		if !ok {
			return ast.NoItemID, false
		}
		data.Methods = append(data.Methods, method)
	}
	p.Advance() // }

	hdr.Span = p.spanFrom(start)
	return p.b.Items.NewInterface(hdr, data), true
}

// parseInterfaceMethod parses a method declaration; `pub` is accepted with a
// warning since interface methods are always public.
func (p *Parser) parseInterfaceMethod() (ast.ItemID, bool) {
	doc, hasDoc := p.ConsumeDocComments(false)
	start := p.next.Span.Start
	vis := p.ConsumeVisibility()
	if !p.Expect(token.KwFun, "interface method") {
		return ast.NoItemID, false
	}
	id, ok := p.parseFun(start, ast.Item{Vis: vis, Doc: doc, HasDoc: hasDoc})
	if !ok {
		return ast.NoItemID, false
	}
	if vis.Public {
		p.report(diag.UnnecessaryVisibility{
			Pub:     vis.Span,
			Context: diag.InInterfaceMethod,
			Name:    p.b.Items.Get(id).Name.Span,
		}.Build())
	}
	return id, true
}

// type Name[T] = Value;  или просто  type Name;
func (p *Parser) parseTypeAlias(start uint32, hdr ast.Item) (ast.ItemID, bool) {
	p.Advance() // type
	var ok bool
	if hdr.Name, ok = p.ConsumeIdent("type alias name"); !ok {
		return ast.NoItemID, false
	}

	data := ast.TypeAliasItem{Value: ast.NoTypeID}
	if data.Generics, ok = p.parseGenerics(); !ok {
		return ast.NoItemID, false
	}
	if p.at(token.Assign) {
		p.Advance()
		if data.Value, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}
	if !p.Consume(token.Semicolon, "type alias") {
		return ast.NoItemID, false
	}

	hdr.Span = p.spanFrom(start)
	return p.b.Items.NewTypeAlias(hdr, data), true
}
