package parser

import (
	"fmt"
	"strings"
	"testing"

	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/source"
)

type parsed struct {
	fs     *source.FileSet
	file   *source.File
	b      *ast.Builder
	in     *source.Interner
	bag    *diag.Bag
	result Result
}

func newParsed(src string) *parsed {
	fs := source.NewFileSet()
	return &parsed{
		fs:   fs,
		file: fs.Get(fs.AddVirtual("test.sr", []byte(src))),
		b:    ast.NewBuilder(ast.Hints{}),
		in:   source.NewInterner(),
		bag:  diag.NewBag(0),
	}
}

func (p *parsed) opts() Options {
	return Options{Interner: p.in, Reporter: diag.BagReporter{Bag: p.bag}}
}

func parseSource(t *testing.T, src string) *parsed {
	t.Helper()
	p := newParsed(src)
	p.result = ParseModule(p.file, p.b, p.opts())
	return p
}

func parseExprSource(t *testing.T, src string) (*parsed, ast.ExprID) {
	t.Helper()
	p := newParsed(src)
	id, res := ParseExpression(p.file, p.b, p.opts())
	p.result = res
	return p, id
}

func (p *parsed) codes() []diag.Code {
	out := make([]diag.Code, 0, p.bag.Len())
	for _, d := range p.bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func (p *parsed) name(id source.StringID) string {
	s, _ := p.in.Lookup(id)
	return s
}

func (p *parsed) module(t *testing.T) *ast.Module {
	t.Helper()
	if !p.result.Ok {
		t.Fatalf("parse failed: %v", p.messages())
	}
	m := p.b.Modules.Get(p.result.Module)
	if m == nil {
		t.Fatal("no module")
	}
	return m
}

func (p *parsed) messages() []string {
	out := make([]string, 0, p.bag.Len())
	for _, d := range p.bag.Items() {
		out = append(out, d.Code.ID()+": "+d.Message)
	}
	return out
}

// render prints an expression as an s-expression for shape assertions.
func (p *parsed) render(id ast.ExprID) string {
	e := p.b.Exprs.Get(id)
	if e == nil {
		return "<nil>"
	}
	list := func(head string, ids []ast.ExprID) string {
		parts := []string{head}
		for _, x := range ids {
			parts = append(parts, p.render(x))
		}
		return "(" + strings.Join(parts, " ") + ")"
	}

	switch e.Kind {
	case ast.ExprLit:
		d, _ := p.b.Exprs.Literal(id)
		return d.Raw
	case ast.ExprIdent:
		d, _ := p.b.Exprs.Ident(id)
		return p.name(d.Name)
	case ast.ExprParen:
		d, _ := p.b.Exprs.Paren(id)
		return "(paren " + p.render(d.Inner) + ")"
	case ast.ExprList:
		d, _ := p.b.Exprs.Elems(id)
		return list("list", d.Elems)
	case ast.ExprTuple:
		d, _ := p.b.Exprs.Elems(id)
		return list("tuple", d.Elems)
	case ast.ExprPrefix:
		d, _ := p.b.Exprs.Unary(id)
		return "(" + d.Op.Lexeme() + " " + p.render(d.Operand) + ")"
	case ast.ExprPostfix:
		d, _ := p.b.Exprs.Unary(id)
		return "(" + p.render(d.Operand) + " " + d.Op.Lexeme() + ")"
	case ast.ExprBinary:
		d, _ := p.b.Exprs.Binary(id)
		return "(" + d.Op.Lexeme() + " " + p.render(d.Left) + " " + p.render(d.Right) + ")"
	case ast.ExprCall:
		d, _ := p.b.Exprs.Call(id)
		return list("call "+p.render(d.Callee), d.Args)
	case ast.ExprProperty:
		d, _ := p.b.Exprs.Property(id)
		return "(. " + p.render(d.Left) + " " + p.name(d.Name.Name) + ")"
	case ast.ExprGenericArgs:
		d, _ := p.b.Exprs.GenericArgs(id)
		return fmt.Sprintf("(generic %s %d)", p.render(d.Left), len(d.Args))
	case ast.ExprCast:
		d, _ := p.b.Exprs.Cast(id)
		return "(as " + p.render(d.Value) + ")"
	case ast.ExprStruct:
		d, _ := p.b.Exprs.Struct(id)
		parts := []string{"struct", p.render(d.Left)}
		for _, f := range d.Fields {
			parts = append(parts, p.name(f.Name.Name))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ExprBlock:
		d, _ := p.b.Exprs.Block(id)
		if d.Tail.IsValid() {
			return fmt.Sprintf("(block %d %s)", len(d.Stmts), p.render(d.Tail))
		}
		return fmt.Sprintf("(block %d)", len(d.Stmts))
	}
	return e.Kind.String()
}
