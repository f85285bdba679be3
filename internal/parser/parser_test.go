package parser

import (
	"testing"

	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/source"
)

func TestMissingSemicolonAbortsModule(t *testing.T) {
	p := parseSource(t, "fun f() {\n  return 1\n}\n")
	if p.result.Ok || p.result.Module != ast.NoModuleID {
		t.Fatalf("result = %+v, want failed parse without module", p.result)
	}
	if p.bag.Len() != 1 || p.result.Structural != 1 {
		t.Fatalf("diagnostics = %v", p.messages())
	}

	d := p.bag.Items()[0]
	if d.Code != diag.SynUnexpectedToken || d.Message != "expected `;`, found `}`" {
		t.Fatalf("got %s %q", d.Code.ID(), d.Message)
	}
	if len(d.Labels) != 2 {
		t.Fatalf("labels = %+v", d.Labels)
	}
	// вторичная метка стоит сразу после `1`
	sec, prim := d.Labels[0], d.Labels[1]
	if sec.Role != diag.RoleSecondary || sec.Span.Start != 20 || sec.Text != "expected `;`" {
		t.Errorf("secondary = %+v", sec)
	}
	if prim.Role != diag.RolePrimary || prim.Span.Start != 21 || prim.Text != "found `}`" {
		t.Errorf("primary = %+v", prim)
	}
}

func TestUnexpectedFirstTokenHasSingleLabel(t *testing.T) {
	p := parseSource(t, "42")
	if p.result.Ok {
		t.Fatal("expected failure")
	}
	d := p.bag.Items()[0]
	want := "expected one of `import`, `fun`, `struct`, `enum`, `interface` or `type`, found integer literal"
	if d.Message != want {
		t.Fatalf("message = %q", d.Message)
	}
	if len(d.Labels) != 1 || d.Labels[0].Text != "expected one of `import`, `fun`, `struct`, `enum`, `interface` or `type` for item" {
		t.Fatalf("labels = %+v", d.Labels)
	}
}

func TestEmptyModule(t *testing.T) {
	for _, src := range []string{"", "// just a comment\n", "  \n\t"} {
		p := parseSource(t, src)
		m := p.module(t)
		if len(m.Items) != 0 || m.HasDoc {
			t.Fatalf("%q: module = %+v", src, m)
		}
	}
}

func TestDocComments(t *testing.T) {
	src := "//! first\n//! second\n/// fun doc\n/// more\nfun f();\n// plain\nfun g();\n"
	p := parseSource(t, src)
	m := p.module(t)
	if !m.HasDoc || m.Doc != " first\n second" {
		t.Fatalf("module doc = %q", m.Doc)
	}
	if len(m.Items) != 2 {
		t.Fatalf("items = %d", len(m.Items))
	}
	f := p.b.Items.Get(m.Items[0])
	if !f.HasDoc || f.Doc != " fun doc\n more" {
		t.Fatalf("item doc = %q", f.Doc)
	}
	if g := p.b.Items.Get(m.Items[1]); g.HasDoc {
		t.Fatalf("plain comment became doc: %q", g.Doc)
	}
}

func TestItems(t *testing.T) {
	src := `
import std.io as stdio;
import std.fs;

pub fun max[T: Ord](a: T, b: T = zero, self): T where T: Copy {
	if a > b { a } else { b }
}

fun decl(x: int32);

struct Point[T] implements Show, Eq where T: Num {
	/// horizontal
	pub x: T,
	y: T,
}

struct Handle;

enum Shape {
	Unit,
	Circle(float64),
	Rect { w: float64, h: float64 },
}

interface Show: Display + Debug {
	fun show(self): String;
	fun shout(self): String { self.show() }
}

type Pair[A, B] = #(A, B);
type Opaque;
`
	p := parseSource(t, src)
	m := p.module(t)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.messages())
	}

	wantKinds := []ast.ItemKind{
		ast.ItemImport, ast.ItemImport, ast.ItemFun, ast.ItemFun,
		ast.ItemStruct, ast.ItemStruct, ast.ItemEnum, ast.ItemInterface,
		ast.ItemTypeAlias, ast.ItemTypeAlias,
	}
	if len(m.Items) != len(wantKinds) {
		t.Fatalf("items = %d, want %d", len(m.Items), len(wantKinds))
	}
	for i, id := range m.Items {
		if got := p.b.Items.Get(id).Kind; got != wantKinds[i] {
			t.Errorf("item %d = %s, want %s", i, got, wantKinds[i])
		}
	}

	imp, _ := p.b.Items.Import(m.Items[0])
	if len(imp.Path.Segments) != 2 || p.name(imp.Alias.Name) != "stdio" {
		t.Errorf("import = %+v", imp)
	}
	if imp2, _ := p.b.Items.Import(m.Items[1]); imp2.Alias.IsValid() {
		t.Errorf("import without alias has one")
	}

	maxHdr := p.b.Items.Get(m.Items[2])
	maxFun, _ := p.b.Items.Fun(m.Items[2])
	if !maxHdr.Vis.Public || p.name(maxHdr.Name.Name) != "max" {
		t.Errorf("fun header = %+v", maxHdr)
	}
	if len(maxFun.Generics) != 1 || len(maxFun.Generics[0].Bounds) != 1 {
		t.Errorf("generics = %+v", maxFun.Generics)
	}
	if len(maxFun.Params) != 3 || !maxFun.Params[1].Default.IsValid() || maxFun.Params[2].Type.IsValid() {
		t.Errorf("params = %+v", maxFun.Params)
	}
	if !maxFun.Return.IsValid() || len(maxFun.Where) != 1 || !maxFun.Body.IsValid() {
		t.Errorf("fun = %+v", maxFun)
	}
	if decl, _ := p.b.Items.Fun(m.Items[3]); decl.Body.IsValid() {
		t.Errorf("declaration has a body")
	}

	point, _ := p.b.Items.Struct(m.Items[4])
	if len(point.Implements) != 2 || len(point.Where) != 1 || len(point.Fields) != 2 {
		t.Errorf("struct = %+v", point)
	}
	if f := point.Fields[0]; !f.Vis.Public || !f.HasDoc || f.Doc != " horizontal" {
		t.Errorf("field = %+v", f)
	}
	if handle, _ := p.b.Items.Struct(m.Items[5]); !handle.Opaque {
		t.Errorf("opaque struct not marked")
	}

	shape, _ := p.b.Items.Enum(m.Items[6])
	wantVariants := []ast.VariantKind{ast.VariantUnit, ast.VariantTuple, ast.VariantStruct}
	if len(shape.Variants) != 3 {
		t.Fatalf("variants = %+v", shape.Variants)
	}
	for i, v := range shape.Variants {
		if v.Kind != wantVariants[i] {
			t.Errorf("variant %d kind = %d", i, v.Kind)
		}
	}

	show, _ := p.b.Items.Interface(m.Items[7])
	if len(show.Supers) != 2 || len(show.Methods) != 2 {
		t.Errorf("interface = %+v", show)
	}

	pair, _ := p.b.Items.TypeAlias(m.Items[8])
	if len(pair.Generics) != 2 || !pair.Value.IsValid() {
		t.Errorf("alias = %+v", pair)
	}
	if opaque, _ := p.b.Items.TypeAlias(m.Items[9]); opaque.Value.IsValid() {
		t.Errorf("bare alias has a value")
	}
}

func TestUnnecessaryVisibility(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		notes int
		label string
	}{
		{"import", "pub import std;", 1, ""},
		{"interface method", "interface I {\n\tpub fun f();\n}", 2, "happened when analyzing the interface method"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseSource(t, tt.src)
			p.module(t)
			if p.bag.Len() != 1 {
				t.Fatalf("diagnostics = %v", p.messages())
			}
			d := p.bag.Items()[0]
			if d.Code != diag.SynUnnecessaryVisibility || d.Severity != diag.SevWarning {
				t.Fatalf("got %s %s", d.Severity, d.Code.ID())
			}
			if len(d.Notes) != tt.notes {
				t.Errorf("notes = %v", d.Notes)
			}
			prim, _ := d.Primary()
			if got := p.file.Slice(prim.Span); got != "pub" {
				t.Errorf("primary covers %q", got)
			}
			if tt.label == "" {
				return
			}
			var found bool
			for _, l := range d.Labels {
				if l.Role == diag.RoleSecondary && l.Text == tt.label && p.file.Slice(l.Span) == "f" {
					found = true
				}
			}
			if !found {
				t.Errorf("labels = %+v", d.Labels)
			}
		})
	}
}

func TestItemErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"param without type", "fun f(x) {}", "expected `:`, found `)`"},
		{"unterminated block", "fun f() { let a = 1;", "expected `}`, found end of file"},
		{"missing body", "fun f() 1", "expected `;` or `{`, found integer literal"},
		{"unclosed interface", "interface I { fun f();", "expected `}`, found end of file"},
		{"let without value", "fun f() { let x; }", "expected `=`, found `;`"},
		{"two expressions", "fun f() { a b }", "expected `;`, found identifier"},
		{"bad type", "type T = 1;", "expected one of identifier, `#`, `fun` or `dyn`, found integer literal"},
		{"import keyword path", "import fun;", "expected identifier, found `fun`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseSource(t, tt.src)
			if p.result.Ok || p.result.Module.IsValid() {
				t.Fatal("expected failure")
			}
			if p.bag.Len() != 1 {
				t.Fatalf("diagnostics = %v", p.messages())
			}
			if got := p.bag.Items()[0].Message; got != tt.msg {
				t.Fatalf("message = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestStatements(t *testing.T) {
	src := "fun f() { let #(a, b): #(int32, int32) = t; defer close(a); loop { break; continue; } ; x; return a + b; }"
	p := parseSource(t, src)
	m := p.module(t)
	fun, _ := p.b.Items.Fun(m.Items[0])
	body, _ := p.b.Exprs.Block(fun.Body)

	want := []ast.StmtKind{ast.StmtLet, ast.StmtDefer, ast.StmtExpr, ast.StmtExpr, ast.StmtReturn}
	if len(body.Stmts) != len(want) || body.Tail.IsValid() {
		t.Fatalf("stmts = %d, tail = %v", len(body.Stmts), body.Tail)
	}
	for i, id := range body.Stmts {
		if got := p.b.Stmts.Get(id).Kind; got != want[i] {
			t.Errorf("stmt %d = %s, want %s", i, got, want[i])
		}
	}

	let, _ := p.b.Stmts.Let(body.Stmts[0])
	if p.b.Patterns.Get(let.Pattern).Kind != ast.PatTuple || !let.Type.IsValid() {
		t.Errorf("let = %+v", let)
	}
	if s := p.b.Stmts.Get(body.Stmts[3]); !s.HasSemicolon {
		t.Errorf("`x;` lost its semicolon")
	}

	loop, _ := p.b.Exprs.Loop(p.b.Stmts.Get(body.Stmts[2]).Expr)
	inner, _ := p.b.Exprs.Block(loop.Body)
	if len(inner.Stmts) != 2 {
		t.Fatalf("loop body = %+v", inner)
	}
}

func TestSharedInterner(t *testing.T) {
	in := source.NewInterner()
	fs := source.NewFileSet()
	var names [2]source.StringID
	for i, src := range []string{"fun shared();", "struct shared;"} {
		file := fs.Get(fs.AddVirtual("f.sr", []byte(src)))
		b := ast.NewBuilder(ast.Hints{})
		res := ParseModule(file, b, Options{Interner: in})
		if !res.Ok {
			t.Fatalf("parse %d failed", i)
		}
		names[i] = b.Items.Get(b.Modules.Get(res.Module).Items[0]).Name.Name
	}
	if names[0] != names[1] {
		t.Fatalf("same identifier interned twice: %d vs %d", names[0], names[1])
	}
}
