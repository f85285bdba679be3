package parser

import (
	"testing"

	"stellar/internal/ast"
	"stellar/internal/diag"
)

func TestExpressionShapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"a || b && c", "(|| a (&& b c))"},
		{"-x * y", "(* (- x) y)"},
		{"!a && b", "(&& (! a) b)"},
		{"x?", "(x ?)"},
		{"a.b(c)", "(call (. a b) c)"},
		{"f(a, b,)", "(call f a b)"},
		{"f(a, b)", "(call f a b)"},
		{"f()", "(call f)"},
		{"f[int32](x)", "(call (generic f 1) x)"},
		{"x as int64", "(as x)"},
		{"Point { x: 1, y }", "(struct Point x y)"},
		{"(x) { y }", "(struct (paren x) y)"},
		{"(1 + 2) * 3", "(* (paren (+ 1 2)) 3)"},
		{"#(1, 2)", "(tuple 1 2)"},
		{"[1, 2, 3]", "(list 1 2 3)"},
		{"{ let a = 1; a }", "(block 1 a)"},
		{"x = y + 1", "(= x (+ y 1))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p, id := parseExprSource(t, tt.src)
			if !p.result.Ok {
				t.Fatalf("parse failed: %v", p.messages())
			}
			if got := p.render(id); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExpressionSpans(t *testing.T) {
	p, id := parseExprSource(t, "foo + bar")
	e := p.b.Exprs.Get(id)
	if e.Span.Start != 0 || e.Span.End != 9 {
		t.Fatalf("span = %v, want 0..9", e.Span)
	}
	bin, _ := p.b.Exprs.Binary(id)
	if bin.OpSpan.Start != 4 || bin.OpSpan.End != 5 {
		t.Fatalf("op span = %v, want 4..5", bin.OpSpan)
	}
}

func TestConditionIgnoresStructLiteral(t *testing.T) {
	p := parseSource(t, "fun f() { if x { y } while (a) { b } }")
	mod := p.module(t)
	fun, _ := p.b.Items.Fun(mod.Items[0])
	body, _ := p.b.Exprs.Block(fun.Body)
	if len(body.Stmts) != 2 || body.Tail.IsValid() {
		t.Fatalf("body = %d stmts, tail %v", len(body.Stmts), body.Tail)
	}

	ifStmt := p.b.Stmts.Get(body.Stmts[0])
	ifData, ok := p.b.Exprs.If(ifStmt.Expr)
	if !ok {
		t.Fatalf("first statement is %s", p.b.Exprs.Get(ifStmt.Expr).Kind)
	}
	if got := p.render(ifData.Branches[0].Cond); got != "x" {
		t.Errorf("if condition = %s", got)
	}
	if got := p.render(ifData.Branches[0].Body); got != "(block 0 y)" {
		t.Errorf("if body = %s", got)
	}
	if ifStmt.HasSemicolon {
		t.Error("block-like statement must not need `;`")
	}

	wh, ok := p.b.Exprs.While(p.b.Stmts.Get(body.Stmts[1]).Expr)
	if !ok {
		t.Fatal("second statement is not a while loop")
	}
	if got := p.render(wh.Cond); got != "(paren a)" {
		t.Errorf("while condition = %s", got)
	}
}

func TestIfElseChain(t *testing.T) {
	p, id := parseExprSource(t, "if a { 1 } else if b { 2 } else { 3 }")
	d, ok := p.b.Exprs.If(id)
	if !ok {
		t.Fatalf("not an if: %v", p.messages())
	}
	if len(d.Branches) != 2 || !d.Else.IsValid() {
		t.Fatalf("branches = %d, else = %v", len(d.Branches), d.Else)
	}
	if got := p.render(d.Else); got != "(block 0 3)" {
		t.Errorf("else = %s", got)
	}
}

func TestClosures(t *testing.T) {
	tests := []struct {
		src    string
		params int
	}{
		{"|| { 1 }", 0},
		{"|x| { x }", 1},
		{"|x, y: int32|: int32 { x + y }", 2},
		{"|x,| { x }", 1},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p, id := parseExprSource(t, tt.src)
			d, ok := p.b.Exprs.Closure(id)
			if !ok {
				t.Fatalf("not a closure: %v", p.messages())
			}
			if len(d.Params) != tt.params {
				t.Fatalf("params = %d, want %d", len(d.Params), tt.params)
			}
		})
	}
}

func TestMatchArms(t *testing.T) {
	src := "match x { 1 | 2 => a, Some(y) => { y } None => b, Point { x, .. } => c, -1 => e, _ => d }"
	p, id := parseExprSource(t, src)
	d, ok := p.b.Exprs.Match(id)
	if !ok {
		t.Fatalf("not a match: %v", p.messages())
	}
	want := []ast.PatternKind{ast.PatOr, ast.PatTupleLike, ast.PatIdent, ast.PatStruct, ast.PatLiteral, ast.PatWildcard}
	if len(d.Arms) != len(want) {
		t.Fatalf("arms = %d, want %d", len(d.Arms), len(want))
	}
	for i, arm := range d.Arms {
		if got := p.b.Patterns.Get(arm.Pattern).Kind; got != want[i] {
			t.Errorf("arm %d pattern = %s, want %s", i, got, want[i])
		}
	}
	st := p.b.Patterns.Payload(d.Arms[3].Pattern)
	if !st.HasRest || len(st.Fields) != 1 {
		t.Errorf("struct pattern = %+v", st)
	}
}

func TestMatchArmNeedsComma(t *testing.T) {
	p, _ := parseExprSource(t, "match x { 1 => a 2 => b }")
	if p.result.Ok {
		t.Fatal("expected failure")
	}
	d := p.bag.Items()[0]
	if d.Message != "expected `,` or `}`, found integer literal" {
		t.Fatalf("message = %q", d.Message)
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"double comma", "f(a,,b)", "expected one of integer literal, float literal, string literal, character literal, boolean literal, `#`, `|`, `(`, `{`, `[`, identifier, `if`, `while`, `match` or `loop`, found `,`"},
		{"unclosed call", "f(a", "expected `,` or `)`, found end of file"},
		{"unclosed paren", "(a", "expected `)`, found end of file"},
		{"bad property", "a.1", "expected identifier, found integer literal"},
		{"trailing garbage", "a b", "expected end of file, found identifier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, id := parseExprSource(t, tt.src)
			if p.result.Ok || id.IsValid() {
				t.Fatal("expected failure")
			}
			if p.result.Structural != 1 || p.bag.Len() != 1 {
				t.Fatalf("diagnostics = %v", p.messages())
			}
			if got := p.bag.Items()[0].Message; got != tt.msg {
				t.Fatalf("message = %q\nwant      %q", got, tt.msg)
			}
		})
	}
}

func TestNumericOverflowIsLocal(t *testing.T) {
	p := parseSource(t, "fun f() { let x = 99999999999999999999999; let y = 1e999; let z = 0xFF; }")
	p.module(t)
	if got := p.codes(); len(got) != 2 || got[0] != diag.SynIntegerOverflow || got[1] != diag.SynFloatOverflow {
		t.Fatalf("codes = %v", got)
	}
	if p.result.Structural != 0 {
		t.Fatalf("overflow must not be structural")
	}

	var overflowed, hex int
	for _, lit := range p.b.Exprs.Literals.Slice() {
		if lit.Overflow {
			overflowed++
		}
		if lit.Raw == "0xFF" && lit.Int == 255 {
			hex++
		}
	}
	if overflowed != 2 || hex != 1 {
		t.Fatalf("overflowed = %d, hex = %d", overflowed, hex)
	}
}

func TestLiteralValues(t *testing.T) {
	tests := []struct {
		src   string
		check func(*ast.LiteralData) bool
	}{
		{"1_000", func(d *ast.LiteralData) bool { return d.Kind == ast.LitInt && d.Int == 1000 }},
		{"0b101", func(d *ast.LiteralData) bool { return d.Int == 5 }},
		{"0o17", func(d *ast.LiteralData) bool { return d.Int == 15 }},
		{"2.5", func(d *ast.LiteralData) bool { return d.Kind == ast.LitFloat && d.Float == 2.5 }},
		{"true", func(d *ast.LiteralData) bool { return d.Kind == ast.LitBool && d.Bool }},
		{"false", func(d *ast.LiteralData) bool { return d.Kind == ast.LitBool && !d.Bool }},
		{`"a\nb"`, func(d *ast.LiteralData) bool { return d.Kind == ast.LitString && d.Str == "a\nb" }},
		{`'x'`, func(d *ast.LiteralData) bool { return d.Kind == ast.LitChar && d.Char == 'x' }},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p, id := parseExprSource(t, tt.src)
			d, ok := p.b.Exprs.Literal(id)
			if !ok {
				t.Fatalf("not a literal: %v", p.messages())
			}
			if !tt.check(d) {
				t.Fatalf("unexpected literal %+v", d)
			}
		})
	}
}
