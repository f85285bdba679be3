package testkit

import (
	"strings"
	"testing"

	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/parser"
	"stellar/internal/source"
)

func parse(t *testing.T, src string) (*ast.Builder, ast.ModuleID, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("kit.sr", []byte(src)))
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseModule(file, b, parser.Options{
		Interner: source.NewInterner(),
		Reporter: diag.NopReporter{},
	})
	if !res.Ok {
		t.Fatalf("parse failed for %q", src)
	}
	return b, res.Module, file
}

func TestCheckSpanInvariantsAcceptsParsedModule(t *testing.T) {
	b, mod, file := parse(t, "fun f(a: int32): int32 {\n  let x = a * 2;\n  x + 1\n}\n\nstruct P { x: int32 }\n")
	if err := CheckSpanInvariants(b, mod, file); err != nil {
		t.Fatalf("unexpected violation: %v", err)
	}
}

func TestCheckSpanInvariantsReportsViolations(t *testing.T) {
	tests := []struct {
		name   string
		breakf func(b *ast.Builder, mod ast.ModuleID)
		want   string
	}{
		{
			name: "item outside module",
			breakf: func(b *ast.Builder, mod ast.ModuleID) {
				b.Modules.Get(mod).Span.End = 3
			},
			want: "outside module span",
		},
		{
			name: "inverted expression",
			breakf: func(b *ast.Builder, _ ast.ModuleID) {
				e := &b.Exprs.Arena.Slice()[0]
				e.Span.Start, e.Span.End = e.Span.End+1, e.Span.Start
			},
			want: "inverted",
		},
		{
			name: "empty item",
			breakf: func(b *ast.Builder, mod ast.ModuleID) {
				it := b.Items.Get(b.Modules.Get(mod).Items[0])
				it.Span.End = it.Span.Start
			},
			want: "empty item span",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, mod, file := parse(t, "fun f() { 1 + 2 }\n")
			tt.breakf(b, mod)
			err := CheckSpanInvariants(b, mod, file)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestCheckSpanInvariantsMissingModule(t *testing.T) {
	b, _, file := parse(t, "fun f();\n")
	if err := CheckSpanInvariants(b, ast.ModuleID(42), file); err == nil {
		t.Fatal("expected an error for an unknown module")
	}
}
