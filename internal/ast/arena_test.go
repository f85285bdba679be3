package ast

import (
	"testing"

	"stellar/internal/source"
	"stellar/internal/token"
)

func TestArenaIndicesAreOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("index 0 must be absent")
	}
	first := a.Allocate(10)
	second := a.Allocate(20)
	if first != 1 || second != 2 {
		t.Fatalf("indices = %d, %d", first, second)
	}
	if *a.Get(second) != 20 || a.Len() != 2 {
		t.Fatalf("Get(2) = %d, Len = %d", *a.Get(second), a.Len())
	}
	if a.Get(3) != nil {
		t.Fatal("index past the end must be absent")
	}
}

func TestExprAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := source.Span{Start: 0, End: 1}
	lit := b.Exprs.NewLiteral(sp, LiteralData{Kind: LitInt, Raw: "1", Int: 1})
	neg := b.Exprs.NewUnary(ExprPrefix, sp, UnaryData{Op: token.Minus, Operand: lit})

	if _, ok := b.Exprs.Binary(lit); ok {
		t.Fatal("Binary accepted a literal")
	}
	if d, ok := b.Exprs.Unary(neg); !ok || d.Operand != lit || d.Op != token.Minus {
		t.Fatalf("Unary = %+v, %v", d, ok)
	}
	if _, ok := b.Exprs.Literal(NoExprID); ok {
		t.Fatal("NoExprID must not resolve")
	}
}

func TestWithBlockKinds(t *testing.T) {
	for _, k := range []ExprKind{ExprBlock, ExprIf, ExprMatch, ExprWhile, ExprLoop, ExprClosure} {
		if !k.WithBlock() {
			t.Errorf("%s must end in a block", k)
		}
	}
	for _, k := range []ExprKind{ExprCall, ExprStruct, ExprLit, ExprBinary} {
		if k.WithBlock() {
			t.Errorf("%s must not end in a block", k)
		}
	}
}

func TestItemsAndModule(t *testing.T) {
	b := NewBuilder(Hints{})
	mod := b.Modules.New(1, source.Span{File: 1})
	imp := b.Items.NewImport(Item{Vis: Public(source.Span{Start: 0, End: 3})}, ImportItem{})
	b.PushItem(mod, imp)

	if got := b.Modules.Get(mod).Items; len(got) != 1 || got[0] != imp {
		t.Fatalf("module items = %v", got)
	}
	if _, ok := b.Items.Fun(imp); ok {
		t.Fatal("Fun accepted an import")
	}
	if item := b.Items.Get(imp); item.Kind != ItemImport || item.Vis.String() != "public" {
		t.Fatalf("item = %+v", item)
	}
}
