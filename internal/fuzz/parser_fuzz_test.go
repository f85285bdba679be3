package fuzztests

import (
	"testing"
	"time"

	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/parser"
	"stellar/internal/source"
	"stellar/internal/testkit"
)

// parseTimeout bounds one parse; exceeding it means the parser loops.
const parseTimeout = 5 * time.Second

type parseOutcome struct {
	b    *ast.Builder
	file *source.File
	res  parser.Result
	bag  *diag.Bag
}

func parseWithTimeout(t *testing.T, input []byte) parseOutcome {
	t.Helper()
	done := make(chan parseOutcome, 1)
	go func() {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.sr", input))
		b := ast.NewBuilder(ast.Hints{})
		bag := diag.NewBag(128)
		res := parser.ParseModule(file, b, parser.Options{
			Interner: source.NewInterner(),
			Reporter: diag.BagReporter{Bag: bag},
		})
		done <- parseOutcome{b: b, file: file, res: res, bag: bag}
	}()

	select {
	case out := <-done:
		return out
	case <-time.After(parseTimeout):
		t.Fatalf("parser did not finish within %v on %d bytes", parseTimeout, len(input))
		return parseOutcome{}
	}
}

func FuzzParserBuildsAST(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		out := parseWithTimeout(t, clamp(input))

		if out.res.Ok != out.res.Module.IsValid() {
			t.Fatalf("Ok=%v but module=%d", out.res.Ok, out.res.Module)
		}
		if !out.res.Ok && out.res.Structural == 0 {
			t.Fatalf("parse aborted without a structural diagnostic")
		}
		for _, d := range out.bag.Items() {
			if d.Span().End > uint32(len(out.file.Content)) {
				t.Fatalf("diagnostic %s points past the end: %v", d.Code.ID(), d.Span())
			}
		}
		if out.res.Ok {
			if err := testkit.CheckSpanInvariants(out.b, out.res.Module, out.file); err != nil {
				t.Fatalf("span invariants: %v", err)
			}
		}
	})
}

func FuzzParseExpression(f *testing.F) {
	for _, s := range []string{"1 + 2 * 3", "a.b(c)[d]", "-x as int32", "|a| a", "if a { b } else { c }", "(", "1 +", "#(1,"} {
		f.Add([]byte(s))
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("expr.sr", clamp(input)))
		b := ast.NewBuilder(ast.Hints{})
		id, res := parser.ParseExpression(file, b, parser.Options{
			Interner: source.NewInterner(),
			Reporter: diag.NopReporter{},
		})
		if res.Ok && b.Exprs.Get(id) == nil {
			t.Fatalf("Ok parse returned unknown expression %d", id)
		}
	})
}
