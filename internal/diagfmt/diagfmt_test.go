package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/lexer"
	"stellar/internal/parser"
	"stellar/internal/source"
)

type fixture struct {
	fs  *source.FileSet
	bag *diag.Bag
	b   *ast.Builder
	in  *source.Interner
	res parser.Result
}

func parseFixture(t *testing.T, name, src string) fixture {
	t.Helper()
	fx := fixture{
		fs:  source.NewFileSet(),
		bag: diag.NewBag(0),
		b:   ast.NewBuilder(ast.Hints{}),
		in:  source.NewInterner(),
	}
	file := fx.fs.Get(fx.fs.AddVirtual(name, []byte(src)))
	fx.res = parser.ParseModule(file, fx.b, parser.Options{
		Interner: fx.in,
		Reporter: diag.BagReporter{Bag: fx.bag},
	})
	fx.bag.Sort()
	return fx
}

const missingSemicolon = "fun f() {\n  return 1\n}\n"

func TestPrettyPreview(t *testing.T) {
	fx := parseFixture(t, "test.sr", missingSemicolon)

	var buf bytes.Buffer
	Pretty(&buf, fx.bag, fx.fs, PrettyOpts{ShowPreview: true, ShowNotes: true})

	want := strings.Join([]string{
		"test.sr:3:1: ERROR E001: expected `;`, found `}`",
		"3 | }",
		"  | ^ found `}`",
		"2 |   return 1",
		"  |           - expected `;`",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyNotesAndContext(t *testing.T) {
	fx := parseFixture(t, "w.sr", "fun f() {}\npub import std;\n")

	var buf bytes.Buffer
	Pretty(&buf, fx.bag, fx.fs, PrettyOpts{ShowPreview: true, ShowNotes: true, Context: 1})
	out := buf.String()

	for _, want := range []string{
		"w.sr:2:1: WARNING E004: unnecessary visibility qualifier",
		"1 | fun f() {}",
		"2 | pub import std;",
		"  | ^^^ consider removing this `pub`",
		"  = note: using `pub` will not make the import public.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	fx := parseFixture(t, "wide.sr", "fun f() { let 名前 = 1 }")

	var buf bytes.Buffer
	Pretty(&buf, fx.bag, fx.fs, PrettyOpts{ShowPreview: true})
	lines := strings.Split(buf.String(), "\n")
	// "fun f() { let " занимает 14 колонок, "名前" ещё 4, " = 1 " ещё 5
	if len(lines) < 3 || !strings.HasPrefix(lines[2], "  | "+strings.Repeat(" ", 23)+"^") {
		t.Fatalf("caret misaligned:\n%s", buf.String())
	}
}

func TestShort(t *testing.T) {
	fx := parseFixture(t, "test.sr", missingSemicolon)
	var buf bytes.Buffer
	Short(&buf, fx.bag, fx.fs, PathModeAuto)
	if got, want := buf.String(), "test.sr:3:1: error E001: expected `;`, found `}`\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJSONAndYAML(t *testing.T) {
	fx := parseFixture(t, "test.sr", missingSemicolon)
	opts := JSONOpts{IncludePositions: true, IncludeLabels: true, IncludeNotes: true}

	var buf bytes.Buffer
	if err := JSON(&buf, fx.bag, fx.fs, opts); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "E001" || d.Title != "unexpected token" || d.Location.StartLine != 3 || d.Location.StartCol != 1 {
		t.Fatalf("diagnostic = %+v", d)
	}
	if len(d.Labels) != 2 || d.Labels[0].Role != "secondary" || d.Labels[0].Location.StartLine != 2 {
		t.Fatalf("labels = %+v", d.Labels)
	}

	buf.Reset()
	if err := YAML(&buf, fx.bag, fx.fs, opts); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"code: E001", "count: 1", "role: primary"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("YAML lacks %q:\n%s", want, buf.String())
		}
	}
}

func TestJSONMax(t *testing.T) {
	fx := parseFixture(t, "w.sr", "pub import a;\npub import b;\npub import c;\n")
	out := BuildDiagnosticsOutput(fx.bag, fx.fs, JSONOpts{Max: 2})
	if out.Count != 2 || out.Dropped != 1 {
		t.Fatalf("count = %d, dropped = %d", out.Count, out.Dropped)
	}
}

func TestTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.sr", []byte("a + 1 $")))
	toks := lexer.Tokenize(file, lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	kinds := make([]string, len(out))
	for i, o := range out {
		kinds[i] = o.Kind
	}
	want := []string{"identifier", "`+`", "integer literal", "lexical error", "end of file"}
	if strings.Join(kinds, "|") != strings.Join(want, "|") {
		t.Fatalf("kinds = %v", kinds)
	}
	if out[3].Error != "unexpected character" {
		t.Fatalf("error = %q", out[3].Error)
	}

	buf.Reset()
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"a" at 1:1-1:2`) {
		t.Fatalf("pretty tokens:\n%s", buf.String())
	}
}

func TestASTPretty(t *testing.T) {
	fx := parseFixture(t, "m.sr", "//! demo\npub fun main(x: int32): int32 { x + 2 }\n")
	if !fx.res.Ok {
		t.Fatal("parse failed")
	}
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, fx.b, fx.in, fx.res.Module); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Module (span: ",
		`└─ Item Function "main" visibility=public`,
		`├─ param: Parameter "x"`,
		`tail: Expression Binary "+"`,
		`left: Expression Identifier "x"`,
		`right: Expression Literal "2" literal=int`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestASTJSONIsDeterministic(t *testing.T) {
	src := "struct P { x: int32, y: int32 }\nfun f(p: P) { match p { P { x, .. } => x, _ => 0 } }\n"
	render := func() string {
		fx := parseFixture(t, "d.sr", src)
		var buf bytes.Buffer
		if err := FormatASTJSON(&buf, fx.b, fx.in, fx.res.Module); err != nil {
			t.Fatal(err)
		}
		return buf.String()
	}
	first := render()
	if second := render(); first != second {
		t.Fatal("AST JSON differs between runs")
	}
	var root ASTNodeOutput
	if err := json.Unmarshal([]byte(first), &root); err != nil {
		t.Fatal(err)
	}
	if root.Type != "Module" || len(root.Children) != 2 {
		t.Fatalf("root = %+v", root)
	}
}

func TestSarif(t *testing.T) {
	fx := parseFixture(t, "test.sr", missingSemicolon)

	var buf bytes.Buffer
	err := Sarif(&buf, fx.bag, fx.fs, SarifRunMeta{
		ToolName:    "stellar",
		ToolVersion: "0.1.0",
		RunID:       "abc",
		PathMode:    PathModeBasename,
	})
	if err != nil {
		t.Fatal(err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("log = %+v", log)
	}
	run := log.Runs[0]
	if len(run.Tool.Driver.Rules) != len(diag.Codes()) || run.Automation == nil || run.Automation.ID != "stellar/abc" {
		t.Fatalf("run header = %+v", run.Tool.Driver)
	}
	if len(run.Results) != 1 {
		t.Fatalf("results = %+v", run.Results)
	}
	res := run.Results[0]
	if res.RuleID != "E001" || res.RuleIndex != 1 || res.Level != "error" {
		t.Fatalf("result = %+v", res)
	}
	loc := res.Locations[0].Physical
	if loc.Artifact.URI != "test.sr" || loc.Region.StartLine != 3 || loc.Region.StartColumn != 1 || loc.Region.ByteOffset != 21 {
		t.Fatalf("location = %+v", loc)
	}
	if len(res.RelatedLocations) != 1 {
		t.Fatalf("related = %+v", res.RelatedLocations)
	}
	rel := res.RelatedLocations[0]
	if rel.ID != 1 || rel.Message == nil || rel.Message.Text != "expected `;`" || rel.Physical.Region.StartColumn != 11 {
		t.Fatalf("related = %+v", rel)
	}
}
