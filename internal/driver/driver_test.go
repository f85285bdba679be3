package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"stellar/internal/diag"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"main.sr": "fun main() { let x = 1; }\n"})

	sess := NewSession(Options{})
	res, err := Parse(context.Background(), sess, filepath.Join(dir, "main.sr"))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Ok || !res.Module.IsValid() || res.Bag.Len() != 0 {
		t.Fatalf("Ok=%v module=%v diags=%d", res.Ok, res.Module, res.Bag.Len())
	}
	if got := len(res.Builder.Modules.Get(res.Module).Items); got != 1 {
		t.Fatalf("items = %d", got)
	}

	if _, err := Parse(context.Background(), sess, filepath.Join(dir, "missing.sr")); err == nil {
		t.Fatal("expected load error")
	}
}

func TestParseAbortsOnStructuralError(t *testing.T) {
	sess := NewSession(Options{})
	res := ParseSource(context.Background(), sess, "bad.sr", []byte("fun f() { 1 }\nfun g() { x y }\n"))
	if res.Ok || res.Module.IsValid() {
		t.Fatal("structural error must abort the module")
	}
	if res.Bag.Count(diag.SynUnexpectedToken) != 1 {
		t.Fatalf("want one E001, got %d diagnostics", res.Bag.Len())
	}
}

func TestWarningsAsErrors(t *testing.T) {
	src := []byte("pub import a.b;\n")
	plain := ParseSource(context.Background(), NewSession(Options{}), "w.sr", src)
	if plain.Bag.HasErrors() || !plain.Bag.HasWarnings() {
		t.Fatal("E004 must be a warning by default")
	}
	strict := ParseSource(context.Background(), NewSession(Options{WarningsAsErrors: true}), "w.sr", src)
	if !strict.Bag.HasErrors() {
		t.Fatal("warnings_as_errors must promote E004")
	}
	if !strict.Ok {
		t.Fatal("promotion must not change the parse outcome")
	}
}

func TestParseExpr(t *testing.T) {
	sess := NewSession(Options{})
	res := ParseExprSource(context.Background(), sess, "e.sr", []byte("a + b * c"))
	if !res.Ok || !res.Expr.IsValid() {
		t.Fatalf("Ok=%v expr=%v", res.Ok, res.Expr)
	}
	bad := ParseExprSource(context.Background(), sess, "e2.sr", []byte("a +"))
	if bad.Ok || bad.Expr.IsValid() || !bad.Bag.HasErrors() {
		t.Fatal("incomplete expression must fail")
	}
}

func TestTokenizeReportsLexErrors(t *testing.T) {
	sess := NewSession(Options{})
	res := TokenizeSource(context.Background(), sess, "t.sr", []byte("let s = \"open"))
	if res.Bag.Count(diag.LexInvalidToken) != 1 {
		t.Fatalf("want one E000, got %d", res.Bag.Len())
	}
	if last := res.Tokens[len(res.Tokens)-1]; !last.Kind.Eof() {
		t.Fatalf("last token = %v", last.Kind)
	}
}

func TestParseDirKeepsPathOrderAndSharesInterner(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.sr":         "fun shared() {}\n",
		"a.sr":         "fun shared() {}\n",
		"nested/c.sr":  "fun broken( {}\n",
		".hidden/x.sr": "fun hidden() {}\n",
		"notes.txt":    "not a source file",
	})

	var mu sync.Mutex
	var events []FileEvent
	sess := NewSession(Options{Jobs: 4, OnFile: func(ev FileEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	}})

	results, err := ParseDir(context.Background(), sess, dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.sr", "b.sr", filepath.Join("nested", "c.sr")}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, r := range results {
		if rel, _ := filepath.Rel(dir, r.Path); rel != want[i] {
			t.Errorf("result %d = %s, want %s", i, rel, want[i])
		}
	}
	if !results[0].Ok || !results[1].Ok || results[2].Ok {
		t.Fatalf("ok flags = %v %v %v", results[0].Ok, results[1].Ok, results[2].Ok)
	}
	if len(events) != 3 {
		t.Fatalf("observer saw %d files", len(events))
	}

	nameOf := func(r *ParseResult) any {
		mod := r.Builder.Modules.Get(r.Module)
		return r.Builder.Items.Get(mod.Items[0]).Name.Name
	}
	if nameOf(results[0]) != nameOf(results[1]) {
		t.Fatal("files of one session must share interned names")
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"one.sr": "a b", "two.sr": "1 $"})

	results, err := TokenizeDir(context.Background(), NewSession(Options{Jobs: 2}), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if results[0].Bag.Len() != 0 || results[1].Bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, %d", results[0].Bag.Len(), results[1].Bag.Len())
	}
}

func TestParseDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.sr": "", "b.sr": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ParseDir(ctx, NewSession(Options{Jobs: 1}), dir); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestDiagnoseUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"ok.sr":  "fun f() {}\n",
		"bad.sr": "fun f() { 1 2 }\n",
	})
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	first, err := DiagnoseDir(context.Background(), NewSession(Options{Cache: cache}), dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range first {
		if r.Cached {
			t.Fatalf("%s cached on first run", r.Path)
		}
	}

	sess := NewSession(Options{Cache: cache})
	second, err := DiagnoseDir(context.Background(), sess, dir)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range second {
		if !r.Cached {
			t.Fatalf("%s not cached on second run", r.Path)
		}
		if r.Ok != first[i].Ok || r.Bag.Len() != first[i].Bag.Len() {
			t.Fatalf("%s: cached result differs", r.Path)
		}
	}

	bad := second[0]
	d := bad.Bag.Items()[0]
	if d.Code != diag.SynUnexpectedToken || d.Message != first[0].Bag.Items()[0].Message {
		t.Fatalf("restored diagnostic = %+v", d)
	}
	for _, l := range d.Labels {
		if l.Span.File != bad.File.ID {
			t.Fatalf("label points at file %d, want %d", l.Span.File, bad.File.ID)
		}
	}

	writeFiles(t, dir, map[string]string{"ok.sr": "fun g() {}\n"})
	third, err := DiagnoseDir(context.Background(), NewSession(Options{Cache: cache}), dir)
	if err != nil {
		t.Fatal(err)
	}
	if third[1].Cached {
		t.Fatal("edited file must miss the cache")
	}
}

func TestDiskCacheMissAndDrop(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := cacheKey([]byte("x"), Options{})
	if _, err := cache.Get(key); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("err = %v, want ErrCacheMiss", err)
	}
	if err := cache.Put(key, &DiskPayload{Path: "x.sr", Ok: true}); err != nil {
		t.Fatal(err)
	}
	got, err := cache.Get(key)
	if err != nil || got.Path != "x.sr" || !got.Ok {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Get(key); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("after DropAll err = %v", err)
	}

	var nilCache *DiskCache
	if _, err := nilCache.Get(key); !errors.Is(err, ErrCacheMiss) {
		t.Fatal("nil cache must always miss")
	}
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	content := []byte("fun f() {}")
	base := cacheKey(content, Options{})
	if base != cacheKey(content, Options{Jobs: 8}) {
		t.Fatal("job count must not change the key")
	}
	for _, opts := range []Options{{NormalizeIdents: true}, {WarningsAsErrors: true}, {MaxDiagnostics: 3}} {
		if cacheKey(content, opts) == base {
			t.Fatalf("options %+v must change the key", opts)
		}
	}
}

func TestWatcherBatchesChanges(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.sr": "fun a() {}"})

	w, err := NewWatcher(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	batches := make(chan Batch, 4)
	go func() { _ = w.Run(ctx, func(b Batch) { batches <- b }) }()

	writeFiles(t, dir, map[string]string{"a.sr": "fun a() { 1; }", "b.sr": "fun b() {}", "c.txt": "x"})

	var seen []string
	for len(seen) < 2 {
		select {
		case b := <-batches:
			seen = append(seen, b.Changed...)
		case <-ctx.Done():
			t.Fatalf("timed out, saw %v", seen)
		}
	}
	for _, p := range seen {
		if filepath.Ext(p) != SourceExt {
			t.Fatalf("non-source path reported: %s", p)
		}
	}
}

func TestSessionTimings(t *testing.T) {
	sess := NewSession(Options{})
	ParseSource(context.Background(), sess, "a.sr", []byte("fun f() {}"))
	r := sess.Timings("parse", "a.sr")
	if r.Session != sess.ID.String() || len(r.Phases) != 1 {
		t.Fatalf("report = %+v", r)
	}
}
