package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		t.Run(tt.level.String()+"/"+tt.scope.String(), func(t *testing.T) {
			if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
				t.Fatalf("ShouldEmit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(strings.ToUpper(s))
		if err != nil || l.String() != s {
			t.Fatalf("ParseLevel(%q) = %v, %v", s, l, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestStreamTracerStampsSession(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Output: &buf, Format: FormatNDJSON, Session: "sess-1"})
	if err != nil {
		t.Fatal(err)
	}

	span := Begin(tr, ScopePass, "parse", 0)
	Begin(tr, ScopeFile, "file:a.sr", span.ID()).End("") // filtered at phase level
	span.WithExtra("files", "2").End("ok")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d events, want 2:\n%s", len(lines), buf.String())
	}
	var end jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatal(err)
	}
	if end.Session != "sess-1" || end.Kind != "end" || end.Detail != "ok" || end.Extra["files"] != "2" {
		t.Fatalf("unexpected end event: %+v", end)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: string(rune('a' + i))})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d", len(snap))
	}
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ""); got != "cde" {
		t.Fatalf("snapshot order = %q, want cde", got)
	}
}

func TestRingOfFindsBufferBehindWrappers(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelError, Mode: ModeBoth, Output: &buf, Session: "x"})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeDriver, "start", "")
	r, ok := RingOf(tr)
	if !ok {
		t.Fatal("ring not found")
	}
	if snap := r.Snapshot(); len(snap) != 1 || snap[0].Session != "x" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestTextFormat(t *testing.T) {
	ev := &Event{
		Time:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Seq:     7,
		Session: "0123456789",
		Kind:    KindSpanEnd,
		Scope:   ScopePass,
		Name:    "parse",
		Detail:  "ok",
		Extra:   map[string]string{"b": "2", "a": "1"},
	}
	want := "03:04:05.000000 #7 [01234567] pass   ← parse (ok) {a=1, b=2}\n"
	if got := string(FormatEvent(ev, FormatText)); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestBeginContextNestsSpans(t *testing.T) {
	r := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), r)

	ctx, outer := BeginContext(ctx, ScopePass, "outer")
	_, inner := BeginContext(ctx, ScopeFile, "inner")
	inner.End("")
	outer.End("")

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("len = %d", len(snap))
	}
	if snap[1].ParentID != outer.ID() {
		t.Fatalf("inner parent = %d, want %d", snap[1].ParentID, outer.ID())
	}
}

func TestNopIsSilent(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	span := Begin(Nop, ScopeDriver, "x", 0)
	if span.End("") != 0 || span.ID() != 0 {
		t.Fatal("nop span must be inert")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("heartbeat must not start without tracing")
	}
}
