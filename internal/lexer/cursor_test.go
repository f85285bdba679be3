package lexer

import (
	"testing"

	"stellar/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sr", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("cursor must stay at EOF")
	}
}

func TestCursorPeeksAndMarks(t *testing.T) {
	cursor := NewCursor(createFile("xyz"))
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'x' || b1 != 'y' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if cursor.PeekAt(2) != 'z' || cursor.PeekAt(3) != 0 {
		t.Fatal("PeekAt out of expectations")
	}

	m := cursor.Mark()
	cursor.Bump()
	if !cursor.Eat('y') || cursor.Eat('q') {
		t.Fatal("Eat mismatch")
	}
	if sp := cursor.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	cursor.Reset(m)
	if cursor.Peek() != 'x' {
		t.Fatal("Reset did not rewind")
	}
	cursor.Bump()
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatal("Peek2 at last byte must fail")
	}
}
