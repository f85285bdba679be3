package source

import (
	"fmt"
	"sync"
	"testing"
)

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID must resolve to empty string, got %q ok=%v", s, ok)
	}

	id1 := interner.Intern("hello")
	if id1 == NoStringID {
		t.Fatal("Intern returned NoStringID for a non-empty string")
	}
	if id2 := interner.Intern("hello"); id1 != id2 {
		t.Fatalf("Intern is not idempotent: %d != %d", id1, id2)
	}
	if s, ok := interner.Lookup(id1); !ok || s != "hello" {
		t.Fatalf("Lookup(%d) = %q, %v", id1, s, ok)
	}
	if id3 := interner.Intern("world"); id3 == id1 {
		t.Fatal("different strings share an ID")
	}

	want := 1 + len(builtinIdents) + 2
	if interner.Len() != want {
		t.Fatalf("Len = %d, want %d", interner.Len(), want)
	}
}

func TestInternerBuiltins(t *testing.T) {
	interner := NewInterner()
	tests := []struct {
		text string
		want StringID
	}{
		{"_", SymUnderscore},
		{"int32", SymInt32},
		{"uint64", SymUint64},
		{"float64", SymFloat64},
		{"String", SymString},
		{"self", SymSelfValue},
		{"Self", SymSelfType},
		{"std", SymStd},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := interner.Intern(tt.text); got != tt.want {
				t.Fatalf("Intern(%q) = %d, want %d", tt.text, got, tt.want)
			}
			if !IsBuiltin(tt.want) {
				t.Fatalf("IsBuiltin(%d) = false", tt.want)
			}
		})
	}
	if IsBuiltin(interner.Intern("custom")) {
		t.Fatal("user identifier reported as builtin")
	}
}

func TestInternerGetDoesNotInsert(t *testing.T) {
	interner := NewInterner()
	before := interner.Len()
	if _, ok := interner.Get("missing"); ok {
		t.Fatal("Get found a string that was never interned")
	}
	if interner.Len() != before {
		t.Fatal("Get must not insert")
	}
	id := interner.Intern("missing")
	if got, ok := interner.Get("missing"); !ok || got != id {
		t.Fatalf("Get = %d,%v want %d", got, ok, id)
	}
}

func TestInternerMustLookupPanics(t *testing.T) {
	interner := NewInterner()
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustLookup must panic for an unknown ID")
		}
	}()
	interner.MustLookup(StringID(9999))
}

func TestInternerStringCopy(t *testing.T) {
	interner := NewInterner()
	buf := []byte("original")
	id := interner.InternBytes(buf)
	buf[0] = 'X'
	if s, _ := interner.Lookup(id); s != "original" {
		t.Fatalf("interner must keep its own copy, got %q", s)
	}
}

// Одна и та же строка из разных горутин должна получить один ID.
func TestInternerConcurrentIntern(t *testing.T) {
	interner := NewInterner()
	const goroutines = 64
	const strs = 500

	results := make([][]StringID, goroutines)
	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]StringID, strs)
			for i := range strs {
				ids[i] = interner.Intern(fmt.Sprintf("s_%d", i))
				if _, ok := interner.Lookup(ids[i]); !ok {
					t.Errorf("Lookup failed right after Intern")
				}
			}
			results[g] = ids
		}()
	}
	wg.Wait()

	for g := 1; g < goroutines; g++ {
		for i := range strs {
			if results[g][i] != results[0][i] {
				t.Fatalf("goroutine %d got id %d for s_%d, goroutine 0 got %d", g, results[g][i], i, results[0][i])
			}
		}
	}
	if want := 1 + len(builtinIdents) + strs; interner.Len() != want {
		t.Fatalf("Len = %d, want %d", interner.Len(), want)
	}
}
