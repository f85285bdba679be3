package source

import (
	"path/filepath"
	"testing"
)

func TestRelativePath(t *testing.T) {
	base := filepath.Join(t.TempDir(), "base")
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"nested", filepath.Join(base, "pkg", "file.sr"), "pkg/file.sr"},
		{"same dir", filepath.Join(base, "file.sr"), "file.sr"},
		// вне base получаем абсолютный путь, а не цепочку ../
		{"sibling dir", filepath.Join(base, "..", "other", "file.sr"), normalizePath(filepath.Join(filepath.Dir(base), "other", "file.sr"))},
		{"base itself", base, "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RelativePath(tt.target, base)
			if err != nil {
				t.Fatalf("RelativePath: %v", err)
			}
			if got != tt.want {
				t.Fatalf("RelativePath(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestToLineCol(t *testing.T) {
	idx := buildLineIndex([]byte("ab\n\ncd\n"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{4, LineCol{3, 1}},
		{7, LineCol{4, 1}},
	}
	for _, tt := range tests {
		if got := toLineCol(idx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestRemoveBOM(t *testing.T) {
	if out, ok := removeBOM([]byte("\xEF\xBB\xBFx")); !ok || string(out) != "x" {
		t.Fatalf("removeBOM = %q, %v", out, ok)
	}
	if out, ok := removeBOM([]byte("\xEF\xBBx")); ok || len(out) != 3 {
		t.Fatalf("partial BOM must be kept, got %q, %v", out, ok)
	}
}
