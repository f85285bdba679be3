package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"stellar/internal/project"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"diagnostics", errDiagnostics, 1},
		{"wrapped diagnostics", fmt.Errorf("diag: %w", errDiagnostics), 1},
		{"interrupted", fmt.Errorf("walk: %w", context.Canceled), 130},
		{"infrastructure", errors.New("disk on fire"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Fatalf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestShouldUseTUI(t *testing.T) {
	if on, err := shouldUseTUI("on"); err != nil || !on {
		t.Fatalf("on = %v, %v", on, err)
	}
	if on, err := shouldUseTUI("off"); err != nil || on {
		t.Fatalf("off = %v, %v", on, err)
	}
	if _, err := shouldUseTUI("sometimes"); err == nil {
		t.Fatal("expected error for an unknown mode")
	}
}

func TestExplain(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := runExplain(cmd, []string{"e1"}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "E001: ") {
		t.Fatalf("output = %q", out.String())
	}

	out.Reset()
	if err := runExplain(cmd, nil); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 5 {
		t.Fatalf("listed %d codes:\n%s", lines, out.String())
	}

	if err := runExplain(cmd, []string{"E999"}); err == nil {
		t.Fatal("expected error for an unknown code")
	}
}

func TestInitCreatesProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	var out bytes.Buffer
	initCmd.SetOut(&out)
	t.Cleanup(func() { initCmd.SetOut(nil) })

	if err := runInit(initCmd, []string{dir}); err != nil {
		t.Fatalf("init: %v", err)
	}
	m, err := project.LoadFile(filepath.Join(dir, project.ManifestName))
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("name = %q", m.Config.Package.Name)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "main.sr")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "initialized demo") {
		t.Fatalf("output = %q", out.String())
	}

	if err := runInit(initCmd, []string{dir}); err == nil {
		t.Fatal("second init must refuse to overwrite")
	}
}
