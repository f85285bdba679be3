package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromSubdirectory(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[package]
name = "demo"
version = "1.2.0"
compiler = ">= 0.1.0"

[diagnostics]
max = 20
warnings_as_errors = true

[build]
jobs = 3
cache = false
`)
	sub := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	m, err := Load(sub)
	if err != nil {
		t.Fatal(err)
	}
	if m.Root != root || m.Config.Package.Name != "demo" || m.Version.Minor() != 2 {
		t.Fatalf("manifest = %+v", m)
	}
	if m.Config.Package.Root != DefaultSourceRoot || m.SourceDir() != filepath.Join(root, "src") {
		t.Fatalf("source dir = %s", m.SourceDir())
	}
	if m.Config.Diagnostics.Max != 20 || !m.Config.Diagnostics.WarningsAsErrors {
		t.Fatalf("diagnostics = %+v", m.Config.Diagnostics)
	}
	if m.Config.Build.Jobs != 3 || m.Config.Build.CacheEnabled() {
		t.Fatalf("build = %+v", m.Config.Build)
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	if _, err := Load(t.TempDir()); !errors.Is(err, ErrNoManifest) {
		t.Fatalf("err = %v, want ErrNoManifest", err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[package\n", "failed to parse TOML"},
		{"no package", "[build]\njobs = 1\n", "missing [package]"},
		{"no name", "[package]\nversion = \"1.0.0\"\n", "missing [package].name"},
		{"no version", "[package]\nname = \"x\"\n", "missing [package].version"},
		{"bad version", "[package]\nname = \"x\"\nversion = \"1.0\"\n", "[package].version"},
		{"bad constraint", "[package]\nname = \"x\"\nversion = \"1.0.0\"\ncompiler = \">>> 1\"\n", "[package].compiler"},
		{"unknown key", "[package]\nname = \"x\"\nversion = \"1.0.0\"\nauthor = \"me\"\n", "unknown keys: package.author"},
		{"absolute root", "[package]\nname = \"x\"\nversion = \"1.0.0\"\nroot = \"/src\"\n", "must be relative"},
		{"negative max", "[package]\nname = \"x\"\nversion = \"1.0.0\"\n[diagnostics]\nmax = -1\n", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestCheckCompiler(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package]\nname = \"x\"\nversion = \"1.0.0\"\ncompiler = \">= 0.2.0\"\n")
	m, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, ok := range []string{"0.2.0", "0.2.0-dev", "1.0.0"} {
		if err := m.CheckCompiler(ok); err != nil {
			t.Errorf("CheckCompiler(%s) = %v", ok, err)
		}
	}
	if err := m.CheckCompiler("0.1.9"); !errors.Is(err, ErrIncompatibleCompiler) {
		t.Errorf("CheckCompiler(0.1.9) = %v", err)
	}
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hello")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	m, err := Init(dir, "", "0.3.1-dev")
	if err != nil {
		t.Fatal(err)
	}
	if m.Config.Package.Name != "hello" || m.Config.Package.Compiler != ">= 0.3.0" {
		t.Fatalf("package = %+v", m.Config.Package)
	}
	if err := m.CheckCompiler("0.3.1-dev"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "main.sr")); err != nil {
		t.Fatal(err)
	}
	if _, err := Init(dir, "", "0.3.1"); err == nil {
		t.Fatal("second Init must refuse to overwrite")
	}
}
