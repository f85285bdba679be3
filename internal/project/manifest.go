package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// Config mirrors stellar.toml.
type Config struct {
	Package     PackageConfig     `toml:"package"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Build       BuildConfig       `toml:"build"`
}

type PackageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	// Compiler is a semver constraint on the stellar version, e.g. ">= 0.1.0".
	Compiler string `toml:"compiler,omitempty"`
	// Root is the source directory relative to the manifest. Default "src".
	Root string `toml:"root,omitempty"`
}

type DiagnosticsConfig struct {
	Max              int  `toml:"max"`
	WarningsAsErrors bool `toml:"warnings_as_errors"`
}

type BuildConfig struct {
	// Jobs is the worker count; 0 means GOMAXPROCS.
	Jobs  int   `toml:"jobs"`
	Cache *bool `toml:"cache,omitempty"`
}

// CacheEnabled reports [build].cache, which defaults to true.
func (b BuildConfig) CacheEnabled() bool {
	return b.Cache == nil || *b.Cache
}

// Manifest is a loaded and validated stellar.toml.
type Manifest struct {
	Path    string
	Root    string // directory containing the manifest
	Config  Config
	Version *semver.Version
}

// SourceDir is the absolute source root of the project.
func (m *Manifest) SourceDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Package.Root))
}

const DefaultSourceRoot = "src"

// Load finds the manifest from startDir upwards and loads it.
// Returns ErrNoManifest when there is none.
func Load(startDir string) (*Manifest, error) {
	path, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile decodes and validates the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if cfg.Package.Version == "" {
		return nil, fmt.Errorf("%s: missing [package].version", path)
	}
	v, err := semver.StrictNewVersion(cfg.Package.Version)
	if err != nil {
		return nil, fmt.Errorf("%s: [package].version %q: %w", path, cfg.Package.Version, err)
	}
	if cfg.Package.Compiler != "" {
		if _, err := semver.NewConstraint(cfg.Package.Compiler); err != nil {
			return nil, fmt.Errorf("%s: [package].compiler %q: %w", path, cfg.Package.Compiler, err)
		}
	}
	if cfg.Package.Root == "" {
		cfg.Package.Root = DefaultSourceRoot
	}
	if filepath.IsAbs(cfg.Package.Root) {
		return nil, fmt.Errorf("%s: [package].root must be relative", path)
	}
	if cfg.Diagnostics.Max < 0 {
		return nil, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	if cfg.Build.Jobs < 0 {
		return nil, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}

	return &Manifest{
		Path:    path,
		Root:    filepath.Dir(path),
		Config:  cfg,
		Version: v,
	}, nil
}

// ErrIncompatibleCompiler is returned by CheckCompiler when the running
// compiler does not satisfy [package].compiler.
var ErrIncompatibleCompiler = errors.New("incompatible compiler version")

// CheckCompiler tests compilerVersion against [package].compiler.
// Prerelease compilers are compared by their release part, so a 0.2.0-dev
// build satisfies ">= 0.2.0".
func (m *Manifest) CheckCompiler(compilerVersion string) error {
	if m.Config.Package.Compiler == "" {
		return nil
	}
	c, err := semver.NewConstraint(m.Config.Package.Compiler)
	if err != nil {
		return err
	}
	v, err := semver.NewVersion(compilerVersion)
	if err != nil {
		return fmt.Errorf("compiler version %q: %w", compilerVersion, err)
	}
	release, err := v.SetPrerelease("")
	if err != nil {
		return err
	}
	if !c.Check(&release) {
		return fmt.Errorf("%w: %s requires %s, running %s", ErrIncompatibleCompiler, m.Path, m.Config.Package.Compiler, compilerVersion)
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Init writes a starter project into dir: stellar.toml and
// <root>/main.sr. Existing files are never overwritten.
func Init(dir, name, compilerVersion string) (*Manifest, error) {
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		name = filepath.Base(abs)
	}
	cfg := Config{
		Package: PackageConfig{
			Name:    name,
			Version: "0.1.0",
			Root:    DefaultSourceRoot,
		},
		Diagnostics: DiagnosticsConfig{Max: 100},
	}
	if v, err := semver.NewVersion(compilerVersion); err == nil {
		cfg.Package.Compiler = fmt.Sprintf(">= %d.%d.0", v.Major(), v.Minor())
	}

	data, err := Encode(cfg)
	if err != nil {
		return nil, err
	}
	manifestPath := filepath.Join(dir, ManifestName)
	mainPath := filepath.Join(dir, DefaultSourceRoot, "main.sr")
	for _, p := range []string{manifestPath, mainPath} {
		if _, err := os.Stat(p); err == nil {
			return nil, fmt.Errorf("%s already exists", p)
		}
	}

	if err := os.MkdirAll(filepath.Dir(mainPath), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(mainPath, []byte(starterSource), 0o644); err != nil {
		return nil, err
	}
	return LoadFile(manifestPath)
}

const starterSource = `//! Entry point.

/// Prints a greeting.
pub fun main() {
    let greeting = "hello, stellar";
    print(greeting);
}
`
