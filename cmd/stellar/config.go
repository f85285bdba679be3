package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stellar/internal/diagfmt"
	"stellar/internal/driver"
	"stellar/internal/project"
	"stellar/internal/trace"
	"stellar/internal/version"
)

// runConfig is the manifest merged with command-line flags. Flags that
// were set explicitly win.
type runConfig struct {
	manifest         *project.Manifest
	maxDiagnostics   int
	warningsAsErrors bool
	jobs             int
	cache            bool
	normalizeIdents  bool
	quiet            bool
	timings          bool
	pathMode         diagfmt.PathMode
	// runID is the ID of the last session created for this run.
	runID string
}

// loadRunConfig looks for stellar.toml starting at the directory of target
// (the working directory when target is empty).
func loadRunConfig(cmd *cobra.Command, target string) (*runConfig, error) {
	pf := cmd.Root().PersistentFlags()
	cfg := &runConfig{cache: true}

	start := target
	if start == "" {
		start = "."
	} else if st, err := os.Stat(start); err == nil && !st.IsDir() {
		start = filepath.Dir(start)
	}
	m, err := project.Load(start)
	switch {
	case err == nil:
		if err := m.CheckCompiler(version.Version); err != nil {
			return nil, err
		}
		cfg.manifest = m
		cfg.maxDiagnostics = m.Config.Diagnostics.Max
		cfg.warningsAsErrors = m.Config.Diagnostics.WarningsAsErrors
		cfg.jobs = m.Config.Build.Jobs
		cfg.cache = m.Config.Build.CacheEnabled()
	case errors.Is(err, project.ErrNoManifest):
		cfg.maxDiagnostics, _ = pf.GetInt("max-diagnostics")
	default:
		return nil, err
	}

	if pf.Changed("max-diagnostics") {
		cfg.maxDiagnostics, _ = pf.GetInt("max-diagnostics")
	}
	if pf.Changed("jobs") {
		cfg.jobs, _ = pf.GetInt("jobs")
	}
	if noCache, _ := pf.GetBool("no-cache"); noCache {
		cfg.cache = false
	}
	cfg.normalizeIdents, _ = pf.GetBool("normalize-idents")
	cfg.quiet, _ = pf.GetBool("quiet")
	cfg.timings, _ = pf.GetBool("timings")

	pathModeStr, _ := pf.GetString("path-mode")
	mode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return nil, fmt.Errorf("invalid --path-mode value %q", pathModeStr)
	}
	cfg.pathMode = mode
	return cfg, nil
}

// newSession builds a driver session for cfg. A cache that cannot be opened
// is reported and skipped; it never fails the command.
func newSession(cmd *cobra.Command, cfg *runConfig, withCache bool, onFile driver.FileObserver) *driver.Session {
	opts := driver.Options{
		MaxDiagnostics:   cfg.maxDiagnostics,
		WarningsAsErrors: cfg.warningsAsErrors,
		Jobs:             cfg.jobs,
		NormalizeIdents:  cfg.normalizeIdents,
		Tracer:           trace.FromContext(cmd.Context()),
		OnFile:           onFile,
	}
	if wd, err := os.Getwd(); err == nil {
		opts.BaseDir = wd
	}
	if withCache && cfg.cache {
		cache, err := driver.OpenDiskCache("stellar")
		if err != nil {
			if !cfg.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: diagnostics cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}
	sess := driver.NewSession(opts)
	cfg.runID = sess.ID.String()
	return sess
}

// printTimings writes the --timings summary to stderr.
func printTimings(cmd *cobra.Command, cfg *runConfig, sess *driver.Session) {
	if !cfg.timings || sess == nil {
		return
	}
	if err := sess.Timer.WriteSummary(cmd.ErrOrStderr()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "timings: %v\n", err)
	}
}
