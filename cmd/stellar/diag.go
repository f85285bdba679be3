package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stellar/internal/diag"
	"stellar/internal/driver"
	"stellar/internal/ui"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file.sr|directory]",
	Short: "Report diagnostics of stellar sources",
	Long: `Diag parses a file or every *.sr file in a directory and reports only the
diagnostics. Without an argument the source root of the enclosing
stellar.toml is used. Unchanged files are answered from the diagnostics cache.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiag,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json|yaml|sarif)")
	diagCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

func runDiag(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	useUI, err := shouldUseTUI(uiFlag)
	if err != nil {
		return err
	}

	target := ""
	if len(args) == 1 {
		target = args[0]
	}
	cfg, err := loadRunConfig(cmd, target)
	if err != nil {
		return err
	}
	if target == "" {
		if cfg.manifest == nil {
			return fmt.Errorf("no stellar.toml found\nplease specify a file or directory, e.g.:\n  stellar diag src/")
		}
		target = cfg.manifest.SourceDir()
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var results []*driver.DiagnoseResult
	var sess *driver.Session
	if !st.IsDir() {
		sess = newSession(cmd, cfg, true, nil)
		var r *driver.DiagnoseResult
		r, err = driver.Diagnose(cmd.Context(), sess, target)
		results = append(results, r)
	} else {
		sess, results, err = diagnoseDir(cmd, cfg, target, useUI && format == "pretty" && !cfg.quiet)
	}
	defer printTimings(cmd, cfg, sess)
	if err != nil {
		return fmt.Errorf("diagnostics failed: %w", err)
	}
	return reportResults(cmd, format, cfg, sess, results)
}

func diagnoseDir(cmd *cobra.Command, cfg *runConfig, dir string, withUI bool) (*driver.Session, []*driver.DiagnoseResult, error) {
	if !withUI {
		sess := newSession(cmd, cfg, true, nil)
		results, err := driver.DiagnoseDir(cmd.Context(), sess, dir)
		return sess, results, err
	}

	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	var (
		sess    *driver.Session
		results []*driver.DiagnoseResult
	)
	err = ui.Run(cmd.Context(), os.Stderr, "diagnosing "+dir, files, func(onFile driver.FileObserver) error {
		sess = newSession(cmd, cfg, true, onFile)
		var err error
		results, err = driver.DiagnoseFiles(cmd.Context(), sess, files)
		return err
	})
	return sess, results, err
}

func reportResults(cmd *cobra.Command, format string, cfg *runConfig, sess *driver.Session, results []*driver.DiagnoseResult) error {
	bags := make([]*diag.Bag, 0, len(results))
	cached := 0
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("diagnostics failed: %w", r.Err)
		}
		if r.Cached {
			cached++
		}
		bags = append(bags, r.Bag)
	}
	all := mergeBags(bags...)
	if err := printDiagnostics(cmd, cmd.OutOrStdout(), format, all, sess.FileSet, cfg); err != nil {
		return err
	}
	if !cfg.quiet && format == "pretty" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s), %d diagnostic(s)", len(results), all.Len())
		if cached > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), ", %d from cache", cached)
		}
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	return diagnosticsOutcome(all)
}

// shouldUseTUI resolves --ui: auto means "stderr is a terminal".
func shouldUseTUI(mode string) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(os.Stderr), nil
	}
	return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", mode)
}
