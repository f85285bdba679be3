package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stellar/internal/driver"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [directory]",
	Short: "Re-run diagnostics whenever sources change",
	Long: `Watch reports the diagnostics of every *.sr file under a directory, then
re-checks the files that change until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("format", "pretty", "output format (pretty|short|json|yaml|sarif)")
	watchCmd.Flags().Duration("debounce", driver.DefaultDebounce, "quiet period before re-checking")
}

func runWatch(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
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
			return fmt.Errorf("no stellar.toml found\nplease specify a directory, e.g.:\n  stellar watch src/")
		}
		target = cfg.manifest.SourceDir()
	}

	w, err := driver.NewWatcher(target, debounce)
	if err != nil {
		return err
	}
	defer w.Close()

	// одна сессия на весь watch: кэш и интернер переживают перезапуски
	sess := newSession(cmd, cfg, true, nil)
	ctx := cmd.Context()

	results, err := driver.DiagnoseDir(ctx, sess, target)
	if err != nil {
		return err
	}
	if err := reportBatch(cmd, format, cfg, sess, results); err != nil {
		return err
	}

	err = w.Run(ctx, func(b driver.Batch) {
		if !cfg.quiet {
			stamp := color.New(color.Faint).Sprint(time.Now().Format("15:04:05"))
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %d changed, %d removed\n", stamp, len(b.Changed), len(b.Removed))
		}
		if len(b.Changed) == 0 {
			return
		}
		results, err := driver.DiagnoseFiles(ctx, sess, b.Changed)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			return
		}
		if err := reportBatch(cmd, format, cfg, sess, results); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// reportBatch prints one round; error diagnostics do not end the watch.
func reportBatch(cmd *cobra.Command, format string, cfg *runConfig, sess *driver.Session, results []*driver.DiagnoseResult) error {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %s: %v\n", r.Path, r.Err)
		}
	}
	kept := results[:0:0]
	for _, r := range results {
		if r.Err == nil {
			kept = append(kept, r)
		}
	}
	if err := reportResults(cmd, format, cfg, sess, kept); err != nil && !errors.Is(err, errDiagnostics) {
		return err
	}
	return nil
}
