package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"stellar/internal/diag"
	"stellar/internal/diagfmt"
	"stellar/internal/source"
	"stellar/internal/version"
)

// printDiagnostics renders bag in one of pretty|short|json|yaml|sarif.
func printDiagnostics(cmd *cobra.Command, w io.Writer, format string, bag *diag.Bag, fs *source.FileSet, cfg *runConfig) error {
	switch format {
	case "pretty":
		if bag.Len() == 0 {
			return nil
		}
		out, _ := w.(*os.File)
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:       out != nil && useColor(cmd, out),
			Context:     2,
			PathMode:    cfg.pathMode,
			ShowNotes:   true,
			ShowPreview: true,
		})
		return nil
	case "short":
		diagfmt.Short(w, bag, fs, cfg.pathMode)
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, jsonOpts(cfg))
	case "yaml":
		return diagfmt.YAML(w, bag, fs, jsonOpts(cfg))
	case "sarif":
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:    "stellar",
			ToolVersion: version.Version,
			RunID:       cfg.runID,
			PathMode:    cfg.pathMode,
		})
	}
	return fmt.Errorf("unknown format: %s (expected pretty|short|json|yaml|sarif)", format)
}

func jsonOpts(cfg *runConfig) diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         cfg.pathMode,
		IncludeNotes:     true,
		IncludeLabels:    true,
	}
}

// mergeBags collects per-file bags into one unlimited bag sorted by position.
func mergeBags(bags ...*diag.Bag) *diag.Bag {
	all := diag.NewBag(0)
	for _, b := range bags {
		if b != nil {
			all.Merge(b)
		}
	}
	all.Sort()
	return all
}

// diagnosticsOutcome turns error-severity diagnostics into exit code 1.
func diagnosticsOutcome(bag *diag.Bag) error {
	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
