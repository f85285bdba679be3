package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stellar/internal/diag"
	"stellar/internal/diagfmt"
	"stellar/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.sr|directory>",
	Short: "Tokenize a stellar source file",
	Long:  `Tokenize breaks a stellar source file into its tokens; malformed lexemes are reported as E000`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	target := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	cfg, err := loadRunConfig(cmd, target)
	if err != nil {
		return err
	}
	sess := newSession(cmd, cfg, false, nil)
	defer printTimings(cmd, cfg, sess)

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var results []*driver.TokenizeResult
	if st.IsDir() {
		results, err = driver.TokenizeDir(cmd.Context(), sess, target)
	} else {
		var r *driver.TokenizeResult
		r, err = driver.Tokenize(cmd.Context(), sess, target)
		results = append(results, r)
	}
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	bags := make([]*diag.Bag, 0, len(results))
	out := cmd.OutOrStdout()
	for i, r := range results {
		if r.Err != nil {
			return fmt.Errorf("tokenization failed: %w", r.Err)
		}
		bags = append(bags, r.Bag)
		if len(results) > 1 && !cfg.quiet {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", r.File.FormatPath("auto", sess.FileSet.BaseDir()))
		}
		switch format {
		case "pretty":
			err = diagfmt.FormatTokensPretty(out, r.Tokens, sess.FileSet)
		case "json":
			err = diagfmt.FormatTokensJSON(out, r.Tokens)
		case "yaml":
			err = diagfmt.FormatTokensYAML(out, r.Tokens)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
		if err != nil {
			return err
		}
	}

	all := mergeBags(bags...)
	if err := printDiagnostics(cmd, cmd.ErrOrStderr(), "pretty", all, sess.FileSet, cfg); err != nil {
		return err
	}
	return diagnosticsOutcome(all)
}
