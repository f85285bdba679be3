package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"stellar/internal/diag"
	"stellar/internal/diagfmt"
	"stellar/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.sr|directory>",
	Short: "Parse stellar sources and print their trees",
	Long: `Parse reads a stellar source file, or every *.sr file in a directory, and
prints the syntax tree. A file whose parse was aborted by a structural error
prints no tree. With --expr the file must hold exactly one expression.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "text", "output format (text|json|yaml)")
	parseCmd.Flags().Bool("expr", false, "parse the file as a single expression")
}

func runParse(cmd *cobra.Command, args []string) error {
	target := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s (expected text|json|yaml)", format)
	}
	exprMode, err := cmd.Flags().GetBool("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
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
	out := cmd.OutOrStdout()

	if exprMode {
		if st.IsDir() {
			return fmt.Errorf("--expr needs a file, %s is a directory", target)
		}
		res, err := driver.ParseExpr(cmd.Context(), sess, target)
		if err != nil {
			return err
		}
		if res.Ok {
			node := diagfmt.BuildExprOutput(res.Builder, sess.Interner, res.Expr)
			if err := writeTree(out, format, node); err != nil {
				return err
			}
		}
		if err := printDiagnostics(cmd, cmd.ErrOrStderr(), "pretty", res.Bag, sess.FileSet, cfg); err != nil {
			return err
		}
		return diagnosticsOutcome(res.Bag)
	}

	var results []*driver.ParseResult
	if st.IsDir() {
		results, err = driver.ParseDir(cmd.Context(), sess, target)
	} else {
		var r *driver.ParseResult
		r, err = driver.Parse(cmd.Context(), sess, target)
		results = append(results, r)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	bags := make([]*diag.Bag, 0, len(results))
	trees := make(map[string]*diagfmt.ASTNodeOutput, len(results))
	order := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("parsing failed: %w", r.Err)
		}
		bags = append(bags, r.Bag)
		display := r.File.FormatPath("auto", sess.FileSet.BaseDir())
		order = append(order, display)
		if !r.Ok {
			trees[display] = nil
			continue
		}
		node, err := diagfmt.BuildASTOutput(r.Builder, sess.Interner, r.Module)
		if err != nil {
			return err
		}
		trees[display] = &node
	}

	if len(results) == 1 {
		if node := trees[order[0]]; node != nil {
			if err := writeTree(out, format, *node); err != nil {
				return err
			}
		}
	} else if err := writeTrees(out, format, order, trees, cfg.quiet); err != nil {
		return err
	}

	all := mergeBags(bags...)
	if err := printDiagnostics(cmd, cmd.ErrOrStderr(), "pretty", all, sess.FileSet, cfg); err != nil {
		return err
	}
	return diagnosticsOutcome(all)
}

func writeTree(w io.Writer, format string, node diagfmt.ASTNodeOutput) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(node)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()
	default:
		return diagfmt.WriteTree(w, node)
	}
}

// writeTrees prints several files: text gets "== path ==" headers, JSON and
// YAML get one map keyed by path (null for aborted files).
func writeTrees(w io.Writer, format string, order []string, trees map[string]*diagfmt.ASTNodeOutput, quiet bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(trees)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(trees); err != nil {
			return err
		}
		return enc.Close()
	}
	for i, path := range order {
		if !quiet {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", path)
		}
		node := trees[path]
		if node == nil {
			if !quiet {
				fmt.Fprintln(w, "(no tree)")
			}
			continue
		}
		if err := diagfmt.WriteTree(w, *node); err != nil {
			return err
		}
	}
	return nil
}
