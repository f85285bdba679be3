package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stellar/internal/project"
	"stellar/internal/version"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new stellar project",
	Long: `Initialize a new stellar project by creating a manifest (stellar.toml)
and an entry point (src/main.sr). If [path] is omitted, initializes the
current directory. A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", "", "package name (default: directory name)")
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return fmt.Errorf("failed to get name flag: %w", err)
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	m, err := project.Init(target, name, version.Version)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "initialized %s\n", m.Config.Package.Name)
		fmt.Fprintf(out, "  %s\n", m.Path)
		fmt.Fprintf(out, "  %s\n", filepath.Join(m.SourceDir(), "main.sr"))
	}
	return nil
}
