package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stellar/internal/diag"
)

var explainCmd = &cobra.Command{
	Use:   "explain [code]",
	Short: "Explain a diagnostic code",
	Long:  `Explain prints the long description of a diagnostic code such as E001. Without a code it lists all of them.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	title := color.New(color.Bold)
	if len(args) == 0 {
		for _, c := range diag.Codes() {
			fmt.Fprintf(out, "%s  %s\n", title.Sprint(c.ID()), c.Title())
		}
		return nil
	}
	code, err := diag.ParseCode(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %s\n\n", title.Sprint(code.ID()), code.Title())
	fmt.Fprintln(out, strings.TrimSpace(code.Explain()))
	return nil
}
