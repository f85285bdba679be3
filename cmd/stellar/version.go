package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stellar/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the stellar version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Banner())
		return err
	},
}
