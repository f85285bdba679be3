package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stellar/internal/prof"
)

var profiler *prof.Profiler

func startProfiling(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	var opts prof.Options
	opts.CPU, _ = pf.GetString("cpuprofile")
	opts.Mem, _ = pf.GetString("memprofile")
	opts.Trace, _ = pf.GetString("runtime-trace")
	if !opts.Enabled() {
		return nil
	}
	p, err := prof.Start(opts)
	if err != nil {
		return err
	}
	profiler = p
	return nil
}

func stopProfiling() {
	if err := profiler.Stop(); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
	profiler = nil
}
