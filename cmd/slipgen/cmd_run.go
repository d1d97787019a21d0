package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"slipgen/internal/format"
	"slipgen/internal/logging"
	"slipgen/pkg/slipgen"
)

var runFlags struct {
	req         requestFlags
	showOutput  bool
	timeout     time.Duration
	keepWorkDir bool
	format      string
	output      string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the generator and print the X/Y/Z grids",
	Long: `Run writes the request file into a fresh work directory, starts the
generator there, and prints one row per grid node (i, j, X, Y, Z).

The generator's own output goes to stderr with --show-output so that
stdout carries only the result table.`,
	RunE: runRun,
}

func init() {
	runFlags.req.register(runCmd)
	f := runCmd.Flags()
	f.BoolVar(&runFlags.showOutput, "show-output", false, "Print the generator's stdout (to stderr)")
	f.DurationVar(&runFlags.timeout, "timeout", 0, "Kill the generator after this long; overrides the config timeout when set (0 = wait indefinitely)")
	f.BoolVar(&runFlags.keepWorkDir, "keep-workdir", false, "Leave the work directory on disk for inspection")
	f.StringVar(&runFlags.format, "format", "ascii", "Output format (ascii, markdown, tsv)")
	f.StringVarP(&runFlags.output, "output", "o", "", "Write the result to a file instead of stdout")
}

func runRun(cmd *cobra.Command, _ []string) error {
	mode, err := format.ParseMode(runFlags.format)
	if err != nil {
		return err
	}
	req, err := runFlags.req.request(cmd)
	if err != nil {
		return err
	}
	req.ShowOutput = runFlags.showOutput

	res, err := slipgen.NewBridge(runConfig(cmd), logging.New("bridge")).Run(cmd.Context(), req)
	if err != nil {
		return err
	}
	if res.WorkDir != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "work directory: %s\n", res.WorkDir)
	}

	w, closeOut, err := outputWriter(cmd, runFlags.output)
	if err != nil {
		return err
	}
	if err := format.WriteResult(w, mode, res); err != nil {
		_ = closeOut()
		return fmt.Errorf("write result: %w", err)
	}
	return closeOut()
}

// runConfig applies the flags the user set explicitly on top of appConfig.
// An explicit --timeout 0 disables the configured timeout.
func runConfig(cmd *cobra.Command) slipgen.Config {
	cfg := appConfig
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = runFlags.timeout
	}
	if cmd.Flags().Changed("keep-workdir") {
		cfg.KeepWorkDir = runFlags.keepWorkDir
	}
	cfg.Output = cmd.ErrOrStderr()
	return cfg
}
