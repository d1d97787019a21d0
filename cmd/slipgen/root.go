package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"slipgen/internal/config"
	"slipgen/internal/logging"
	"slipgen/pkg/slipgen"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// appConfig is resolved once per invocation before any subcommand runs.
var appConfig slipgen.Config

var rootCmd = &cobra.Command{
	Use:   "slipgen",
	Short: "Run the slipgen slip-field generator",
	Long: "slipgen encodes fault geometry, discretization, roughness and mean slip\n" +
		"into the generator's request file, runs the external slipgen program in an\n" +
		"isolated work directory, and decodes its X/Y/Z output grids.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to YAML config (default: $"+config.EnvConfigPath+")")
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.Version = version
}

func setup(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(rootFlags.logLevel)
	if err != nil {
		return err
	}
	logging.Init(level, rootFlags.logFormat, cmd.ErrOrStderr())

	cfg, err := config.Load(rootFlags.configPath, os.LookupEnv)
	if err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "slipgen:", err)
		stop()
		os.Exit(1)
	}
}
