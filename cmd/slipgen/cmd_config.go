package main

import (
	"github.com/spf13/cobra"

	"slipgen/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as YAML",
	Long: `Config prints the configuration run would use after applying the config
file and SLIPGEN_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return config.Write(cmd.OutOrStdout(), appConfig)
	},
}
