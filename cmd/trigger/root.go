package main

import (
	"github.com/nglmercer/trigger-system/cmd/trigger/config"

	"github.com/spf13/cobra"
)

var (
	Debug bool

	// rootCmd represents the main `trigger` command
	rootCmd = &cobra.Command{
		Use:           "trigger",
		Short:         "Tooling for the Trigger System language server",
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       config.Version,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug output")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")

	rootCmd.AddCommand(lspCmd)
}
