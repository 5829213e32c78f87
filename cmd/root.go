// Package cmd implements the tdx-inspect command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var globalUsage = `tdx-inspect decodes the fixed portion of an Intel TDX v5
attestation quote into a human-readable breakdown.

To inspect a quote stored on disk, run:

    $ tdx-inspect quote.bin
`

// NewRootCmd returns the root command of the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tdx-inspect <quote-file>",
		Short:        "Inspect Intel TDX attestation quotes",
		Long:         globalUsage,
		Args:         cobra.ExactArgs(1),
		RunE:         runInspect,
		SilenceUsage: true,
	}

	rootCmd.Flags().Bool("json", false, "print the parsed quote as JSON instead of the text breakdown")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newMeasurementsCmd())

	return rootCmd
}

// Execute starts the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}
