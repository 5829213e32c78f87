package cmd

import (
	"fmt"

	"github.com/edgelesssys/tdx-inspect/tdx"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <output-file>",
		Short: "Generate a TDX quote using the local TDX guest device",
		Long:  "Generate a TDX quote using the local TDX guest device and write it to a file.",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}

	cmd.Flags().String("user-data", "", "user data to embed into the quote's report data (max 64 bytes)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	userData, err := cmd.Flags().GetString("user-data")
	if err != nil {
		return err
	}

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = zapLogger.Sync() }()

	device, err := tdx.Open()
	if err != nil {
		return fmt.Errorf("opening TDX guest device: %w", err)
	}
	defer device.Close()
	zapLogger.Info("Opened TDX guest device", zap.String("device", tdx.GuestDevice))

	quote, err := tdx.GenerateQuote(device, []byte(userData))
	if err != nil {
		return fmt.Errorf("generating quote: %w", err)
	}
	zapLogger.Info("Generated quote", zap.Int("quoteSize", len(quote)))

	fs := afero.Afero{Fs: afero.NewOsFs()}
	if err := fs.WriteFile(args[0], quote, 0o644); err != nil {
		return fmt.Errorf("writing quote: %w", err)
	}
	zapLogger.Info("Quote written", zap.String("file", args[0]))

	return nil
}
