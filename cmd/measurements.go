package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/edgelesssys/tdx-inspect/tdx"
	"github.com/spf13/cobra"
)

func newMeasurementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "measurements",
		Short: "Read the measurement registers of the local TDX guest",
		Long:  "Read MRTD and RTMR0-3 from the local TDX guest device and print them hex encoded.",
		Args:  cobra.NoArgs,
		RunE:  runMeasurements,
	}

	return cmd
}

func runMeasurements(cmd *cobra.Command, _ []string) error {
	device, err := tdx.Open()
	if err != nil {
		return fmt.Errorf("opening TDX guest device: %w", err)
	}
	defer device.Close()

	measurements, err := tdx.ReadMeasurements(device)
	if err != nil {
		return fmt.Errorf("reading measurements: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "MRTD  : %s\n", hex.EncodeToString(measurements[0][:]))
	for i, rtmr := range measurements[1:] {
		fmt.Fprintf(out, "RTMR%d : %s\n", i, hex.EncodeToString(rtmr[:]))
	}

	return nil
}
