package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/edgelesssys/tdx-inspect/inspect/types"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func runInspect(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	return inspectQuoteFile(cmd, afero.Afero{Fs: afero.NewOsFs()}, args[0], asJSON)
}

// inspectQuoteFile reads a raw quote from the given file, decodes its fixed
// portion and writes the decoded representation to the command's output.
func inspectQuoteFile(cmd *cobra.Command, fs afero.Afero, path string, asJSON bool) error {
	rawQuote, err := fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading quote file: %w", err)
	}

	quote, err := types.ParseQuote(rawQuote)
	if err != nil {
		return fmt.Errorf("parsing quote: %w", err)
	}

	// The declared body size never influences parsing, but a mismatch with the
	// fixed TD report 1.5 layout means the quote likely is a different body variant.
	if quote.Body.Size != types.TDReport15Size {
		cmd.PrintErrf("WARNING: quote declares a body size of %d bytes, the TD report 1.5 layout has %d bytes\n", quote.Body.Size, types.TDReport15Size)
	}

	if asJSON {
		quoteJSON, err := json.MarshalIndent(quote, "", " ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(quoteJSON))
		return nil
	}

	printQuote(cmd.OutOrStdout(), quote)
	return nil
}

// printQuote writes the decoded quote in the same order the fields appear in the raw buffer.
func printQuote(out io.Writer, quote types.Quote) {
	header := quote.Header
	fmt.Fprintln(out, "Quote Header:")
	fmt.Fprintf(out, "  Version              : %d\n", header.Version)
	fmt.Fprintf(out, "  Attestation Key Type : %d\n", header.AttestationKeyType)
	fmt.Fprintf(out, "  TEE Type             : %s\n", header.TEEType)
	fmt.Fprintf(out, "  Reserved 1           : %s\n", hex.EncodeToString(header.Reserved1[:]))
	fmt.Fprintf(out, "  Reserved 2           : %s\n", hex.EncodeToString(header.Reserved2[:]))
	fmt.Fprintf(out, "  QE Vendor ID         : %s\n", header.QEVendorUUID())
	fmt.Fprintf(out, "  User Data            : %s\n", hex.EncodeToString(header.UserData[:]))

	body := quote.Body
	report := body.Report
	fmt.Fprintln(out, "Quote Body:")
	fmt.Fprintf(out, "  Body Type            : %d\n", body.BodyType)
	fmt.Fprintf(out, "  Size                 : %d\n", body.Size)
	fmt.Fprintf(out, "  TEE TCB SVN          : %s\n", hex.EncodeToString(report.TEETCBSVN[:]))
	fmt.Fprintf(out, "  MRSEAM               : %s\n", hex.EncodeToString(report.MRSEAM[:]))
	fmt.Fprintf(out, "  MRSIGNERSEAM         : %s\n", hex.EncodeToString(report.MRSIGNERSEAM[:]))
	fmt.Fprintf(out, "  SEAM Attributes      : %s\n", hex.EncodeToString(report.SEAMAttributes[:]))
	fmt.Fprintf(out, "  TD Attributes        : %s\n", hex.EncodeToString(report.TDAttributes[:]))
	printTDAttributes(out, report.TDAttributes.Decompose())
	fmt.Fprintf(out, "  XFAM                 : %s\n", hex.EncodeToString(report.XFAM[:]))
	fmt.Fprintf(out, "  MRTD                 : %s\n", hex.EncodeToString(report.MRTD[:]))
	fmt.Fprintf(out, "  MRCONFIGID           : %s\n", hex.EncodeToString(report.MRCONFIGID[:]))
	fmt.Fprintf(out, "  MROWNER              : %s\n", hex.EncodeToString(report.MROWNER[:]))
	fmt.Fprintf(out, "  MROWNERCONFIG        : %s\n", hex.EncodeToString(report.MROWNERCONFIG[:]))
	for i, rtmr := range report.RTMR {
		fmt.Fprintf(out, "  RTMR%d                : %s\n", i, hex.EncodeToString(rtmr[:]))
	}
	fmt.Fprintf(out, "  Report Data          : %s\n", hex.EncodeToString(report.ReportData[:]))
	fmt.Fprintf(out, "  TEE TCB SVN 2        : %s\n", hex.EncodeToString(report.TEETCBSVN2[:]))
	fmt.Fprintf(out, "  MRSERVICETD          : %s\n", hex.EncodeToString(report.MRSERVICETD[:]))
}

// printTDAttributes writes the TUD/SEC/OTHER breakdown of the TD attributes.
// Reserved ranges are printed as integers so unexpected bits stay visible.
func printTDAttributes(out io.Writer, flags types.TDAttributesFlags) {
	fmt.Fprintln(out, "    TUD:")
	fmt.Fprintf(out, "      DEBUG            : %t\n", flags.TUD.Debug)
	fmt.Fprintf(out, "      RESERVED         : %d\n", flags.TUD.Reserved)
	fmt.Fprintln(out, "    SEC:")
	fmt.Fprintf(out, "      RESERVED         : %d\n", flags.SEC.Reserved)
	fmt.Fprintf(out, "      SEPT_VE_DISABLE  : %t\n", flags.SEC.SEPTVEDisable)
	fmt.Fprintf(out, "      PKS              : %t\n", flags.SEC.PKS)
	fmt.Fprintf(out, "      KL               : %t\n", flags.SEC.KL)
	fmt.Fprintln(out, "    OTHER:")
	fmt.Fprintf(out, "      RESERVED         : %d\n", flags.Other.Reserved)
	fmt.Fprintf(out, "      PERFMON          : %t\n", flags.Other.Perfmon)
}
