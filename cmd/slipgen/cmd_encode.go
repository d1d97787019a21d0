package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slipgen/internal/format"
	"slipgen/pkg/slipgen"
)

var encodeFlags struct {
	req     requestFlags
	output  string
	preview bool
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Write the generator request file without running it",
	Long: `Encode writes the request exactly as run would hand it to the generator
(mean slip rounded to 3 significant digits), so it can be checked or fed to
the generator by hand.`,
	RunE: runEncode,
}

func init() {
	encodeFlags.req.register(encodeCmd)
	f := encodeCmd.Flags()
	f.StringVarP(&encodeFlags.output, "output", "o", slipgen.RequestFile, "Request file path ('-' for stdout)")
	f.BoolVar(&encodeFlags.preview, "preview", false, "Also print the parsed mean slip table to stderr")
}

func runEncode(cmd *cobra.Command, _ []string) error {
	req, err := encodeFlags.req.request(cmd)
	if err != nil {
		return err
	}
	if encodeFlags.preview {
		if err := format.WriteGrid(cmd.ErrOrStderr(), format.ASCII, req.MeanSlip); err != nil {
			return err
		}
	}

	if encodeFlags.output != "-" {
		if err := slipgen.WriteRequestFile(encodeFlags.output, req); err != nil {
			return err
		}
		rows, cols := req.MeanSlip.Shape()
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%dx%d nodes, %dx%d mean slip)\n",
			encodeFlags.output, req.LN, req.WN, rows, cols)
		return nil
	}
	return slipgen.EncodeRequest(cmd.OutOrStdout(), req)
}
