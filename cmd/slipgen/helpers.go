package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"slipgen/pkg/slipgen"
)

// requestFlags are the generator parameters shared by run and encode.
type requestFlags struct {
	length   float64
	width    float64
	ln       int
	wn       int
	k        float64
	meanSlip string
}

func (rf *requestFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&rf.length, "length", 0, "Fault length (required)")
	f.Float64Var(&rf.width, "width", 0, "Fault width (required)")
	f.IntVar(&rf.ln, "ln", 0, "Subdivisions along strike (required)")
	f.IntVar(&rf.wn, "wn", 0, "Subdivisions along dip (required)")
	f.Float64Var(&rf.k, "k", 0, "Roughness parameter")
	f.StringVar(&rf.meanSlip, "mean-slip", "", "Whitespace-delimited mean slip table, '-' for stdin (required)")

	for _, name := range []string{"length", "width", "ln", "wn", "mean-slip"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

// request reads the mean slip table and assembles a validated request.
func (rf *requestFlags) request(cmd *cobra.Command) (slipgen.Request, error) {
	grid, err := readMeanSlip(cmd, rf.meanSlip)
	if err != nil {
		return slipgen.Request{}, err
	}
	req := slipgen.Request{
		Length:   rf.length,
		Width:    rf.width,
		LN:       rf.ln,
		WN:       rf.wn,
		K:        rf.k,
		MeanSlip: grid,
	}
	if err := req.Validate(); err != nil {
		return slipgen.Request{}, err
	}
	return req, nil
}

func readMeanSlip(cmd *cobra.Command, path string) (slipgen.Grid, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open mean slip: %w", err)
		}
		defer f.Close()
		r = f
	}
	g, err := slipgen.ReadGrid(r)
	if err != nil {
		return nil, fmt.Errorf("read mean slip %s: %w", path, err)
	}
	return g, nil
}

// outputWriter returns cmd's stdout for "" or "-", otherwise a new file.
// The returned close func must be called once writing is done.
func outputWriter(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}
