// Package slipgen runs the external slip generator through its file-based
// contract. A call writes a request file (slipgen.in) into a private work
// directory, starts the generator there with a controlled environment, and
// decodes the response table (slipgen.txt) into three (ln, wn) grids.
//
// The generator itself is an opaque program; this package only owns the
// request encoding, process invocation, failure classification and response
// decoding around it.
//
// Basic use:
//
//	cfg, err := slipgen.DefaultConfig().FromEnv(os.LookupEnv)
//	...
//	res, err := slipgen.NewBridge(cfg, nil).Run(ctx, slipgen.Request{
//		Length: 10, Width: 5, LN: 2, WN: 3, K: 0.5,
//		MeanSlip: slipgen.Grid{{0, 0}, {0, 0}},
//	})
//
// Failures are typed: *LaunchError when the program could not start,
// *ComputationError when it exited non-zero, *TimeoutError when it outlived
// Config.Timeout and *DecodeError when its output could not be read.
package slipgen
