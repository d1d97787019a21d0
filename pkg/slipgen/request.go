package slipgen

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// RequestFile is the name the generator reads its parameters from.
const RequestFile = "slipgen.in"

// Request holds the parameters of one generator call.
type Request struct {
	Length float64 // fault length
	Width  float64 // fault width
	LN     int     // subdivisions along strike
	WN     int     // subdivisions along dip
	K      float64 // roughness parameter

	// MeanSlip is the deterministic part of the slip. Its shape is
	// independent of LN/WN.
	MeanSlip Grid

	// ShowOutput writes the generator's standard output to Config.Output
	// after a successful run.
	ShowOutput bool
}

// Validate checks the call preconditions.
func (r Request) Validate() error {
	if !(r.Length > 0) || math.IsInf(r.Length, 0) {
		return fmt.Errorf("%w: length must be positive, got %v", ErrInvalidRequest, r.Length)
	}
	if !(r.Width > 0) || math.IsInf(r.Width, 0) {
		return fmt.Errorf("%w: width must be positive, got %v", ErrInvalidRequest, r.Width)
	}
	if r.LN <= 0 || r.WN <= 0 {
		return fmt.Errorf("%w: ln and wn must be positive, got %d x %d", ErrInvalidRequest, r.LN, r.WN)
	}
	if math.IsNaN(r.K) || math.IsInf(r.K, 0) {
		return fmt.Errorf("%w: k must be finite, got %v", ErrInvalidRequest, r.K)
	}
	if err := r.MeanSlip.Validate(); err != nil {
		return fmt.Errorf("%w: mean slip: %v", ErrInvalidRequest, err)
	}
	return nil
}

// EncodeRequest writes the request in the generator's line format:
//
//	length<TAB>width
//	ln<TAB>wn
//	k
//	rows<TAB>cols
//	one line per mean slip row, values tab-separated
//
// Mean slip values are written with 3 significant digits; the generator has
// only ever been fed that precision.
func EncodeRequest(w io.Writer, req Request) error {
	rows, cols := req.MeanSlip.Shape()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\t%s\n", formatRepr(req.Length), formatRepr(req.Width))
	fmt.Fprintf(bw, "%d\t%d\n", req.LN, req.WN)
	fmt.Fprintf(bw, "%s\n", formatRepr(req.K))
	fmt.Fprintf(bw, "%d\t%d\n", rows, cols)
	vals := make([]string, cols)
	for _, row := range req.MeanSlip {
		for j, v := range row {
			vals[j] = formatSig3(v)
		}
		bw.WriteString(strings.Join(vals, "\t"))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteRequestFile validates req and writes it to path, replacing any
// existing file.
func WriteRequestFile(path string, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create request file: %w", err)
	}
	if err := EncodeRequest(f, req); err != nil {
		f.Close()
		return fmt.Errorf("write request file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close request file: %w", err)
	}
	return nil
}

// formatRepr writes the shortest decimal that parses back to v, with a
// trailing ".0" for integral values and exponent form only for very large
// or very small magnitudes.
func formatRepr(v float64) string {
	if s, ok := formatSpecial(v); ok {
		return s
	}
	if v == 0 {
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}
	exp := decimalExponent(strconv.FormatFloat(v, 'e', -1, 64))
	if exp < -4 || exp >= 16 {
		return pyExponent(strconv.FormatFloat(v, 'e', -1, 64))
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatSig3 renders v with 3 significant digits in general form: fixed
// notation keeps at least one fractional digit, exponent form is used when
// the decimal exponent is below -4 or at least 2.
func formatSig3(v float64) string {
	if s, ok := formatSpecial(v); ok {
		return s
	}
	if v == 0 {
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}
	e := strconv.FormatFloat(v, 'e', 2, 64)
	exp := decimalExponent(e)
	if exp < -4 || exp >= 2 {
		return pyExponent(e)
	}
	s := strconv.FormatFloat(v, 'f', 2-exp, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
	}
	if strings.HasSuffix(s, ".") {
		s += "0"
	} else if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatSpecial(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "nan", true
	case math.IsInf(v, 1):
		return "inf", true
	case math.IsInf(v, -1):
		return "-inf", true
	}
	return "", false
}

// decimalExponent extracts the exponent from a strconv 'e' formatted float.
func decimalExponent(e string) int {
	i := strings.IndexByte(e, 'e')
	n, _ := strconv.Atoi(e[i+1:])
	return n
}

// pyExponent strips trailing mantissa zeros and pads the exponent to two
// digits: "1.20e+02" -> "1.2e+02", "5.00e-05" -> "5e-05".
func pyExponent(e string) string {
	i := strings.IndexByte(e, 'e')
	mant, exp := e[:i], e[i+1:]
	if strings.Contains(mant, ".") {
		mant = strings.TrimRight(strings.TrimRight(mant, "0"), ".")
	}
	sign := exp[0]
	digits := exp[1:]
	if len(digits) < 2 {
		digits = "0" + digits
	}
	return mant + "e" + string(sign) + digits
}
