// Package format renders slipgen result grids for the terminal or for
// files: box-drawn ASCII tables, Markdown tables, or a TSV table with the
// generator's own response layout.
package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"slipgen/pkg/slipgen"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
	TSV                  // x<TAB>y<TAB>z rows, row-major, like slipgen.txt
)

// ParseMode maps "ascii", "markdown" (or "md") and "tsv" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "ascii":
		return ASCII, nil
	case "markdown", "md":
		return Markdown, nil
	case "tsv":
		return TSV, nil
	}
	return ASCII, fmt.Errorf("unknown format %q (want ascii, markdown or tsv)", s)
}

func (m Mode) String() string {
	switch m {
	case Markdown:
		return "markdown"
	case TSV:
		return "tsv"
	default:
		return "ascii"
	}
}

// WriteResult writes one row per grid node. Table modes carry the node
// indices i, j; TSV mode writes only the three values so the output can be
// fed back through slipgen.DecodeResponse.
func WriteResult(w io.Writer, m Mode, res *slipgen.Result) error {
	ln, wn := res.X.Shape()
	if m == TSV {
		var sb strings.Builder
		for i := 0; i < ln; i++ {
			for j := 0; j < wn; j++ {
				sb.WriteString(Float(res.X[i][j]))
				sb.WriteByte('\t')
				sb.WriteString(Float(res.Y[i][j]))
				sb.WriteByte('\t')
				sb.WriteString(Float(res.Z[i][j]))
				sb.WriteByte('\n')
			}
		}
		_, err := io.WriteString(w, sb.String())
		return err
	}

	tb := NewTable(m)
	tb.Header("i", "j", "X", "Y", "Z")
	for i := 0; i < ln; i++ {
		for j := 0; j < wn; j++ {
			tb.Row(i, j, Float(res.X[i][j]), Float(res.Y[i][j]), Float(res.Z[i][j]))
		}
	}
	tb.Footer("", "", "", "nodes", ln*wn)
	tb.Columns(rightAligned(5)...)
	_, err := io.WriteString(w, tb.String()+"\n")
	return err
}

// WriteGrid renders g as a matrix with a leading row-index column. TSV mode
// writes the bare values, one grid row per line.
func WriteGrid(w io.Writer, m Mode, g slipgen.Grid) error {
	rows, cols := g.Shape()
	if m == TSV {
		var sb strings.Builder
		for _, row := range g {
			for j, v := range row {
				if j > 0 {
					sb.WriteByte('\t')
				}
				sb.WriteString(Float(v))
			}
			sb.WriteByte('\n')
		}
		_, err := io.WriteString(w, sb.String())
		return err
	}

	tb := NewTable(m)
	header := []string{""}
	for j := 0; j < cols; j++ {
		header = append(header, strconv.Itoa(j))
	}
	tb.Header(header...)
	for i := 0; i < rows; i++ {
		row := []any{i}
		for _, v := range g[i] {
			row = append(row, Float(v))
		}
		tb.Row(row...)
	}
	tb.Columns(rightAligned(cols + 1)...)
	_, err := io.WriteString(w, tb.String()+"\n")
	return err
}

// Float formats v with the shortest representation that parses back to it.
func Float(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func rightAligned(n int) []ColumnConfig {
	cfgs := make([]ColumnConfig, n)
	for i := range cfgs {
		cfgs[i] = ColumnConfig{Number: i + 1, Align: AlignRight}
	}
	return cfgs
}
