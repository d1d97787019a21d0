package slipgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ResponseFile is the name the generator writes its result table to.
const ResponseFile = "slipgen.txt"

// responseColumns is the column count of the generator's result table.
const responseColumns = 3

// Result holds the decoded output of one generator call.
type Result struct {
	RunID string
	X     Grid
	Y     Grid
	Z     Grid

	// Stdout is the generator's captured standard output.
	Stdout string

	// WorkDir is the call's work directory when Config.KeepWorkDir is set,
	// empty otherwise.
	WorkDir string
}

// tableRow is one parsed data line of a whitespace-delimited table.
type tableRow struct {
	line   int
	values []float64
}

// readTable parses a whitespace-delimited numeric table. Blank lines and
// text after '#' are ignored.
func readTable(r io.Reader) ([]tableRow, error) {
	var rows []tableRow
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		vals := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &DecodeError{Line: line, Err: fmt.Errorf("column %d: %w", i, err)}
			}
			vals[i] = v
		}
		rows = append(rows, tableRow{line: line, values: vals})
	}
	if err := sc.Err(); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return rows, nil
}

// ReadGrid parses a rectangular whitespace-delimited table into a Grid.
func ReadGrid(r io.Reader) (Grid, error) {
	rows, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &DecodeError{Err: errors.New("table has no data rows")}
	}
	cols := len(rows[0].values)
	g := make(Grid, len(rows))
	for i, row := range rows {
		if len(row.values) != cols {
			return nil, &DecodeError{Line: row.line, Err: fmt.Errorf("got %d columns, want %d", len(row.values), cols)}
		}
		g[i] = row.values
	}
	return g, nil
}

// DecodeResponse reads the generator's result table and reshapes its three
// columns into (ln, wn) grids. Row i*wn+j becomes X[i][j], Y[i][j], Z[i][j].
func DecodeResponse(r io.Reader, ln, wn int) (x, y, z Grid, err error) {
	if ln <= 0 || wn <= 0 || ln > math.MaxInt/wn {
		return nil, nil, nil, &DecodeError{
			Err: fmt.Errorf("%w: invalid grid shape %d x %d", ErrShapeMismatch, ln, wn),
		}
	}
	rows, err := readTable(r)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(rows) != ln*wn {
		return nil, nil, nil, &DecodeError{
			Err: fmt.Errorf("%w: got %d rows, want %d (%d x %d)", ErrShapeMismatch, len(rows), ln*wn, ln, wn),
		}
	}
	n := len(rows)
	xs := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)
	for i, row := range rows {
		if len(row.values) != responseColumns {
			return nil, nil, nil, &DecodeError{
				Line: row.line,
				Err:  fmt.Errorf("got %d columns, want %d", len(row.values), responseColumns),
			}
		}
		xs[i], ys[i], zs[i] = row.values[0], row.values[1], row.values[2]
	}
	return reshape(xs, ln, wn), reshape(ys, ln, wn), reshape(zs, ln, wn), nil
}

// ReadResponseFile opens path and decodes it with DecodeResponse. Any
// failure is a *DecodeError carrying the path.
func ReadResponseFile(path string, ln, wn int) (x, y, z Grid, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	x, y, z, err = DecodeResponse(f, ln, wn)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = path
		}
		return nil, nil, nil, err
	}
	return x, y, z, nil
}
