package slipgen

import (
	"errors"
	"fmt"
)

// Grid is a row-major 2D array of values.
type Grid [][]float64

// NewGrid returns a zero-filled grid of the given shape.
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for i := range g {
		g[i] = make([]float64, cols)
	}
	return g
}

// Shape returns the number of rows and the length of the first row.
func (g Grid) Shape() (rows, cols int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g), len(g[0])
}

// Validate checks that the grid is non-empty and rectangular.
func (g Grid) Validate() error {
	if len(g) == 0 || len(g[0]) == 0 {
		return errors.New("grid is empty")
	}
	cols := len(g[0])
	for i, row := range g {
		if len(row) != cols {
			return fmt.Errorf("grid row %d has %d values, want %d", i, len(row), cols)
		}
	}
	return nil
}

// reshape fills a rows x cols grid from flat row-major values.
func reshape(flat []float64, rows, cols int) Grid {
	g := make(Grid, rows)
	for i := range g {
		g[i] = flat[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return g
}
