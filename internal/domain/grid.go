package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Grid is a fixed-shape 2-D array of float64 with NaN marking missing
// cells. Rows and columns are 0-based here; model coordinates in
// FlowRecord are 1-based.
type Grid struct {
	rows, cols int
	data       []float64
}

// NewGrid allocates a rows×cols grid with every cell missing (NaN).
func NewGrid(rows, cols int) *Grid {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = math.NaN()
	}
	return &Grid{rows: rows, cols: cols, data: data}
}

// GridFromRows builds a grid from parsed row slices, validating the shape.
func GridFromRows(rows [][]float64, wantRows, wantCols int) (*Grid, error) {
	if len(rows) != wantRows {
		return nil, &ShapeError{WantRows: wantRows, WantCols: wantCols, GotRows: len(rows)}
	}
	g := NewGrid(wantRows, wantCols)
	for r, row := range rows {
		if len(row) != wantCols {
			return nil, &ShapeError{WantRows: wantRows, WantCols: wantCols, GotRows: len(rows), GotCols: len(row), BadRow: r + 1}
		}
		copy(g.data[r*wantCols:], row)
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// At returns the value at (row, col). Panics if out of range, like a slice.
func (g *Grid) At(row, col int) float64 {
	g.check(row, col)
	return g.data[row*g.cols+col]
}

// Set writes the value at (row, col).
func (g *Grid) Set(row, col int, v float64) {
	g.check(row, col)
	g.data[row*g.cols+col] = v
}

func (g *Grid) check(row, col int) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("grid index (%d,%d) out of range %dx%d", row, col, g.rows, g.cols))
	}
}

// Map returns a new grid with fn applied to every non-missing cell.
// Missing cells stay missing.
func (g *Grid) Map(fn func(float64) float64) *Grid {
	out := &Grid{rows: g.rows, cols: g.cols, data: make([]float64, len(g.data))}
	for i, v := range g.data {
		if math.IsNaN(v) {
			out.data[i] = v
			continue
		}
		out.data[i] = fn(v)
	}
	return out
}

// MarshalJSON encodes the grid as a JSON array of row arrays, with missing
// cells as null.
func (g *Grid) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('[')
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				buf.WriteByte(',')
			}
			v := g.data[r*g.cols+c]
			if math.IsNaN(v) {
				buf.WriteString("null")
				continue
			}
			b, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// ShapeError reports a recharge block whose accumulated rows do not match
// the configured grid shape. BadRow is 1-based; zero means the row count
// itself was wrong.
type ShapeError struct {
	Year, Month        int
	WantRows, WantCols int
	GotRows, GotCols   int
	BadRow             int
}

func (e *ShapeError) Error() string {
	if e.BadRow > 0 {
		return fmt.Sprintf("grid shape mismatch for year %d month %d: row %d has %d columns, want %d",
			e.Year, e.Month, e.BadRow, e.GotCols, e.WantCols)
	}
	return fmt.Sprintf("grid shape mismatch for year %d month %d: got %d rows, want %dx%d",
		e.Year, e.Month, e.GotRows, e.WantRows, e.WantCols)
}
