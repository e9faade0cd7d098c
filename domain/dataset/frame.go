package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"edakit/domain/core"
)

// missingTokens are cell values read as missing observations.
var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// IsMissing reports whether a raw cell value represents a missing observation.
func IsMissing(cell string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(cell))]
}

// Frame is a column-oriented table of raw string cells.
type Frame struct {
	columns []string
	index   map[string]int
	cells   [][]string // cells[col][row]
	rows    int
}

// NewFrame builds a frame from a header and row-major records. Short records
// are padded with missing cells; long records are an error.
func NewFrame(columns []string, records [][]string) (*Frame, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("frame needs at least one column")
	}

	index := make(map[string]int, len(columns))
	for i, name := range columns {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}

	cells := make([][]string, len(columns))
	for c := range cells {
		cells[c] = make([]string, len(records))
	}
	for r, record := range records {
		if len(record) > len(columns) {
			return nil, fmt.Errorf("record %d has %d fields, header has %d", r+1, len(record), len(columns))
		}
		for c, v := range record {
			cells[c][r] = v
		}
	}

	names := make([]string, len(columns))
	for i, name := range columns {
		names[i] = strings.TrimSpace(name)
	}

	return &Frame{columns: names, index: index, cells: cells, rows: len(records)}, nil
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.rows
}

// HasColumn reports whether the frame has a column with this name.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns the raw cells of a column.
func (f *Frame) Column(name string) ([]string, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, core.NewColumnNotFoundError(name)
	}
	out := make([]string, f.rows)
	copy(out, f.cells[i])
	return out, nil
}

// NumericColumn parses a column as floats. Missing cells become NaN.
func (f *Frame) NumericColumn(name string) ([]float64, error) {
	raw, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, cell := range raw {
		if IsMissing(cell) {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, core.NewNotNumericError(name, i+1, cell)
		}
		out[i] = v
	}
	return out, nil
}

// Partition splits valueCol into rows where groupCol equals target (group 1)
// and all other rows (group 2). Missing values are dropped per group; a row
// with a missing group cell belongs to group 2.
func (f *Frame) Partition(groupCol, target, valueCol string) (group1, group2 []float64, err error) {
	groups, err := f.Column(groupCol)
	if err != nil {
		return nil, nil, err
	}
	values, err := f.NumericColumn(valueCol)
	if err != nil {
		return nil, nil, err
	}

	target = strings.TrimSpace(target)
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if !IsMissing(groups[i]) && strings.TrimSpace(groups[i]) == target {
			group1 = append(group1, v)
		} else {
			group2 = append(group2, v)
		}
	}
	return group1, group2, nil
}

// DropMissing returns a copy of xs without NaN entries.
func DropMissing(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
