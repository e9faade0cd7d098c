package dataset

import (
	"fmt"

	"edakit/domain/core"
)

// ContingencyTable maps (row category, column category) to a count.
type ContingencyTable struct {
	Rows   []string `json:"rows"`
	Cols   []string `json:"cols"`
	Counts [][]int  `json:"counts"`
}

// NewContingencyTable builds a table from raw counts with generated labels.
func NewContingencyTable(counts [][]int) ContingencyTable {
	t := ContingencyTable{Counts: counts}
	for i := range counts {
		t.Rows = append(t.Rows, fmt.Sprintf("r%d", i))
	}
	if len(counts) > 0 {
		for j := range counts[0] {
			t.Cols = append(t.Cols, fmt.Sprintf("c%d", j))
		}
	}
	return t
}

// Shape returns (rows, cols) of the count matrix.
func (t ContingencyTable) Shape() (int, int) {
	if len(t.Counts) == 0 {
		return 0, 0
	}
	return len(t.Counts), len(t.Counts[0])
}

// Total sums every cell.
func (t ContingencyTable) Total() int {
	total := 0
	for _, row := range t.Counts {
		for _, c := range row {
			total += c
		}
	}
	return total
}

// Is2x2 reports whether the table has exactly two rows and two columns.
func (t ContingencyTable) Is2x2() bool {
	r, c := t.Shape()
	return r == 2 && c == 2
}

// Validate rejects tables with fewer than 2 categories on a side, ragged
// rows, negative counts or label/shape mismatches.
func (t ContingencyTable) Validate() error {
	r, c := t.Shape()
	if r < 2 || c < 2 {
		return core.NewDegenerateTableError(fmt.Sprintf("need at least 2x2, got %dx%d", r, c))
	}
	for i, row := range t.Counts {
		if len(row) != c {
			return core.NewDegenerateTableError(fmt.Sprintf("row %d has %d cells, expected %d", i, len(row), c))
		}
		for j, v := range row {
			if v < 0 {
				return core.NewDegenerateTableError(fmt.Sprintf("negative count %d at (%d,%d)", v, i, j))
			}
		}
	}
	if len(t.Rows) != 0 && len(t.Rows) != r {
		return core.NewDegenerateTableError(fmt.Sprintf("%d row labels for %d rows", len(t.Rows), r))
	}
	if len(t.Cols) != 0 && len(t.Cols) != c {
		return core.NewDegenerateTableError(fmt.Sprintf("%d column labels for %d columns", len(t.Cols), c))
	}
	return nil
}
