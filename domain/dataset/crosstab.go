package dataset

import (
	"sort"
	"strings"
)

// CrossTab counts co-occurrences of two categorical columns. Categories are
// sorted; rows where either cell is missing are skipped.
func CrossTab(f *Frame, rowCol, colCol string) (ContingencyTable, error) {
	rowCells, err := f.Column(rowCol)
	if err != nil {
		return ContingencyTable{}, err
	}
	colCells, err := f.Column(colCol)
	if err != nil {
		return ContingencyTable{}, err
	}

	type pair struct{ r, c string }
	counts := make(map[pair]int)
	rowSet := make(map[string]bool)
	colSet := make(map[string]bool)

	for i := range rowCells {
		if IsMissing(rowCells[i]) || IsMissing(colCells[i]) {
			continue
		}
		r := strings.TrimSpace(rowCells[i])
		c := strings.TrimSpace(colCells[i])
		counts[pair{r, c}]++
		rowSet[r] = true
		colSet[c] = true
	}

	rows := sortedKeys(rowSet)
	cols := sortedKeys(colSet)

	table := ContingencyTable{Rows: rows, Cols: cols, Counts: make([][]int, len(rows))}
	for i, r := range rows {
		table.Counts[i] = make([]int, len(cols))
		for j, c := range cols {
			table.Counts[i][j] = counts[pair{r, c}]
		}
	}
	return table, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
