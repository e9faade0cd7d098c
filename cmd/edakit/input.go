package main

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"edakit/adapters/excel"
	"edakit/adapters/postgres"
	"edakit/domain/dataset"
)

func loadFrame(ctx context.Context, rt *env, src sourceFlags) (*dataset.Frame, error) {
	if src.query == "" {
		return excel.NewFrameReader(src.file, src.sheet, rt.logger).Load(ctx)
	}

	if err := rt.cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	db, err := postgres.Open(ctx, rt.cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return postgres.NewFrameSource(db, src.query).Load(ctx)
}

// parseSample reads "1,2.5,NA" into floats with NaN for missing entries.
func parseSample(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if dataset.IsMissing(p) {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %q is not a number", i+1, p)
		}
		out[i] = v
	}
	return out, nil
}

func parsePair(a, b string) ([]float64, []float64, error) {
	g1, err := parseSample(a)
	if err != nil {
		return nil, nil, fmt.Errorf("--group1: %w", err)
	}
	g2, err := parseSample(b)
	if err != nil {
		return nil, nil, fmt.Errorf("--group2: %w", err)
	}
	return g1, g2, nil
}

// parseCounts reads "10,20;30,40" into a count matrix.
func parseCounts(s string) ([][]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty table")
	}
	var rows [][]int
	for i, line := range strings.Split(s, ";") {
		var row []int
		for j, cell := range strings.Split(line, ",") {
			v, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %q is not an integer", i+1, j+1, cell)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
