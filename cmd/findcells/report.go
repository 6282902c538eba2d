package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"cell-finder/internal/infrastructure/vision"
)

type sweepRow struct {
	ColorSigma float64 `json:"color_sigma"`
	SpaceSigma float64 `json:"space_sigma"`
	Percentile float64 `json:"threshold_percentile"`
	Count      int     `json:"count"`
	Error      string  `json:"error,omitempty"`
}

func sweepReport(results []vision.SweepResult) []sweepRow {
	rows := make([]sweepRow, 0, len(results))
	for _, r := range results {
		row := sweepRow{
			ColorSigma: r.Params.ColorSigma,
			SpaceSigma: r.Params.SpaceSigma,
			Percentile: r.Params.ThresholdPercentile,
			Count:      r.Count,
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		rows = append(rows, row)
	}
	return rows
}

// parseList разбирает "0.01, 0.02"; пустая строка даёт пустой список.
func parseList(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseGrid(color, space, percentiles string) (vision.SweepGrid, error) {
	var grid vision.SweepGrid
	var err error
	if grid.ColorSigmas, err = parseList(color); err != nil {
		return grid, err
	}
	if grid.SpaceSigmas, err = parseList(space); err != nil {
		return grid, err
	}
	if grid.Percentiles, err = parseList(percentiles); err != nil {
		return grid, err
	}
	return grid, nil
}

func encoderFor(filename string) imgio.Encoder {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(90)
	}
	return imgio.PNGEncoder()
}

func writeJSON(filename string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, append(data, '\n'), 0644)
}
