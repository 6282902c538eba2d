package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"cell-finder/internal/domain/entity"
	"cell-finder/internal/infrastructure/vision"
)

func TestParseList(t *testing.T) {
	values, err := parseList(" 90, 95,,97.5 ")
	require.NoError(t, err)
	require.Equal(t, []float64{90, 95, 97.5}, values)

	values, err = parseList("")
	require.NoError(t, err)
	require.Empty(t, values)

	_, err = parseList("90,high")
	require.Error(t, err)
}

func TestParseGrid(t *testing.T) {
	grid, err := parseGrid("", "0.01,0.03", "95")
	require.NoError(t, err)
	require.Empty(t, grid.ColorSigmas)
	require.Equal(t, []float64{0.01, 0.03}, grid.SpaceSigmas)
	require.Equal(t, []float64{95}, grid.Percentiles)

	_, err = parseGrid("x", "", "")
	require.Error(t, err)
}

func TestSweepReportAndJSON(t *testing.T) {
	params := entity.DefaultParameters()
	rows := sweepReport([]vision.SweepResult{
		{Params: params, Count: 3},
		{Params: params, Err: errors.New("boom")},
	})
	require.Len(t, rows, 2)
	require.Equal(t, 3, rows[0].Count)
	require.Empty(t, rows[0].Error)
	require.Equal(t, "boom", rows[1].Error)

	path := filepath.Join(t.TempDir(), "sweep.json")
	require.NoError(t, writeJSON(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []sweepRow
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, rows, decoded)
}
