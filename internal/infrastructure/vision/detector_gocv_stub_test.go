//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"cell-finder/internal/domain/entity"
)

func TestGoCVDetector_StubFails(t *testing.T) {
	d := NewGoCVDetector()
	_, err := d.Detect(context.Background(), entity.NewFrame(2, 2), entity.DefaultParameters())
	require.ErrorIs(t, err, errNoGoCV)

	_, err = d.HighlightCells(nil, &entity.DetectionResult{})
	require.ErrorIs(t, err, errNoGoCV)
}
