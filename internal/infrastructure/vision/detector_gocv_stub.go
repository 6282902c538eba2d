//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"cell-finder/internal/domain/entity"
	"cell-finder/internal/domain/port"
)

// errNoGoCV сборка без OpenCV.
var errNoGoCV = errors.New("gocv build tag is not enabled")

// GoCVDetector детектор-заглушка (без OpenCV).
type GoCVDetector struct {
	JPEGQuality int
}

// NewGoCVDetector создаёт детектор-заглушку.
func NewGoCVDetector() *GoCVDetector {
	return &GoCVDetector{JPEGQuality: 90}
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *GoCVDetector) Detect(ctx context.Context, frame *entity.Frame, params entity.DetectionParameters) (*entity.DetectionResult, error) {
	_ = ctx
	_ = frame
	_ = params
	return nil, errNoGoCV
}

// HighlightCells возвращает ошибку, если сборка без тега gocv.
func (d *GoCVDetector) HighlightCells(imageData []byte, result *entity.DetectionResult) ([]byte, error) {
	_ = imageData
	_ = result
	return nil, errNoGoCV
}

var _ port.CellDetector = (*GoCVDetector)(nil)
