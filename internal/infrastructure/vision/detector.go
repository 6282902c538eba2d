package vision

import (
	"bytes"
	"context"
	"errors"

	"github.com/disintegration/imaging"

	"cell-finder/internal/domain/entity"
	"cell-finder/internal/domain/port"
)

// Detector детектор клеток на чистом Go.
type Detector struct {
	JPEGQuality int
}

// NewDetector создаёт детектор с качеством JPEG для подсветки.
func NewDetector() *Detector {
	return &Detector{JPEGQuality: 90}
}

// Detect ищет клетки на кадре. Контекст проверяется только до начала: сам расчёт не прерывается.
func (d *Detector) Detect(ctx context.Context, frame *entity.Frame, params entity.DetectionParameters) (*entity.DetectionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DetectCells(frame, params)
}

// HighlightCells рисует найденные клетки поверх исходного снимка и возвращает JPEG.
func (d *Detector) HighlightCells(imageData []byte, result *entity.DetectionResult) ([]byte, error) {
	if result == nil {
		return nil, errors.New("empty detection result")
	}
	img, err := DecodeImage(imageData, 0)
	if err != nil {
		return nil, err
	}
	// Детекция шла в рабочем разрешении, подложку приводим к нему же.
	b := img.Bounds()
	if b.Dx() != result.ImageWidth || b.Dy() != result.ImageHeight {
		img = imaging.Resize(img, result.ImageWidth, result.ImageHeight, imaging.Lanczos)
	}

	annotated := Annotate(img, result.Detections)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, annotated, imaging.JPEG, imaging.JPEGQuality(d.JPEGQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Проверка реализации интерфейса
var _ port.CellDetector = (*Detector)(nil)
