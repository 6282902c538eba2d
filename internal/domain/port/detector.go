package port

import (
	"context"

	"cell-finder/internal/domain/entity"
)

// CellDetector интерфейс детектора флуоресцентных клеток
type CellDetector interface {
	// Detect ищет клетки на кадре с заданными настройками
	Detect(ctx context.Context, frame *entity.Frame, params entity.DetectionParameters) (*entity.DetectionResult, error)

	// HighlightCells создаёт изображение с отмеченными клетками
	HighlightCells(imageData []byte, result *entity.DetectionResult) ([]byte, error)
}
