package vision

import (
	"math"

	"cell-finder/internal/domain/entity"
)

// limits пороги фильтра в пикселях для конкретного размера кадра.
type limits struct {
	minArea   float64
	maxArea   float64
	roundness float64
}

func newLimits(rows, cols int, params entity.DetectionParameters) limits {
	total := float64(rows * cols)
	return limits{
		minArea:   params.MinAreaFraction * total,
		maxArea:   params.MaxAreaFraction * total,
		roundness: params.RoundnessFactor,
	}
}

// sized условия (a) и (b): площадь строго между границами.
func (l limits) sized(area float64) bool {
	return area < l.maxArea && area > l.minArea
}

// round условие (c): площадь больше roundness·π·r² описанной окружности.
func (l limits) round(area, radius float64) bool {
	return area > l.roundness*math.Pi*radius*radius
}

// detection считает центр принятого контура.
func detection(c entity.Contour, area, radius float64) (entity.Detection, error) {
	centroid, err := Centroid(c)
	if err != nil {
		return entity.Detection{}, err
	}
	return entity.Detection{
		Centroid:        centroid,
		Contour:         c,
		Area:            area,
		EnclosingRadius: radius,
	}, nil
}

// Filter оставляет контуры, похожие на одну круглую клетку, порядок сохраняется.
// Вырожденные контуры пропускаются.
func Filter(contours []entity.Contour, rows, cols int, params entity.DetectionParameters) []entity.Detection {
	lim := newLimits(rows, cols, params)
	detections := make([]entity.Detection, 0)
	for _, c := range contours {
		area := ContourArea(c)
		if !lim.sized(area) {
			continue
		}
		radius := MinEnclosingCircle(c).Radius
		if !lim.round(area, radius) {
			continue
		}
		d, err := detection(c, area, radius)
		if err != nil {
			continue
		}
		detections = append(detections, d)
	}
	return detections
}

// Stages промежуточные результаты конвейера.
type Stages struct {
	Normalized *entity.Frame
	Smoothed   *entity.Frame
	Cutoff     float64
	Mask       *entity.Mask
	Contours   []entity.Contour
}

// RunStages нормировка, сглаживание, порог и поиск контуров без фильтрации.
// Ошибки параметров и кадра возвращаются до начала обработки.
func RunStages(frame *entity.Frame, params entity.DetectionParameters) (*Stages, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	norm, err := Normalize(frame)
	if err != nil {
		return nil, err
	}
	cutoff, err := Cutoff(norm, params.ThresholdPercentile)
	if err != nil {
		return nil, err
	}

	smoothed := Smooth(norm, params)
	mask := Segment(smoothed, cutoff)
	return &Stages{
		Normalized: norm,
		Smoothed:   smoothed,
		Cutoff:     cutoff,
		Mask:       mask,
		Contours:   FindContours(mask),
	}, nil
}

// DetectCells полный конвейер: нормировка, сглаживание, порог, контуры, фильтр.
func DetectCells(frame *entity.Frame, params entity.DetectionParameters) (*entity.DetectionResult, error) {
	stages, err := RunStages(frame, params)
	if err != nil {
		return nil, err
	}
	return &entity.DetectionResult{
		ImageWidth:  frame.Cols,
		ImageHeight: frame.Rows,
		Cutoff:      stages.Cutoff,
		Contours:    len(stages.Contours),
		Detections:  Filter(stages.Contours, frame.Rows, frame.Cols, params),
	}, nil
}
