package entity

import "image"

// Contour упорядоченные граничные точки одной связной яркой области.
type Contour []image.Point

// Detection найденная клетка-кандидат.
type Detection struct {
	Centroid        image.Point `json:"centroid"`         // центр масс области
	Contour         Contour     `json:"contour"`          // граница области
	Area            float64     `json:"area"`             // площадь по контуру
	EnclosingRadius float64     `json:"enclosing_radius"` // радиус минимальной описанной окружности
}

// DetectionResult итог одного вызова детекции.
type DetectionResult struct {
	ImageWidth  int         `json:"image_width"`  // ширина кадра
	ImageHeight int         `json:"image_height"` // высота кадра
	Cutoff      float64     `json:"cutoff"`       // порог в нормированных единицах
	Contours    int         `json:"contours"`     // сколько контуров найдено до фильтрации
	Detections  []Detection `json:"detections"`   // принятые клетки в порядке обнаружения
}

// HasCells флаг наличия клеток.
func (r *DetectionResult) HasCells() bool {
	return r != nil && len(r.Detections) > 0
}

// Centroids возвращает только центры клеток.
func (r *DetectionResult) Centroids() []image.Point {
	if r == nil {
		return nil
	}
	out := make([]image.Point, len(r.Detections))
	for i, d := range r.Detections {
		out[i] = d.Centroid
	}
	return out
}
