package vision

import "cell-finder/internal/domain/entity"

// SweepGrid значения для перебора; пустая ось берётся из базовых настроек.
type SweepGrid struct {
	ColorSigmas []float64
	SpaceSigmas []float64
	Percentiles []float64
}

// SweepResult итог одной комбинации.
type SweepResult struct {
	Params entity.DetectionParameters `json:"params"`
	Count  int                        `json:"count"`
	Err    error                      `json:"-"`
}

func axis(values []float64, fallback float64) []float64 {
	if len(values) == 0 {
		return []float64{fallback}
	}
	return values
}

// Sweep прогоняет детекцию по сетке ColorSigma × SpaceSigma × перцентиль.
// Ошибка отдельной комбинации записывается в результат, перебор продолжается.
func Sweep(frame *entity.Frame, base entity.DetectionParameters, grid SweepGrid) []SweepResult {
	results := make([]SweepResult, 0)
	for _, cs := range axis(grid.ColorSigmas, base.ColorSigma) {
		for _, ss := range axis(grid.SpaceSigmas, base.SpaceSigma) {
			for _, pc := range axis(grid.Percentiles, base.ThresholdPercentile) {
				params := base
				params.ColorSigma = cs
				params.SpaceSigma = ss
				params.ThresholdPercentile = pc

				res, err := DetectCells(frame, params)
				item := SweepResult{Params: params, Err: err}
				if err == nil {
					item.Count = len(res.Detections)
				}
				results = append(results, item)
			}
		}
	}
	return results
}
