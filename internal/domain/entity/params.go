package entity

import (
	"fmt"
	"math"
	"strings"
)

// DefaultFilterFraction доля ширины кадра для окна сглаживания, если FilterDiameter не задан.
const DefaultFilterFraction = 0.02

// DetectionParameters настройки детекции, все размеры в долях ширины/площади кадра.
type DetectionParameters struct {
	ColorSigma          float64 `json:"color_sigma"`          // полоса по разнице яркостей
	SpaceSigma          float64 `json:"space_sigma"`          // пространственная полоса
	FilterDiameter      float64 `json:"filter_diameter"`      // диаметр окна, 0 означает DefaultFilterFraction
	ThresholdPercentile float64 `json:"threshold_percentile"` // перцентиль порога, [0, 100]
	MinAreaFraction     float64 `json:"min_area_fraction"`    // нижняя граница площади клетки
	MaxAreaFraction     float64 `json:"max_area_fraction"`    // верхняя граница площади клетки
	RoundnessFactor     float64 `json:"roundness_factor"`     // минимальное заполнение описанной окружности
}

// DefaultParameters возвращает настройки, с которыми работает лабораторная установка.
func DefaultParameters() DetectionParameters {
	return DetectionParameters{
		ColorSigma:          0.02,
		SpaceSigma:          0.02,
		FilterDiameter:      DefaultFilterFraction,
		ThresholdPercentile: 97,
		MinAreaFraction:     0.005,
		MaxAreaFraction:     0.3,
		RoundnessFactor:     0.5,
	}
}

// Validate проверяет все поля до начала обработки.
func (p DetectionParameters) Validate() error {
	checks := []struct {
		field string
		value float64
		ok    bool
		why   string
	}{
		{"color_sigma", p.ColorSigma, p.ColorSigma > 0, "must be positive"},
		{"space_sigma", p.SpaceSigma, p.SpaceSigma > 0, "must be positive"},
		{"filter_diameter", p.FilterDiameter, p.FilterDiameter >= 0, "must not be negative"},
		{"threshold_percentile", p.ThresholdPercentile, p.ThresholdPercentile >= 0 && p.ThresholdPercentile <= 100, "must be within [0, 100]"},
		{"min_area_fraction", p.MinAreaFraction, p.MinAreaFraction >= 0, "must not be negative"},
		{"max_area_fraction", p.MaxAreaFraction, p.MaxAreaFraction > 0, "must be positive"},
		{"roundness_factor", p.RoundnessFactor, p.RoundnessFactor >= 0, "must not be negative"},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return &ParameterError{Field: c.field, Value: c.value, Reason: "must be finite"}
		}
		if !c.ok {
			return &ParameterError{Field: c.field, Value: c.value, Reason: c.why}
		}
	}
	if p.MinAreaFraction >= p.MaxAreaFraction {
		return &ParameterError{Field: "min_area_fraction", Value: p.MinAreaFraction, Reason: "must be below max_area_fraction"}
	}
	return nil
}

// ParameterNames имена параметров, которые можно менять по одному.
var ParameterNames = []string{
	"color_sigma",
	"space_sigma",
	"filter_diameter",
	"threshold_percentile",
	"min_area_fraction",
	"max_area_fraction",
	"roundness_factor",
}

// With возвращает копию настроек с изменённым параметром name.
func (p DetectionParameters) With(name string, value float64) (DetectionParameters, error) {
	switch strings.ToLower(name) {
	case "color_sigma", "color":
		p.ColorSigma = value
	case "space_sigma", "space":
		p.SpaceSigma = value
	case "filter_diameter", "diameter":
		p.FilterDiameter = value
	case "threshold_percentile", "percentile", "threshold":
		p.ThresholdPercentile = value
	case "min_area_fraction", "min_area":
		p.MinAreaFraction = value
	case "max_area_fraction", "max_area":
		p.MaxAreaFraction = value
	case "roundness_factor", "roundness":
		p.RoundnessFactor = value
	default:
		return p, fmt.Errorf("%w: unknown parameter %q", ErrInvalidParameter, name)
	}
	return p, nil
}

// FilterFraction доля ширины для окна сглаживания с учётом значения по умолчанию.
func (p DetectionParameters) FilterFraction() float64 {
	if p.FilterDiameter == 0 {
		return DefaultFilterFraction
	}
	return p.FilterDiameter
}
