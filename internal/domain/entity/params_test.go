package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultParameters_Valid(t *testing.T) {
	require.NoError(t, DefaultParameters().Validate())
}

func TestValidate_RejectsOutOfDomain(t *testing.T) {
	cases := map[string]func(p *DetectionParameters){
		"percentile below zero":  func(p *DetectionParameters) { p.ThresholdPercentile = -1 },
		"percentile above 100":   func(p *DetectionParameters) { p.ThresholdPercentile = 100.5 },
		"zero color sigma":       func(p *DetectionParameters) { p.ColorSigma = 0 },
		"negative space sigma":   func(p *DetectionParameters) { p.SpaceSigma = -0.1 },
		"negative min area":      func(p *DetectionParameters) { p.MinAreaFraction = -0.01 },
		"zero max area":          func(p *DetectionParameters) { p.MaxAreaFraction = 0 },
		"min above max":          func(p *DetectionParameters) { p.MinAreaFraction = 0.5 },
		"negative roundness":     func(p *DetectionParameters) { p.RoundnessFactor = -1 },
		"negative diameter":      func(p *DetectionParameters) { p.FilterDiameter = -0.02 },
		"nan percentile":         func(p *DetectionParameters) { p.ThresholdPercentile = math.NaN() },
		"infinite color sigma":   func(p *DetectionParameters) { p.ColorSigma = math.Inf(1) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := DefaultParameters()
			mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidParameter))

			var perr *ParameterError
			require.True(t, errors.As(err, &perr))
			require.NotEmpty(t, perr.Field)
		})
	}
}

func TestValidate_PercentileBoundsInclusive(t *testing.T) {
	p := DefaultParameters()
	p.ThresholdPercentile = 0
	require.NoError(t, p.Validate())
	p.ThresholdPercentile = 100
	require.NoError(t, p.Validate())
}

func TestWith(t *testing.T) {
	p, err := DefaultParameters().With("percentile", 90)
	require.NoError(t, err)
	require.Equal(t, 90.0, p.ThresholdPercentile)

	p, err = p.With("ROUNDNESS", 0.7)
	require.NoError(t, err)
	require.Equal(t, 0.7, p.RoundnessFactor)

	_, err = p.With("gain", 2)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestFilterFraction_DerivedWhenZero(t *testing.T) {
	p := DefaultParameters()
	p.FilterDiameter = 0
	require.Equal(t, DefaultFilterFraction, p.FilterFraction())
	p.FilterDiameter = 0.05
	require.Equal(t, 0.05, p.FilterFraction())
}
