package vision

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"cell-finder/internal/domain/entity"
)

func TestNormalize_MaxIsOne(t *testing.T) {
	f := entity.NewFrame(7, 9)
	for i := range f.Pix {
		f.Pix[i] = float64((i*37)%411) + 3
	}
	orig := f.Clone()

	norm, err := Normalize(f)
	require.NoError(t, err)

	maxValue := 0.0
	for _, v := range norm.Pix {
		require.GreaterOrEqual(t, v, 0.0)
		if v > maxValue {
			maxValue = v
		}
	}
	require.InDelta(t, 1.0, maxValue, 1e-12)
	require.Equal(t, orig.Pix, f.Pix)
}

func TestNormalize_BlankFrame(t *testing.T) {
	_, err := Normalize(entity.NewFrame(5, 5))
	require.ErrorIs(t, err, entity.ErrDegenerateFrame)
}

func TestNormalize_InvalidFrame(t *testing.T) {
	_, err := Normalize(&entity.Frame{Rows: 3, Cols: 3, Pix: []float64{1, 2}})
	require.ErrorIs(t, err, entity.ErrInvalidFrame)
}

func TestSmooth_ConstantFrameUnchanged(t *testing.T) {
	f := filledFrame(20, 30, 0.37)
	out := Smooth(f, entity.DefaultParameters())
	require.Equal(t, f.Pix, out.Pix)
}

func TestSmooth_PreservesEdgesWithNarrowColorSigma(t *testing.T) {
	f := rectFrame(40, 40, 10, 10, 30, 30, 0.1, 1)
	params := entity.DefaultParameters()
	params.ColorSigma = 0.0025 // 0.1 в единицах яркости
	params.FilterDiameter = 0.1

	out := Smooth(f, params)
	for i := range f.Pix {
		require.InDelta(t, f.Pix[i], out.Pix[i], 1e-9)
	}
}

func TestSmooth_WideColorSigmaBlursEdges(t *testing.T) {
	f := rectFrame(40, 40, 10, 10, 30, 30, 0.1, 1)
	params := entity.DefaultParameters()
	params.ColorSigma = 1

	out := Smooth(f, params)
	// пиксель фона рядом с краем подтягивается к яркой области
	require.Greater(t, out.At(9, 20), 0.1)
	require.Less(t, out.At(10, 20), 1.0)
	// далёкий фон не меняется
	require.Equal(t, 0.1, out.At(0, 0))
	require.Equal(t, f.Rows, out.Rows)
	require.Equal(t, f.Cols, out.Cols)
}

func TestFilterRadius(t *testing.T) {
	p := entity.DefaultParameters()
	require.Equal(t, 1, filterRadius(100, p))
	require.Equal(t, 10, filterRadius(1024, p))

	p.FilterDiameter = 0.1
	require.Equal(t, 5, filterRadius(100, p))

	// окно меньше пикселя: радиус из пространственной sigma
	p.FilterDiameter = 0.001
	require.Equal(t, 3, filterRadius(100, p))
}

func TestExpTable(t *testing.T) {
	table := newExpTable()
	require.Equal(t, 1.0, table.at(0))
	for _, u := range []float64{1e-4, 0.013, 0.5, 1, 2.718, 10, 40.5, 63.9} {
		want := math.Exp(-u)
		require.InEpsilon(t, want, table.at(u), 1e-4, "u=%g", u)
		require.Greater(t, table.at(u), 0.0)
	}
	// за пределами сетки значение точное
	require.Equal(t, math.Exp(-80), table.at(80))
	require.Equal(t, math.Exp(-64), table.at(64))
}
