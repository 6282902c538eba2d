package vision

import (
	"math"
	"sort"

	"cell-finder/internal/domain/entity"
)

// snapEpsilon допуск, в пределах которого порог приравнивается к реальному отсчёту.
const snapEpsilon = 1e-12

// float32CutoffULPs запас порога для сглаживания в float32: на ровном фоне
// взвешенное среднее OpenCV может отличаться от отсчёта на несколько ulp.
const float32CutoffULPs = 8

// Cutoff значение перцентиля percentile по распределению нормированного кадра.
func Cutoff(norm *entity.Frame, percentile float64) (float64, error) {
	if math.IsNaN(percentile) || percentile < 0 || percentile > 100 {
		return 0, &entity.ParameterError{Field: "threshold_percentile", Value: percentile, Reason: "must be within [0, 100]"}
	}

	sorted := make([]float64, len(norm.Pix))
	copy(sorted, norm.Pix)
	sort.Float64s(sorted)

	cutoff := quantile(sorted, percentile/100)

	// Интерполяция между равными отсчётами может уйти на последний бит, поэтому возвращаем сам отсчёт.
	i := sort.SearchFloat64s(sorted, cutoff)
	for _, j := range []int{i - 1, i} {
		if j >= 0 && j < len(sorted) && math.Abs(sorted[j]-cutoff) <= snapEpsilon {
			return sorted[j], nil
		}
	}
	return cutoff, nil
}

// quantile линейная интерполяция между порядковыми статистиками в позиции p·(n-1),
// как np.quantile по умолчанию. sorted отсортирован по возрастанию и не пуст.
func quantile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// Segment бинаризует сглаженный кадр: передний план строго выше порога.
func Segment(smoothed *entity.Frame, cutoff float64) *entity.Mask {
	mask := entity.NewMask(smoothed.Rows, smoothed.Cols)
	for i, v := range smoothed.Pix {
		if v > cutoff {
			mask.Pix[i] = 1
		}
	}
	return mask
}

// float32Cutoff порог для float32-конвейера, сдвинутый вверх на float32CutoffULPs.
func float32Cutoff(cutoff float64) float32 {
	c := float32(cutoff)
	for i := 0; i < float32CutoffULPs; i++ {
		c = math.Nextafter32(c, math.MaxFloat32)
	}
	return c
}
