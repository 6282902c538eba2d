package vision

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"cell-finder/internal/domain/entity"
)

// Normalize делит каждый отсчёт на максимум кадра, исходный кадр не меняется.
func Normalize(frame *entity.Frame) (*entity.Frame, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	maxValue := floats.Max(frame.Pix)
	if maxValue == 0 {
		return nil, entity.ErrDegenerateFrame
	}

	norm := entity.NewFrame(frame.Rows, frame.Cols)
	for i, v := range frame.Pix {
		norm.Pix[i] = v / maxValue
	}
	return norm, nil
}

const (
	expTableStep  = 64 // узлов на единицу аргумента
	expTableRange = 64 // дальше exp(-u) считается напрямую
)

// expTable exp(-u) на сетке для весов по яркости.
type expTable []float64

func newExpTable() expTable {
	t := make(expTable, expTableRange*expTableStep+1)
	for i := range t {
		t[i] = math.Exp(-float64(i) / expTableStep)
	}
	return t
}

// at exp(-u) для u >= 0 с линейной интерполяцией между узлами; at(0) ровно 1.
func (t expTable) at(u float64) float64 {
	pos := u * expTableStep
	if pos >= float64(len(t)-1) {
		return math.Exp(-u)
	}
	i := int(pos)
	return t[i] + (pos-float64(i))*(t[i+1]-t[i])
}

var colorExp = newExpTable()

// tap одна точка окна сглаживания с пространственным весом.
type tap struct {
	dx, dy int
	weight float64
}

// filterRadius радиус окна в пикселях. При нулевом диаметре берётся 1.5 sigma, как в OpenCV.
func filterRadius(cols int, params entity.DetectionParameters) int {
	width := float64(cols)
	diameter := int(params.FilterFraction() * width)
	radius := diameter / 2
	if diameter <= 0 {
		radius = int(math.Round(params.SpaceSigma * width * 1.5))
	}
	if radius < 1 {
		radius = 1
	}
	return radius
}

// Smooth билатеральный фильтр: вес соседа падает и с расстоянием, и с разницей яркостей.
// Sigma задаются в долях ширины кадра, окно круглое, соседи за краем кадра не учитываются.
func Smooth(norm *entity.Frame, params entity.DetectionParameters) *entity.Frame {
	width := float64(norm.Cols)
	sigmaSpace := params.SpaceSigma * width
	sigmaColor := params.ColorSigma * width
	radius := filterRadius(norm.Cols, params)

	spaceCoeff := -0.5 / (sigmaSpace * sigmaSpace)
	colorScale := 0.5 / (sigmaColor * sigmaColor)

	taps := make([]tap, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			r2 := float64(dx*dx + dy*dy)
			if r2 > float64(radius*radius) {
				continue
			}
			taps = append(taps, tap{dx: dx, dy: dy, weight: math.Exp(r2 * spaceCoeff)})
		}
	}

	out := entity.NewFrame(norm.Rows, norm.Cols)
	for y := 0; y < norm.Rows; y++ {
		for x := 0; x < norm.Cols; x++ {
			center := norm.At(x, y)
			// Копим отклонения от центра: на ровном фоне результат совпадает с ним бит в бит.
			var sum, weights float64
			for _, t := range taps {
				nx, ny := x+t.dx, y+t.dy
				if nx < 0 || ny < 0 || nx >= norm.Cols || ny >= norm.Rows {
					continue
				}
				diff := norm.At(nx, ny) - center
				w := t.weight * colorExp.at(diff*diff*colorScale)
				sum += w * diff
				weights += w
			}
			out.Set(x, y, center+sum/weights)
		}
	}
	return out
}
