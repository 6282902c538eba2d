package vision

import (
	"cell-finder/internal/domain/entity"
)

// filledFrame кадр с постоянным фоном.
func filledFrame(rows, cols int, value float64) *entity.Frame {
	f := entity.NewFrame(rows, cols)
	for i := range f.Pix {
		f.Pix[i] = value
	}
	return f
}

// diskFrame кадр с залитым диском радиуса r с центром (cx, cy).
func diskFrame(rows, cols, cx, cy, r int, bg, fg float64) *entity.Frame {
	f := filledFrame(rows, cols, bg)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				f.Set(x, y, fg)
			}
		}
	}
	return f
}

// rectFrame кадр с залитым прямоугольником [x0, x1) × [y0, y1).
func rectFrame(rows, cols, x0, y0, x1, y1 int, bg, fg float64) *entity.Frame {
	f := filledFrame(rows, cols, bg)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			f.Set(x, y, fg)
		}
	}
	return f
}

// maskFrom маска из строк вида "..##.".
func maskFrom(rows ...string) *entity.Mask {
	m := entity.NewMask(len(rows), len(rows[0]))
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				m.Pix[y*m.Cols+x] = 1
			}
		}
	}
	return m
}

func countAbove(f *entity.Frame, v float64) int {
	n := 0
	for _, s := range f.Pix {
		if s > v {
			n++
		}
	}
	return n
}
