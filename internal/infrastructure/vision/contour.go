package vision

import (
	"image"

	"cell-finder/internal/domain/entity"
)

// dirs восемь соседей в порядке против часовой стрелки (ось Y направлена вниз).
var dirs = [8]image.Point{
	{X: 1, Y: 0},
	{X: 1, Y: -1},
	{X: 0, Y: -1},
	{X: -1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
}

// dirLookup номер направления по смещению (dx+1)*3 + (dy+1).
var dirLookup = func() [9]int {
	var t [9]int
	for i, d := range dirs {
		t[(d.X+1)*3+d.Y+1] = i
	}
	return t
}()

func dirIndex(from, to image.Point) int {
	return dirLookup[(to.X-from.X+1)*3+to.Y-from.Y+1]
}

// labels рабочая копия маски с рамкой из нулей: край кадра считается фоном.
type labels struct {
	width int
	pix   []int32
}

func newLabels(mask *entity.Mask) *labels {
	l := &labels{width: mask.Cols + 2, pix: make([]int32, (mask.Cols+2)*(mask.Rows+2))}
	for y := 0; y < mask.Rows; y++ {
		for x := 0; x < mask.Cols; x++ {
			if mask.At(x, y) != 0 {
				l.pix[(y+1)*l.width+x+1] = 1
			}
		}
	}
	return l
}

func (l *labels) at(p image.Point) int32 {
	return l.pix[p.Y*l.width+p.X]
}

func (l *labels) set(p image.Point, v int32) {
	l.pix[p.Y*l.width+p.X] = v
}

// FindContours находит все внешние границы и границы дыр областей маски
// (обход границ Suzuki–Abe, 8-связность). Вложенность не строится: список плоский,
// контуры идут в порядке обнаружения при построчном сканировании.
func FindContours(mask *entity.Mask) []entity.Contour {
	l := newLabels(mask)
	contours := make([]entity.Contour, 0)
	nbd := int32(1)

	for y := 1; y <= mask.Rows; y++ {
		for x := 1; x <= mask.Cols; x++ {
			p := image.Pt(x, y)
			v := l.at(p)

			var from image.Point
			switch {
			case v == 1 && l.at(image.Pt(x-1, y)) == 0:
				// внешняя граница
				from = image.Pt(x-1, y)
			case v >= 1 && l.at(image.Pt(x+1, y)) == 0:
				// граница дыры
				from = image.Pt(x+1, y)
			default:
				continue
			}

			nbd++
			contours = append(contours, l.follow(p, from, nbd))
		}
	}
	return contours
}

// follow обходит одну границу, начиная с пикселя start; from фоновый сосед, от которого начат поиск.
func (l *labels) follow(start, from image.Point, nbd int32) entity.Contour {
	first := -1
	d0 := dirIndex(start, from)
	for k := 0; k < 8; k++ {
		d := (d0 - k + 8) % 8
		if l.at(start.Add(dirs[d])) != 0 {
			first = d
			break
		}
	}
	if first < 0 {
		// одиночный пиксель
		l.set(start, -nbd)
		return entity.Contour{unpad(start)}
	}

	p1 := start.Add(dirs[first])
	prev, cur := p1, start
	contour := make(entity.Contour, 0, 16)
	for {
		d := dirIndex(cur, prev)
		eastZero := false
		next := prev
		for k := 1; k <= 8; k++ {
			dk := (d + k) % 8
			q := cur.Add(dirs[dk])
			if l.at(q) != 0 {
				next = q
				break
			}
			if dk == 0 {
				eastZero = true
			}
		}

		contour = append(contour, unpad(cur))
		switch {
		case eastZero:
			l.set(cur, -nbd)
		case l.at(cur) == 1:
			l.set(cur, nbd)
		}

		if next == start && cur == p1 {
			break
		}
		prev, cur = cur, next
	}
	return contour
}

func unpad(p image.Point) image.Point {
	return image.Pt(p.X-1, p.Y-1)
}
