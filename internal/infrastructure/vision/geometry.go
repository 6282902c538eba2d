package vision

import (
	"image"
	"math"
	"math/rand/v2"

	"cell-finder/internal/domain/entity"
)

// ContourArea площадь многоугольника по формуле шнурования (без знака).
func ContourArea(c entity.Contour) float64 {
	return math.Abs(float64(doubledSignedArea(c))) / 2
}

func doubledSignedArea(c entity.Contour) int {
	sum := 0
	n := len(c)
	for i := range c {
		p, q := c[i], c[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum
}

// Centroid центр масс залитого контура: m10/m00, m01/m00 с отбрасыванием дробной части.
func Centroid(c entity.Contour) (image.Point, error) {
	var m00, m10, m01 float64
	n := len(c)
	for i := range c {
		p, q := c[i], c[(i+1)%n]
		cross := float64(p.X*q.Y - q.X*p.Y)
		m00 += cross
		m10 += float64(p.X+q.X) * cross
		m01 += float64(p.Y+q.Y) * cross
	}
	if m00 == 0 {
		return image.Point{}, entity.ErrDegenerateContour
	}
	// m00 накоплен удвоенным, моменты первого порядка умножены на 6
	m00 /= 2
	m10 /= 6
	m01 /= 6
	return image.Pt(int(m10/m00), int(m01/m00)), nil
}

// Circle окружность на плоскости.
type Circle struct {
	X, Y   float64
	Radius float64
}

func (c Circle) contains(x, y float64) bool {
	return math.Hypot(x-c.X, y-c.Y) <= c.Radius+1e-7*math.Max(1, c.Radius)
}

type fpoint struct{ x, y float64 }

// MinEnclosingCircle минимальная окружность, содержащая все точки контура (инкрементальный алгоритм Вельцля).
func MinEnclosingCircle(c entity.Contour) Circle {
	if len(c) == 0 {
		return Circle{}
	}
	pts := make([]fpoint, len(c))
	for i, p := range c {
		pts[i] = fpoint{float64(p.X), float64(p.Y)}
	}
	// фиксированное зерно, результат воспроизводим
	rng := rand.New(rand.NewPCG(0x5eed, uint64(len(pts))))
	rng.Shuffle(len(pts), func(i, j int) { pts[i], pts[j] = pts[j], pts[i] })

	circle := Circle{X: pts[0].x, Y: pts[0].y}
	for i := 1; i < len(pts); i++ {
		if circle.contains(pts[i].x, pts[i].y) {
			continue
		}
		circle = Circle{X: pts[i].x, Y: pts[i].y}
		for j := 0; j < i; j++ {
			if circle.contains(pts[j].x, pts[j].y) {
				continue
			}
			circle = diameterCircle(pts[i], pts[j])
			for k := 0; k < j; k++ {
				if circle.contains(pts[k].x, pts[k].y) {
					continue
				}
				circle = circumcircle(pts[i], pts[j], pts[k])
			}
		}
	}
	return circle
}

func diameterCircle(a, b fpoint) Circle {
	return Circle{
		X:      (a.x + b.x) / 2,
		Y:      (a.y + b.y) / 2,
		Radius: math.Hypot(a.x-b.x, a.y-b.y) / 2,
	}
}

func circumcircle(a, b, c fpoint) Circle {
	bx, by := b.x-a.x, b.y-a.y
	cx, cy := c.x-a.x, c.y-a.y
	d := 2 * (bx*cy - by*cx)
	if math.Abs(d) < 1e-12 {
		// точки на одной прямой: окружность на самой дальней паре
		best := diameterCircle(a, b)
		for _, cand := range []Circle{diameterCircle(a, c), diameterCircle(b, c)} {
			if cand.Radius > best.Radius {
				best = cand
			}
		}
		return best
	}
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d
	return Circle{X: a.x + ux, Y: a.y + uy, Radius: math.Hypot(ux, uy)}
}
