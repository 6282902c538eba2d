package entity

import "math"

// Frame одноканальный кадр микроскопа: Rows × Cols отсчётов интенсивности по строкам.
type Frame struct {
	Rows int
	Cols int
	Pix  []float64
}

// NewFrame создаёт пустой (чёрный) кадр заданного размера.
func NewFrame(rows, cols int) *Frame {
	return &Frame{
		Rows: rows,
		Cols: cols,
		Pix:  make([]float64, rows*cols),
	}
}

// At возвращает отсчёт в строке y, столбце x.
func (f *Frame) At(x, y int) float64 {
	return f.Pix[y*f.Cols+x]
}

// Set записывает отсчёт в строке y, столбце x.
func (f *Frame) Set(x, y int, v float64) {
	f.Pix[y*f.Cols+x] = v
}

// Clone возвращает независимую копию кадра.
func (f *Frame) Clone() *Frame {
	pix := make([]float64, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{Rows: f.Rows, Cols: f.Cols, Pix: pix}
}

// Area площадь кадра в пикселях.
func (f *Frame) Area() int {
	return f.Rows * f.Cols
}

// Validate проверяет форму кадра и допустимость отсчётов.
func (f *Frame) Validate() error {
	if f == nil || f.Rows <= 0 || f.Cols <= 0 {
		return ErrInvalidFrame
	}
	if len(f.Pix) != f.Rows*f.Cols {
		return ErrInvalidFrame
	}
	for _, v := range f.Pix {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidFrame
		}
	}
	return nil
}

// Mask бинарная маска того же размера, что и кадр: 1 яркий кандидат, 0 фон.
type Mask struct {
	Rows int
	Cols int
	Pix  []uint8
}

// NewMask создаёт маску, заполненную фоном.
func NewMask(rows, cols int) *Mask {
	return &Mask{
		Rows: rows,
		Cols: cols,
		Pix:  make([]uint8, rows*cols),
	}
}

// At возвращает значение маски (0 или 1).
func (m *Mask) At(x, y int) uint8 {
	return m.Pix[y*m.Cols+x]
}

// Count количество пикселей переднего плана.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
