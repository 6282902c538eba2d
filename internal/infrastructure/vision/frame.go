package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"cell-finder/internal/domain/entity"
	"cell-finder/internal/domain/port"
)

// FrameFromImage переводит изображение в одноканальный кадр, сохраняя 16 бит яркости.
func FrameFromImage(img image.Image) *entity.Frame {
	b := img.Bounds()
	frame := entity.NewFrame(b.Dy(), b.Dx())

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < frame.Rows; y++ {
			for x := 0; x < frame.Cols; x++ {
				frame.Set(x, y, float64(src.GrayAt(x+b.Min.X, y+b.Min.Y).Y))
			}
		}
	case *image.Gray16:
		for y := 0; y < frame.Rows; y++ {
			for x := 0; x < frame.Cols; x++ {
				frame.Set(x, y, float64(src.Gray16At(x+b.Min.X, y+b.Min.Y).Y))
			}
		}
	default:
		for y := 0; y < frame.Rows; y++ {
			for x := 0; x < frame.Cols; x++ {
				g := color.Gray16Model.Convert(img.At(x+b.Min.X, y+b.Min.Y)).(color.Gray16)
				frame.Set(x, y, float64(g.Y))
			}
		}
	}
	return frame
}

// DecodeImage декодирует PNG/JPEG/GIF/TIFF/BMP с учётом EXIF-ориентации
// и вписывает в рабочее разрешение workSide (0 отключает масштабирование).
func DecodeImage(data []byte, workSide int) (image.Image, error) {
	if len(data) == 0 {
		return nil, errors.New("empty image")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if workSide > 0 && (b.Dx() > workSide || b.Dy() > workSide) {
		img = imaging.Fit(img, workSide, workSide, imaging.Lanczos)
	}
	return img, nil
}

// LoadFrame готовит кадр для детекции из байтов файла.
func LoadFrame(data []byte, workSide int) (*entity.Frame, image.Image, error) {
	img, err := DecodeImage(data, workSide)
	if err != nil {
		return nil, nil, err
	}
	return FrameFromImage(img), img, nil
}

// FrameLoader источник кадров с фиксированным рабочим разрешением.
type FrameLoader struct {
	WorkSide int
}

// NewFrameLoader создаёт источник кадров; workSide 0 отключает масштабирование.
func NewFrameLoader(workSide int) *FrameLoader {
	return &FrameLoader{WorkSide: workSide}
}

// Load декодирует снимок и приводит его к рабочему разрешению.
func (l *FrameLoader) Load(imageData []byte) (*entity.Frame, error) {
	frame, _, err := LoadFrame(imageData, l.WorkSide)
	return frame, err
}

var _ port.FrameSource = (*FrameLoader)(nil)
