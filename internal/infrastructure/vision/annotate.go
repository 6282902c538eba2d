package vision

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"cell-finder/internal/domain/entity"
)

// markerColor свой оттенок для каждой клетки, равномерно по кругу.
func markerColor(i, n int) color.Color {
	if n <= 0 {
		n = 1
	}
	return colorful.Hsv(360*float64(i)/float64(n), 0.85, 1)
}

// Annotate рисует контуры и центры клеток на копии изображения, исходник не меняется.
func Annotate(img image.Image, detections []entity.Detection) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetLineWidth(2)
	for i, d := range detections {
		dc.SetColor(markerColor(i, len(detections)))
		for j, p := range d.Contour {
			x, y := float64(p.X)+0.5, float64(p.Y)+0.5
			if j == 0 {
				dc.MoveTo(x, y)
				continue
			}
			dc.LineTo(x, y)
		}
		dc.ClosePath()
		dc.Stroke()

		dc.DrawCircle(float64(d.Centroid.X)+0.5, float64(d.Centroid.Y)+0.5, 2.5)
		dc.Fill()
	}
	return dc.Image()
}

// FrameImage 8-битное изображение кадра для подложки, яркость растянута по максимуму.
func FrameImage(frame *entity.Frame) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, frame.Cols, frame.Rows))
	norm, err := Normalize(frame)
	if err != nil {
		return img
	}
	for i, v := range norm.Pix {
		img.Pix[i] = uint8(v*255 + 0.5)
	}
	return img
}

// MaskImage маска как чёрно-белое изображение.
func MaskImage(mask *entity.Mask) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, mask.Cols, mask.Rows))
	for i, v := range mask.Pix {
		if v != 0 {
			img.Pix[i] = 255
		}
	}
	return img
}
