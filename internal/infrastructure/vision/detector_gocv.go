//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"

	"gocv.io/x/gocv"

	"cell-finder/internal/domain/entity"
	"cell-finder/internal/domain/port"
)

// GoCVDetector детектор на OpenCV с той же семантикой параметров.
type GoCVDetector struct {
	JPEGQuality int
}

// NewGoCVDetector создаёт детектор на OpenCV.
func NewGoCVDetector() *GoCVDetector {
	return &GoCVDetector{JPEGQuality: 90}
}

// Detect запускает bilateralFilter, threshold и findContours и фильтрует контуры.
func (d *GoCVDetector) Detect(ctx context.Context, frame *entity.Frame, params entity.DetectionParameters) (*entity.DetectionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	norm, err := Normalize(frame)
	if err != nil {
		return nil, err
	}
	cutoff, err := Cutoff(norm, params.ThresholdPercentile)
	if err != nil {
		return nil, err
	}

	src := gocv.NewMatWithSize(norm.Rows, norm.Cols, gocv.MatTypeCV32F)
	defer src.Close()
	for y := 0; y < norm.Rows; y++ {
		for x := 0; x < norm.Cols; x++ {
			src.SetFloatAt(y, x, float32(norm.At(x, y)))
		}
	}

	width := float64(norm.Cols)
	smoothed := gocv.NewMat()
	defer smoothed.Close()
	gocv.BilateralFilter(src, &smoothed, 2*filterRadius(norm.Cols, params), params.ColorSigma*width, params.SpaceSigma*width)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(smoothed, &thresh, float32Cutoff(cutoff), 1, gocv.ThresholdBinary)

	mask := gocv.NewMat()
	defer mask.Close()
	thresh.ConvertTo(&mask, gocv.MatTypeCV8U)

	contours := gocv.FindContours(mask, gocv.RetrievalList, gocv.ChainApproxNone)
	defer contours.Close()

	lim := newLimits(norm.Rows, norm.Cols, params)
	detections := make([]entity.Detection, 0)
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		area := gocv.ContourArea(c)
		if !lim.sized(area) {
			continue
		}
		_, _, radius := gocv.MinEnclosingCircle(c)
		if !lim.round(area, float64(radius)) {
			continue
		}
		det, err := detection(entity.Contour(c.ToPoints()), area, float64(radius))
		if err != nil {
			continue
		}
		detections = append(detections, det)
	}

	return &entity.DetectionResult{
		ImageWidth:  norm.Cols,
		ImageHeight: norm.Rows,
		Cutoff:      cutoff,
		Contours:    contours.Size(),
		Detections:  detections,
	}, nil
}

// HighlightCells рисует контуры и центры клеток средствами OpenCV.
func (d *GoCVDetector) HighlightCells(imageData []byte, result *entity.DetectionResult) ([]byte, error) {
	if result == nil {
		return nil, errors.New("empty detection result")
	}
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	canvas := mat
	if mat.Cols() != result.ImageWidth || mat.Rows() != result.ImageHeight {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(mat, &resized, image.Pt(result.ImageWidth, result.ImageHeight), 0, 0, gocv.InterpolationArea)
		canvas = resized
	}

	green := color.RGBA{G: 255, A: 255}
	for _, det := range result.Detections {
		pv := gocv.NewPointVectorFromPoints(det.Contour)
		contours := gocv.NewPointsVector()
		contours.Append(pv)
		gocv.DrawContours(&canvas, contours, -1, green, 2)
		contours.Close()
		pv.Close()
		gocv.Circle(&canvas, det.Centroid, 2, green, -1)
	}

	img, err := canvas.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: d.JPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

var _ port.CellDetector = (*GoCVDetector)(nil)
