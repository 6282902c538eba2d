package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"

	"cell-finder/internal/domain/entity"
	"cell-finder/internal/infrastructure/vision"
)

// diskPNG снимок 100×100 с одной яркой клеткой в центре.
func diskPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Pix[y*100+x] = 10
			if (x-50)*(x-50)+(y-50)*(y-50) <= 64 {
				img.Pix[y*100+x] = 255
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type failingDetector struct{}

func (failingDetector) Detect(ctx context.Context, frame *entity.Frame, params entity.DetectionParameters) (*entity.DetectionResult, error) {
	return nil, entity.ErrDegenerateFrame
}

func (failingDetector) HighlightCells(imageData []byte, result *entity.DetectionResult) ([]byte, error) {
	return nil, errors.New("unreachable")
}

func TestDetectionService_ProcessFrame(t *testing.T) {
	users := newUserService()
	svc := NewDetectionService(users, vision.NewDetector(), vision.NewFrameLoader(1024), logs.NewTestingLog(t))
	ctx := context.Background()

	out, err := svc.ProcessFrame(ctx, 1, 10, diskPNG(t))
	require.NoError(t, err)
	require.Len(t, out.Result.Detections, 1)
	require.NotEmpty(t, out.Highlighted)

	c := out.Result.Detections[0].Centroid
	require.InDelta(t, 50, c.X, 2)
	require.InDelta(t, 50, c.Y, 2)

	user, err := users.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestDetectionService_UsesUserParameters(t *testing.T) {
	users := newUserService()
	svc := NewDetectionService(users, vision.NewDetector(), vision.NewFrameLoader(0), logs.NewTestingLog(t))
	ctx := context.Background()

	// клетка занимает ~2% кадра: с нижней границей 5% её не видно
	_, err := users.SetParameter(ctx, 1, 10, "min_area", 0.05)
	require.NoError(t, err)

	out, err := svc.ProcessFrame(ctx, 1, 10, diskPNG(t))
	require.NoError(t, err)
	require.Empty(t, out.Result.Detections)
	require.Nil(t, out.Highlighted)
}

func TestDetectionService_Errors(t *testing.T) {
	users := newUserService()
	ctx := context.Background()

	svc := NewDetectionService(users, nil, nil, logs.NewTestingLog(t))
	_, err := svc.ProcessFrame(ctx, 1, 10, nil)
	require.Error(t, err)

	svc = NewDetectionService(users, vision.NewDetector(), vision.NewFrameLoader(0), logs.NewTestingLog(t))
	_, err = svc.ProcessFrame(ctx, 1, 10, []byte("garbage"))
	require.Error(t, err)

	svc = NewDetectionService(users, failingDetector{}, vision.NewFrameLoader(0), logs.NewTestingLog(t))
	_, err = svc.ProcessFrame(ctx, 1, 10, diskPNG(t))
	require.ErrorIs(t, err, entity.ErrDegenerateFrame)

	user, err := users.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}
