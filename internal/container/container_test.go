package container

import (
	"context"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"

	"cell-finder/internal/domain/entity"
	"cell-finder/internal/infrastructure/storage"
	"cell-finder/internal/infrastructure/vision"
)

func TestNew(t *testing.T) {
	defaults := entity.DefaultParameters()
	defaults.ThresholdPercentile = 90

	c := New(storage.NewMemoryUserRepository(defaults), vision.NewDetector(), vision.NewFrameLoader(512), logs.NewTestingLog(t), defaults)
	require.NotNil(t, c.UserService)
	require.NotNil(t, c.DetectionService)

	user, err := c.UserService.ResetParameters(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Equal(t, 90.0, user.Params.ThresholdPercentile)
}
