package telegram

import (
	"image"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"cell-finder/internal/domain/entity"
)

func TestParseSetArgs(t *testing.T) {
	name, value, err := parseSetArgs("percentile 95")
	require.NoError(t, err)
	require.Equal(t, "percentile", name)
	require.Equal(t, 95.0, value)

	// десятичная запятая
	_, value, err = parseSetArgs("  roundness   0,65 ")
	require.NoError(t, err)
	require.Equal(t, 0.65, value)

	for _, bad := range []string{"", "percentile", "percentile high", "a 1 2"} {
		_, _, err := parseSetArgs(bad)
		require.Error(t, err, bad)
	}
}

func TestImageFileID(t *testing.T) {
	id, ok := imageFileID(&tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}})
	require.True(t, ok)
	require.Equal(t, "large", id)

	id, ok = imageFileID(&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "tif", MimeType: "image/tiff"}})
	require.True(t, ok)
	require.Equal(t, "tif", id)

	_, ok = imageFileID(&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "csv", MimeType: "text/csv"}})
	require.False(t, ok)

	_, ok = imageFileID(&tgbotapi.Message{Text: "hello"})
	require.False(t, ok)
}

func TestFormatParams(t *testing.T) {
	text := formatParams(entity.DefaultParameters())
	for _, name := range entity.ParameterNames {
		require.Contains(t, text, name)
	}
	require.Contains(t, text, "threshold_percentile = 97")
}

func TestFormatResult(t *testing.T) {
	result := &entity.DetectionResult{ImageWidth: 100, ImageHeight: 80}
	for i := 0; i < maxListedCells+3; i++ {
		result.Detections = append(result.Detections, entity.Detection{Centroid: image.Pt(i, 2*i)})
	}

	text := formatResult(result)
	require.True(t, strings.HasPrefix(text, "🔬 Найдено клеток: 53 (кадр 100×80)"))
	require.Contains(t, text, "1. (0, 0)")
	require.Contains(t, text, "50. (49, 98)")
	require.NotContains(t, text, "51.")
	require.Contains(t, text, "и ещё 3")
}
