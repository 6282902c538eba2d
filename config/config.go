package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"cell-finder/internal/domain/entity"
)

const (
	BackendNative = "native"
	BackendGoCV   = "gocv"

	defaultWorkSide = 1024
)

type Config struct {
	TelegramToken string
	Defaults      entity.DetectionParameters
	WorkSide      int
	Backend       string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Defaults:      entity.DefaultParameters(),
		WorkSide:      defaultWorkSide,
		Backend:       BackendNative,
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"CELLS_COLOR_SIGMA", &cfg.Defaults.ColorSigma},
		{"CELLS_SPACE_SIGMA", &cfg.Defaults.SpaceSigma},
		{"CELLS_FILTER_DIAMETER", &cfg.Defaults.FilterDiameter},
		{"CELLS_THRESHOLD_PERCENTILE", &cfg.Defaults.ThresholdPercentile},
		{"CELLS_MIN_AREA", &cfg.Defaults.MinAreaFraction},
		{"CELLS_MAX_AREA", &cfg.Defaults.MaxAreaFraction},
		{"CELLS_ROUNDNESS", &cfg.Defaults.RoundnessFactor},
	}
	for _, f := range floats {
		raw, ok := os.LookupEnv(f.key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.key, err)
		}
		*f.dst = v
	}

	if raw := strings.TrimSpace(os.Getenv("CELLS_WORK_SIDE")); raw != "" {
		side, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse CELLS_WORK_SIDE: %w", err)
		}
		if side < 0 {
			return nil, fmt.Errorf("CELLS_WORK_SIDE must not be negative, got %d", side)
		}
		cfg.WorkSide = side
	}

	if raw := strings.TrimSpace(os.Getenv("CELLS_BACKEND")); raw != "" {
		switch backend := strings.ToLower(raw); backend {
		case BackendNative, BackendGoCV:
			cfg.Backend = backend
		default:
			return nil, fmt.Errorf("unknown CELLS_BACKEND %q", raw)
		}
	}

	return cfg, nil
}
