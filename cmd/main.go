package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/cyclopcam/logs"

	"cell-finder/config"
	telegram "cell-finder/internal/api"
	"cell-finder/internal/container"
	"cell-finder/internal/domain/port"
	"cell-finder/internal/infrastructure/storage"
	"cell-finder/internal/infrastructure/vision"
)

func main() {
	logger, err := logs.NewLog()
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}

	if cfg.TelegramToken == "" {
		logger.Errorf("TELEGRAM_TOKEN is required")
		os.Exit(1)
	}

	if err := cfg.Defaults.Validate(); err != nil {
		logger.Errorf("Invalid default detection parameters: %v", err)
		os.Exit(1)
	}

	// Создаём хранилище пользователей
	userRepo := storage.NewMemoryUserRepository(cfg.Defaults)

	var detector port.CellDetector
	switch cfg.Backend {
	case config.BackendGoCV:
		detector = vision.NewGoCVDetector()
	default:
		detector = vision.NewDetector()
	}
	logger.Infof("Using %v detector, working side %v", cfg.Backend, cfg.WorkSide)

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, detector, vision.NewFrameLoader(cfg.WorkSide), logger, cfg.Defaults)

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
	if err != nil {
		logger.Errorf("Failed to create bot: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("Bot is running...")
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("Bot error: %v", err)
		os.Exit(1)
	}
	logger.Infof("Bot stopped")
}
