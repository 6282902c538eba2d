package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/cyclopcam/logs"

	"cell-finder/internal/domain/entity"
	"cell-finder/internal/domain/port"
)

type DetectionService struct {
	users    *UserService
	detector port.CellDetector
	frames   port.FrameSource
	log      logs.Log
}

// DetectionOutput содержит найденные клетки и картинку с разметкой.
type DetectionOutput struct {
	Result      *entity.DetectionResult
	Highlighted []byte
}

// NewDetectionService создаёт сервис поиска клеток на кадрах оператора.
func NewDetectionService(users *UserService, detector port.CellDetector, frames port.FrameSource, log logs.Log) *DetectionService {
	return &DetectionService{
		users:    users,
		detector: detector,
		frames:   frames,
		log:      log,
	}
}

// ProcessFrame ищет клетки с личными настройками пользователя и возвращает его в главное меню.
func (s *DetectionService) ProcessFrame(ctx context.Context, userID, chatID int64, photo []byte) (*DetectionOutput, error) {
	if s.detector == nil {
		return nil, errors.New("detector is not configured")
	}
	if s.frames == nil {
		return nil, errors.New("frame source is not configured")
	}

	user, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing)
	if err != nil {
		return nil, err
	}
	defer func() {
		if _, err := s.users.SetState(ctx, userID, chatID, entity.StateMainMenu); err != nil {
			s.log.Warnf("Failed to reset state of user %v: %v", userID, err)
		}
	}()

	frame, err := s.frames.Load(photo)
	if err != nil {
		return nil, fmt.Errorf("load frame: %w", err)
	}

	result, err := s.detector.Detect(ctx, frame, user.Params)
	if err != nil {
		s.log.Warnf("Detection failed for user %v (%vx%v): %v", userID, frame.Cols, frame.Rows, err)
		return nil, fmt.Errorf("detect cells: %w", err)
	}
	s.log.Debugf("Frame %vx%v: cutoff %.4f, %v contours, %v cells", result.ImageWidth, result.ImageHeight, result.Cutoff, result.Contours, len(result.Detections))

	var highlighted []byte
	if result.HasCells() {
		highlighted, err = s.detector.HighlightCells(photo, result)
		if err != nil {
			s.log.Warnf("Failed to highlight cells: %v", err)
		}
	}

	return &DetectionOutput{Result: result, Highlighted: highlighted}, nil
}
