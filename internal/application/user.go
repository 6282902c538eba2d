package app

import (
	"context"
	"fmt"

	"cell-finder/internal/domain/entity"
	"cell-finder/internal/domain/port"
)

type UserService struct {
	repo     port.UserRepository
	defaults entity.DetectionParameters
}

func NewUserService(repo port.UserRepository, defaults entity.DetectionParameters) *UserService {
	return &UserService{repo: repo, defaults: defaults}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) BeginDetect(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingFrame)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// SetParameter меняет один параметр; набор целиком проверяется до сохранения.
func (s *UserService) SetParameter(ctx context.Context, userID, chatID int64, name string, value float64) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	params, err := user.Params.With(name, value)
	if err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("set %s: %w", name, err)
	}

	user.Params = params
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetParameters возвращает настройки по умолчанию.
func (s *UserService) ResetParameters(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.Params = s.defaults
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
