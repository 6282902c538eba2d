package storage

import (
	"context"
	"sync"

	"cell-finder/internal/domain/entity"
	"cell-finder/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище операторов и их настроек
type MemoryUserRepository struct {
	mu       sync.RWMutex
	users    map[int64]*entity.User
	defaults entity.DetectionParameters
}

// NewMemoryUserRepository создаёт хранилище; новые пользователи получают defaults
func NewMemoryUserRepository(defaults entity.DetectionParameters) *MemoryUserRepository {
	return &MemoryUserRepository{
		users:    make(map[int64]*entity.User),
		defaults: defaults,
	}
}

// Get возвращает пользователя по ID, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	user, exists := r.users[userID]
	r.mu.RUnlock()

	if exists {
		return user, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Пока ждали запись, пользователя мог создать другой запрос
	if user, exists := r.users[userID]; exists {
		return user, nil
	}
	newUser := entity.NewUser(userID, chatID, r.defaults)
	r.users[userID] = newUser

	return newUser, nil
}

// Save сохраняет состояние и настройки пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.users[user.ID] = user
	r.mu.Unlock()

	return nil
}

// UpdateState обновляет состояние пользователя
func (r *MemoryUserRepository) UpdateState(ctx context.Context, userID int64, state entity.UserState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if user, exists := r.users[userID]; exists {
		user.SetState(state)
	}

	return nil
}

// Defaults настройки, которые получает новый пользователь
func (r *MemoryUserRepository) Defaults() entity.DetectionParameters {
	return r.defaults
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
