// Package services содержит логику бизнес-уровня для работы с профилем пользователя.
package services

import (
	"context"
	"log/slog"

	"github.com/kinoteka/movie-catalog/internal/models"
)

// UserRepository определяет методы для работы с профилями в хранилище.
type UserRepository interface {
	// GetUser возвращает пользователя по UID или ErrNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// UpdateProfile обновляет заполненные поля профиля.
	UpdateProfile(ctx context.Context, userUID string, upd models.ProfileUpdate) (*models.User, error)
}

// UserService реализует операции над профилем пользователя.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Get возвращает профиль пользователя.
func (s *UserService) Get(ctx context.Context, userUID string) (*models.User, error) {
	return s.repo.GetUser(ctx, userUID)
}

// UpdateProfile обновляет профиль и возвращает его новое состояние.
func (s *UserService) UpdateProfile(ctx context.Context, userUID string, upd models.ProfileUpdate) (*models.User, error) {
	user, err := s.repo.UpdateProfile(ctx, userUID, upd)
	if err != nil {
		return nil, err
	}
	s.log.Info("profile updated", slog.String("user_uid", userUID))
	return user, nil
}
