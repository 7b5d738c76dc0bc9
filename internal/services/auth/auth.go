// Package services содержит логику бизнес-уровня для регистрации
// и аутентификации пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kinoteka/movie-catalog/internal/lib/jwt"
	"github.com/kinoteka/movie-catalog/internal/lib/password"
	"github.com/kinoteka/movie-catalog/internal/models"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken возвращается при попытке регистрации на занятый email.
var ErrEmailTaken = errors.New("email already registered")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию и авторизацию пользователей.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной
// ролью "user", сразу выдавая токен сессии. Предварительная проверка email —
// быстрый путь для понятной ошибки, от гонок защищает уникальный индекс.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return "", nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, err
	}
	user := models.User{
		Email:        email,
		Username:     strings.TrimSpace(username),
		PasswordHash: hashed,
		Role:         "user", // дефолтная роль при регистрации
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(uid, email)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Login проверяет пароль пользователя и генерирует токен сессии.
// Несуществующий email и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Login"

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}
