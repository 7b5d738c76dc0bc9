package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kinoteka/movie-catalog/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает его UID.
// Дубликат email приводит к ErrConflict.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, username, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role).Scan(&newUID); err != nil {
		return "", wrapError(op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, avatar_url,
			      age, bio, status_text, created_at, updated_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, avatar_url,
			      age, bio, status_text, created_at, updated_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var age sql.NullInt64
	var avatarURL, bio, statusText sql.NullString
	var updatedAt sql.NullTime
	if err := row.Scan(&u.UID, &u.Email, &u.Username, &u.PasswordHash,
		&u.Role, &avatarURL, &age, &bio, &statusText, &u.CreatedAt, &updatedAt); err != nil {
		return nil, wrapError(op, err)
	}
	u.AvatarURL = avatarURL.String
	u.Bio = bio.String
	u.StatusText = statusText.String
	if age.Valid {
		v := int(age.Int64)
		u.Age = &v
	}
	if updatedAt.Valid {
		u.UpdatedAt = &updatedAt.Time
	}
	return u, nil
}

// UpdateProfile обновляет заполненные поля профиля и возвращает
// обновленного пользователя. Пустое обновление возвращает текущую запись.
func (s *Storage) UpdateProfile(ctx context.Context, userUID string, upd models.ProfileUpdate) (*models.User, error) {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Username != nil {
		addSet("username", *upd.Username)
	}
	if upd.AvatarURL != nil {
		addSet("avatar_url", *upd.AvatarURL)
	}
	if upd.Age != nil {
		addSet("age", *upd.Age)
	}
	if upd.Bio != nil {
		addSet("bio", *upd.Bio)
	}
	if upd.StatusText != nil {
		addSet("status_text", *upd.StatusText)
	}
	if len(sets) == 0 {
		return s.GetUser(ctx, userUID)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, userUID)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE uid = $%d
			  RETURNING uid, email, username, password_hash, role, avatar_url,
			      age, bio, status_text, created_at, updated_at`,
		strings.Join(sets, ", "), len(args))
	return s.scanUser(s.DB.QueryRowContext(ctx, query, args...), op)
}
