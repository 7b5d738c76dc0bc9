package models

import "time"

// User представляет зарегистрированного пользователя каталога.
type User struct {
	UID          string     `json:"id"`       // Уникальный идентификатор пользователя
	Email        string     `json:"email"`    // Электронная почта (уникальная)
	Username     string     `json:"username"` // Отображаемое имя
	PasswordHash string     `json:"-"`        // Хэш пароля, наружу не отдается
	Role         string     `json:"role"`     // Роль пользователя, admin или user
	AvatarURL    string     `json:"avatar_url"`
	Age          *int       `json:"age,omitempty"`
	Bio          string     `json:"bio"`
	StatusText   string     `json:"status_text"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// ProfileUpdate содержит изменяемые поля профиля.
// Nil-поле означает, что значение не меняется.
type ProfileUpdate struct {
	Username   *string
	AvatarURL  *string
	Age        *int
	Bio        *string
	StatusText *string
}
