package models

import "time"

// Review представляет рецензию пользователя на фильм.
// Оценка лежит в диапазоне 1..10, публично видна только approved-рецензия.
// Уникальна в пределах (user_uid, movie_id).
type Review struct {
	ID                int              `json:"id"`
	UserUID           string           `json:"user_id"`
	MovieID           int              `json:"movie_id"`
	MovieTitle        string           `json:"movie_title"`
	MovieImage        string           `json:"movie_image"`
	Rating            int              `json:"rating"`
	ReviewText        string           `json:"review_text"`
	Status            ModerationStatus `json:"status"`
	ModerationComment *string          `json:"moderation_comment,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`

	// Поля, заполняемые JOIN-ами при выборке.
	AuthorName   string `json:"author_name,omitempty"`
	AuthorAvatar string `json:"author_avatar,omitempty"`
}
