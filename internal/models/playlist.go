package models

import "time"

// Playlist представляет пользовательскую подборку фильмов.
// Контент виден другим пользователям только при Status == approved
// и IsPublic == true.
type Playlist struct {
	ID                int              `json:"id"`
	UserUID           string           `json:"user_id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	IsPublic          bool             `json:"is_public"`
	Status            ModerationStatus `json:"status"`
	ModerationComment *string          `json:"moderation_comment,omitempty"`
	ModeratedBy       *string          `json:"moderated_by,omitempty"`
	ModeratedAt       *time.Time       `json:"moderated_at,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`

	// Поля, заполняемые JOIN-ами при выборке.
	AuthorName  string `json:"author_name,omitempty"`
	MoviesCount int    `json:"movies_count"`
}

// PlaylistMovie представляет фильм внутри подборки с денормализованными
// данными фильма. Уникален в пределах (playlist_id, movie_id).
type PlaylistMovie struct {
	ID               int       `json:"id"`
	PlaylistID       int       `json:"playlist_id"`
	MovieID          int       `json:"movie_id"`
	MovieTitle       string    `json:"movie_title"`
	MovieGenre       string    `json:"movie_genre"`
	MovieRating      float64   `json:"movie_rating"`
	MovieImage       string    `json:"movie_image"`
	MovieDescription string    `json:"movie_description"`
	Position         int       `json:"position"`
	AddedAt          time.Time `json:"added_at"`
}

// SavedPlaylist представляет закладку пользователя на чужую подборку.
// Уникальна в пределах (user_uid, playlist_id).
type SavedPlaylist struct {
	ID         int       `json:"id"`
	UserUID    string    `json:"user_id"`
	PlaylistID int       `json:"playlist_id"`
	SavedAt    time.Time `json:"saved_at"`
}
