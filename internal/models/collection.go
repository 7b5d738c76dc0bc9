package models

import "time"

// CollectionEntry представляет фильм в личной коллекции пользователя
// с денормализованными данными фильма. Уникален в пределах
// (user_uid, movie_id), уникальный индекс в базе — источник истины.
type CollectionEntry struct {
	ID               int       `json:"id"`
	UserUID          string    `json:"user_id"`
	MovieID          int       `json:"movie_id"`
	MovieTitle       string    `json:"movie_title"`
	MovieGenre       string    `json:"movie_genre"`
	MovieRating      float64   `json:"movie_rating"`
	MovieImage       string    `json:"movie_image"`
	MovieDescription string    `json:"movie_description"`
	AddedAt          time.Time `json:"added_at"`
}
