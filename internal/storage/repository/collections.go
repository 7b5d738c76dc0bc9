package repository

import (
	"context"
	"fmt"

	"github.com/kinoteka/movie-catalog/internal/models"
)

// ListCollection возвращает коллекцию пользователя, новые записи первыми.
func (s *Storage) ListCollection(ctx context.Context, userUID string) ([]*models.CollectionEntry, error) {
	const op = "storage.ListCollection"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, movie_id, movie_title, movie_genre, movie_rating,
			      movie_image, movie_description, added_at
			  FROM user_collections
			  WHERE user_uid = $1
			  ORDER BY added_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CollectionEntry
	for rows.Next() {
		var e models.CollectionEntry
		if err = rows.Scan(&e.ID, &e.UserUID, &e.MovieID, &e.MovieTitle, &e.MovieGenre,
			&e.MovieRating, &e.MovieImage, &e.MovieDescription, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CollectionEntryExists проверяет наличие фильма в коллекции пользователя.
// Только быстрый путь для понятной ошибки, от гонок защищает уникальный индекс.
func (s *Storage) CollectionEntryExists(ctx context.Context, userUID string, movieID int) (bool, error) {
	const op = "storage.CollectionEntryExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM user_collections WHERE user_uid = $1 AND movie_id = $2)`
	if err := s.DB.QueryRowContext(ctx, query, userUID, movieID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// AddCollectionEntry вставляет фильм в коллекцию и возвращает созданную запись.
// Дубликат (user_uid, movie_id) приводит к ErrConflict.
func (s *Storage) AddCollectionEntry(ctx context.Context, entry models.CollectionEntry) (*models.CollectionEntry, error) {
	const op = "storage.AddCollectionEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_collections (user_uid, movie_id, movie_title, movie_genre,
			      movie_rating, movie_image, movie_description)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, added_at`
	e := entry
	if err := s.DB.QueryRowContext(ctx, query,
		entry.UserUID, entry.MovieID, entry.MovieTitle, entry.MovieGenre,
		entry.MovieRating, entry.MovieImage, entry.MovieDescription).Scan(&e.ID, &e.AddedAt); err != nil {
		return nil, wrapError(op, err)
	}
	return &e, nil
}

// RemoveCollectionEntry удаляет фильм из коллекции пользователя
// и возвращает количество удалённых строк.
func (s *Storage) RemoveCollectionEntry(ctx context.Context, userUID string, movieID int) (int, error) {
	const op = "storage.RemoveCollectionEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM user_collections WHERE user_uid = $1 AND movie_id = $2`
	result, err := s.DB.ExecContext(ctx, query, userUID, movieID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
