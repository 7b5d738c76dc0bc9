package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kinoteka/movie-catalog/internal/models"
)

const reviewColumns = `r.id, r.user_uid, r.movie_id, r.movie_title, r.movie_image,
			      r.rating, r.review_text, r.status, r.moderation_comment, r.created_at,
			      u.username AS author_name, u.avatar_url AS author_avatar`

// CreateReview вставляет новую рецензию со статусом pending.
// Дубликат (user_uid, movie_id) приводит к ErrConflict.
func (s *Storage) CreateReview(ctx context.Context, r models.Review) (*models.Review, error) {
	const op = "storage.CreateReview"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO reviews (user_uid, movie_id, movie_title, movie_image, rating,
			      review_text, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at`
	created := r
	created.Status = models.StatusPending
	if err := s.DB.QueryRowContext(ctx, query,
		r.UserUID, r.MovieID, r.MovieTitle, r.MovieImage, r.Rating,
		r.ReviewText, models.StatusPending).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, wrapError(op, err)
	}
	return &created, nil
}

// GetReview возвращает рецензию по ID вместе с данными автора.
func (s *Storage) GetReview(ctx context.Context, id int) (*models.Review, error) {
	const op = "storage.GetReview"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + reviewColumns + `
			  FROM reviews r
			  LEFT JOIN users u ON r.user_uid = u.uid
			  WHERE r.id = $1`
	return scanReview(s.DB.QueryRowContext(ctx, query, id), op)
}

// ReviewExists проверяет наличие рецензии пользователя на фильм.
// Только быстрый путь для понятной ошибки, от гонок защищает уникальный индекс.
func (s *Storage) ReviewExists(ctx context.Context, userUID string, movieID int) (bool, error) {
	const op = "storage.ReviewExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE user_uid = $1 AND movie_id = $2)`
	if err := s.DB.QueryRowContext(ctx, query, userUID, movieID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListMovieReviews возвращает рецензии на фильм: одобренные для всех,
// плюс собственная рецензия зрителя в любом статусе. Анонимный зритель
// передаётся пустой строкой, NULLIF не даёт приводить её к uuid.
func (s *Storage) ListMovieReviews(ctx context.Context, movieID int, viewerUID string) ([]*models.Review, error) {
	const op = "storage.ListMovieReviews"
	query := `SELECT ` + reviewColumns + `
			  FROM reviews r
			  LEFT JOIN users u ON r.user_uid = u.uid
			  WHERE r.movie_id = $1 AND (r.status = $2 OR r.user_uid = NULLIF($3, '')::uuid)
			  ORDER BY r.created_at DESC`
	return s.queryReviews(ctx, op, query, movieID, models.StatusApproved, viewerUID)
}

// ListUserReviews возвращает все рецензии пользователя в любом статусе.
func (s *Storage) ListUserReviews(ctx context.Context, userUID string) ([]*models.Review, error) {
	const op = "storage.ListUserReviews"
	query := `SELECT ` + reviewColumns + `
			  FROM reviews r
			  LEFT JOIN users u ON r.user_uid = u.uid
			  WHERE r.user_uid = $1
			  ORDER BY r.created_at DESC`
	return s.queryReviews(ctx, op, query, userUID)
}

// ListReviewsByStatus возвращает рецензии в заданном статусе модерации,
// старые первыми — порядок очереди модератора.
func (s *Storage) ListReviewsByStatus(ctx context.Context, status models.ModerationStatus) ([]*models.Review, error) {
	const op = "storage.ListReviewsByStatus"
	query := `SELECT ` + reviewColumns + `
			  FROM reviews r
			  LEFT JOIN users u ON r.user_uid = u.uid
			  WHERE r.status = $1
			  ORDER BY r.created_at ASC`
	return s.queryReviews(ctx, op, query, status)
}

func (s *Storage) queryReviews(ctx context.Context, op, query string, args ...any) ([]*models.Review, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Review
	for rows.Next() {
		r, err := scanReview(rows, op)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanReview(row rowScanner, op string) (*models.Review, error) {
	r := &models.Review{}
	var comment, authorName, authorAvatar sql.NullString
	if err := row.Scan(&r.ID, &r.UserUID, &r.MovieID, &r.MovieTitle, &r.MovieImage,
		&r.Rating, &r.ReviewText, &r.Status, &comment, &r.CreatedAt,
		&authorName, &authorAvatar); err != nil {
		return nil, wrapError(op, err)
	}
	if comment.Valid {
		r.ModerationComment = &comment.String
	}
	r.AuthorName = authorName.String
	r.AuthorAvatar = authorAvatar.String
	return r, nil
}

// UpdateReview обновляет оценку и текст рецензии, возвращая её в статус
// pending для повторной модерации. Возвращает количество затронутых строк.
func (s *Storage) UpdateReview(ctx context.Context, id, rating int, reviewText string) (int, error) {
	const op = "storage.UpdateReview"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE reviews
			  SET rating = $1, review_text = $2, status = $3, moderation_comment = NULL
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, rating, reviewText, models.StatusPending, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteReview удаляет рецензию и возвращает количество удалённых строк.
func (s *Storage) DeleteReview(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteReview"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM reviews WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
