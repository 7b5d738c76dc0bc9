package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kinoteka/movie-catalog/internal/models"
)

// ModeratePlaylist применяет решение модератора к подборке: обновляет статус,
// комментарий, модератора и время решения, и в той же транзакции создает
// уведомление владельцу. Если хотя бы одна из операций не проходит, транзакция
// откатывается целиком — смена статуса без уведомления не наблюдаема, и наоборот.
func (s *Storage) ModeratePlaylist(ctx context.Context, id int, status models.ModerationStatus,
	moderatorUID string, comment *string, n models.Notification) (*models.Playlist, error) {
	const op = "storage.ModeratePlaylist"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE playlists
			  SET status = $1, moderation_comment = $2, moderated_by = $3, moderated_at = NOW()
			  WHERE id = $4
			  RETURNING id, user_uid, title, description, is_public, status,
			      moderation_comment, moderated_by, moderated_at, created_at`
	p := &models.Playlist{}
	var commentOut, moderatedBy sql.NullString
	var moderatedAt sql.NullTime
	if err = tx.QueryRowContext(ctx, query, status, comment, moderatorUID, id).
		Scan(&p.ID, &p.UserUID, &p.Title, &p.Description, &p.IsPublic, &p.Status,
			&commentOut, &moderatedBy, &moderatedAt, &p.CreatedAt); err != nil {
		return nil, wrapError(op, err)
	}
	if commentOut.Valid {
		p.ModerationComment = &commentOut.String
	}
	if moderatedBy.Valid {
		p.ModeratedBy = &moderatedBy.String
	}
	if moderatedAt.Valid {
		p.ModeratedAt = &moderatedAt.Time
	}

	if err = insertNotification(ctx, tx, n); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ModerateReview применяет решение модератора к рецензии: у рецензий
// фиксируются только статус и комментарий. Уведомление создается в той же
// транзакции, что и смена статуса.
func (s *Storage) ModerateReview(ctx context.Context, id int, status models.ModerationStatus,
	comment *string, n models.Notification) (*models.Review, error) {
	const op = "storage.ModerateReview"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE reviews
			  SET status = $1, moderation_comment = $2
			  WHERE id = $3
			  RETURNING id, user_uid, movie_id, movie_title, movie_image, rating,
			      review_text, status, moderation_comment, created_at`
	r := &models.Review{}
	var commentOut sql.NullString
	if err = tx.QueryRowContext(ctx, query, status, comment, id).
		Scan(&r.ID, &r.UserUID, &r.MovieID, &r.MovieTitle, &r.MovieImage, &r.Rating,
			&r.ReviewText, &r.Status, &commentOut, &r.CreatedAt); err != nil {
		return nil, wrapError(op, err)
	}
	if commentOut.Valid {
		r.ModerationComment = &commentOut.String
	}

	if err = insertNotification(ctx, tx, n); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

func insertNotification(ctx context.Context, tx *sql.Tx, n models.Notification) error {
	query := `INSERT INTO notifications (user_uid, type, title, message, playlist_id)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := tx.ExecContext(ctx, query, n.UserUID, n.Type, n.Title, n.Message, n.PlaylistID)
	return err
}
