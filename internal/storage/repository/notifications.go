package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kinoteka/movie-catalog/internal/models"
)

// ListNotifications возвращает уведомления пользователя, новые первыми.
func (s *Storage) ListNotifications(ctx context.Context, userUID string) ([]*models.Notification, error) {
	const op = "storage.ListNotifications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, type, title, message, playlist_id, is_read, created_at
			  FROM notifications
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Notification
	for rows.Next() {
		var n models.Notification
		var playlistID sql.NullInt64
		if err = rows.Scan(&n.ID, &n.UserUID, &n.Type, &n.Title, &n.Message,
			&playlistID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if playlistID.Valid {
			v := int(playlistID.Int64)
			n.PlaylistID = &v
		}
		result = append(result, &n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkNotificationRead помечает уведомление пользователя прочитанным
// и возвращает количество затронутых строк.
func (s *Storage) MarkNotificationRead(ctx context.Context, userUID string, id int) (int, error) {
	const op = "storage.MarkNotificationRead"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notifications SET is_read = true WHERE user_uid = $1 AND id = $2`
	result, err := s.DB.ExecContext(ctx, query, userUID, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// MarkAllNotificationsRead помечает все уведомления пользователя прочитанными.
func (s *Storage) MarkAllNotificationsRead(ctx context.Context, userUID string) error {
	const op = "storage.MarkAllNotificationsRead"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notifications SET is_read = true WHERE user_uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
