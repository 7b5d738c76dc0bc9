package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kinoteka/movie-catalog/internal/models"
)

const playlistColumns = `p.id, p.user_uid, p.title, p.description, p.is_public,
			      p.status, p.moderation_comment, p.moderated_by, p.moderated_at, p.created_at,
			      u.username AS author_name,
			      (SELECT COUNT(*) FROM playlist_movies pm WHERE pm.playlist_id = p.id) AS movies_count`

// CreatePlaylist вставляет новую подборку со статусом pending
// и возвращает созданную запись.
func (s *Storage) CreatePlaylist(ctx context.Context, p models.Playlist) (*models.Playlist, error) {
	const op = "storage.CreatePlaylist"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO playlists (user_uid, title, description, is_public, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`
	created := p
	created.Status = models.StatusPending
	if err := s.DB.QueryRowContext(ctx, query,
		p.UserUID, p.Title, p.Description, p.IsPublic, models.StatusPending).
		Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// GetPlaylist возвращает подборку по ID вместе с именем автора
// и количеством фильмов.
func (s *Storage) GetPlaylist(ctx context.Context, id int) (*models.Playlist, error) {
	const op = "storage.GetPlaylist"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + playlistColumns + `
			  FROM playlists p
			  LEFT JOIN users u ON p.user_uid = u.uid
			  WHERE p.id = $1`
	return scanPlaylistRow(s.DB.QueryRowContext(ctx, query, id), op)
}

// GetPlaylistOwner возвращает UID владельца подборки.
func (s *Storage) GetPlaylistOwner(ctx context.Context, id int) (string, error) {
	const op = "storage.GetPlaylistOwner"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var ownerUID string
	query := `SELECT user_uid FROM playlists WHERE id = $1`
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&ownerUID); err != nil {
		return "", wrapError(op, err)
	}
	return ownerUID, nil
}

// ListPublicPlaylists возвращает публичные одобренные подборки.
func (s *Storage) ListPublicPlaylists(ctx context.Context) ([]*models.Playlist, error) {
	const op = "storage.ListPublicPlaylists"
	query := `SELECT ` + playlistColumns + `
			  FROM playlists p
			  LEFT JOIN users u ON p.user_uid = u.uid
			  WHERE p.is_public = true AND p.status = $1
			  ORDER BY p.created_at DESC`
	return s.queryPlaylists(ctx, op, query, models.StatusApproved)
}

// ListUserPlaylists возвращает все подборки пользователя, включая
// ожидающие модерации и отклонённые.
func (s *Storage) ListUserPlaylists(ctx context.Context, userUID string) ([]*models.Playlist, error) {
	const op = "storage.ListUserPlaylists"
	query := `SELECT ` + playlistColumns + `
			  FROM playlists p
			  LEFT JOIN users u ON p.user_uid = u.uid
			  WHERE p.user_uid = $1
			  ORDER BY p.created_at DESC`
	return s.queryPlaylists(ctx, op, query, userUID)
}

// ListPlaylistsByStatus возвращает подборки в заданном статусе модерации,
// старые первыми — порядок очереди модератора.
func (s *Storage) ListPlaylistsByStatus(ctx context.Context, status models.ModerationStatus) ([]*models.Playlist, error) {
	const op = "storage.ListPlaylistsByStatus"
	query := `SELECT ` + playlistColumns + `
			  FROM playlists p
			  LEFT JOIN users u ON p.user_uid = u.uid
			  WHERE p.status = $1
			  ORDER BY p.created_at ASC`
	return s.queryPlaylists(ctx, op, query, status)
}

// ListSavedPlaylists возвращает подборки, сохранённые пользователем в закладки.
func (s *Storage) ListSavedPlaylists(ctx context.Context, userUID string) ([]*models.Playlist, error) {
	const op = "storage.ListSavedPlaylists"
	query := `SELECT ` + playlistColumns + `
			  FROM saved_playlists sp
			  JOIN playlists p ON p.id = sp.playlist_id
			  LEFT JOIN users u ON p.user_uid = u.uid
			  WHERE sp.user_uid = $1
			  ORDER BY sp.saved_at DESC`
	return s.queryPlaylists(ctx, op, query, userUID)
}

func (s *Storage) queryPlaylists(ctx context.Context, op, query string, args ...any) ([]*models.Playlist, error) {
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

	var result []*models.Playlist
	for rows.Next() {
		p, err := scanPlaylist(rows, op)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlaylist(row rowScanner, op string) (*models.Playlist, error) {
	p := &models.Playlist{}
	var comment, moderatedBy, authorName sql.NullString
	var moderatedAt sql.NullTime
	if err := row.Scan(&p.ID, &p.UserUID, &p.Title, &p.Description, &p.IsPublic,
		&p.Status, &comment, &moderatedBy, &moderatedAt, &p.CreatedAt,
		&authorName, &p.MoviesCount); err != nil {
		return nil, wrapError(op, err)
	}
	if comment.Valid {
		p.ModerationComment = &comment.String
	}
	if moderatedBy.Valid {
		p.ModeratedBy = &moderatedBy.String
	}
	if moderatedAt.Valid {
		p.ModeratedAt = &moderatedAt.Time
	}
	p.AuthorName = authorName.String
	return p, nil
}

func scanPlaylistRow(row *sql.Row, op string) (*models.Playlist, error) {
	return scanPlaylist(row, op)
}

// UpdatePlaylist обновляет поля подборки и возвращает количество
// затронутых строк.
func (s *Storage) UpdatePlaylist(ctx context.Context, id int, title, description string, isPublic bool) (int, error) {
	const op = "storage.UpdatePlaylist"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE playlists
			  SET title = $1, description = $2, is_public = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, title, description, isPublic, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeletePlaylist удаляет подборку вместе с её фильмами (ON DELETE CASCADE)
// и возвращает количество удалённых строк.
func (s *Storage) DeletePlaylist(ctx context.Context, id int) (int, error) {
	const op = "storage.DeletePlaylist"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM playlists WHERE id = $1`
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

// ListPlaylistMovies возвращает фильмы подборки в порядке позиций.
func (s *Storage) ListPlaylistMovies(ctx context.Context, playlistID int) ([]*models.PlaylistMovie, error) {
	const op = "storage.ListPlaylistMovies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, playlist_id, movie_id, movie_title, movie_genre, movie_rating,
			      movie_image, movie_description, position, added_at
			  FROM playlist_movies
			  WHERE playlist_id = $1
			  ORDER BY position, added_at`
	rows, err := s.DB.QueryContext(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PlaylistMovie
	for rows.Next() {
		var m models.PlaylistMovie
		if err = rows.Scan(&m.ID, &m.PlaylistID, &m.MovieID, &m.MovieTitle, &m.MovieGenre,
			&m.MovieRating, &m.MovieImage, &m.MovieDescription, &m.Position, &m.AddedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// AddPlaylistMovie вставляет фильм в подборку. Повторное добавление того же
// фильма молча игнорируется, возвращается nil без ошибки.
func (s *Storage) AddPlaylistMovie(ctx context.Context, m models.PlaylistMovie) (*models.PlaylistMovie, error) {
	const op = "storage.AddPlaylistMovie"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO playlist_movies (playlist_id, movie_id, movie_title, movie_genre,
			      movie_rating, movie_image, movie_description, position)
			  VALUES ($1, $2, $3, $4, $5, $6, $7,
			      (SELECT COALESCE(MAX(position), 0) + 1 FROM playlist_movies WHERE playlist_id = $1))
			  ON CONFLICT (playlist_id, movie_id) DO NOTHING
			  RETURNING id, position, added_at`
	added := m
	err := s.DB.QueryRowContext(ctx, query,
		m.PlaylistID, m.MovieID, m.MovieTitle, m.MovieGenre,
		m.MovieRating, m.MovieImage, m.MovieDescription).
		Scan(&added.ID, &added.Position, &added.AddedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &added, nil
}

// RemovePlaylistMovie удаляет фильм из подборки и возвращает количество
// удалённых строк.
func (s *Storage) RemovePlaylistMovie(ctx context.Context, playlistID, movieID int) (int, error) {
	const op = "storage.RemovePlaylistMovie"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM playlist_movies WHERE playlist_id = $1 AND movie_id = $2`
	result, err := s.DB.ExecContext(ctx, query, playlistID, movieID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SavePlaylist добавляет подборку в закладки пользователя.
// Повторное сохранение приводит к ErrConflict.
func (s *Storage) SavePlaylist(ctx context.Context, userUID string, playlistID int) error {
	const op = "storage.SavePlaylist"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO saved_playlists (user_uid, playlist_id) VALUES ($1, $2)`
	if _, err := s.DB.ExecContext(ctx, query, userUID, playlistID); err != nil {
		return wrapError(op, err)
	}
	return nil
}

// UnsavePlaylist убирает подборку из закладок и возвращает количество
// удалённых строк.
func (s *Storage) UnsavePlaylist(ctx context.Context, userUID string, playlistID int) (int, error) {
	const op = "storage.UnsavePlaylist"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM saved_playlists WHERE user_uid = $1 AND playlist_id = $2`
	result, err := s.DB.ExecContext(ctx, query, userUID, playlistID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
