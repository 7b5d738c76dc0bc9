// Package services содержит бизнес-логику пользовательских подборок,
// включая проверки владения, видимость по статусу модерации и кеширование
// публичного списка.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kinoteka/movie-catalog/internal/lib/sl"
	"github.com/kinoteka/movie-catalog/internal/models"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// ErrForbidden возвращается, когда вызывающий не владеет подборкой.
var ErrForbidden = errors.New("forbidden")

// publicCacheKey — ключ кеша публичного списка подборок.
const publicCacheKey = "playlists:public"

// PlaylistRepository определяет методы для работы с подборками в хранилище.
type PlaylistRepository interface {
	CreatePlaylist(ctx context.Context, p models.Playlist) (*models.Playlist, error)
	GetPlaylist(ctx context.Context, id int) (*models.Playlist, error)
	GetPlaylistOwner(ctx context.Context, id int) (string, error)
	ListPublicPlaylists(ctx context.Context) ([]*models.Playlist, error)
	ListUserPlaylists(ctx context.Context, userUID string) ([]*models.Playlist, error)
	ListSavedPlaylists(ctx context.Context, userUID string) ([]*models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id int, title, description string, isPublic bool) (int, error)
	DeletePlaylist(ctx context.Context, id int) (int, error)
	ListPlaylistMovies(ctx context.Context, playlistID int) ([]*models.PlaylistMovie, error)
	AddPlaylistMovie(ctx context.Context, m models.PlaylistMovie) (*models.PlaylistMovie, error)
	RemovePlaylistMovie(ctx context.Context, playlistID, movieID int) (int, error)
	SavePlaylist(ctx context.Context, userUID string, playlistID int) error
	UnsavePlaylist(ctx context.Context, userUID string, playlistID int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// PlaylistService реализует бизнес-логику работы с подборками.
type PlaylistService struct {
	repo  PlaylistRepository
	cache Cache
	log   *slog.Logger
}

// NewPlaylistService создает новый экземпляр PlaylistService.
func NewPlaylistService(repo PlaylistRepository, cache Cache, log *slog.Logger) *PlaylistService {
	return &PlaylistService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает подборку со статусом pending.
func (s *PlaylistService) Create(ctx context.Context, userUID, title, description string, isPublic bool) (*models.Playlist, error) {
	created, err := s.repo.CreatePlaylist(ctx, models.Playlist{
		UserUID:     userUID,
		Title:       title,
		Description: description,
		IsPublic:    isPublic,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("created new playlist", slog.Int("id", created.ID))
	return created, nil
}

// ListPublic возвращает публичные одобренные подборки, используя кеш.
func (s *PlaylistService) ListPublic(ctx context.Context) ([]*models.Playlist, error) {
	var cached []*models.Playlist
	found, err := s.cache.Get(publicCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read playlists cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	playlists, err := s.repo.ListPublicPlaylists(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(publicCacheKey, playlists, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache playlists", sl.Err(err))
	}
	return playlists, nil
}

// ListMine возвращает все подборки пользователя, включая немодерированные.
func (s *PlaylistService) ListMine(ctx context.Context, userUID string) ([]*models.Playlist, error) {
	return s.repo.ListUserPlaylists(ctx, userUID)
}

// Read возвращает подборку с фильмами. Чужая подборка видна только
// когда она публична и одобрена, иначе ErrNotFound — скрытый контент
// неотличим от несуществующего.
func (s *PlaylistService) Read(ctx context.Context, id int, viewerUID string) (*models.Playlist, []*models.PlaylistMovie, error) {
	playlist, err := s.repo.GetPlaylist(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if playlist.UserUID != viewerUID {
		if !playlist.IsPublic || playlist.Status != models.StatusApproved {
			return nil, nil, repository.ErrNotFound
		}
	}

	movies, err := s.repo.ListPlaylistMovies(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return playlist, movies, nil
}

// Update обновляет поля собственной подборки.
func (s *PlaylistService) Update(ctx context.Context, userUID string, id int, title, description string, isPublic bool) error {
	if err := s.checkOwner(ctx, userUID, id); err != nil {
		return err
	}
	count, err := s.repo.UpdatePlaylist(ctx, id, title, description, isPublic)
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	s.invalidatePublic()
	return nil
}

// Delete удаляет собственную подборку вместе с фильмами.
func (s *PlaylistService) Delete(ctx context.Context, userUID string, id int) error {
	if err := s.checkOwner(ctx, userUID, id); err != nil {
		return err
	}
	count, err := s.repo.DeletePlaylist(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	s.invalidatePublic()
	return nil
}

// AddMovie добавляет фильм в собственную подборку. Повторное добавление
// того же фильма молча игнорируется, возвращается nil.
func (s *PlaylistService) AddMovie(ctx context.Context, userUID string, m models.PlaylistMovie) (*models.PlaylistMovie, error) {
	if err := s.checkOwner(ctx, userUID, m.PlaylistID); err != nil {
		return nil, err
	}
	return s.repo.AddPlaylistMovie(ctx, m)
}

// RemoveMovie удаляет фильм из собственной подборки.
func (s *PlaylistService) RemoveMovie(ctx context.Context, userUID string, playlistID, movieID int) error {
	if err := s.checkOwner(ctx, userUID, playlistID); err != nil {
		return err
	}
	count, err := s.repo.RemovePlaylistMovie(ctx, playlistID, movieID)
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Save добавляет существующую подборку в закладки пользователя.
func (s *PlaylistService) Save(ctx context.Context, userUID string, playlistID int) error {
	if _, err := s.repo.GetPlaylistOwner(ctx, playlistID); err != nil {
		return err
	}
	return s.repo.SavePlaylist(ctx, userUID, playlistID)
}

// Unsave убирает подборку из закладок пользователя.
func (s *PlaylistService) Unsave(ctx context.Context, userUID string, playlistID int) error {
	count, err := s.repo.UnsavePlaylist(ctx, userUID, playlistID)
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListSaved возвращает сохранённые пользователем подборки.
func (s *PlaylistService) ListSaved(ctx context.Context, userUID string) ([]*models.Playlist, error) {
	return s.repo.ListSavedPlaylists(ctx, userUID)
}

// checkOwner возвращает ErrNotFound для несуществующей подборки
// и ErrForbidden для чужой.
func (s *PlaylistService) checkOwner(ctx context.Context, userUID string, playlistID int) error {
	ownerUID, err := s.repo.GetPlaylistOwner(ctx, playlistID)
	if err != nil {
		return err
	}
	if ownerUID != userUID {
		return ErrForbidden
	}
	return nil
}

func (s *PlaylistService) invalidatePublic() {
	if err := s.cache.Invalidate(publicCacheKey); err != nil {
		s.log.Warn("failed to invalidate playlists cache", sl.Err(err))
	}
}
