// Package services содержит бизнес-логику личной коллекции фильмов.
package services

import (
	"context"
	"log/slog"

	"github.com/kinoteka/movie-catalog/internal/models"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// CollectionRepository определяет методы для работы с коллекцией в хранилище.
type CollectionRepository interface {
	// ListCollection возвращает коллекцию пользователя.
	ListCollection(ctx context.Context, userUID string) ([]*models.CollectionEntry, error)
	// CollectionEntryExists проверяет наличие фильма в коллекции.
	CollectionEntryExists(ctx context.Context, userUID string, movieID int) (bool, error)
	// AddCollectionEntry вставляет фильм, ErrConflict при дубликате.
	AddCollectionEntry(ctx context.Context, entry models.CollectionEntry) (*models.CollectionEntry, error)
	// RemoveCollectionEntry удаляет фильм, возвращает число удалённых строк.
	RemoveCollectionEntry(ctx context.Context, userUID string, movieID int) (int, error)
}

// CollectionService реализует операции над личной коллекцией.
type CollectionService struct {
	repo CollectionRepository
	log  *slog.Logger
}

// NewCollectionService создает новый экземпляр CollectionService.
func NewCollectionService(repo CollectionRepository, log *slog.Logger) *CollectionService {
	return &CollectionService{repo: repo, log: log}
}

// List возвращает коллекцию пользователя.
func (s *CollectionService) List(ctx context.Context, userUID string) ([]*models.CollectionEntry, error) {
	return s.repo.ListCollection(ctx, userUID)
}

// Add добавляет фильм в коллекцию. Предварительная проверка — быстрый путь
// для понятной ошибки; источником истины при одновременных вставках служит
// уникальный индекс, нарушение которого также дает ErrConflict.
func (s *CollectionService) Add(ctx context.Context, entry models.CollectionEntry) (*models.CollectionEntry, error) {
	exists, err := s.repo.CollectionEntryExists(ctx, entry.UserUID, entry.MovieID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrConflict
	}

	created, err := s.repo.AddCollectionEntry(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.log.Info("movie added to collection",
		slog.String("user_uid", entry.UserUID), slog.Int("movie_id", entry.MovieID))
	return created, nil
}

// Remove удаляет фильм из коллекции, ErrNotFound если его там не было.
func (s *CollectionService) Remove(ctx context.Context, userUID string, movieID int) error {
	count, err := s.repo.RemoveCollectionEntry(ctx, userUID, movieID)
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return nil
}
