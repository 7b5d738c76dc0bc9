// Package services содержит бизнес-логику рецензий: проверки владения,
// видимость по статусу модерации и запрет удаления одобренных рецензий.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kinoteka/movie-catalog/internal/models"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// ErrForbidden возвращается, когда вызывающий не владеет рецензией
// или операция над ней запрещена её статусом.
var ErrForbidden = errors.New("forbidden")

// ReviewRepository определяет методы для работы с рецензиями в хранилище.
type ReviewRepository interface {
	CreateReview(ctx context.Context, r models.Review) (*models.Review, error)
	GetReview(ctx context.Context, id int) (*models.Review, error)
	ReviewExists(ctx context.Context, userUID string, movieID int) (bool, error)
	ListMovieReviews(ctx context.Context, movieID int, viewerUID string) ([]*models.Review, error)
	ListUserReviews(ctx context.Context, userUID string) ([]*models.Review, error)
	UpdateReview(ctx context.Context, id, rating int, reviewText string) (int, error)
	DeleteReview(ctx context.Context, id int) (int, error)
}

// ReviewService реализует операции над рецензиями пользователей.
type ReviewService struct {
	repo ReviewRepository
	log  *slog.Logger
}

// NewReviewService создает новый экземпляр ReviewService.
func NewReviewService(repo ReviewRepository, log *slog.Logger) *ReviewService {
	return &ReviewService{repo: repo, log: log}
}

// Create создает рецензию со статусом pending. На один фильм у пользователя
// может быть только одна рецензия: предварительная проверка дает понятную
// ошибку, а при одновременных вставках источником истины служит уникальный
// индекс, нарушение которого также дает ErrConflict.
func (s *ReviewService) Create(ctx context.Context, r models.Review) (*models.Review, error) {
	exists, err := s.repo.ReviewExists(ctx, r.UserUID, r.MovieID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrConflict
	}

	created, err := s.repo.CreateReview(ctx, r)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new review",
		slog.Int("id", created.ID), slog.Int("movie_id", created.MovieID))
	return created, nil
}

// ListForMovie возвращает одобренные рецензии на фильм; собственная рецензия
// зрителя видна ему в любом статусе.
func (s *ReviewService) ListForMovie(ctx context.Context, movieID int, viewerUID string) ([]*models.Review, error) {
	return s.repo.ListMovieReviews(ctx, movieID, viewerUID)
}

// ListMine возвращает все рецензии пользователя, включая немодерированные.
func (s *ReviewService) ListMine(ctx context.Context, userUID string) ([]*models.Review, error) {
	return s.repo.ListUserReviews(ctx, userUID)
}

// Update редактирует собственную рецензию. Любая правка возвращает рецензию
// на повторную модерацию: статус сбрасывается в pending, комментарий
// модератора очищается.
func (s *ReviewService) Update(ctx context.Context, userUID string, id, rating int, reviewText string) (*models.Review, error) {
	review, err := s.repo.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserUID != userUID {
		return nil, ErrForbidden
	}

	count, err := s.repo.UpdateReview(ctx, id, rating, reviewText)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, repository.ErrNotFound
	}
	return s.repo.GetReview(ctx, id)
}

// Delete удаляет собственную рецензию. Одобренную рецензию владелец удалить
// не может — она уже часть публичного каталога.
func (s *ReviewService) Delete(ctx context.Context, userUID string, id int) error {
	review, err := s.repo.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if review.UserUID != userUID {
		return ErrForbidden
	}
	if review.Status == models.StatusApproved {
		return ErrForbidden
	}

	count, err := s.repo.DeleteReview(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return nil
}
