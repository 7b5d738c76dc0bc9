// Package services содержит логику модерации пользовательского контента:
// списки на проверку, применение решений с уведомлением в одной транзакции
// и публикацию почтового события в очередь.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kinoteka/movie-catalog/internal/lib/sl"
	"github.com/kinoteka/movie-catalog/internal/models"
	"github.com/kinoteka/movie-catalog/internal/rabbitmq"
)

// ErrInvalidTransition возвращается при попытке перевести контент
// в недопустимый статус, например отклонить уже одобренную подборку.
var ErrInvalidTransition = errors.New("invalid status transition")

// publicCacheKey — ключ кеша публичного списка подборок; решение модератора
// меняет его содержимое.
const publicCacheKey = "playlists:public"

// ModerationRepository определяет методы хранилища, нужные модерации.
type ModerationRepository interface {
	ListPlaylistsByStatus(ctx context.Context, status models.ModerationStatus) ([]*models.Playlist, error)
	ListReviewsByStatus(ctx context.Context, status models.ModerationStatus) ([]*models.Review, error)
	GetPlaylist(ctx context.Context, id int) (*models.Playlist, error)
	GetReview(ctx context.Context, id int) (*models.Review, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ModeratePlaylist(ctx context.Context, id int, status models.ModerationStatus,
		moderatorUID string, comment *string, n models.Notification) (*models.Playlist, error)
	ModerateReview(ctx context.Context, id int, status models.ModerationStatus,
		comment *string, n models.Notification) (*models.Review, error)
}

// Publisher публикует события в очередь уведомлений.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Cache описывает инвалидацию кеша списков.
type Cache interface {
	Invalidate(key string) error
}

// ModerationService применяет решения модераторов к подборкам и рецензиям.
type ModerationService struct {
	repo      ModerationRepository
	publisher Publisher
	cache     Cache
	log       *slog.Logger
}

// NewModerationService создает новый экземпляр ModerationService.
func NewModerationService(repo ModerationRepository, publisher Publisher, cache Cache, log *slog.Logger) *ModerationService {
	return &ModerationService{
		repo:      repo,
		publisher: publisher,
		cache:     cache,
		log:       log,
	}
}

// ListPlaylists возвращает подборки в заданном статусе, старые первыми.
func (s *ModerationService) ListPlaylists(ctx context.Context, status models.ModerationStatus) ([]*models.Playlist, error) {
	return s.repo.ListPlaylistsByStatus(ctx, status)
}

// ListReviews возвращает рецензии в заданном статусе, старые первыми.
func (s *ModerationService) ListReviews(ctx context.Context, status models.ModerationStatus) ([]*models.Review, error) {
	return s.repo.ListReviewsByStatus(ctx, status)
}

// DecidePlaylist применяет решение модератора к подборке. Смена статуса и
// уведомление владельцу записываются в одной транзакции, после коммита
// в очередь публикуется почтовое событие (best effort).
func (s *ModerationService) DecidePlaylist(ctx context.Context, id int, status models.ModerationStatus,
	moderatorUID string, comment *string) (*models.Playlist, error) {
	current, err := s.repo.GetPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	n := buildNotification(current.UserUID, "playlist", current.Title, status, comment)
	n.PlaylistID = &current.ID

	updated, err := s.repo.ModeratePlaylist(ctx, id, status, moderatorUID, comment, n)
	if err != nil {
		return nil, err
	}
	s.invalidatePublic()
	s.publishEvent(ctx, updated.UserUID, "playlist", updated.Title, status, comment)
	s.log.Info("playlist moderated",
		slog.Int("id", id), slog.String("status", string(status)))
	return updated, nil
}

// DecideReview применяет решение модератора к рецензии.
func (s *ModerationService) DecideReview(ctx context.Context, id int, status models.ModerationStatus,
	comment *string) (*models.Review, error) {
	current, err := s.repo.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	n := buildNotification(current.UserUID, "review", current.MovieTitle, status, comment)

	updated, err := s.repo.ModerateReview(ctx, id, status, comment, n)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, updated.UserUID, "review", updated.MovieTitle, status, comment)
	s.log.Info("review moderated",
		slog.Int("id", id), slog.String("status", string(status)))
	return updated, nil
}

// buildNotification собирает внутриплатформенное уведомление владельцу.
// К сообщению об отклонении добавляется комментарий модератора, если он есть.
func buildNotification(userUID, entityType, entityTitle string,
	status models.ModerationStatus, comment *string) models.Notification {
	var notifType, title, message string

	approved := status == models.StatusApproved
	switch {
	case entityType == "playlist" && approved:
		notifType = models.NotificationPlaylistApproved
		title = "Подборка одобрена"
		message = fmt.Sprintf("Ваша подборка «%s» прошла модерацию и опубликована.", entityTitle)
	case entityType == "playlist":
		notifType = models.NotificationPlaylistRejected
		title = "Подборка отклонена"
		message = fmt.Sprintf("Ваша подборка «%s» не прошла модерацию.", entityTitle)
	case approved:
		notifType = models.NotificationReviewApproved
		title = "Рецензия одобрена"
		message = fmt.Sprintf("Ваша рецензия на фильм «%s» прошла модерацию и опубликована.", entityTitle)
	default:
		notifType = models.NotificationReviewRejected
		title = "Рецензия отклонена"
		message = fmt.Sprintf("Ваша рецензия на фильм «%s» не прошла модерацию.", entityTitle)
	}
	if !approved && comment != nil && *comment != "" {
		message = fmt.Sprintf("%s Комментарий модератора: %s", message, *comment)
	}

	return models.Notification{
		UserUID: userUID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
}

// publishEvent публикует почтовое событие в очередь. Ошибка публикации
// не откатывает уже принятое решение, только логируется.
func (s *ModerationService) publishEvent(ctx context.Context, ownerUID, entityType, entityTitle string,
	status models.ModerationStatus, comment *string) {
	owner, err := s.repo.GetUser(ctx, ownerUID)
	if err != nil {
		s.log.Error("failed to load content owner for email event", sl.Err(err))
		return
	}

	event := models.ModerationEvent{
		EventID:     uuid.NewString(),
		Email:       owner.Email,
		Username:    owner.Username,
		EntityType:  entityType,
		EntityTitle: entityTitle,
		Approved:    status == models.StatusApproved,
	}
	if comment != nil {
		event.Comment = *comment
	}

	if err := s.publisher.Publish(rabbitmq.ModerationRoutingKey, event); err != nil {
		s.log.Error("failed to publish moderation event", sl.Err(err))
	}
}

func (s *ModerationService) invalidatePublic() {
	if err := s.cache.Invalidate(publicCacheKey); err != nil {
		s.log.Warn("failed to invalidate playlists cache", sl.Err(err))
	}
}
