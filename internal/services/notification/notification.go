// Package services содержит бизнес-логику уведомлений пользователя.
package services

import (
	"context"
	"log/slog"

	"github.com/kinoteka/movie-catalog/internal/models"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// NotificationRepository определяет методы для работы с уведомлениями.
type NotificationRepository interface {
	// ListNotifications возвращает уведомления пользователя, новые первыми.
	ListNotifications(ctx context.Context, userUID string) ([]*models.Notification, error)
	// MarkNotificationRead помечает уведомление прочитанным,
	// возвращает число обновленных строк.
	MarkNotificationRead(ctx context.Context, userUID string, id int) (int, error)
	// MarkAllNotificationsRead помечает все уведомления пользователя прочитанными.
	MarkAllNotificationsRead(ctx context.Context, userUID string) error
}

// NotificationService реализует операции над уведомлениями.
type NotificationService struct {
	repo NotificationRepository
	log  *slog.Logger
}

// NewNotificationService создает новый экземпляр NotificationService.
func NewNotificationService(repo NotificationRepository, log *slog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

// List возвращает уведомления пользователя.
func (s *NotificationService) List(ctx context.Context, userUID string) ([]*models.Notification, error) {
	return s.repo.ListNotifications(ctx, userUID)
}

// MarkRead помечает одно уведомление прочитанным. Уведомление другого
// пользователя недоступно и неотличимо от несуществующего.
func (s *NotificationService) MarkRead(ctx context.Context, userUID string, id int) error {
	count, err := s.repo.MarkNotificationRead(ctx, userUID, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkAllRead помечает все уведомления пользователя прочитанными.
func (s *NotificationService) MarkAllRead(ctx context.Context, userUID string) error {
	return s.repo.MarkAllNotificationsRead(ctx, userUID)
}
