package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kinoteka/movie-catalog/internal/models"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListPlaylistsByStatus(ctx context.Context, status models.ModerationStatus) ([]*models.Playlist, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Playlist), args.Error(1)
}
func (m *RepoMock) ListReviewsByStatus(ctx context.Context, status models.ModerationStatus) ([]*models.Review, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Review), args.Error(1)
}
func (m *RepoMock) GetPlaylist(ctx context.Context, id int) (*models.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}
func (m *RepoMock) GetReview(ctx context.Context, id int) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}
func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) ModeratePlaylist(ctx context.Context, id int, status models.ModerationStatus,
	moderatorUID string, comment *string, n models.Notification) (*models.Playlist, error) {
	args := m.Called(ctx, id, status, moderatorUID, comment, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}
func (m *RepoMock) ModerateReview(ctx context.Context, id int, status models.ModerationStatus,
	comment *string, n models.Notification) (*models.Review, error) {
	args := m.Called(ctx, id, status, comment, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestModerationService_DecidePlaylist(t *testing.T) {
	ownerUID := "owner-uid"
	moderatorUID := "moderator-uid"
	owner := &models.User{UID: ownerUID, Email: "owner@example.com", Username: "owner"}

	t.Run("одобрение публикует событие и сбрасывает кеш", func(t *testing.T) {
		pending := &models.Playlist{ID: 1, UserUID: ownerUID, Title: "Вестерны", Status: models.StatusPending}
		approved := &models.Playlist{ID: 1, UserUID: ownerUID, Title: "Вестерны", Status: models.StatusApproved}

		repoMock := new(RepoMock)
		publisherMock := new(PublisherMock)
		cacheMock := new(CacheMock)

		repoMock.On("GetPlaylist", mock.Anything, 1).Return(pending, nil).Once()
		repoMock.On("ModeratePlaylist", mock.Anything, 1, models.StatusApproved, moderatorUID,
			(*string)(nil), mock.MatchedBy(func(n models.Notification) bool {
				return n.UserUID == ownerUID &&
					n.Type == models.NotificationPlaylistApproved &&
					n.PlaylistID != nil && *n.PlaylistID == 1
			})).Return(approved, nil).Once()
		cacheMock.On("Invalidate", "playlists:public").Return(nil).Once()
		repoMock.On("GetUser", mock.Anything, ownerUID).Return(owner, nil).Once()
		publisherMock.On("Publish", "moderation", mock.MatchedBy(func(e models.ModerationEvent) bool {
			return e.Email == owner.Email && e.EntityType == "playlist" &&
				e.EntityTitle == "Вестерны" && e.Approved && e.EventID != ""
		})).Return(nil).Once()

		svc := NewModerationService(repoMock, publisherMock, cacheMock, newNoopLogger())
		got, err := svc.DecidePlaylist(context.Background(), 1, models.StatusApproved, moderatorUID, nil)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusApproved, got.Status)
		repoMock.AssertExpectations(t)
		publisherMock.AssertExpectations(t)
		cacheMock.AssertExpectations(t)
	})

	t.Run("отклонение добавляет комментарий модератора в уведомление", func(t *testing.T) {
		pending := &models.Playlist{ID: 2, UserUID: ownerUID, Title: "Спойлеры", Status: models.StatusPending}
		rejected := &models.Playlist{ID: 2, UserUID: ownerUID, Title: "Спойлеры", Status: models.StatusRejected}
		comment := "Уберите спойлеры из описания"

		repoMock := new(RepoMock)
		publisherMock := new(PublisherMock)
		cacheMock := new(CacheMock)

		repoMock.On("GetPlaylist", mock.Anything, 2).Return(pending, nil).Once()
		repoMock.On("ModeratePlaylist", mock.Anything, 2, models.StatusRejected, moderatorUID,
			&comment, mock.MatchedBy(func(n models.Notification) bool {
				return n.Type == models.NotificationPlaylistRejected &&
					strings.Contains(n.Message, "Комментарий модератора: "+comment)
			})).Return(rejected, nil).Once()
		cacheMock.On("Invalidate", "playlists:public").Return(nil).Once()
		repoMock.On("GetUser", mock.Anything, ownerUID).Return(owner, nil).Once()
		publisherMock.On("Publish", "moderation", mock.MatchedBy(func(e models.ModerationEvent) bool {
			return !e.Approved && e.Comment == comment
		})).Return(nil).Once()

		svc := NewModerationService(repoMock, publisherMock, cacheMock, newNoopLogger())
		_, err := svc.DecidePlaylist(context.Background(), 2, models.StatusRejected, moderatorUID, &comment)
		assert.NoError(t, err)
		repoMock.AssertExpectations(t)
		publisherMock.AssertExpectations(t)
	})

	t.Run("смена финального решения недопустима", func(t *testing.T) {
		approved := &models.Playlist{ID: 3, UserUID: ownerUID, Title: "Финал", Status: models.StatusApproved}

		repoMock := new(RepoMock)
		repoMock.On("GetPlaylist", mock.Anything, 3).Return(approved, nil).Once()

		svc := NewModerationService(repoMock, new(PublisherMock), new(CacheMock), newNoopLogger())
		_, err := svc.DecidePlaylist(context.Background(), 3, models.StatusRejected, moderatorUID, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		repoMock.AssertExpectations(t)
	})

	t.Run("повтор того же решения идемпотентен", func(t *testing.T) {
		approved := &models.Playlist{ID: 4, UserUID: ownerUID, Title: "Повтор", Status: models.StatusApproved}

		repoMock := new(RepoMock)
		publisherMock := new(PublisherMock)
		cacheMock := new(CacheMock)

		repoMock.On("GetPlaylist", mock.Anything, 4).Return(approved, nil).Once()
		repoMock.On("ModeratePlaylist", mock.Anything, 4, models.StatusApproved, moderatorUID,
			(*string)(nil), mock.Anything).Return(approved, nil).Once()
		cacheMock.On("Invalidate", "playlists:public").Return(nil).Once()
		repoMock.On("GetUser", mock.Anything, ownerUID).Return(owner, nil).Once()
		publisherMock.On("Publish", "moderation", mock.Anything).Return(nil).Once()

		svc := NewModerationService(repoMock, publisherMock, cacheMock, newNoopLogger())
		_, err := svc.DecidePlaylist(context.Background(), 4, models.StatusApproved, moderatorUID, nil)
		assert.NoError(t, err)
		repoMock.AssertExpectations(t)
	})

	t.Run("несуществующая подборка", func(t *testing.T) {
		repoMock := new(RepoMock)
		repoMock.On("GetPlaylist", mock.Anything, 99).Return(nil, repository.ErrNotFound).Once()

		svc := NewModerationService(repoMock, new(PublisherMock), new(CacheMock), newNoopLogger())
		_, err := svc.DecidePlaylist(context.Background(), 99, models.StatusApproved, moderatorUID, nil)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		repoMock.AssertExpectations(t)
	})

	t.Run("ошибка публикации не откатывает решение", func(t *testing.T) {
		pending := &models.Playlist{ID: 5, UserUID: ownerUID, Title: "Очередь", Status: models.StatusPending}
		approved := &models.Playlist{ID: 5, UserUID: ownerUID, Title: "Очередь", Status: models.StatusApproved}

		repoMock := new(RepoMock)
		publisherMock := new(PublisherMock)
		cacheMock := new(CacheMock)

		repoMock.On("GetPlaylist", mock.Anything, 5).Return(pending, nil).Once()
		repoMock.On("ModeratePlaylist", mock.Anything, 5, models.StatusApproved, moderatorUID,
			(*string)(nil), mock.Anything).Return(approved, nil).Once()
		cacheMock.On("Invalidate", "playlists:public").Return(nil).Once()
		repoMock.On("GetUser", mock.Anything, ownerUID).Return(owner, nil).Once()
		publisherMock.On("Publish", "moderation", mock.Anything).
			Return(assert.AnError).Once()

		svc := NewModerationService(repoMock, publisherMock, cacheMock, newNoopLogger())
		got, err := svc.DecidePlaylist(context.Background(), 5, models.StatusApproved, moderatorUID, nil)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusApproved, got.Status)
		publisherMock.AssertExpectations(t)
	})
}

func TestModerationService_DecideReview(t *testing.T) {
	authorUID := "author-uid"
	author := &models.User{UID: authorUID, Email: "author@example.com", Username: "author"}

	t.Run("одобрение рецензии", func(t *testing.T) {
		pending := &models.Review{ID: 1, UserUID: authorUID, MovieTitle: "Дюна", Status: models.StatusPending}
		approved := &models.Review{ID: 1, UserUID: authorUID, MovieTitle: "Дюна", Status: models.StatusApproved}

		repoMock := new(RepoMock)
		publisherMock := new(PublisherMock)

		repoMock.On("GetReview", mock.Anything, 1).Return(pending, nil).Once()
		repoMock.On("ModerateReview", mock.Anything, 1, models.StatusApproved,
			(*string)(nil), mock.MatchedBy(func(n models.Notification) bool {
				return n.Type == models.NotificationReviewApproved && n.PlaylistID == nil
			})).Return(approved, nil).Once()
		repoMock.On("GetUser", mock.Anything, authorUID).Return(author, nil).Once()
		publisherMock.On("Publish", "moderation", mock.MatchedBy(func(e models.ModerationEvent) bool {
			return e.EntityType == "review" && e.EntityTitle == "Дюна" && e.Approved
		})).Return(nil).Once()

		svc := NewModerationService(repoMock, publisherMock, new(CacheMock), newNoopLogger())
		got, err := svc.DecideReview(context.Background(), 1, models.StatusApproved, nil)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusApproved, got.Status)
		repoMock.AssertExpectations(t)
		publisherMock.AssertExpectations(t)
	})

	t.Run("перевод в pending недопустим", func(t *testing.T) {
		rejected := &models.Review{ID: 2, UserUID: authorUID, Status: models.StatusRejected}

		repoMock := new(RepoMock)
		repoMock.On("GetReview", mock.Anything, 2).Return(rejected, nil).Once()

		svc := NewModerationService(repoMock, new(PublisherMock), new(CacheMock), newNoopLogger())
		_, err := svc.DecideReview(context.Background(), 2, models.StatusPending, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		repoMock.AssertExpectations(t)
	})
}

func TestModerationService_Lists(t *testing.T) {
	repoMock := new(RepoMock)
	repoMock.On("ListPlaylistsByStatus", mock.Anything, models.StatusPending).
		Return([]*models.Playlist{{ID: 1, Status: models.StatusPending}}, nil).Once()
	repoMock.On("ListReviewsByStatus", mock.Anything, models.StatusRejected).
		Return([]*models.Review{}, nil).Once()

	svc := NewModerationService(repoMock, new(PublisherMock), new(CacheMock), newNoopLogger())

	playlists, err := svc.ListPlaylists(context.Background(), models.StatusPending)
	assert.NoError(t, err)
	assert.Len(t, playlists, 1)

	reviews, err := svc.ListReviews(context.Background(), models.StatusRejected)
	assert.NoError(t, err)
	assert.Empty(t, reviews)
	repoMock.AssertExpectations(t)
}
