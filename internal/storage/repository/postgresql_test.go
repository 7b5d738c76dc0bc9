package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoteka/movie-catalog/internal/models"
)

func TestStorage_CheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	err := storage.CheckDatabaseReady(context.Background())
	assert.NoError(t, err)
}

func TestStorage_RegisterUser(t *testing.T) {
	tests := []struct {
		name      string
		user      models.User
		setup     func(f *TestDataFactory, t *testing.T)
		wantError error
	}{
		{
			name: "успешная регистрация пользователя",
			user: models.User{
				Email:        "new@example.com",
				Username:     "newuser",
				PasswordHash: "hashedpassword",
				Role:         "user",
			},
		},
		{
			name: "дубликат email возвращает конфликт",
			user: models.User{
				Email:        "taken@example.com",
				Username:     "seconduser",
				PasswordHash: "hashedpassword",
				Role:         "user",
			},
			setup: func(f *TestDataFactory, t *testing.T) {
				f.CreateUser(t, uuid.New().String(), "firstuser", "taken@example.com", "hashedpassword", "user")
			},
			wantError: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()
			factory := NewTestDataFactory(storage)
			if tt.setup != nil {
				tt.setup(factory, t)
			}

			uid, err := storage.RegisterUser(context.Background(), tt.user)
			if tt.wantError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			NewTestVerification(storage).VerifyUserExists(t, uid)

			got, err := storage.GetUserByEmail(context.Background(), tt.user.Email)
			require.NoError(t, err)
			assert.Equal(t, uid, got.UID)
			assert.Equal(t, tt.user.Username, got.Username)
		})
	}
}

func TestStorage_GetUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	userData := GetTestUserData()
	factory.CreateUser(t, userData.UID, userData.Username, userData.Email, userData.PasswordHash, userData.Role)

	t.Run("существующий пользователь", func(t *testing.T) {
		got, err := storage.GetUser(context.Background(), userData.UID)
		require.NoError(t, err)
		assert.Equal(t, userData.Email, got.Email)
		assert.Equal(t, userData.Role, got.Role)
	})

	t.Run("несуществующий пользователь", func(t *testing.T) {
		_, err := storage.GetUser(context.Background(), uuid.New().String())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_UpdateProfile(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	userData := GetTestUserData()
	factory.CreateUser(t, userData.UID, userData.Username, userData.Email, userData.PasswordHash, userData.Role)

	t.Run("обновляются только заполненные поля", func(t *testing.T) {
		newBio := "Люблю старое кино"
		age := 30
		got, err := storage.UpdateProfile(context.Background(), userData.UID, models.ProfileUpdate{
			Bio: &newBio,
			Age: &age,
		})
		require.NoError(t, err)
		assert.Equal(t, newBio, got.Bio)
		require.NotNil(t, got.Age)
		assert.Equal(t, age, *got.Age)
		assert.Equal(t, userData.Username, got.Username)
		assert.NotNil(t, got.UpdatedAt)
	})

	t.Run("пустое обновление возвращает текущую запись", func(t *testing.T) {
		got, err := storage.UpdateProfile(context.Background(), userData.UID, models.ProfileUpdate{})
		require.NoError(t, err)
		assert.Equal(t, userData.Email, got.Email)
	})
}

func TestStorage_Collection(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	userData := GetTestUserData()
	factory.CreateUser(t, userData.UID, userData.Username, userData.Email, userData.PasswordHash, userData.Role)

	entry := models.CollectionEntry{
		UserUID:     userData.UID,
		MovieID:     603,
		MovieTitle:  "Матрица",
		MovieGenre:  "фантастика",
		MovieRating: 8.7,
	}

	t.Run("добавление фильма в коллекцию", func(t *testing.T) {
		created, err := storage.AddCollectionEntry(context.Background(), entry)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.AddedAt.IsZero())
	})

	t.Run("повторное добавление возвращает конфликт", func(t *testing.T) {
		_, err := storage.AddCollectionEntry(context.Background(), entry)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("проверка наличия фильма", func(t *testing.T) {
		exists, err := storage.CollectionEntryExists(context.Background(), userData.UID, entry.MovieID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = storage.CollectionEntryExists(context.Background(), userData.UID, 999)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("список коллекции", func(t *testing.T) {
		list, err := storage.ListCollection(context.Background(), userData.UID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, entry.MovieTitle, list[0].MovieTitle)
	})

	t.Run("удаление фильма из коллекции", func(t *testing.T) {
		rows, err := storage.RemoveCollectionEntry(context.Background(), userData.UID, entry.MovieID)
		require.NoError(t, err)
		assert.Equal(t, 1, rows)

		rows, err = storage.RemoveCollectionEntry(context.Background(), userData.UID, entry.MovieID)
		require.NoError(t, err)
		assert.Equal(t, 0, rows)
	})
}

func TestStorage_Playlists(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	owner := GetTestUserData()
	factory.CreateUser(t, owner.UID, owner.Username, owner.Email, owner.PasswordHash, owner.Role)
	otherUID := uuid.New().String()
	factory.CreateUser(t, otherUID, "otheruser", "other@example.com", "hashedpassword", "user")

	t.Run("создание подборки всегда в статусе pending", func(t *testing.T) {
		created, err := storage.CreatePlaylist(context.Background(), models.Playlist{
			UserUID:     owner.UID,
			Title:       "Вечер нуара",
			Description: "Классика жанра",
			IsPublic:    true,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, created.Status)
		NewTestVerification(storage).VerifyPlaylistStatus(t, created.ID, "pending")
	})

	t.Run("чтение подборки с автором и счетчиком фильмов", func(t *testing.T) {
		id := factory.CreatePlaylist(t, owner.UID, "Хорроры", "", true, "approved")
		factory.CreatePlaylistMovie(t, id, 1, "Сияние", 1)
		factory.CreatePlaylistMovie(t, id, 2, "Чужой", 2)

		got, err := storage.GetPlaylist(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, owner.Username, got.AuthorName)
		assert.Equal(t, 2, got.MoviesCount)
	})

	t.Run("несуществующая подборка", func(t *testing.T) {
		_, err := storage.GetPlaylist(context.Background(), 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("публичный список содержит только одобренные публичные", func(t *testing.T) {
		factory.CreatePlaylist(t, owner.UID, "Скрытая", "", false, "approved")
		factory.CreatePlaylist(t, owner.UID, "На модерации", "", true, "pending")

		list, err := storage.ListPublicPlaylists(context.Background())
		require.NoError(t, err)
		for _, p := range list {
			assert.Equal(t, models.StatusApproved, p.Status)
			assert.True(t, p.IsPublic)
		}
	})

	t.Run("список пользователя включает все статусы", func(t *testing.T) {
		list, err := storage.ListUserPlaylists(context.Background(), owner.UID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(list), 4)
	})

	t.Run("дубликат фильма в подборке молча игнорируется", func(t *testing.T) {
		id := factory.CreatePlaylist(t, owner.UID, "Дубликаты", "", true, "approved")
		movie := models.PlaylistMovie{PlaylistID: id, MovieID: 42, MovieTitle: "Бегущий по лезвию"}

		added, err := storage.AddPlaylistMovie(context.Background(), movie)
		require.NoError(t, err)
		require.NotNil(t, added)
		assert.Equal(t, 1, added.Position)

		again, err := storage.AddPlaylistMovie(context.Background(), movie)
		require.NoError(t, err)
		assert.Nil(t, again)
	})

	t.Run("закладки: повтор дает конфликт, удаление возвращает строки", func(t *testing.T) {
		id := factory.CreatePlaylist(t, owner.UID, "Для закладок", "", true, "approved")

		err := storage.SavePlaylist(context.Background(), otherUID, id)
		require.NoError(t, err)

		err = storage.SavePlaylist(context.Background(), otherUID, id)
		assert.ErrorIs(t, err, ErrConflict)

		saved, err := storage.ListSavedPlaylists(context.Background(), otherUID)
		require.NoError(t, err)
		require.Len(t, saved, 1)
		assert.Equal(t, id, saved[0].ID)

		rows, err := storage.UnsavePlaylist(context.Background(), otherUID, id)
		require.NoError(t, err)
		assert.Equal(t, 1, rows)
	})

	t.Run("удаление подборки каскадно убирает фильмы", func(t *testing.T) {
		id := factory.CreatePlaylist(t, owner.UID, "На удаление", "", true, "approved")
		factory.CreatePlaylistMovie(t, id, 7, "Семь", 1)

		rows, err := storage.DeletePlaylist(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 1, rows)
		NewTestVerification(storage).VerifyPlaylistDeleted(t, id)

		var count int
		err = storage.DB.QueryRow("SELECT COUNT(*) FROM playlist_movies WHERE playlist_id = $1", id).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestStorage_Reviews(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	author := GetTestUserData()
	factory.CreateUser(t, author.UID, author.Username, author.Email, author.PasswordHash, author.Role)
	viewerUID := uuid.New().String()
	factory.CreateUser(t, viewerUID, "vieweruser", "viewer@example.com", "hashedpassword", "user")

	review := models.Review{
		UserUID:    author.UID,
		MovieID:    550,
		MovieTitle: "Бойцовский клуб",
		Rating:     9,
		ReviewText: "Сильное кино",
	}

	t.Run("создание рецензии в статусе pending", func(t *testing.T) {
		created, err := storage.CreateReview(context.Background(), review)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, created.Status)
	})

	t.Run("дубликат рецензии на фильм возвращает конфликт", func(t *testing.T) {
		_, err := storage.CreateReview(context.Background(), review)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("чужая pending-рецензия не видна зрителю", func(t *testing.T) {
		list, err := storage.ListMovieReviews(context.Background(), review.MovieID, viewerUID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("автор видит собственную pending-рецензию", func(t *testing.T) {
		list, err := storage.ListMovieReviews(context.Background(), review.MovieID, author.UID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, author.Username, list[0].AuthorName)
	})

	t.Run("анонимный зритель видит только одобренные рецензии", func(t *testing.T) {
		approvedID := factory.CreateReview(t, viewerUID, review.MovieID, review.MovieTitle, 8, "Согласен", "approved")

		list, err := storage.ListMovieReviews(context.Background(), review.MovieID, "")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, approvedID, list[0].ID)
		assert.Equal(t, models.StatusApproved, list[0].Status)
	})

	t.Run("обновление сбрасывает статус в pending", func(t *testing.T) {
		id := factory.CreateReview(t, viewerUID, 601, "Инопланетянин", 8, "Трогательно", "approved")

		rows, err := storage.UpdateReview(context.Background(), id, 7, "Пересмотрел, чуть слабее")
		require.NoError(t, err)
		assert.Equal(t, 1, rows)
		NewTestVerification(storage).VerifyReviewStatus(t, id, "pending")
	})

	t.Run("удаление рецензии", func(t *testing.T) {
		id := factory.CreateReview(t, viewerUID, 602, "Контакт", 8, "Неплохо", "pending")

		rows, err := storage.DeleteReview(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 1, rows)

		rows, err = storage.DeleteReview(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 0, rows)
	})
}

func TestStorage_ModeratePlaylist(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	owner := GetTestUserData()
	factory.CreateUser(t, owner.UID, owner.Username, owner.Email, owner.PasswordHash, owner.Role)
	moderatorUID := uuid.New().String()
	factory.CreateUser(t, moderatorUID, "moderator", "mod@example.com", "hashedpassword", "admin")

	t.Run("решение и уведомление фиксируются одной транзакцией", func(t *testing.T) {
		id := factory.CreatePlaylist(t, owner.UID, "На модерацию", "", true, "pending")
		comment := "Уберите спойлеры из описания"
		notification := models.Notification{
			UserUID:    owner.UID,
			Type:       models.NotificationPlaylistRejected,
			Title:      "Подборка отклонена",
			Message:    "Подборка «На модерацию» отклонена",
			PlaylistID: &id,
		}

		got, err := storage.ModeratePlaylist(context.Background(), id,
			models.StatusRejected, moderatorUID, &comment, notification)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, got.Status)
		require.NotNil(t, got.ModerationComment)
		assert.Equal(t, comment, *got.ModerationComment)
		require.NotNil(t, got.ModeratedBy)
		assert.Equal(t, moderatorUID, *got.ModeratedBy)
		assert.NotNil(t, got.ModeratedAt)

		verify.VerifyPlaylistStatus(t, id, "rejected")
		verify.VerifyNotificationCount(t, owner.UID, 1)
	})

	t.Run("несуществующая подборка откатывает транзакцию целиком", func(t *testing.T) {
		before := 0
		err := storage.DB.QueryRow("SELECT COUNT(*) FROM notifications").Scan(&before)
		require.NoError(t, err)

		_, err = storage.ModeratePlaylist(context.Background(), 9999,
			models.StatusApproved, moderatorUID, nil, models.Notification{
				UserUID: owner.UID,
				Type:    models.NotificationPlaylistApproved,
				Title:   "Подборка одобрена",
				Message: "не должно записаться",
			})
		assert.ErrorIs(t, err, ErrNotFound)

		after := 0
		err = storage.DB.QueryRow("SELECT COUNT(*) FROM notifications").Scan(&after)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestStorage_ModerateReview(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	author := GetTestUserData()
	factory.CreateUser(t, author.UID, author.Username, author.Email, author.PasswordHash, author.Role)

	id := factory.CreateReview(t, author.UID, 680, "Криминальное чтиво", 10, "Шедевр", "pending")

	got, err := storage.ModerateReview(context.Background(), id, models.StatusApproved, nil,
		models.Notification{
			UserUID: author.UID,
			Type:    models.NotificationReviewApproved,
			Title:   "Рецензия одобрена",
			Message: "Рецензия на «Криминальное чтиво» одобрена",
		})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Nil(t, got.ModerationComment)

	verify.VerifyReviewStatus(t, id, "approved")
	verify.VerifyNotificationCount(t, author.UID, 1)
}

func TestStorage_Notifications(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	userData := GetTestUserData()
	factory.CreateUser(t, userData.UID, userData.Username, userData.Email, userData.PasswordHash, userData.Role)
	strangerUID := uuid.New().String()
	factory.CreateUser(t, strangerUID, "stranger", "stranger@example.com", "hashedpassword", "user")

	first := factory.CreateNotification(t, userData.UID, models.NotificationReviewApproved,
		"Рецензия одобрена", "Рецензия на «Дюна» одобрена")
	factory.CreateNotification(t, userData.UID, models.NotificationPlaylistRejected,
		"Подборка отклонена", "Подборка «Лето» отклонена")

	t.Run("список уведомлений пользователя", func(t *testing.T) {
		list, err := storage.ListNotifications(context.Background(), userData.UID)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("чужое уведомление пометить нельзя", func(t *testing.T) {
		rows, err := storage.MarkNotificationRead(context.Background(), strangerUID, first)
		require.NoError(t, err)
		assert.Equal(t, 0, rows)
	})

	t.Run("пометка прочитанным", func(t *testing.T) {
		rows, err := storage.MarkNotificationRead(context.Background(), userData.UID, first)
		require.NoError(t, err)
		assert.Equal(t, 1, rows)
	})

	t.Run("пометить все прочитанными", func(t *testing.T) {
		err := storage.MarkAllNotificationsRead(context.Background(), userData.UID)
		require.NoError(t, err)

		var unread int
		err = storage.DB.QueryRow(
			"SELECT COUNT(*) FROM notifications WHERE user_uid = $1 AND is_read = false",
			userData.UID).Scan(&unread)
		require.NoError(t, err)
		assert.Equal(t, 0, unread)
	})
}

func TestStorage_ContextCancelled(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.ListPublicPlaylists(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
