// Package moviecatalog предоставляет маршруты HTTP API.
package moviecatalog

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	loginhandler "github.com/kinoteka/movie-catalog/internal/http/handlers/auth/login"
	registerhandler "github.com/kinoteka/movie-catalog/internal/http/handlers/auth/register"
	collectioncreate "github.com/kinoteka/movie-catalog/internal/http/handlers/collection/create"
	collectionlist "github.com/kinoteka/movie-catalog/internal/http/handlers/collection/list"
	collectionremove "github.com/kinoteka/movie-catalog/internal/http/handlers/collection/remove"
	"github.com/kinoteka/movie-catalog/internal/http/handlers/health"
	moderationdecide "github.com/kinoteka/movie-catalog/internal/http/handlers/moderation/decide"
	moderationlist "github.com/kinoteka/movie-catalog/internal/http/handlers/moderation/list"
	notificationlist "github.com/kinoteka/movie-catalog/internal/http/handlers/notification/list"
	notificationmarkread "github.com/kinoteka/movie-catalog/internal/http/handlers/notification/markread"
	playlistaddmovie "github.com/kinoteka/movie-catalog/internal/http/handlers/playlist/addmovie"
	playlistcreate "github.com/kinoteka/movie-catalog/internal/http/handlers/playlist/create"
	playlistlist "github.com/kinoteka/movie-catalog/internal/http/handlers/playlist/list"
	playlistlistsaved "github.com/kinoteka/movie-catalog/internal/http/handlers/playlist/listsaved"
	playlistread "github.com/kinoteka/movie-catalog/internal/http/handlers/playlist/read"
	playlistremove "github.com/kinoteka/movie-catalog/internal/http/handlers/playlist/remove"
	playlistremovemovie "github.com/kinoteka/movie-catalog/internal/http/handlers/playlist/removemovie"
	playlistsave "github.com/kinoteka/movie-catalog/internal/http/handlers/playlist/save"
	playlistupdate "github.com/kinoteka/movie-catalog/internal/http/handlers/playlist/update"
	profileget "github.com/kinoteka/movie-catalog/internal/http/handlers/profile/get"
	profileupdate "github.com/kinoteka/movie-catalog/internal/http/handlers/profile/update"
	reviewcreate "github.com/kinoteka/movie-catalog/internal/http/handlers/review/create"
	reviewlist "github.com/kinoteka/movie-catalog/internal/http/handlers/review/list"
	reviewmine "github.com/kinoteka/movie-catalog/internal/http/handlers/review/mine"
	reviewremove "github.com/kinoteka/movie-catalog/internal/http/handlers/review/remove"
	reviewupdate "github.com/kinoteka/movie-catalog/internal/http/handlers/review/update"
	"github.com/kinoteka/movie-catalog/internal/http/middlewarectx"
	"github.com/kinoteka/movie-catalog/internal/lib/jwt"
	authservice "github.com/kinoteka/movie-catalog/internal/services/auth"
	collectionservice "github.com/kinoteka/movie-catalog/internal/services/collection"
	moderationservice "github.com/kinoteka/movie-catalog/internal/services/moderation"
	notificationservice "github.com/kinoteka/movie-catalog/internal/services/notification"
	playlistservice "github.com/kinoteka/movie-catalog/internal/services/playlist"
	reviewservice "github.com/kinoteka/movie-catalog/internal/services/review"
	userservice "github.com/kinoteka/movie-catalog/internal/services/user"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// Services объединяет сервисы бизнес-логики, используемые маршрутами.
type Services struct {
	Auth         *authservice.AuthService
	User         *userservice.UserService
	Collection   *collectionservice.CollectionService
	Playlist     *playlistservice.PlaylistService
	Review       *reviewservice.ReviewService
	Moderation   *moderationservice.ModerationService
	Notification *notificationservice.NotificationService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, db *repository.Storage, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.CORSMiddleware,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", registerhandler.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", loginhandler.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Публичные выборки: токен опционален и лишь расширяет видимость
		// собственного немодерированного контента.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalAuthMiddleware(jwtMaker))
			r.Get("/playlists", playlistlist.New(logger, s.Playlist).ServeHTTP)
			r.Get("/playlists/{id}", playlistread.New(logger, s.Playlist).ServeHTTP)
			r.Get("/reviews", reviewlist.New(logger, s.Review).ServeHTTP)
		})

		// Группа с обязательной аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/profile", profileget.New(logger, s.User).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, s.User).ServeHTTP)

			r.Get("/collection", collectionlist.New(logger, s.Collection).ServeHTTP)
			r.Post("/collection", collectioncreate.New(logger, s.Collection).ServeHTTP)
			r.Delete("/collection/{movie_id}", collectionremove.New(logger, s.Collection).ServeHTTP)

			r.Post("/playlists", playlistcreate.New(logger, s.Playlist).ServeHTTP)
			r.Get("/playlists/saved", playlistlistsaved.New(logger, s.Playlist).ServeHTTP)
			r.Put("/playlists/{id}", playlistupdate.New(logger, s.Playlist).ServeHTTP)
			r.Delete("/playlists/{id}", playlistremove.New(logger, s.Playlist).ServeHTTP)
			r.Post("/playlists/{id}/movies", playlistaddmovie.New(logger, s.Playlist).ServeHTTP)
			r.Delete("/playlists/{id}/movies/{movie_id}", playlistremovemovie.New(logger, s.Playlist).ServeHTTP)
			saveHandler := playlistsave.New(logger, s.Playlist)
			r.Post("/playlists/{id}/save", saveHandler.ServeHTTP)
			r.Delete("/playlists/{id}/save", saveHandler.ServeHTTP)

			r.Post("/reviews", reviewcreate.New(logger, s.Review).ServeHTTP)
			r.Get("/reviews/my", reviewmine.New(logger, s.Review).ServeHTTP)
			r.Put("/reviews/{id}", reviewupdate.New(logger, s.Review).ServeHTTP)
			r.Delete("/reviews/{id}", reviewremove.New(logger, s.Review).ServeHTTP)

			r.Get("/notifications", notificationlist.New(logger, s.Notification).ServeHTTP)
			r.Put("/notifications/{id}/read", notificationmarkread.New(logger, s.Notification).ServeHTTP)

			// Админский гейт: роль перечитывается из хранилища.
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(db, logger))
				r.Get("/admin/moderation/{type}", moderationlist.New(logger, s.Moderation).ServeHTTP)
				r.Post("/admin/moderation/{type}/{id}", moderationdecide.New(logger, s.Moderation).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
