// Package moviecatalog собирает HTTP API каталога фильмов: хранилище,
// миграции, кеш, очередь уведомлений, сервисы и маршруты.
package moviecatalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/kinoteka/movie-catalog/internal/cache"
	"github.com/kinoteka/movie-catalog/internal/config"
	"github.com/kinoteka/movie-catalog/internal/lib/jwt"
	"github.com/kinoteka/movie-catalog/internal/lib/sl"
	"github.com/kinoteka/movie-catalog/internal/migrations"
	"github.com/kinoteka/movie-catalog/internal/rabbitmq"
	authservice "github.com/kinoteka/movie-catalog/internal/services/auth"
	collectionservice "github.com/kinoteka/movie-catalog/internal/services/collection"
	moderationservice "github.com/kinoteka/movie-catalog/internal/services/moderation"
	notificationservice "github.com/kinoteka/movie-catalog/internal/services/notification"
	playlistservice "github.com/kinoteka/movie-catalog/internal/services/playlist"
	reviewservice "github.com/kinoteka/movie-catalog/internal/services/review"
	userservice "github.com/kinoteka/movie-catalog/internal/services/user"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// App инкапсулирует HTTP сервер и его зависимости.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
}

// New инициализирует приложение: подключения, миграции, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.ConnectRetries, cfg.ConnectRetryWait)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetNotificationQueues())
	if err != nil {
		rabbitConn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	deps := Services{
		Auth:         authservice.NewAuthService(db, jwtMaker),
		User:         userservice.NewUserService(db, logger),
		Collection:   collectionservice.NewCollectionService(db, logger),
		Playlist:     playlistservice.NewPlaylistService(db, cacheRedis, logger),
		Review:       reviewservice.NewReviewService(db, logger),
		Moderation:   moderationservice.NewModerationService(db, publisher, cacheRedis, logger),
		Notification: notificationservice.NewNotificationService(db, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db, deps)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
		rabbitCh:   rabbitCh,
	}, nil
}

// Run запускает HTTP сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if chErr := a.rabbitCh.Close(); chErr != nil {
			a.logger.Error("failed to close rabbitmq channel", sl.Err(chErr))
		}
		if connErr := a.rabbitConn.Close(); connErr != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(connErr))
		}
		a.db.DB.Close()
		return err
	}
}
