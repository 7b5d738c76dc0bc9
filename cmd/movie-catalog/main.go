// Package main Movie Catalog API
//
// @title           Movie Catalog API
// @version         1.0
// @description     API каталога фильмов: коллекции, подборки, рецензии и модерация

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey AuthToken
// @in header
// @name X-Auth-Token
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kinoteka/movie-catalog/internal/app/moviecatalog"
	"github.com/kinoteka/movie-catalog/internal/config"
	"github.com/kinoteka/movie-catalog/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting movie-catalog", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := moviecatalog.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("movie-catalog stopped gracefully")
}
