// Package removemovie реализует HTTP-обработчик удаления фильма из подборки.
package removemovie

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kinoteka/movie-catalog/internal/http/middlewarectx"
	"github.com/kinoteka/movie-catalog/internal/http/response"
	"github.com/kinoteka/movie-catalog/internal/lib/sl"
	services "github.com/kinoteka/movie-catalog/internal/services/playlist"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики подборок.
type Service interface {
	RemoveMovie(ctx context.Context, userUID string, playlistID, movieID int) error
}

// Handler управляет HTTP-запросами на удаление фильма из подборки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить фильм из подборки
// @Tags Playlists
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии"
// @Param id path int true "ID подборки"
// @Param movie_id path int true "ID фильма"
// @Success 200 {object} response.Response "Фильм удален"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Подборка принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Подборка или фильм не найдены"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /playlists/{id}/movies/{movie_id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.playlist.removemovie"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Требуется авторизация"))
		return
	}

	playlistID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid playlist id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid playlist id"))
		return
	}
	movieID, err := strconv.Atoi(chi.URLParam(r, "movie_id"))
	if err != nil {
		log.Error("invalid movie id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid movie id"))
		return
	}

	if err := h.service.RemoveMovie(r.Context(), userUID, playlistID, movieID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Фильм не найден в подборке"))
		case errors.Is(err, services.ErrForbidden):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("Доступ запрещён"))
		default:
			log.Error("failed to remove movie from playlist", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to remove movie from playlist"))
		}
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"movie_id": movieID,
	}))
}
