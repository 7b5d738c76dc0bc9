// Package remove реализует HTTP-обработчик удаления фильма
// из личной коллекции.
package remove

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
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики коллекции.
type Service interface {
	Remove(ctx context.Context, userUID string, movieID int) error
}

// Handler управляет HTTP-запросами на удаление из коллекции.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить фильм из коллекции
// @Tags Collection
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии"
// @Param movie_id path int true "ID фильма"
// @Success 200 {object} response.Response "Фильм удален"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID фильма"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Фильма нет в коллекции"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /collection/{movie_id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.collection.remove"
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

	movieID, err := strconv.Atoi(chi.URLParam(r, "movie_id"))
	if err != nil {
		log.Error("invalid movie id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid movie id"))
		return
	}

	if err := h.service.Remove(r.Context(), userUID, movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Фильма нет в коллекции"))
			return
		}
		log.Error("failed to remove movie from collection", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove movie from collection"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"movie_id": movieID,
	}))
}
