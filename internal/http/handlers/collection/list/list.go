// Package list реализует HTTP-обработчик чтения личной коллекции фильмов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kinoteka/movie-catalog/internal/http/middlewarectx"
	"github.com/kinoteka/movie-catalog/internal/http/response"
	"github.com/kinoteka/movie-catalog/internal/lib/sl"
	"github.com/kinoteka/movie-catalog/internal/models"
)

// Service описывает интерфейс бизнес-логики коллекции.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.CollectionEntry, error)
}

// Handler управляет HTTP-запросами на чтение коллекции.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить свою коллекцию фильмов
// @Tags Collection
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии"
// @Success 200 {object} response.Response "Список фильмов коллекции"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /collection [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.collection.list"
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

	entries, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list collection", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list collection"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(entries))
}
