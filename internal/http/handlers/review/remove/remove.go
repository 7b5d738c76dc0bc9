// Package remove реализует HTTP-обработчик удаления собственной рецензии.
//
// Одобренную рецензию владелец удалить не может.
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
	services "github.com/kinoteka/movie-catalog/internal/services/review"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики рецензий.
type Service interface {
	Delete(ctx context.Context, userUID string, id int) error
}

// Handler управляет HTTP-запросами на удаление рецензии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить свою рецензию
// @Tags Reviews
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии"
// @Param id path int true "ID рецензии"
// @Success 200 {object} response.Response "Рецензия удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Удаление запрещено"
// @Failure 404 {object} response.ErrorResponse "Рецензия не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reviews/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.remove"
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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid review id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid review id"))
		return
	}

	if err := h.service.Delete(r.Context(), userUID, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Рецензия не найдена"))
		case errors.Is(err, services.ErrForbidden):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("Удаление одобренной рецензии запрещено"))
		default:
			log.Error("failed to delete review", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete review"))
		}
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{"id": id}))
}
