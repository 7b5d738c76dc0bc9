// Package markread реализует HTTP-обработчик отметки уведомлений
// прочитанными: одного по ID или всех сразу.
package markread

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

// Service описывает интерфейс бизнес-логики уведомлений.
type Service interface {
	MarkRead(ctx context.Context, userUID string, id int) error
	MarkAllRead(ctx context.Context, userUID string) error
}

// Handler управляет HTTP-запросами на отметку уведомлений прочитанными.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отметить уведомления прочитанными
// @Description С параметром id отмечает одно уведомление, со значением all — все.
// @Tags Notifications
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии"
// @Param id path string true "ID уведомления или all"
// @Success 200 {object} response.Response "Уведомления отмечены"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Уведомление не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /notifications/{id}/read [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.markread"
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

	idParam := chi.URLParam(r, "id")
	if idParam == "all" {
		if err := h.service.MarkAllRead(r.Context(), userUID); err != nil {
			log.Error("failed to mark all notifications read", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to mark notifications read"))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(map[string]any{"marked": "all"}))
		return
	}

	id, err := strconv.Atoi(idParam)
	if err != nil {
		log.Error("invalid notification id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid notification id"))
		return
	}

	if err := h.service.MarkRead(r.Context(), userUID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Уведомление не найдено"))
			return
		}
		log.Error("failed to mark notification read", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to mark notification read"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{"id": id}))
}
