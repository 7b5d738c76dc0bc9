// Package list реализует HTTP-обработчик админского списка контента
// на модерации: подборок или рецензий в заданном статусе.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kinoteka/movie-catalog/internal/http/response"
	"github.com/kinoteka/movie-catalog/internal/lib/sl"
	"github.com/kinoteka/movie-catalog/internal/models"
)

// Service описывает интерфейс бизнес-логики модерации.
type Service interface {
	ListPlaylists(ctx context.Context, status models.ModerationStatus) ([]*models.Playlist, error)
	ListReviews(ctx context.Context, status models.ModerationStatus) ([]*models.Review, error)
}

// Handler управляет HTTP-запросами на списки модерации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список контента на модерации
// @Description Возвращает подборки или рецензии в заданном статусе, старые первыми. По умолчанию pending.
// @Tags Moderation
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии администратора"
// @Param type path string true "Тип контента: playlists или reviews"
// @Param status query string false "Статус: pending, approved, rejected"
// @Success 200 {object} response.Response "Контент в заданном статусе"
// @Failure 400 {object} response.ErrorResponse "Некорректный тип или статус"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуются права администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/moderation/{type} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.moderation.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status := models.ModerationStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid status"))
		return
	}

	var (
		data any
		err  error
	)
	switch chi.URLParam(r, "type") {
	case "playlists":
		data, err = h.service.ListPlaylists(r.Context(), status)
	case "reviews":
		data, err = h.service.ListReviews(r.Context(), status)
	default:
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid content type"))
		return
	}
	if err != nil {
		log.Error("failed to list moderation queue", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list moderation queue"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(data))
}
