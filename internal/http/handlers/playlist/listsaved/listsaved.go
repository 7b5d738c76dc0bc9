// Package listsaved реализует HTTP-обработчик списка сохраненных подборок.
package listsaved

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

// Service описывает интерфейс бизнес-логики закладок.
type Service interface {
	ListSaved(ctx context.Context, userUID string) ([]*models.Playlist, error)
}

// Handler управляет HTTP-запросами на список закладок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список сохраненных подборок
// @Tags Playlists
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии"
// @Success 200 {object} response.Response "Сохраненные подборки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /playlists/saved [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.playlist.listsaved"
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

	playlists, err := h.service.ListSaved(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list saved playlists", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list saved playlists"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(playlists))
}
