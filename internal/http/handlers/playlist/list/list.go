// Package list реализует HTTP-обработчик списка подборок.
//
// Без параметров возвращается публичный каталог: только одобренные
// публичные подборки. С параметром user_id, совпадающим с вызывающим,
// возвращаются все его подборки независимо от статуса. Чужой user_id
// не раскрывает скрытый контент — возвращается публичный каталог.
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

// Service описывает интерфейс бизнес-логики подборок.
type Service interface {
	ListPublic(ctx context.Context) ([]*models.Playlist, error)
	ListMine(ctx context.Context, userUID string) ([]*models.Playlist, error)
}

// Handler управляет HTTP-запросами на список подборок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список подборок
// @Description Публичный каталог одобренных подборок. С параметром user_id, равным вызывающему, — все его подборки.
// @Tags Playlists
// @Produce json
// @Param user_id query string false "Фильтр по автору"
// @Success 200 {object} response.Response "Список подборок"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /playlists [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.playlist.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	viewerUID, _ := r.Context().Value(middlewarectx.UserUID).(string)
	filterUID := r.URL.Query().Get("user_id")

	var (
		playlists []*models.Playlist
		err       error
	)
	if filterUID != "" && filterUID == viewerUID {
		playlists, err = h.service.ListMine(r.Context(), viewerUID)
	} else {
		playlists, err = h.service.ListPublic(r.Context())
	}
	if err != nil {
		log.Error("failed to list playlists", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list playlists"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(playlists))
}
