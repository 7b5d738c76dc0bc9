// Package read реализует HTTP-обработчик чтения подборки с фильмами.
//
// Чужая подборка доступна только когда она публична и одобрена; скрытый
// контент неотличим от несуществующего и дает 404.
package read

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
	"github.com/kinoteka/movie-catalog/internal/models"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики подборок.
type Service interface {
	Read(ctx context.Context, id int, viewerUID string) (*models.Playlist, []*models.PlaylistMovie, error)
}

// Handler управляет HTTP-запросами на чтение подборки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить подборку с фильмами
// @Tags Playlists
// @Produce json
// @Param id path int true "ID подборки"
// @Success 200 {object} response.Response "Подборка и ее фильмы"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Подборка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /playlists/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.playlist.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid playlist id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid playlist id"))
		return
	}

	viewerUID, _ := r.Context().Value(middlewarectx.UserUID).(string)

	playlist, movies, err := h.service.Read(r.Context(), id, viewerUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Подборка не найдена"))
			return
		}
		log.Error("failed to read playlist", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read playlist"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"playlist": playlist,
		"movies":   movies,
	}))
}
