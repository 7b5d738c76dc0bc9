// Package save реализует HTTP-обработчик закладок на подборки:
// POST добавляет подборку в сохраненные, DELETE убирает.
package save

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

// Service описывает интерфейс бизнес-логики закладок.
type Service interface {
	Save(ctx context.Context, userUID string, playlistID int) error
	Unsave(ctx context.Context, userUID string, playlistID int) error
}

// Handler управляет HTTP-запросами на сохранение подборок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сохранить или убрать подборку из закладок
// @Description POST добавляет подборку в закладки, DELETE убирает.
// @Tags Playlists
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии"
// @Param id path int true "ID подборки"
// @Success 200 {object} response.Response "Результат операции"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подборка не найдена"
// @Failure 409 {object} response.ErrorResponse "Подборка уже в закладках"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /playlists/{id}/save [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.playlist.save"
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

	switch r.Method {
	case http.MethodPost:
		err = h.service.Save(r.Context(), userUID, playlistID)
	case http.MethodDelete:
		err = h.service.Unsave(r.Context(), userUID, playlistID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		render.JSON(w, r, response.Error("method not allowed"))
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Подборка не найдена"))
		case errors.Is(err, repository.ErrConflict):
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("Подборка уже в закладках"))
		default:
			log.Error("failed to toggle saved playlist", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to save playlist"))
		}
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"playlist_id": playlistID,
	}))
}
