// Package list реализует HTTP-обработчик списка рецензий на фильм.
//
// Публично видны только одобренные рецензии; собственная рецензия
// зрителя возвращается в любом статусе.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kinoteka/movie-catalog/internal/http/middlewarectx"
	"github.com/kinoteka/movie-catalog/internal/http/response"
	"github.com/kinoteka/movie-catalog/internal/lib/sl"
	"github.com/kinoteka/movie-catalog/internal/models"
)

// Service описывает интерфейс бизнес-логики рецензий.
type Service interface {
	ListForMovie(ctx context.Context, movieID int, viewerUID string) ([]*models.Review, error)
}

// Handler управляет HTTP-запросами на список рецензий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список рецензий на фильм
// @Tags Reviews
// @Produce json
// @Param movie_id query int true "ID фильма"
// @Success 200 {object} response.Response "Рецензии на фильм"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID фильма"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reviews [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	movieID, err := strconv.Atoi(r.URL.Query().Get("movie_id"))
	if err != nil || movieID <= 0 {
		log.Error("invalid movie id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid movie id"))
		return
	}

	viewerUID, _ := r.Context().Value(middlewarectx.UserUID).(string)

	reviews, err := h.service.ListForMovie(r.Context(), movieID, viewerUID)
	if err != nil {
		log.Error("failed to list reviews", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list reviews"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(reviews))
}
