// Package addmovie реализует HTTP-обработчик добавления фильма в подборку.
//
// Повторное добавление того же фильма не считается ошибкой: вставка
// игнорируется, ответ остается успешным.
package addmovie

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/kinoteka/movie-catalog/internal/http/middlewarectx"
	"github.com/kinoteka/movie-catalog/internal/http/response"
	"github.com/kinoteka/movie-catalog/internal/lib/sl"
	"github.com/kinoteka/movie-catalog/internal/models"
	services "github.com/kinoteka/movie-catalog/internal/services/playlist"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// Request — данные добавляемого фильма.
type Request struct {
	MovieID          int     `json:"movie_id" validate:"required,gt=0"`
	MovieTitle       string  `json:"movie_title" validate:"required,max=300"`
	MovieGenre       string  `json:"movie_genre" validate:"max=100"`
	MovieRating      float64 `json:"movie_rating"`
	MovieImage       string  `json:"movie_image" validate:"max=500"`
	MovieDescription string  `json:"movie_description"`
	Position         int     `json:"position"`
}

// Service описывает интерфейс бизнес-логики подборок.
type Service interface {
	AddMovie(ctx context.Context, userUID string, m models.PlaylistMovie) (*models.PlaylistMovie, error)
}

// Handler управляет HTTP-запросами на добавление фильма в подборку.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить фильм в подборку
// @Tags Playlists
// @Accept json
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии"
// @Param id path int true "ID подборки"
// @Param request body Request true "Данные фильма"
// @Success 200 {object} response.Response "Добавленный фильм или null при дубликате"
// @Failure 400 {object} response.Response "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Подборка принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Подборка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /playlists/{id}/movies [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.playlist.addmovie"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	movie, err := h.service.AddMovie(r.Context(), userUID, models.PlaylistMovie{
		PlaylistID:       playlistID,
		MovieID:          req.MovieID,
		MovieTitle:       req.MovieTitle,
		MovieGenre:       req.MovieGenre,
		MovieRating:      req.MovieRating,
		MovieImage:       req.MovieImage,
		MovieDescription: req.MovieDescription,
		Position:         req.Position,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Подборка не найдена"))
		case errors.Is(err, services.ErrForbidden):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("Доступ запрещён"))
		default:
			log.Error("failed to add movie to playlist", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add movie to playlist"))
		}
		return
	}

	render.JSON(w, r, response.StatusOKWithData(movie))
}
