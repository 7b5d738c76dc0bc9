// Package create реализует HTTP-обработчик добавления фильма
// в личную коллекцию.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/kinoteka/movie-catalog/internal/http/middlewarectx"
	"github.com/kinoteka/movie-catalog/internal/http/response"
	"github.com/kinoteka/movie-catalog/internal/lib/sl"
	"github.com/kinoteka/movie-catalog/internal/models"
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
}

// Service описывает интерфейс бизнес-логики коллекции.
type Service interface {
	Add(ctx context.Context, entry models.CollectionEntry) (*models.CollectionEntry, error)
}

// Handler управляет HTTP-запросами на добавление в коллекцию.
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
// @Summary Добавить фильм в коллекцию
// @Tags Collection
// @Accept json
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии"
// @Param request body Request true "Данные фильма"
// @Success 200 {object} response.Response "Добавленная запись"
// @Failure 400 {object} response.Response "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Фильм уже в коллекции"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /collection [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.collection.create"
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

	entry, err := h.service.Add(r.Context(), models.CollectionEntry{
		UserUID:          userUID,
		MovieID:          req.MovieID,
		MovieTitle:       req.MovieTitle,
		MovieGenre:       req.MovieGenre,
		MovieRating:      req.MovieRating,
		MovieImage:       req.MovieImage,
		MovieDescription: req.MovieDescription,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("Фильм уже добавлен в коллекцию"))
			return
		}
		log.Error("failed to add movie to collection", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to add movie to collection"))
		return
	}

	log.Info("movie added to collection", slog.Int("movie_id", req.MovieID))
	render.JSON(w, r, response.StatusOKWithData(entry))
}
