// Package create реализует HTTP-обработчик создания рецензии.
//
// Рецензия создается со статусом pending и появляется в публичном списке
// только после одобрения модератором. На один фильм у пользователя может
// быть только одна рецензия.
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

// Request — входные данные новой рецензии.
type Request struct {
	MovieID    int    `json:"movie_id" validate:"required,gt=0"`
	MovieTitle string `json:"movie_title" validate:"required,max=300"`
	MovieImage string `json:"movie_image" validate:"max=500"`
	Rating     int    `json:"rating" validate:"required,min=1,max=10"`
	ReviewText string `json:"review_text" validate:"required,min=1,max=5000"`
}

// Service описывает интерфейс бизнес-логики рецензий.
type Service interface {
	Create(ctx context.Context, r models.Review) (*models.Review, error)
}

// Handler управляет HTTP-запросами на создание рецензии.
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
// @Summary Написать рецензию на фильм
// @Tags Reviews
// @Accept json
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии"
// @Param request body Request true "Данные рецензии"
// @Success 200 {object} response.Response "Созданная рецензия"
// @Failure 400 {object} response.Response "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Рецензия на фильм уже существует"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reviews [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.create"
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

	review, err := h.service.Create(r.Context(), models.Review{
		UserUID:    userUID,
		MovieID:    req.MovieID,
		MovieTitle: req.MovieTitle,
		MovieImage: req.MovieImage,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("Вы уже написали рецензию на этот фильм"))
			return
		}
		log.Error("failed to create review", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create review"))
		return
	}

	log.Info("review created", slog.Int("id", review.ID))
	render.JSON(w, r, response.StatusOKWithData(review))
}
