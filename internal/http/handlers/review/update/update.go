// Package update реализует HTTP-обработчик редактирования собственной рецензии.
//
// Любая правка возвращает рецензию на повторную модерацию.
package update

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
	services "github.com/kinoteka/movie-catalog/internal/services/review"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// Request — изменяемые поля рецензии.
type Request struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=10"`
	ReviewText string `json:"review_text" validate:"required,min=1,max=5000"`
}

// Service описывает интерфейс бизнес-логики рецензий.
type Service interface {
	Update(ctx context.Context, userUID string, id, rating int, reviewText string) (*models.Review, error)
}

// Handler управляет HTTP-запросами на обновление рецензии.
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
// @Summary Обновить свою рецензию
// @Description Обновляет текст и оценку, рецензия возвращается на модерацию.
// @Tags Reviews
// @Accept json
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии"
// @Param id path int true "ID рецензии"
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} response.Response "Обновленная рецензия"
// @Failure 400 {object} response.Response "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Рецензия принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Рецензия не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reviews/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.update"
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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid review id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid review id"))
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

	review, err := h.service.Update(r.Context(), userUID, id, req.Rating, req.ReviewText)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Рецензия не найдена"))
		case errors.Is(err, services.ErrForbidden):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("Доступ запрещён"))
		default:
			log.Error("failed to update review", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update review"))
		}
		return
	}

	render.JSON(w, r, response.StatusOKWithData(review))
}
