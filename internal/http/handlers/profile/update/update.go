// Package update реализует HTTP-обработчик редактирования собственного профиля.
//
// Поля запроса опциональны: отсутствующее поле не меняется, переданное
// перезаписывается. Возвращается обновленное состояние профиля.
package update

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

// Request — изменяемые поля профиля.
type Request struct {
	Username   *string `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	AvatarURL  *string `json:"avatar_url,omitempty" validate:"omitempty,max=500"`
	Age        *int    `json:"age,omitempty" validate:"omitempty,gt=0"`
	Bio        *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
	StatusText *string `json:"status_text,omitempty" validate:"omitempty,max=200"`
}

// Service описывает интерфейс бизнес-логики профиля.
type Service interface {
	UpdateProfile(ctx context.Context, userUID string, upd models.ProfileUpdate) (*models.User, error)
}

// Handler управляет HTTP-запросами на обновление профиля.
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
// @Summary Обновить свой профиль
// @Tags Profile
// @Accept json
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии"
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} response.Response "Обновленный профиль"
// @Failure 400 {object} response.Response "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.update"
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

	user, err := h.service.UpdateProfile(r.Context(), userUID, models.ProfileUpdate{
		Username:   req.Username,
		AvatarURL:  req.AvatarURL,
		Age:        req.Age,
		Bio:        req.Bio,
		StatusText: req.StatusText,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Пользователь не найден"))
			return
		}
		log.Error("failed to update profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update profile"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(user))
}
