// Package decide реализует HTTP-обработчик решения модератора:
// одобрение или отклонение подборки либо рецензии.
package decide

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
	services "github.com/kinoteka/movie-catalog/internal/services/moderation"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// Request — решение модератора. Комментарий опционален и обычно
// сопровождает отклонение.
type Request struct {
	Action  string  `json:"action" validate:"required,oneof=approve reject"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

// Service описывает интерфейс бизнес-логики модерации.
type Service interface {
	DecidePlaylist(ctx context.Context, id int, status models.ModerationStatus,
		moderatorUID string, comment *string) (*models.Playlist, error)
	DecideReview(ctx context.Context, id int, status models.ModerationStatus,
		comment *string) (*models.Review, error)
}

// Handler управляет HTTP-запросами на решения модерации.
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
// @Summary Применить решение модератора
// @Description Одобряет или отклоняет подборку либо рецензию. Вместе со сменой статуса автору создается уведомление и отправляется письмо.
// @Tags Moderation
// @Accept json
// @Produce json
// @Param X-Auth-Token header string true "Токен сессии администратора"
// @Param type path string true "Тип контента: playlists или reviews"
// @Param id path int true "ID контента"
// @Param request body Request true "Решение"
// @Success 200 {object} response.Response "Контент после решения"
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуются права администратора"
// @Failure 404 {object} response.ErrorResponse "Контент не найден"
// @Failure 409 {object} response.ErrorResponse "Недопустимая смена статуса"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/moderation/{type}/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.moderation.decide"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	moderatorUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || moderatorUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Требуется авторизация"))
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid content id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid content id"))
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

	status := models.StatusApproved
	if req.Action == "reject" {
		status = models.StatusRejected
	}

	var data any
	switch chi.URLParam(r, "type") {
	case "playlists":
		data, err = h.service.DecidePlaylist(r.Context(), id, status, moderatorUID, req.Comment)
	case "reviews":
		data, err = h.service.DecideReview(r.Context(), id, status, req.Comment)
	default:
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid content type"))
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Контент не найден"))
		case errors.Is(err, services.ErrInvalidTransition):
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("Недопустимая смена статуса"))
		default:
			log.Error("failed to apply moderation decision", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to apply moderation decision"))
		}
		return
	}

	log.Info("moderation decision applied",
		slog.Int("id", id), slog.String("action", req.Action))
	render.JSON(w, r, response.StatusOKWithData(data))
}
