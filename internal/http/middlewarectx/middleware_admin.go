package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kinoteka/movie-catalog/internal/http/response"
	"github.com/kinoteka/movie-catalog/internal/lib/sl"
	"github.com/kinoteka/movie-catalog/internal/models"
)

// UserProvider описывает доступ к пользователю для проверки роли.
type UserProvider interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// AdminMiddleware пускает дальше только пользователей с ролью admin.
// Роль перечитывается из хранилища, а не из токена, чтобы отзыв прав
// действовал немедленно. Ставится после AuthMiddleware.
func AdminMiddleware(users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Требуется авторизация"))
				return
			}

			user, err := users.GetUser(r.Context(), userUID)
			if err != nil {
				log.Error("failed to load user", sl.Err(err))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("Доступ запрещён. Требуются права администратора"))
				return
			}
			if user.Role != "admin" {
				log.Error("admin role required", slog.String("role", user.Role))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("Доступ запрещён. Требуются права администратора"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
