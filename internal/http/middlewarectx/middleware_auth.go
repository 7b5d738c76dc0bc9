// Package middlewarectx содержит HTTP middleware приложения: проверку
// токена сессии, админский гейт, CORS, ограничение частоты запросов
// и метрики.
//
// AuthMiddleware проверяет JWT из заголовка X-Auth-Token и в случае успеха
// добавляет в контекст идентификатор и email пользователя. Различаются
// отсутствующий, истёкший и некорректный токен.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kinoteka/movie-catalog/internal/http/response"
	"github.com/kinoteka/movie-catalog/internal/lib/jwt"
	"github.com/kinoteka/movie-catalog/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID — ключ для идентификатора пользователя в контексте.
	UserUID Key = "user_uid"
	// Email — ключ для email пользователя в контексте.
	Email Key = "email"
)

// AuthHeader — заголовок с токеном сессии. net/http канонизирует имена
// заголовков, поэтому поиск не зависит от регистра.
const AuthHeader = "X-Auth-Token"

// AuthMiddleware возвращает middleware, требующий валидный токен сессии.
//
// Отсутствие токена, истёкший срок и невалидная подпись дают 401
// с разными сообщениями.
func AuthMiddleware(maker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := r.Header.Get(AuthHeader)
			if tokenStr == "" {
				log.Error("missing auth token")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Требуется авторизация"))
				return
			}

			claims, err := maker.ParseToken(tokenStr)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					log.Error("token expired", sl.Err(err))
					w.WriteHeader(http.StatusUnauthorized)
					render.JSON(w, r, response.Error("Токен истёк"))
					return
				}
				log.Error("invalid token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Неверный токен"))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, claims.UserUID)
			ctx = context.WithValue(ctx, Email, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware разбирает токен, если он передан, и кладет
// идентификатор пользователя в контекст. Ошибки разбора не прерывают запрос:
// публичные выборки доступны и без авторизации, токен лишь расширяет
// видимость собственного контента.
func OptionalAuthMiddleware(maker jwt.Maker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.Header.Get(AuthHeader)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := maker.ParseToken(tokenStr)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), UserUID, claims.UserUID)
			ctx = context.WithValue(ctx, Email, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
