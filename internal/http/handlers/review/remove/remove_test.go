package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kinoteka/movie-catalog/internal/http/middlewarectx"
	services "github.com/kinoteka/movie-catalog/internal/services/review"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, userUID string, id int) error {
	return m.Called(ctx, userUID, id).Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		idParam        string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешное удаление",
			idParam: "7",
			userUID: "user-uid",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, "user-uid", 7).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "без авторизации",
			idParam:        "7",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `Требуется авторизация`,
		},
		{
			name:           "некорректный id",
			idParam:        "abc",
			userUID:        "user-uid",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid review id`,
		},
		{
			name:    "одобренную рецензию удалить нельзя",
			idParam: "7",
			userUID: "user-uid",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, "user-uid", 7).Return(services.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `Удаление одобренной рецензии запрещено`,
		},
		{
			name:    "несуществующая рецензия",
			idParam: "99",
			userUID: "user-uid",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, "user-uid", 99).Return(repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `Рецензия не найдена`,
		},
		{
			name:    "ошибка сервиса",
			idParam: "7",
			userUID: "user-uid",
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, "user-uid", 7).Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `failed to delete review`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/reviews/"+tt.idParam, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.idParam)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
