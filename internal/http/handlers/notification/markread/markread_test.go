package markread

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kinoteka/movie-catalog/internal/http/middlewarectx"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

// MockService реализует интерфейс markread.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) MarkRead(ctx context.Context, userUID string, id int) error {
	return m.Called(ctx, userUID, id).Error(0)
}

func (m *MockService) MarkAllRead(ctx context.Context, userUID string) error {
	return m.Called(ctx, userUID).Error(0)
}

func TestMarkReadHandler(t *testing.T) {
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
			name:    "пометка одного уведомления",
			idParam: "5",
			userUID: "user-uid",
			setupMock: func(m *MockService) {
				m.On("MarkRead", mock.Anything, "user-uid", 5).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":5`,
		},
		{
			name:    "пометка всех уведомлений",
			idParam: "all",
			userUID: "user-uid",
			setupMock: func(m *MockService) {
				m.On("MarkAllRead", mock.Anything, "user-uid").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"marked":"all"`,
		},
		{
			name:           "без авторизации",
			idParam:        "5",
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
			expectedBody:   `invalid notification id`,
		},
		{
			name:    "чужое или несуществующее уведомление",
			idParam: "99",
			userUID: "user-uid",
			setupMock: func(m *MockService) {
				m.On("MarkRead", mock.Anything, "user-uid", 99).Return(repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `Уведомление не найдено`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/notifications/"+tt.idParam+"/read", nil)
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
