package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kinoteka/movie-catalog/internal/models"
	services "github.com/kinoteka/movie-catalog/internal/services/auth"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, username, rawPassword string) (string, *models.User, error) {
	args := m.Called(ctx, email, username, rawPassword)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"email":"new@example.com","password":"secret123","username":"newuser"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "new@example.com", "newuser", "secret123").
					Return("token-value", &models.User{UID: "new-uid", Email: "new@example.com", Username: "newuser"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"token-value"`,
		},
		{
			name:           "некорректный JSON",
			body:           `not a json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "слишком короткий пароль",
			body:           `{"email":"new@example.com","password":"123","username":"newuser"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "некорректный email",
			body:           `{"email":"not-an-email","password":"secret123","username":"newuser"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"status":"Error"`,
		},
		{
			name: "email уже занят",
			body: `{"email":"taken@example.com","password":"secret123","username":"newuser"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "taken@example.com", "newuser", "secret123").
					Return("", nil, services.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `Пользователь с таким email уже существует`,
		},
		{
			name: "ошибка сервиса",
			body: `{"email":"new@example.com","password":"secret123","username":"newuser"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "new@example.com", "newuser", "secret123").
					Return("", nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `failed to register user`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
