package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kinoteka/movie-catalog/internal/lib/jwt"
	"github.com/kinoteka/movie-catalog/internal/lib/password"
	"github.com/kinoteka/movie-catalog/internal/models"
	"github.com/kinoteka/movie-catalog/internal/storage/repository"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *UsersMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MakerMock struct{ mock.Mock }

func (m *MakerMock) GenerateToken(userUID, email string) (string, error) {
	args := m.Called(userUID, email)
	return args.String(0), args.Error(1)
}
func (m *MakerMock) ParseToken(tokenStr string) (*jwt.CustomClaims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		username   string
		setupMocks func(u *UsersMock, j *MakerMock)
		wantErr    error
	}{
		{
			name:     "успешная регистрация с нормализацией email",
			email:    "  New@Example.COM ",
			username: "newuser",
			setupMocks: func(u *UsersMock, j *MakerMock) {
				u.On("GetUserByEmail", mock.Anything, "new@example.com").
					Return(nil, repository.ErrNotFound).Once()
				u.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "new@example.com" &&
						user.Username == "newuser" &&
						user.Role == "user" &&
						user.PasswordHash != "secret123"
				})).Return("new-uid", nil).Once()
				j.On("GenerateToken", "new-uid", "new@example.com").Return("token", nil).Once()
			},
		},
		{
			name:  "занятый email",
			email: "taken@example.com",
			setupMocks: func(u *UsersMock, _ *MakerMock) {
				u.On("GetUserByEmail", mock.Anything, "taken@example.com").
					Return(&models.User{UID: "other-uid"}, nil).Once()
			},
			wantErr: ErrEmailTaken,
		},
		{
			name:  "гонка на вставке тоже дает занятый email",
			email: "race@example.com",
			setupMocks: func(u *UsersMock, _ *MakerMock) {
				u.On("GetUserByEmail", mock.Anything, "race@example.com").
					Return(nil, repository.ErrNotFound).Once()
				u.On("RegisterUser", mock.Anything, mock.Anything).
					Return("", repository.ErrConflict).Once()
			},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usersMock := new(UsersMock)
			makerMock := new(MakerMock)
			tt.setupMocks(usersMock, makerMock)
			svc := NewAuthService(usersMock, makerMock)

			token, user, err := svc.Register(context.Background(), tt.email, tt.username, "secret123")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "token", token)
				assert.Equal(t, "new-uid", user.UID)
			}
			usersMock.AssertExpectations(t)
			makerMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.GetHash("secret123")
	require.NoError(t, err)
	storedUser := &models.User{
		UID:          "user-uid",
		Email:        "user@example.com",
		Username:     "user",
		PasswordHash: hashed,
	}

	tests := []struct {
		name       string
		email      string
		rawPass    string
		setupMocks func(u *UsersMock, j *MakerMock)
		wantErr    error
	}{
		{
			name:    "успешный вход",
			email:   "user@example.com",
			rawPass: "secret123",
			setupMocks: func(u *UsersMock, j *MakerMock) {
				u.On("GetUserByEmail", mock.Anything, "user@example.com").
					Return(storedUser, nil).Once()
				j.On("GenerateToken", "user-uid", "user@example.com").Return("token", nil).Once()
			},
		},
		{
			name:    "неверный пароль",
			email:   "user@example.com",
			rawPass: "wrongpass",
			setupMocks: func(u *UsersMock, _ *MakerMock) {
				u.On("GetUserByEmail", mock.Anything, "user@example.com").
					Return(storedUser, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "несуществующий email неотличим от неверного пароля",
			email:   "ghost@example.com",
			rawPass: "secret123",
			setupMocks: func(u *UsersMock, _ *MakerMock) {
				u.On("GetUserByEmail", mock.Anything, "ghost@example.com").
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usersMock := new(UsersMock)
			makerMock := new(MakerMock)
			tt.setupMocks(usersMock, makerMock)
			svc := NewAuthService(usersMock, makerMock)

			token, user, err := svc.Login(context.Background(), tt.email, tt.rawPass)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "token", token)
				assert.Equal(t, storedUser.UID, user.UID)
			}
			usersMock.AssertExpectations(t)
			makerMock.AssertExpectations(t)
		})
	}
}
