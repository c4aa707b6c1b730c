package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockUC "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *mockUC.MockAuthUsecase) {
	authUC := mockUC.NewMockAuthUsecase(t)

	return NewAuthHandler(AuthHandlerParams{
		AuthUC: authUC,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), authUC
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("invalid body is rejected before the use case", func(t *testing.T) {
		h, _ := newAuthHandler(t)

		c, _ := newContext(t, http.MethodPost, "/auth/register", map[string]string{
			"email":    "not-an-email",
			"password": "123",
		})

		err := h.Register(c)
		assertErrorCode(t, err, "VALIDATION_FAILED")

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "name is required; email must be a valid email; password must be at least 6", appErr.Details())
	})

	t.Run("creates account", func(t *testing.T) {
		h, authUC := newAuthHandler(t)

		c, rec := newContext(t, http.MethodPost, "/auth/register", map[string]string{
			"name":     "Siti",
			"email":    "siti@example.com",
			"password": "rahasia",
		})

		authUC.On("Register", mock.Anything, &usecase.RegisterInput{
			Name: "Siti", Email: "siti@example.com", Password: "rahasia",
		}).Return(&usecase.AuthOutput{
			AccessToken:  "access",
			RefreshToken: "refresh",
			User:         &entity.User{ID: shopperID, Email: "siti@example.com", Name: "Siti", Role: entity.RoleUser, Provider: entity.ProviderTypeEmail, IsActive: true},
		}, nil).Once()

		require.NoError(t, h.Register(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var data AuthResponse
		decodeData(t, rec, &data)
		assert.Equal(t, "access", data.AccessToken)
		assert.Equal(t, "refresh", data.RefreshToken)
		require.NotNil(t, data.User)
		assert.Equal(t, "user", data.User.Role)
		assert.Equal(t, "email", data.User.Provider)
	})

	t.Run("duplicate email", func(t *testing.T) {
		h, authUC := newAuthHandler(t)

		c, _ := newContext(t, http.MethodPost, "/auth/register", map[string]string{
			"name": "Siti", "email": "siti@example.com", "password": "rahasia",
		})

		authUC.On("Register", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrUserAlreadyExists).Once()

		assertErrorCode(t, h.Register(c), "USER_ALREADY_EXISTS")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	h, authUC := newAuthHandler(t)

	c, rec := newContext(t, http.MethodPost, "/auth/login", map[string]string{"email": "admin@example.com", "password": "secret"})

	authUC.On("Login", mock.Anything, &usecase.LoginInput{Email: "admin@example.com", Password: "secret"}).
		Return(&usecase.AuthOutput{
			AccessToken:  "a",
			RefreshToken: "r",
			User:         &entity.User{ID: adminID, Email: "admin@example.com", Role: entity.RoleAdmin, IsActive: true},
		}, nil).Once()

	require.NoError(t, h.Login(c))

	var data AuthResponse
	envelope := decodeData(t, rec, &data)
	assert.Equal(t, "Login successful", envelope.Message)
	assert.Equal(t, "admin", data.User.Role)
}

func TestAuthHandler_RefreshAndLogout(t *testing.T) {
	h, authUC := newAuthHandler(t)

	c, _ := newContext(t, http.MethodPost, "/auth/refresh", map[string]string{})
	assertErrorCode(t, h.RefreshToken(c), "VALIDATION_FAILED")

	c, _ = newContext(t, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": "stale"})
	authUC.On("RefreshToken", mock.Anything, &usecase.RefreshTokenInput{RefreshToken: "stale"}).
		Return(nil, domainerrors.ErrRefreshTokenInvalid).Once()
	assertErrorCode(t, h.RefreshToken(c), "REFRESH_TOKEN_INVALID")

	c, rec := newContext(t, http.MethodPost, "/auth/logout", map[string]string{"refreshToken": "current"})
	authUC.On("Logout", mock.Anything, &usecase.LogoutInput{RefreshToken: "current"}).Return(nil).Once()
	require.NoError(t, h.Logout(c))
	assert.Equal(t, "Logout successful", decodeEnvelope(t, rec).Message)
}

func TestAuthHandler_Me(t *testing.T) {
	h, authUC := newAuthHandler(t)

	c, _ := newContext(t, http.MethodGet, "/auth/me", nil)
	assertErrorCode(t, h.Me(c), "UNAUTHORIZED")

	c, rec := newContext(t, http.MethodGet, "/auth/me", nil)
	asShopper(c)
	authUC.On("Me", mock.Anything, shopperID).Return(&entity.User{ID: shopperID, Name: "Siti", Role: entity.RoleUser}, nil).Once()

	require.NoError(t, h.Me(c))

	var data UserResponse
	decodeData(t, rec, &data)
	assert.Equal(t, shopperID, data.ID)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newContext(t, http.MethodGet, "/health", nil)

	require.NoError(t, HealthCheck(c))

	var data map[string]string
	decodeData(t, rec, &data)
	assert.Equal(t, "ok", data["status"])
}
