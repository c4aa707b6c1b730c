package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/config"
	httpmiddleware "storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/service"
	mockSvc "storefront/internal/mocks/service"
	mockUC "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serverFixture struct {
	echo     *echo.Echo
	tokenSvc *mockSvc.MockTokenService
	orderUC  *mockUC.MockOrderUsecase
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1K"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokenSvc := mockSvc.NewMockTokenService(t)
	orderUC := mockUC.NewMockOrderUsecase(t)

	e := NewEcho(HTTPParams{
		Config:          cfg,
		Logger:          logger,
		ErrorMiddleware: httpmiddleware.NewErrorMiddleware(logger),
		RouterParams: router.RouterParams{
			AuthHandler:    handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: mockUC.NewMockAuthUsecase(t), Logger: logger}),
			ProductHandler: handler.NewProductHandler(handler.ProductHandlerParams{ProductUC: mockUC.NewMockProductUsecase(t), Logger: logger}),
			CartHandler:    handler.NewCartHandler(handler.CartHandlerParams{CartUC: mockUC.NewMockCartUsecase(t), Logger: logger}),
			OrderHandler:   handler.NewOrderHandler(handler.OrderHandlerParams{OrderUC: orderUC, Logger: logger}),
			ContactHandler: handler.NewContactHandler(handler.ContactHandlerParams{
				ContactUC:    mockUC.NewMockContactUsecase(t),
				NewsletterUC: mockUC.NewMockNewsletterUsecase(t),
				Logger:       logger,
			}),
			UserHandler: handler.NewUserHandler(handler.UserHandlerParams{
				UserUC:  mockUC.NewMockUserUsecase(t),
				StatsUC: mockUC.NewMockStatsUsecase(t),
				Logger:  logger,
			}),
			AuthMiddleware: httpmiddleware.NewAuthMiddleware(tokenSvc),
		},
	})

	return &serverFixture{echo: e, tokenSvc: tokenSvc, orderUC: orderUC}
}

func (f *serverFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)

	return body.Error.Code
}

func TestHealth(t *testing.T) {
	f := newServerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-42")
	rec := f.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(echo.HeaderXRequestID))
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(httptest.NewRequest(http.MethodGet, "/admin/orders", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
	})

	t.Run("expired token", func(t *testing.T) {
		f := newServerFixture(t)
		f.tokenSvc.On("ValidateAccessToken", "stale").Return(nil, errors.New("token is expired")).Once()

		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer stale")
		rec := f.do(req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("shopper token", func(t *testing.T) {
		f := newServerFixture(t)
		f.tokenSvc.On("ValidateAccessToken", "shopper").
			Return(&service.Claims{UserID: uuid.New(), Roles: []string{"user"}}, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/admin/orders/"+uuid.NewString(), strings.NewReader(`{"orderStatus":"completed"}`))
		req.Header.Set(echo.HeaderAuthorization, "Bearer shopper")
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := f.do(req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(t, rec))
	})

	t.Run("admin token", func(t *testing.T) {
		f := newServerFixture(t)
		f.tokenSvc.On("ValidateAccessToken", "admin").
			Return(&service.Claims{UserID: uuid.New(), Roles: []string{"user", "admin"}}, nil).Once()
		f.orderUC.On("ListOrders", mock.Anything, mock.MatchedBy(func(input *usecase.ListOrdersInput) bool {
			return input.Status == "pending"
		})).Return(&usecase.OrderPage{Pagination: usecase.Pagination{Page: 1, Limit: 20}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/admin/orders?status=pending", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer admin")
		rec := f.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestBodyLimit(t *testing.T) {
	f := newServerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(strings.Repeat("x", 2048)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := f.do(req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
