package worker

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/config"
	"storefront/internal/delivery/worker/handler"
	mockUC "storefront/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestEcho(t *testing.T) *echo.Echo {
	cfg := &config.Config{PubSub: &config.PubSubConfig{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pushHandler := handler.NewPushHandler(handler.PushHandlerParams{
		Config:       cfg,
		Logger:       logger,
		OrderEventUC: mockUC.NewMockOrderEventUsecase(t),
	})

	return NewEcho(cfg, logger, pushHandler)
}

func TestWorkerRoutes(t *testing.T) {
	e := newTestEcho(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	// Undecodable payloads are acknowledged so Pub/Sub stops redelivering them.
	req := httptest.NewRequest(http.MethodPost, PushPath, strings.NewReader(`{"message":{"data":"!!","messageId":"m"}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PushPath, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
