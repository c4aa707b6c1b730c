package middleware

import (
	"log/slog"

	"storefront/config"

	"github.com/labstack/echo/v4"
	slogecho "github.com/samber/slog-echo"
)

// NewLoggerMiddleware returns the access log middleware shared by the API and the worker.
// It must run after the request id middleware so the id is on the response headers.
// Debug mode adds request and response bodies.
func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config) echo.MiddlewareFunc {
	return slogecho.NewWithConfig(logger, slogecho.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,

		WithUserAgent:    true,
		WithRequestID:    true,
		WithRequestBody:  cfg.Env.Debug,
		WithResponseBody: cfg.Env.Debug,

		Filters: []slogecho.Filter{
			slogecho.IgnorePath("/health"),
		},
	})
}
