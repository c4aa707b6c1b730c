package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:  4,
			AdminEmails: []string{"Owner@Shop.test"},
		},
		Store: &config.StoreConfig{
			ShippingCost:          5000,
			OrderNumberPrefix:     "ORD",
			MaxPaymentProofLength: 64,
			LowStockThreshold:     10,
		},
	}
}

// assertErrorCode checks the business code, which survives WithDetails copies.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got %v", err)
	assert.Equal(t, code, appErr.ErrorCode())
}
