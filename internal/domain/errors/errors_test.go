package errors

import (
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetails(t *testing.T) {
	detailed := ErrInsufficientStock.WithDetails("Kopi Gayo")

	require.NotSame(t, ErrInsufficientStock, detailed)
	assert.Equal(t, "Kopi Gayo", detailed.Details())
	assert.Equal(t, ErrInsufficientStock.ErrorCode(), detailed.ErrorCode())
	assert.Equal(t, ErrInsufficientStock.Message(), detailed.Message())
	assert.Equal(t, http.StatusBadRequest, detailed.HTTPCode())
	assert.Empty(t, ErrInsufficientStock.Details())
}

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	wrapped := ErrOrderNotFound.WrapMessage("load order")

	var appErr AppError
	require.True(t, pkgerrors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
	assert.True(t, pkgerrors.Is(wrapped, ErrOrderNotFound))
}
