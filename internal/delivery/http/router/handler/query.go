package handler

import (
	"strings"

	"storefront/internal/delivery/http/middleware"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

// pageRequest reads page and limit leniently. Unparsable values fall back to the use case defaults.
func pageRequest(c echo.Context) usecase.PageRequest {
	return usecase.PageRequest{
		Page:  cast.ToInt(strings.TrimSpace(c.QueryParam("page"))),
		Limit: cast.ToInt(strings.TrimSpace(c.QueryParam("limit"))),
	}
}

// optionalInt64 returns nil for a missing or unparsable value.
func optionalInt64(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	value, err := cast.ToInt64E(raw)
	if err != nil {
		return nil
	}

	return &value
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid id: " + c.Param("id"))
	}

	return id, nil
}

// currentUser returns the authenticated caller or an Unauthorized error.
func currentUser(c echo.Context) (uuid.UUID, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	return userID, nil
}

// currentActor returns the caller with its admin flag or an Unauthorized error.
func currentActor(c echo.Context) (usecase.Actor, error) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return usecase.Actor{}, domainerrors.ErrUnauthorized
	}

	return actor, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return c.Validate(req)
}
