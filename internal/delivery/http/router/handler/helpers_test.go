package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/validator"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var (
	shopperID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	adminID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

type envelope struct {
	Success    bool            `json:"success"`
	Code       int             `json:"code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
}

// newContext builds an echo context with the storefront validator. body is JSON encoded unless nil.
func newContext(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func asShopper(c echo.Context) echo.Context {
	middleware.SetIdentity(c, shopperID, entity.Roles{entity.RoleUser})

	return c
}

func asAdmin(c echo.Context) echo.Context {
	middleware.SetIdentity(c, adminID, entity.Roles{entity.RoleUser, entity.RoleAdmin})

	return c
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)

	return c
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) envelope {
	t.Helper()

	body := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(body.Data, out))

	return body
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr domainerrors.AppError
	require.Truef(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, code, appErr.ErrorCode())
}
