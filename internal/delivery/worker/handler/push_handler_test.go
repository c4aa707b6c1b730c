package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	mockUC "storefront/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

const testAudience = "https://worker.example.com/pubsub/push"

func newTestHandler(t *testing.T, audience string) (*PushHandler, *mockUC.MockOrderEventUsecase) {
	orderEventUC := mockUC.NewMockOrderEventUsecase(t)

	cfg := &config.Config{PubSub: &config.PubSubConfig{PushAudience: audience}}
	h := NewPushHandler(PushHandlerParams{
		Config:       cfg,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		OrderEventUC: orderEventUC,
	})

	return h, orderEventUC
}

func sampleEvent() *service.OrderEvent {
	return &service.OrderEvent{
		RequestID:     "req-from-event",
		Type:          "order.status_changed",
		OrderID:       "33333333-3333-3333-3333-333333333333",
		OrderNumber:   "AJ20240102030405007",
		UserID:        "11111111-1111-1111-1111-111111111111",
		OrderStatus:   "shipped",
		PaymentStatus: "paid",
		Total:         70000,
		OccurredAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func pushBody(t *testing.T, data string, attributes map[string]string) []byte {
	t.Helper()

	var msg PubSubMessage
	msg.Message.Data = data
	msg.Message.Attributes = attributes
	msg.Message.MessageID = "msg-1"
	msg.Subscription = "projects/p/subscriptions/order-events"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return body
}

func encodeEvent(t *testing.T, event *service.OrderEvent) string {
	t.Helper()

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(raw)
}

func doPush(h *PushHandler, body []byte, authorization string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/pubsub/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()

	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestHandlePush_RecordsEvent(t *testing.T) {
	h, orderEventUC := newTestHandler(t, "")

	orderEventUC.On("RecordOrderEvent",
		mock.MatchedBy(func(ctx context.Context) bool {
			return deliverycontext.GetRequestIDFromContext(ctx) == "req-from-attr"
		}),
		"msg-1",
		mock.MatchedBy(func(event *service.OrderEvent) bool {
			return event.Type == "order.status_changed" && event.OrderStatus == "shipped" && event.Total == 70000
		}),
	).Return(true, nil).Once()

	rec := doPush(h, pushBody(t, encodeEvent(t, sampleEvent()), map[string]string{"request_id": "req-from-attr"}), "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_Acknowledges(t *testing.T) {
	t.Run("duplicate delivery", func(t *testing.T) {
		h, orderEventUC := newTestHandler(t, "")
		orderEventUC.On("RecordOrderEvent", mock.Anything, "msg-1", mock.Anything).Return(false, nil).Once()

		rec := doPush(h, pushBody(t, encodeEvent(t, sampleEvent()), nil), "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid event", func(t *testing.T) {
		h, orderEventUC := newTestHandler(t, "")
		orderEventUC.On("RecordOrderEvent", mock.Anything, "msg-1", mock.Anything).
			Return(false, domainerrors.ErrValidationFailed.WithDetails("unknown event type: x")).Once()

		rec := doPush(h, pushBody(t, encodeEvent(t, sampleEvent()), nil), "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("data is not base64", func(t *testing.T) {
		h, _ := newTestHandler(t, "")

		rec := doPush(h, pushBody(t, "%%%", nil), "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("data is not an event", func(t *testing.T) {
		h, _ := newTestHandler(t, "")

		rec := doPush(h, pushBody(t, base64.StdEncoding.EncodeToString([]byte("not json")), nil), "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandlePush_RetriesStorageFailure(t *testing.T) {
	h, orderEventUC := newTestHandler(t, "")
	orderEventUC.On("RecordOrderEvent", mock.Anything, "msg-1", mock.Anything).
		Return(false, errors.New("connection refused")).Once()

	rec := doPush(h, pushBody(t, encodeEvent(t, sampleEvent()), nil), "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlePush_VerifiesToken(t *testing.T) {
	validPayload := &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}

	tests := []struct {
		name          string
		authorization string
		payload       *idtoken.Payload
		validateErr   error
		wantStatus    int
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", authorization: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", authorization: "Bearer bad", validateErr: errors.New("bad signature"), wantStatus: http.StatusUnauthorized},
		{name: "foreign issuer", authorization: "Bearer t", payload: &idtoken.Payload{Issuer: "https://evil.example.com"}, wantStatus: http.StatusUnauthorized},
		{name: "unverified email", authorization: "Bearer t", payload: &idtoken.Payload{Issuer: "accounts.google.com", Claims: map[string]any{"email_verified": false}}, wantStatus: http.StatusUnauthorized},
		{name: "valid token", authorization: "Bearer t", payload: validPayload, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, orderEventUC := newTestHandler(t, testAudience)

			var gotAudience string
			h.validateToken = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
				gotAudience = audience
				if tt.validateErr != nil {
					return nil, tt.validateErr
				}

				return tt.payload, nil
			}

			if tt.wantStatus == http.StatusOK {
				orderEventUC.On("RecordOrderEvent", mock.Anything, "msg-1", mock.Anything).Return(true, nil).Once()
			}

			rec := doPush(h, pushBody(t, encodeEvent(t, sampleEvent()), nil), tt.authorization)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.payload != nil || tt.validateErr != nil {
				assert.Equal(t, testAudience, gotAudience)
			}
		})
	}
}

func TestExtractRequestID(t *testing.T) {
	h, _ := newTestHandler(t, "")
	event := sampleEvent()

	var msg PubSubMessage
	assert.Equal(t, "req-from-event", h.extractRequestID(context.Background(), &msg, event))

	event.RequestID = ""
	ctx := deliverycontext.WithRequestID(context.Background(), "req-from-header")
	assert.Equal(t, "req-from-header", h.extractRequestID(ctx, &msg, event))

	assert.NotEmpty(t, h.extractRequestID(context.Background(), &msg, event))
}
