package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderEventService_RecordOrderEvent(t *testing.T) {
	eventRepo := mockRepo.NewMockOrderEventRepository(t)
	srv := NewOrderEventService(OrderEventServiceParams{EventRepo: eventRepo, Logger: newDiscardLogger()})
	ctx := context.Background()
	orderID := uuid.New()

	event := &service.OrderEvent{
		Type:          "order.status_changed",
		OrderID:       orderID.String(),
		OrderNumber:   "ORD1",
		OrderStatus:   "Delivered",
		PaymentStatus: "paid",
		Total:         70000,
		OccurredAt:    fixedNow,
	}

	eventRepo.On("Append", ctx, mock.MatchedBy(func(record *entity.OrderEvent) bool {
		return record.MessageID == "msg-1" &&
			record.OrderID == orderID &&
			record.ActorID == uuid.Nil &&
			record.OrderStatus == entity.OrderStatusCompleted &&
			record.PaymentStatus == entity.PaymentStatusPaid
	})).Return(true, nil).Once()
	eventRepo.On("Append", ctx, mock.Anything).Return(false, nil).Once()

	inserted, err := srv.RecordOrderEvent(ctx, "msg-1", event)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = srv.RecordOrderEvent(ctx, "msg-1", event)
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestOrderEventService_RecordOrderEvent_Malformed(t *testing.T) {
	eventRepo := mockRepo.NewMockOrderEventRepository(t)
	srv := NewOrderEventService(OrderEventServiceParams{EventRepo: eventRepo, Logger: newDiscardLogger()})
	ctx := context.Background()

	for name, tc := range map[string]struct {
		messageID string
		event     *service.OrderEvent
	}{
		"missing message id": {event: &service.OrderEvent{Type: "order.created", OrderID: uuid.NewString()}},
		"nil payload":        {messageID: "m"},
		"unknown type":       {messageID: "m", event: &service.OrderEvent{Type: "order.teleported", OrderID: uuid.NewString()}},
		"bad order id":       {messageID: "m", event: &service.OrderEvent{Type: "order.created", OrderID: "42"}},
		"bad actor id":       {messageID: "m", event: &service.OrderEvent{Type: "order.created", OrderID: uuid.NewString(), ActorID: "x"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := srv.RecordOrderEvent(ctx, tc.messageID, tc.event)
			assertErrorCode(t, err, "VALIDATION_FAILED")
		})
	}
	eventRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestOrderEventService_RecordOrderEvent_StoreFailure(t *testing.T) {
	eventRepo := mockRepo.NewMockOrderEventRepository(t)
	srv := NewOrderEventService(OrderEventServiceParams{EventRepo: eventRepo, Logger: newDiscardLogger()})
	ctx := context.Background()

	eventRepo.On("Append", ctx, mock.Anything).Return(false, errors.New("db down"))

	_, err := srv.RecordOrderEvent(ctx, "m", &service.OrderEvent{
		Type:       "order.created",
		OrderID:    uuid.NewString(),
		OccurredAt: time.Now(),
	})

	assert.ErrorContains(t, err, "db down")
}
