package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type orderEventService struct {
	eventRepo repository.OrderEventRepository
	logger    *slog.Logger
}

// OrderEventServiceParams holds dependencies for OrderEventService, injected by Fx.
type OrderEventServiceParams struct {
	fx.In

	EventRepo repository.OrderEventRepository
	Logger    *slog.Logger
}

func NewOrderEventService(params OrderEventServiceParams) usecase.OrderEventUsecase {
	return &orderEventService{
		eventRepo: params.EventRepo,
		logger:    params.Logger,
	}
}

// RecordOrderEvent appends the event to the order history.
// Malformed events return a validation error; callers must not redeliver them.
func (srv *orderEventService) RecordOrderEvent(ctx context.Context, messageID string, event *service.OrderEvent) (bool, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	record, err := toOrderEventRecord(messageID, event)
	if err != nil {
		logger.Warn("Dropping malformed order event", slog.String("messageID", messageID), slog.Any("error", err))

		return false, err
	}

	inserted, err := srv.eventRepo.Append(ctx, record)
	if err != nil {
		return false, errors.Wrap(err, "failed to append order event")
	}
	if !inserted {
		logger.Debug("Order event already recorded", slog.String("messageID", messageID))

		return false, nil
	}

	logger.Info("Order event recorded",
		slog.String("messageID", messageID),
		slog.String("type", event.Type),
		slog.String("orderNumber", event.OrderNumber),
	)

	return true, nil
}

func toOrderEventRecord(messageID string, event *service.OrderEvent) (*entity.OrderEvent, error) {
	messageID = strings.TrimSpace(messageID)
	if messageID == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("message id is required")
	}
	if event == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("event payload is required")
	}

	eventType := entity.OrderEventType(event.Type)
	switch eventType {
	case entity.OrderEventCreated, entity.OrderEventStatusChanged, entity.OrderEventPaymentProofUploaded, entity.OrderEventDeleted:
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown event type: " + event.Type)
	}

	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid order id")
	}

	var actorID uuid.UUID
	if event.ActorID != "" {
		if actorID, err = uuid.Parse(event.ActorID); err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("invalid actor id")
		}
	}

	paymentStatus, _ := entity.ParsePaymentStatus(event.PaymentStatus)

	return &entity.OrderEvent{
		MessageID:     messageID,
		Type:          eventType,
		OrderID:       orderID,
		OrderNumber:   event.OrderNumber,
		ActorID:       actorID,
		OrderStatus:   entity.CanonicalOrderStatus(event.OrderStatus),
		PaymentStatus: paymentStatus,
		Total:         event.Total,
		OccurredAt:    event.OccurredAt,
	}, nil
}
