package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderEventRepository struct {
	db *gorm.DB
}

// NewOrderEventRepository is the constructor for orderEventRepository.
func NewOrderEventRepository(db *gorm.DB) repository.OrderEventRepository {
	return &orderEventRepository{db: db}
}

// Append relies on the unique message_id to make Pub/Sub redelivery a no-op.
func (repo *orderEventRepository) Append(ctx context.Context, event *entity.OrderEvent) (bool, error) {
	eventM := &model.OrderEventModel{
		ID:            event.ID,
		MessageID:     event.MessageID,
		Type:          string(event.Type),
		OrderID:       event.OrderID,
		OrderNumber:   event.OrderNumber,
		OrderStatus:   string(event.OrderStatus),
		PaymentStatus: string(event.PaymentStatus),
		Total:         event.Total,
		OccurredAt:    event.OccurredAt,
	}
	if event.ActorID != uuid.Nil {
		actorID := event.ActorID
		eventM.ActorID = &actorID
	}

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "message_id"}}, DoNothing: true}).
		Create(eventM)
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to append order event")
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	event.ID = eventM.ID
	event.CreatedAt = eventM.CreatedAt

	return true, nil
}

func (repo *orderEventRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderEvent, error) {
	var rows []model.OrderEventModel
	err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("occurred_at ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list order events")
	}

	events := make([]*entity.OrderEvent, 0, len(rows))
	for _, row := range rows {
		event := &entity.OrderEvent{
			ID:            row.ID,
			MessageID:     row.MessageID,
			Type:          entity.OrderEventType(row.Type),
			OrderID:       row.OrderID,
			OrderNumber:   row.OrderNumber,
			OrderStatus:   entity.CanonicalOrderStatus(row.OrderStatus),
			PaymentStatus: entity.PaymentStatus(row.PaymentStatus),
			Total:         row.Total,
			OccurredAt:    row.OccurredAt,
			CreatedAt:     row.CreatedAt,
		}
		if row.ActorID != nil {
			event.ActorID = *row.ActorID
		}
		events = append(events, event)
	}

	return events, nil
}
