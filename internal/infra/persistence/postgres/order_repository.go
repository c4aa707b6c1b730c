package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// storedStatusExpr is the column expression compared against OrderStatus.StoredForms.
const storedStatusExpr = "LOWER(TRIM(order_status))"

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func orderItemsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the order together with its items.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrOrderNumberTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.find(ctx, id, false)
}

// FindByIDForUpdate serializes concurrent mutations of one order.
func (repo *orderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.find(ctx, id, true)
}

func (repo *orderRepository) find(ctx context.Context, id uuid.UUID, lock bool) (*entity.Order, error) {
	db := repo.db.WithContext(ctx)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var orderM model.OrderModel
	err := db.
		Preload("Items", orderItemsByPosition).
		Preload("User").
		Where("id = ?", id).
		First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where(storedStatusExpr+" IN ?", filter.Status.StoredForms())
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", string(filter.PaymentStatus))
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count orders")
	}

	listQuery := query.Preload("Items", orderItemsByPosition)
	if filter.WithCustomer {
		listQuery = listQuery.Preload("User")
	}

	var rows []model.OrderModel
	if err := listQuery.Scopes(paginate(filter.Page)).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, toOrderDomain(&rows[i]))
	}

	return orders, total, nil
}

// UpdateStatus never touches the payment proof columns, so a concurrent proof upload survives it.
func (repo *orderRepository) UpdateStatus(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	return repo.updateColumns(ctx, order, map[string]any{
		"order_status":    orderM.OrderStatus,
		"payment_status":  orderM.PaymentStatus,
		"tracking_number": orderM.TrackingNumber,
		"payment_paid_at": orderM.Payment.PaidAt,
	})
}

// UpdatePaymentDetails never touches the status columns, so a buyer's upload cannot revert an admin change.
func (repo *orderRepository) UpdatePaymentDetails(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	return repo.updateColumns(ctx, order, map[string]any{
		"payment_transaction_id":      orderM.Payment.TransactionID,
		"payment_proof":               orderM.Payment.Proof,
		"payment_proof_mime":          orderM.Payment.ProofMime,
		"payment_proof_original_name": orderM.Payment.ProofOriginalName,
		"payment_proof_uploaded_at":   orderM.Payment.ProofUploadedAt,
	})
}

func (repo *orderRepository) updateColumns(ctx context.Context, order *entity.Order, columns map[string]any) error {
	now := time.Now()
	columns["updated_at"] = now

	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(columns)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	order.UpdatedAt = now

	return nil
}

// Delete removes the order row in one statement. order_items cascade.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.OrderModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

func canonicalStatusValues() []string {
	statuses := entity.OrderStatuses()
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}

	return values
}

func (repo *orderRepository) CountNonCanonicalStatuses(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("order_status NOT IN ?", canonicalStatusValues()).
		Count(&count).Error
	if err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count legacy statuses")
	}

	return count, nil
}

// NormalizeStatuses rewrites each distinct non-canonical value to entity.CanonicalOrderStatus of it.
func (repo *orderRepository) NormalizeStatuses(ctx context.Context) (int64, error) {
	db := repo.db.WithContext(ctx)

	var legacy []string
	err := db.Model(&model.OrderModel{}).
		Where("order_status NOT IN ?", canonicalStatusValues()).
		Distinct().
		Pluck("order_status", &legacy).Error
	if err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to read legacy statuses")
	}

	var changed int64
	for _, raw := range legacy {
		canonical := entity.CanonicalOrderStatus(raw)
		if string(canonical) == raw {
			continue
		}

		result := db.Model(&model.OrderModel{}).
			Where("order_status = ?", raw).
			Updates(map[string]any{
				"order_status": string(canonical),
				"updated_at":   time.Now(),
			})
		if result.Error != nil {
			return changed, domainerrors.NewDatabaseExecuteError(result.Error, "failed to normalize statuses")
		}
		changed += result.RowsAffected
	}

	return changed, nil
}

// --- Mapper Functions ---

// toOrderDomain maps a row to an order and canonicalizes its stored status.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	order := &entity.Order{
		ID:          data.ID,
		UserID:      data.UserID,
		OrderNumber: data.OrderNumber,
		Items:       items,
		ShippingAddress: entity.ShippingAddress{
			FullName:   data.ShippingAddress.FullName,
			Phone:      data.ShippingAddress.Phone,
			Address:    data.ShippingAddress.Address,
			City:       data.ShippingAddress.City,
			Province:   data.ShippingAddress.Province,
			PostalCode: data.ShippingAddress.PostalCode,
			Notes:      data.ShippingAddress.Notes,
		},
		PaymentMethod:  entity.PaymentMethod(data.PaymentMethod),
		PaymentStatus:  entity.PaymentStatus(data.PaymentStatus),
		OrderStatus:    entity.OrderStatus(data.OrderStatus),
		Subtotal:       data.Subtotal,
		ShippingCost:   data.ShippingCost,
		Total:          data.Total,
		PaymentDetails: toPaymentDetailsDomain(data.Payment),
		TrackingNumber: data.TrackingNumber,
		Notes:          data.Notes,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
	if data.User != nil {
		order.Customer = &entity.OrderCustomer{Name: data.User.Name, Email: data.User.Email}
	}
	order.Normalize()

	return order
}

func toPaymentDetailsDomain(data model.PaymentColumns) *entity.PaymentDetails {
	if data == (model.PaymentColumns{}) {
		return nil
	}

	return &entity.PaymentDetails{
		TransactionID:            data.TransactionID,
		PaymentProof:             data.Proof,
		PaymentProofMime:         data.ProofMime,
		PaymentProofOriginalName: data.ProofOriginalName,
		PaymentProofUploadedAt:   data.ProofUploadedAt,
		PaidAt:                   data.PaidAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	items := make([]model.OrderItemModel, 0, len(data.Items))
	for i, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Position:  i,
		})
	}

	orderM := &model.OrderModel{
		ID:          data.ID,
		UserID:      data.UserID,
		OrderNumber: data.OrderNumber,
		ShippingAddress: model.ShippingAddressColumns{
			FullName:   data.ShippingAddress.FullName,
			Phone:      data.ShippingAddress.Phone,
			Address:    data.ShippingAddress.Address,
			City:       data.ShippingAddress.City,
			Province:   data.ShippingAddress.Province,
			PostalCode: data.ShippingAddress.PostalCode,
			Notes:      data.ShippingAddress.Notes,
		},
		PaymentMethod:  string(data.PaymentMethod),
		PaymentStatus:  string(data.PaymentStatus),
		OrderStatus:    string(entity.CanonicalOrderStatus(string(data.OrderStatus))),
		Subtotal:       data.Subtotal,
		ShippingCost:   data.ShippingCost,
		Total:          data.Total,
		TrackingNumber: data.TrackingNumber,
		Notes:          data.Notes,
		Items:          items,
	}
	if data.PaymentDetails != nil {
		orderM.Payment = model.PaymentColumns{
			TransactionID:     data.PaymentDetails.TransactionID,
			Proof:             data.PaymentDetails.PaymentProof,
			ProofMime:         data.PaymentDetails.PaymentProofMime,
			ProofOriginalName: data.PaymentDetails.PaymentProofOriginalName,
			ProofUploadedAt:   data.PaymentDetails.PaymentProofUploadedAt,
			PaidAt:            data.PaymentDetails.PaidAt,
		}
	}

	return orderM
}
