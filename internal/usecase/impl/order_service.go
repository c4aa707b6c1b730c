package impl

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultOrderPageLimit = 20
	maxOrderPageLimit     = 100

	// maxOrderNumberAttempts bounds checkout retries on an order number collision.
	maxOrderNumberAttempts = 3

	exportFilenameLayout = "20060102-150405"
)

type orderService struct {
	txManager      repository.TransactionManager
	orderRepo      repository.OrderRepository
	eventRepo      repository.OrderEventRepository
	publisher      service.EventPublisher
	qrCodeService  service.QRCodeService
	exporter       service.OrderExporter
	proofStorage   service.ProofStorage
	store          *config.StoreConfig
	logger         *slog.Logger
	now            func() time.Time
	orderNumberRnd func() int
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	OrderRepo     repository.OrderRepository
	EventRepo     repository.OrderEventRepository
	Publisher     service.EventPublisher
	QRCodeService service.QRCodeService
	Exporter      service.OrderExporter
	ProofStorage  service.ProofStorage
	Config        *config.Config
	Logger        *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:      params.TxManager,
		orderRepo:      params.OrderRepo,
		eventRepo:      params.EventRepo,
		publisher:      params.Publisher,
		qrCodeService:  params.QRCodeService,
		exporter:       params.Exporter,
		proofStorage:   params.ProofStorage,
		store:          params.Config.Store,
		logger:         params.Logger,
		now:            time.Now,
		orderNumberRnd: func() int { return rand.IntN(1000) },
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout converts the caller's cart into an order in a single transaction.
func (srv *orderService) Checkout(ctx context.Context, input *usecase.CheckoutInput) (*entity.Order, error) {
	if input.ShippingAddress == nil || !input.ShippingAddress.IsComplete() || strings.TrimSpace(input.PaymentMethod) == "" {
		return nil, domainerrors.ErrCheckoutFieldsRequired
	}

	method, ok := entity.ParsePaymentMethod(input.PaymentMethod)
	if !ok {
		return nil, domainerrors.ErrInvalidPaymentMethod
	}

	orderID := uuid.New()

	var (
		details   *entity.PaymentDetails
		storedKey string
	)
	if method == entity.PaymentMethodBankTransfer && input.PaymentDetails != nil && input.PaymentDetails.PaymentProof != "" {
		var err error
		if details, storedKey, err = srv.preparePaymentDetails(ctx, orderID, input.PaymentDetails); err != nil {
			return nil, err
		}
	}

	var (
		order *entity.Order
		err   error
	)
	for range maxOrderNumberAttempts {
		order, err = srv.placeOrder(ctx, orderID, input, method, details)
		if !errors.Is(err, repository.ErrOrderNumberTaken) {
			break
		}
		srv.log(ctx).Warn("Order number collision, retrying checkout", slog.String("userID", input.UserID.String()))
	}
	if err != nil {
		srv.discardProof(ctx, storedKey)

		return nil, srv.checkoutError(ctx, input.UserID, err)
	}

	srv.log(ctx).Info("Order placed",
		slog.String("orderID", order.ID.String()),
		slog.String("orderNumber", order.OrderNumber),
		slog.Int64("total", order.Total),
	)
	srv.publish(ctx, entity.OrderEventCreated, order, input.UserID)

	return order, nil
}

// placeOrder locks the cart, inserts the order, decrements stock and drains the cart.
func (srv *orderService) placeOrder(
	ctx context.Context,
	orderID uuid.UUID,
	input *usecase.CheckoutInput,
	method entity.PaymentMethod,
	details *entity.PaymentDetails,
) (*entity.Order, error) {
	var placed *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		orderRepo := repoFactory.NewOrderRepository()
		productRepo := repoFactory.NewProductRepository()

		cart, err := cartRepo.FindByUserIDForUpdate(ctx, input.UserID)
		if errors.Is(err, repository.ErrCartNotFound) {
			return domainerrors.ErrCartEmpty
		}
		if err != nil {
			return errors.Wrap(err, "failed to load cart")
		}
		if cart.IsEmpty() {
			return domainerrors.ErrCartEmpty
		}

		now := srv.now()
		order := entity.NewOrderFromCart(cart, *input.ShippingAddress, method, srv.store.ShippingCost, strings.TrimSpace(input.Notes))
		order.ID = orderID
		order.OrderNumber = entity.NewOrderNumber(srv.store.OrderNumberPrefix, now, srv.orderNumberRnd())
		if details != nil {
			order.MergePaymentDetails(*details, now)
		}

		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		for _, item := range order.Items {
			if err := productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				switch {
				case errors.Is(err, repository.ErrInsufficientStock):
					return domainerrors.ErrInsufficientStock.WithDetails(item.Name)
				case errors.Is(err, repository.ErrProductNotFound):
					return domainerrors.ErrProductNotFound.WithDetails(item.Name)
				default:
					return errors.Wrap(err, "failed to decrement stock")
				}
			}
		}

		if err := cartRepo.ClearItems(ctx, cart.ID); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}

		placed = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	return placed, nil
}

func (srv *orderService) checkoutError(ctx context.Context, userID uuid.UUID, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		srv.log(ctx).Warn("Checkout rejected", slog.String("userID", userID.String()), slog.String("reason", appErr.ErrorCode()))

		return err
	}

	srv.log(ctx).Error("Checkout transaction failed", slog.String("userID", userID.String()), slog.Any("error", err))

	return errors.Wrap(err, "failed to execute checkout transaction")
}

func (srv *orderService) ListMyOrders(ctx context.Context, userID uuid.UUID, page usecase.PageRequest) (*usecase.OrderPage, error) {
	page = page.Normalize(defaultOrderPageLimit, maxOrderPageLimit)

	orders, total, err := srv.orderRepo.List(ctx, repository.OrderFilter{
		UserID: &userID,
		Page:   page.Repository(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return &usecase.OrderPage{Orders: orders, Pagination: usecase.NewPagination(page, total)}, nil
}

func (srv *orderService) GetOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*entity.Order, error) {
	order, err := srv.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !order.IsOwnedBy(actor.UserID) {
		return nil, domainerrors.ErrForbidden
	}

	return order, nil
}

// UpdateOrder applies a buyer or admin edit. Status fields sent by a buyer are ignored.
func (srv *orderService) UpdateOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.UpdateOrderInput) (*entity.Order, error) {
	var statusInput *usecase.UpdateOrderStatusInput
	if input.OrderStatus != nil || input.PaymentStatus != nil || input.TrackingNumber != nil {
		if actor.IsAdmin {
			statusInput = &usecase.UpdateOrderStatusInput{
				OrderStatus:    input.OrderStatus,
				PaymentStatus:  input.PaymentStatus,
				TrackingNumber: input.TrackingNumber,
			}
		} else {
			srv.log(ctx).Info("Ignoring status fields from non-admin caller",
				slog.String("orderID", id.String()),
				slog.String("userID", actor.UserID.String()),
			)
		}
	}

	// A tracking number alone is a valid admin edit here. UpdateOrderStatus still requires a status.
	if actor.IsAdmin && input.PaymentDetails == nil && statusInput == nil {
		return nil, domainerrors.ErrStatusRequired
	}

	return srv.updateOrder(ctx, actor, id, statusInput, input.PaymentDetails)
}

// UpdateOrderStatus is the admin status mutation. Legacy "delivered" is stored as completed.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	if input.OrderStatus == nil && input.PaymentStatus == nil {
		return nil, domainerrors.ErrStatusRequired
	}
	if !actor.IsAdmin {
		return nil, domainerrors.ErrForbidden
	}

	return srv.updateOrder(ctx, actor, id, input, nil)
}

func (srv *orderService) updateOrder(
	ctx context.Context,
	actor usecase.Actor,
	id uuid.UUID,
	statusInput *usecase.UpdateOrderStatusInput,
	detailsInput *usecase.PaymentDetailsInput,
) (*entity.Order, error) {
	var (
		nextOrderStatus   *entity.OrderStatus
		nextPaymentStatus *entity.PaymentStatus
	)
	if statusInput != nil {
		var err error
		if nextOrderStatus, nextPaymentStatus, err = parseStatusInput(statusInput); err != nil {
			return nil, err
		}
	}

	if detailsInput == nil && statusInput == nil {
		return srv.GetOrder(ctx, actor, id)
	}

	var (
		details   *entity.PaymentDetails
		storedKey string
	)
	if detailsInput != nil {
		// Ownership and the payment method are checked before anything reaches the bucket.
		order, err := srv.GetOrder(ctx, actor, id)
		if err != nil {
			return nil, err
		}
		if !order.AcceptsPaymentProof() {
			return nil, domainerrors.ErrPaymentProofNotAccepted
		}
		if details, storedKey, err = srv.preparePaymentDetails(ctx, order.ID, detailsInput); err != nil {
			return nil, err
		}
	}

	var (
		order         *entity.Order
		replacedProof string
		statusChanged bool
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		locked, err := orderRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to lock order")
		}
		if !actor.IsAdmin && !locked.IsOwnedBy(actor.UserID) {
			return domainerrors.ErrForbidden
		}

		// Each path writes only its own columns, so a proof upload and a status change never undo each other.
		if details != nil {
			if details.PaymentProof != "" && locked.PaymentDetails.HasStoredProof() {
				replacedProof = locked.PaymentDetails.PaymentProof
			}
			locked.MergePaymentDetails(*details, srv.now())
			if err := orderRepo.UpdatePaymentDetails(ctx, locked); err != nil {
				return orderWriteError(err)
			}
		}

		if statusInput != nil {
			if statusChanged, err = srv.applyStatus(locked, nextOrderStatus, nextPaymentStatus, statusInput.TrackingNumber); err != nil {
				return err
			}
			if err := orderRepo.UpdateStatus(ctx, locked); err != nil {
				return orderWriteError(err)
			}
		}

		order = locked

		return nil
	})
	if err != nil {
		srv.discardProof(ctx, storedKey)

		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		srv.log(ctx).Error("Failed to update order", slog.String("orderID", id.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update order")
	}

	if replacedProof != "" && replacedProof != order.PaymentDetails.PaymentProof {
		srv.discardProof(ctx, replacedProof)
	}

	if statusInput != nil {
		srv.log(ctx).Info("Order status updated",
			slog.String("orderNumber", order.OrderNumber),
			slog.String("orderStatus", string(order.OrderStatus)),
			slog.String("paymentStatus", string(order.PaymentStatus)),
			slog.String("actorID", actor.UserID.String()),
		)
		if statusChanged {
			srv.publish(ctx, entity.OrderEventStatusChanged, order, actor.UserID)
		}
	}
	if detailsInput != nil && detailsInput.PaymentProof != "" {
		srv.log(ctx).Info("Payment proof attached", slog.String("orderNumber", order.OrderNumber))
		srv.publish(ctx, entity.OrderEventPaymentProofUploaded, order, actor.UserID)
	}

	return order, nil
}

func orderWriteError(err error) error {
	if errors.Is(err, repository.ErrOrderNotFound) {
		return domainerrors.ErrOrderNotFound
	}

	return err
}

func parseStatusInput(input *usecase.UpdateOrderStatusInput) (*entity.OrderStatus, *entity.PaymentStatus, error) {
	var (
		orderStatus   *entity.OrderStatus
		paymentStatus *entity.PaymentStatus
	)

	if input.OrderStatus != nil {
		status, ok := entity.ParseOrderStatus(*input.OrderStatus)
		if !ok {
			return nil, nil, domainerrors.ErrInvalidOrderStatus
		}
		orderStatus = &status
	}
	if input.PaymentStatus != nil {
		status, ok := entity.ParsePaymentStatus(*input.PaymentStatus)
		if !ok {
			return nil, nil, domainerrors.ErrInvalidPaymentStatus
		}
		paymentStatus = &status
	}

	return orderStatus, paymentStatus, nil
}

// applyStatus sets the supplied fields and reports whether a status actually changed.
func (srv *orderService) applyStatus(
	order *entity.Order,
	orderStatus *entity.OrderStatus,
	paymentStatus *entity.PaymentStatus,
	trackingNumber *string,
) (bool, error) {
	changed := false

	if orderStatus != nil {
		if srv.store.EnforceStatusTransitions && !order.OrderStatus.CanTransitionTo(*orderStatus) {
			return false, domainerrors.ErrStatusTransitionNotAllowed.WithDetails(
				string(order.OrderStatus) + " -> " + string(*orderStatus),
			)
		}
		changed = changed || order.OrderStatus != *orderStatus
		order.OrderStatus = *orderStatus
	}

	if paymentStatus != nil {
		changed = changed || order.PaymentStatus != *paymentStatus
		order.PaymentStatus = *paymentStatus
		if *paymentStatus == entity.PaymentStatusPaid && (order.PaymentDetails == nil || order.PaymentDetails.PaidAt == nil) {
			paidAt := srv.now()
			order.MergePaymentDetails(entity.PaymentDetails{PaidAt: &paidAt}, paidAt)
		}
	}

	if trackingNumber != nil {
		order.TrackingNumber = strings.TrimSpace(*trackingNumber)
	}

	return changed, nil
}

// preparePaymentDetails enforces the proof size ceiling and moves data URL proofs into the bucket.
// The returned key is non-empty when a new object was written.
func (srv *orderService) preparePaymentDetails(
	ctx context.Context,
	orderID uuid.UUID,
	input *usecase.PaymentDetailsInput,
) (*entity.PaymentDetails, string, error) {
	if len(input.PaymentProof) > srv.store.MaxPaymentProofLength {
		return nil, "", domainerrors.ErrPaymentProofTooLarge
	}
	// Bucket keys are only ever assigned here, never accepted from a client.
	if strings.HasPrefix(input.PaymentProof, entity.PaymentProofKeyPrefix) {
		return nil, "", domainerrors.ErrPaymentProofInvalid.WithDetails("stored proof keys are assigned by the server")
	}

	details := &entity.PaymentDetails{
		TransactionID:            strings.TrimSpace(input.TransactionID),
		PaymentProof:             input.PaymentProof,
		PaymentProofMime:         input.PaymentProofMime,
		PaymentProofOriginalName: input.PaymentProofOriginalName,
	}

	if input.PaymentProof == "" || !srv.proofStorage.Enabled() || !strings.HasPrefix(input.PaymentProof, "data:") {
		return details, "", nil
	}

	stored, err := srv.proofStorage.Save(ctx, orderID, input.PaymentProof)
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, "", err
		}

		return nil, "", errors.Wrap(err, "failed to store payment proof")
	}
	details.PaymentProof = stored.Key
	if details.PaymentProofMime == "" {
		details.PaymentProofMime = stored.ContentType
	}

	return details, stored.Key, nil
}

// discardProof removes a bucket object that no order references. Failures only leave an orphan behind.
func (srv *orderService) discardProof(ctx context.Context, key string) {
	if key == "" {
		return
	}

	if err := srv.proofStorage.Delete(ctx, key); err != nil {
		srv.log(ctx).Warn("Failed to delete unreferenced payment proof", slog.String("key", key), slog.Any("error", err))
	}
}

// DeleteOrder removes an order. Stock is not restored.
func (srv *orderService) DeleteOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID) error {
	if !actor.IsAdmin {
		return domainerrors.ErrOrderDeleteForbidden
	}

	order, err := srv.findOrder(ctx, id)
	if err != nil {
		return err
	}

	if err := srv.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to delete order")
	}

	srv.log(ctx).Info("Order deleted", slog.String("orderNumber", order.OrderNumber), slog.String("actorID", actor.UserID.String()))
	if order.PaymentDetails.HasStoredProof() {
		srv.discardProof(ctx, order.PaymentDetails.PaymentProof)
	}
	srv.publish(ctx, entity.OrderEventDeleted, order, actor.UserID)

	return nil
}

func (srv *orderService) ListOrders(ctx context.Context, input *usecase.ListOrdersInput) (*usecase.OrderPage, error) {
	page := input.Page.Normalize(defaultOrderPageLimit, maxOrderPageLimit)

	filter, err := srv.orderFilter(input)
	if err != nil {
		return nil, err
	}
	filter.Page = page.Repository()

	orders, total, err := srv.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return &usecase.OrderPage{Orders: orders, Pagination: usecase.NewPagination(page, total)}, nil
}

// ExportOrders renders every order matching the filters, ignoring pagination.
func (srv *orderService) ExportOrders(ctx context.Context, input *usecase.ListOrdersInput) (*usecase.OrderExport, error) {
	filter, err := srv.orderFilter(input)
	if err != nil {
		return nil, err
	}

	orders, _, err := srv.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders for export")
	}

	var buf bytes.Buffer
	if err := srv.exporter.Export(&buf, orders); err != nil {
		return nil, errors.Wrap(err, "failed to export orders")
	}

	srv.log(ctx).Info("Orders exported", slog.Int("count", len(orders)))

	return &usecase.OrderExport{
		ContentType: srv.exporter.ContentType(),
		Filename:    "orders-" + srv.now().Format(exportFilenameLayout) + ".csv",
		Body:        buf.Bytes(),
	}, nil
}

func (srv *orderService) orderFilter(input *usecase.ListOrdersInput) (repository.OrderFilter, error) {
	filter := repository.OrderFilter{WithCustomer: true}

	if raw := strings.TrimSpace(input.Status); raw != "" {
		status, ok := entity.ParseOrderStatus(raw)
		if !ok {
			return filter, domainerrors.ErrInvalidOrderStatus
		}
		filter.Status = status
	}
	if raw := strings.TrimSpace(input.PaymentStatus); raw != "" {
		status, ok := entity.ParsePaymentStatus(raw)
		if !ok {
			return filter, domainerrors.ErrInvalidPaymentStatus
		}
		filter.PaymentStatus = status
	}

	var err error
	if filter.From, err = parseDateBound(input.From, false); err != nil {
		return filter, err
	}
	if filter.To, err = parseDateBound(input.To, true); err != nil {
		return filter, err
	}

	return filter, nil
}

// parseDateBound accepts any layout dateparse knows. A bare date used as an
// upper bound is extended to the last instant of that day.
func parseDateBound(raw string, upper bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	t, err := dateparse.ParseLocal(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid date: " + raw)
	}
	if upper && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return &t, nil
}

func (srv *orderService) OrderHistory(ctx context.Context, id uuid.UUID) ([]*entity.OrderEvent, error) {
	if _, err := srv.findOrder(ctx, id); err != nil {
		return nil, err
	}

	events, err := srv.eventRepo.ListByOrderID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list order events")
	}

	return events, nil
}

func (srv *orderService) OrderQRCode(ctx context.Context, actor usecase.Actor, id uuid.UUID) ([]byte, error) {
	order, err := srv.GetOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrCodeService.GenerateOrderQR(order.ID, order.OrderNumber)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate order QR code")
	}

	return png, nil
}

// PaymentProof opens a proof kept in the bucket. Inline proofs are part of the order itself.
func (srv *orderService) PaymentProof(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*usecase.PaymentProofFile, error) {
	order, err := srv.GetOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !order.PaymentDetails.HasStoredProof() {
		return nil, domainerrors.ErrPaymentProofNotFound
	}

	body, contentType, err := srv.proofStorage.Open(ctx, order.PaymentDetails.PaymentProof)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = order.PaymentDetails.PaymentProofMime
	}

	return &usecase.PaymentProofFile{ContentType: contentType, Body: body}, nil
}

func (srv *orderService) findOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// publish emits an order event. Failures are logged and never fail the request.
func (srv *orderService) publish(ctx context.Context, eventType entity.OrderEventType, order *entity.Order, actorID uuid.UUID) {
	event := &service.OrderEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		Type:          string(eventType),
		OrderID:       order.ID.String(),
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID.String(),
		ActorID:       actorID.String(),
		OrderStatus:   string(order.OrderStatus),
		PaymentStatus: string(order.PaymentStatus),
		Total:         order.Total,
		OccurredAt:    srv.now().UTC(),
	}

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order event",
			slog.String("type", event.Type),
			slog.String("orderID", event.OrderID),
			slog.Any("error", err),
		)
	}
}
