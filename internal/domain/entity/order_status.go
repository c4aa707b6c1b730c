package entity

import "strings"

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"

	// legacyOrderStatusDelivered is found on old orders and means completed.
	legacyOrderStatusDelivered = "delivered"
)

// StatusBadge is how a status is presented to shoppers and operators.
type StatusBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// orderStatusBadges is indexed by canonical values only.
var orderStatusBadges = map[OrderStatus]StatusBadge{
	OrderStatusPending:    {Label: "Pending", Color: "yellow"},
	OrderStatusProcessing: {Label: "Processing", Color: "blue"},
	OrderStatusShipped:    {Label: "Shipped", Color: "purple"},
	OrderStatusCompleted:  {Label: "Completed", Color: "green"},
	OrderStatusCancelled:  {Label: "Cancelled", Color: "red"},
}

// OrderStatuses lists canonical order statuses in the order the admin console offers them.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

// CanonicalOrderStatus maps a stored or submitted value onto its canonical form.
// "delivered" becomes completed and an empty value becomes pending.
// Unknown values are returned lower-cased so callers can reject them with IsValid.
func CanonicalOrderStatus(raw string) OrderStatus {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case "":
		return OrderStatusPending
	case legacyOrderStatusDelivered:
		return OrderStatusCompleted
	default:
		return OrderStatus(normalized)
	}
}

// StoredForms returns the trimmed, lower-cased stored values that canonicalize to s.
// Queries filtering on a canonical status match all of them.
func (s OrderStatus) StoredForms() []string {
	switch s {
	case OrderStatusPending:
		return []string{string(OrderStatusPending), ""}
	case OrderStatusCompleted:
		return []string{string(OrderStatusCompleted), legacyOrderStatusDelivered}
	default:
		return []string{string(s)}
	}
}

// ParseOrderStatus canonicalizes raw and reports whether it names a known status.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	status := CanonicalOrderStatus(raw)

	return status, status.IsValid()
}

// IsValid reports whether s is one of the five canonical statuses.
func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusBadges[s]

	return ok
}

// IsTerminal reports whether no further fulfillment step follows s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether next follows s in the linear flow
// pending -> processing -> shipped -> completed, with cancellation allowed
// from any non-terminal status. Staying on the same status is always allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	current := CanonicalOrderStatus(string(s))
	next = CanonicalOrderStatus(string(next))
	if !next.IsValid() {
		return false
	}
	if current == next {
		return true
	}
	if current.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}

	switch current {
	case OrderStatusPending:
		return next == OrderStatusProcessing
	case OrderStatusProcessing:
		return next == OrderStatusShipped
	case OrderStatusShipped:
		return next == OrderStatusCompleted
	default:
		return false
	}
}

// Badge returns the display label and color. Unknown values render as pending.
func (s OrderStatus) Badge() StatusBadge {
	if badge, ok := orderStatusBadges[CanonicalOrderStatus(string(s))]; ok {
		return badge
	}

	return orderStatusBadges[OrderStatusPending]
}

// Label returns the display label of s.
func (s OrderStatus) Label() string {
	return s.Badge().Label
}

// PaymentStatus tracks payment independently of fulfillment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

var paymentStatusBadges = map[PaymentStatus]StatusBadge{
	PaymentStatusPending:  {Label: "Belum dibayar", Color: "yellow"},
	PaymentStatusPaid:     {Label: "Sudah dibayar", Color: "green"},
	PaymentStatusFailed:   {Label: "Pesanan dibatalkan", Color: "red"},
	PaymentStatusRefunded: {Label: "Refund", Color: "gray"},
}

// PaymentStatuses lists payment statuses in display order.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{
		PaymentStatusPending,
		PaymentStatusPaid,
		PaymentStatusFailed,
		PaymentStatusRefunded,
	}
}

// ParsePaymentStatus normalizes raw and reports whether it names a known status.
func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	status := PaymentStatus(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := paymentStatusBadges[status]

	return status, ok
}

// Badge returns the display label and color. Unknown values are shown verbatim.
func (s PaymentStatus) Badge() StatusBadge {
	if badge, ok := paymentStatusBadges[s]; ok {
		return badge
	}

	return StatusBadge{Label: string(s), Color: "gray"}
}

// Label returns the localized label of s.
func (s PaymentStatus) Label() string {
	return s.Badge().Label
}

// PaymentMethod is fixed at checkout.
type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "cod"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	// PaymentMethodMidtrans is accepted and stored but no gateway is called.
	PaymentMethodMidtrans PaymentMethod = "midtrans"
)

// ParsePaymentMethod normalizes raw and reports whether it names a known method.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	method := PaymentMethod(strings.ToLower(strings.TrimSpace(raw)))
	switch method {
	case PaymentMethodCOD, PaymentMethodBankTransfer, PaymentMethodMidtrans:
		return method, true
	default:
		return method, false
	}
}
