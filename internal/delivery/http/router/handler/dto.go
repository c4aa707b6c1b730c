package handler

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Provider  string    `json:"provider"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role.String(),
		Provider:  string(user.Provider),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toUserResponses(users []*entity.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}

	return out
}

// ProductResponse is a catalog entry.
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Images      []string  `json:"images"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProductResponse(product *entity.Product) *ProductResponse {
	if product == nil {
		return nil
	}

	images := product.Images
	if images == nil {
		images = []string{}
	}

	return &ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Image:       product.PrimaryImage(),
		Images:      images,
		Stock:       product.Stock,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toProductResponses(products []*entity.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}

	return out
}

// LineItemResponse is a cart or order line with its frozen snapshot.
type LineItemResponse struct {
	ProductID uuid.UUID        `json:"productId"`
	Name      string           `json:"name"`
	Price     int64            `json:"price"`
	Quantity  int              `json:"quantity"`
	Image     string           `json:"image"`
	LineTotal int64            `json:"lineTotal"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// CartResponse is the caller's cart.
type CartResponse struct {
	ID        uuid.UUID          `json:"id"`
	Items     []LineItemResponse `json:"items"`
	Subtotal  int64              `json:"subtotal"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func toCartResponse(cart *entity.Cart) *CartResponse {
	items := make([]LineItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, LineItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
			LineTotal: item.LineTotal(),
			Product:   toProductResponse(item.Product),
		})
	}

	return &CartResponse{
		ID:        cart.ID,
		Items:     items,
		Subtotal:  cart.Subtotal(),
		UpdatedAt: cart.UpdatedAt,
	}
}

// ShippingAddressPayload is both the checkout input and the stored address.
type ShippingAddressPayload struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Notes      string `json:"notes,omitempty"`
}

func (p *ShippingAddressPayload) toEntity() *entity.ShippingAddress {
	if p == nil {
		return nil
	}

	return &entity.ShippingAddress{
		FullName:   p.FullName,
		Phone:      p.Phone,
		Address:    p.Address,
		City:       p.City,
		Province:   p.Province,
		PostalCode: p.PostalCode,
		Notes:      p.Notes,
	}
}

// PaymentDetailsResponse is the stored payment evidence.
type PaymentDetailsResponse struct {
	TransactionID            string     `json:"transactionId,omitempty"`
	PaymentProof             string     `json:"paymentProof,omitempty"`
	PaymentProofURL          string     `json:"paymentProofUrl,omitempty"`
	PaymentProofMime         string     `json:"paymentProofMime,omitempty"`
	PaymentProofOriginalName string     `json:"paymentProofOriginalName,omitempty"`
	PaymentProofUploadedAt   *time.Time `json:"paymentProofUploadedAt,omitempty"`
	PaidAt                   *time.Time `json:"paidAt,omitempty"`
}

// CustomerResponse is the owner summary of an order.
type CustomerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderResponse is an order as shoppers and admins see it. Statuses are always canonical.
type OrderResponse struct {
	ID                 uuid.UUID               `json:"id"`
	OrderNumber        string                  `json:"orderNumber"`
	UserID             uuid.UUID               `json:"userId"`
	Customer           *CustomerResponse       `json:"customer,omitempty"`
	Items              []LineItemResponse      `json:"items"`
	ShippingAddress    ShippingAddressPayload  `json:"shippingAddress"`
	PaymentMethod      string                  `json:"paymentMethod"`
	PaymentStatus      string                  `json:"paymentStatus"`
	PaymentStatusBadge entity.StatusBadge      `json:"paymentStatusBadge"`
	OrderStatus        string                  `json:"orderStatus"`
	OrderStatusBadge   entity.StatusBadge      `json:"orderStatusBadge"`
	Subtotal           int64                   `json:"subtotal"`
	ShippingCost       int64                   `json:"shippingCost"`
	Total              int64                   `json:"total"`
	PaymentDetails     *PaymentDetailsResponse `json:"paymentDetails,omitempty"`
	TrackingNumber     string                  `json:"trackingNumber,omitempty"`
	Notes              string                  `json:"notes,omitempty"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}

func toOrderResponse(order *entity.Order) *OrderResponse {
	status := entity.CanonicalOrderStatus(string(order.OrderStatus))

	items := make([]LineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, LineItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
			LineTotal: item.LineTotal(),
			Product:   toProductResponse(item.Product),
		})
	}

	out := &OrderResponse{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Items:       items,
		ShippingAddress: ShippingAddressPayload{
			FullName:   order.ShippingAddress.FullName,
			Phone:      order.ShippingAddress.Phone,
			Address:    order.ShippingAddress.Address,
			City:       order.ShippingAddress.City,
			Province:   order.ShippingAddress.Province,
			PostalCode: order.ShippingAddress.PostalCode,
			Notes:      order.ShippingAddress.Notes,
		},
		PaymentMethod:      string(order.PaymentMethod),
		PaymentStatus:      string(order.PaymentStatus),
		PaymentStatusBadge: order.PaymentStatus.Badge(),
		OrderStatus:        string(status),
		OrderStatusBadge:   status.Badge(),
		Subtotal:           order.Subtotal,
		ShippingCost:       order.ShippingCost,
		Total:              order.Total,
		TrackingNumber:     order.TrackingNumber,
		Notes:              order.Notes,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}

	if order.Customer != nil {
		out.Customer = &CustomerResponse{Name: order.Customer.Name, Email: order.Customer.Email}
	}

	if details := order.PaymentDetails; details != nil {
		out.PaymentDetails = &PaymentDetailsResponse{
			TransactionID:            details.TransactionID,
			PaymentProof:             details.PaymentProof,
			PaymentProofMime:         details.PaymentProofMime,
			PaymentProofOriginalName: details.PaymentProofOriginalName,
			PaymentProofUploadedAt:   details.PaymentProofUploadedAt,
			PaidAt:                   details.PaidAt,
		}
		if details.HasStoredProof() {
			out.PaymentDetails.PaymentProof = ""
			out.PaymentDetails.PaymentProofURL = "/orders/" + order.ID.String() + "/payment-proof"
		}
	}

	return out
}

func toOrderResponses(orders []*entity.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}

	return out
}

// OrderEventResponse is one entry of an order's history.
type OrderEventResponse struct {
	ID            uuid.UUID  `json:"id"`
	Type          string     `json:"type"`
	OrderStatus   string     `json:"orderStatus"`
	PaymentStatus string     `json:"paymentStatus"`
	Total         int64      `json:"total"`
	ActorID       *uuid.UUID `json:"actorId,omitempty"`
	OccurredAt    time.Time  `json:"occurredAt"`
}

func toOrderEventResponses(events []*entity.OrderEvent) []*OrderEventResponse {
	out := make([]*OrderEventResponse, 0, len(events))
	for _, event := range events {
		item := &OrderEventResponse{
			ID:            event.ID,
			Type:          string(event.Type),
			OrderStatus:   string(entity.CanonicalOrderStatus(string(event.OrderStatus))),
			PaymentStatus: string(event.PaymentStatus),
			Total:         event.Total,
			OccurredAt:    event.OccurredAt,
		}
		if event.ActorID != uuid.Nil {
			actorID := event.ActorID
			item.ActorID = &actorID
		}
		out = append(out, item)
	}

	return out
}

// StatusOption is one selectable status with its badge.
type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// StatusesResponse lists the canonical order statuses and payment statuses.
type StatusesResponse struct {
	OrderStatuses   []StatusOption `json:"orderStatuses"`
	PaymentStatuses []StatusOption `json:"paymentStatuses"`
}

func newStatusesResponse() *StatusesResponse {
	out := &StatusesResponse{}
	for _, status := range entity.OrderStatuses() {
		badge := status.Badge()
		out.OrderStatuses = append(out.OrderStatuses, StatusOption{Value: string(status), Label: badge.Label, Color: badge.Color})
	}
	for _, status := range entity.PaymentStatuses() {
		badge := status.Badge()
		out.PaymentStatuses = append(out.PaymentStatuses, StatusOption{Value: string(status), Label: badge.Label, Color: badge.Color})
	}

	return out
}

// ContactResponse is a contact form message.
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toContactResponse(message *entity.ContactMessage) *ContactResponse {
	return &ContactResponse{
		ID:        message.ID,
		FirstName: message.FirstName,
		LastName:  message.LastName,
		Email:     message.Email,
		Phone:     message.Phone,
		Subject:   message.Subject,
		Message:   message.Message,
		Status:    string(message.Status),
		CreatedAt: message.CreatedAt,
		UpdatedAt: message.UpdatedAt,
	}
}

func toContactResponses(messages []*entity.ContactMessage) []*ContactResponse {
	out := make([]*ContactResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, toContactResponse(message))
	}

	return out
}

// SubscriberResponse is a newsletter signup.
type SubscriberResponse struct {
	Email        string    `json:"email"`
	IsActive     bool      `json:"isActive"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// DashboardOverviewResponse holds the headline counters.
type DashboardOverviewResponse struct {
	TotalOrders      int64 `json:"totalOrders"`
	PendingOrders    int64 `json:"pendingOrders"`
	CompletedOrders  int64 `json:"completedOrders"`
	CancelledOrders  int64 `json:"cancelledOrders"`
	TotalRevenue     int64 `json:"totalRevenue"`
	TotalProducts    int64 `json:"totalProducts"`
	LowStockProducts int64 `json:"lowStockProducts"`
	TotalCustomers   int64 `json:"totalCustomers"`
	NewCustomers     int64 `json:"newCustomers"`
	NewMessages      int64 `json:"newMessages"`
	TotalSubscribers int64 `json:"totalSubscribers"`
}

// TopProductResponse is a best seller.
type TopProductResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	TotalSold int64     `json:"totalSold"`
	Revenue   int64     `json:"revenue"`
}

// MonthlyRevenueResponse is paid revenue of one month.
type MonthlyRevenueResponse struct {
	Year    int   `json:"year"`
	Month   int   `json:"month"`
	Revenue int64 `json:"revenue"`
	Orders  int64 `json:"orders"`
}

// StatusCountResponse is the number of orders in a status.
type StatusCountResponse struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int64  `json:"count"`
}

// DashboardStatsResponse is the admin dashboard payload.
type DashboardStatsResponse struct {
	Overview       DashboardOverviewResponse `json:"overview"`
	RecentOrders   []*OrderResponse          `json:"recentOrders"`
	TopProducts    []TopProductResponse      `json:"topProducts"`
	RevenueByMonth []MonthlyRevenueResponse  `json:"revenueByMonth"`
	OrdersByStatus []StatusCountResponse     `json:"ordersByStatus"`
}

func toDashboardStatsResponse(stats *entity.DashboardStats) *DashboardStatsResponse {
	overview := stats.Overview
	out := &DashboardStatsResponse{
		Overview: DashboardOverviewResponse{
			TotalOrders:      overview.TotalOrders,
			PendingOrders:    overview.PendingOrders,
			CompletedOrders:  overview.CompletedOrders,
			CancelledOrders:  overview.CancelledOrders,
			TotalRevenue:     overview.TotalRevenue,
			TotalProducts:    overview.TotalProducts,
			LowStockProducts: overview.LowStockProducts,
			TotalCustomers:   overview.TotalCustomers,
			NewCustomers:     overview.NewCustomers,
			NewMessages:      overview.NewMessages,
			TotalSubscribers: overview.TotalSubscribers,
		},
		RecentOrders:   toOrderResponses(stats.RecentOrders),
		TopProducts:    make([]TopProductResponse, 0, len(stats.TopProducts)),
		RevenueByMonth: make([]MonthlyRevenueResponse, 0, len(stats.RevenueByMonth)),
		OrdersByStatus: make([]StatusCountResponse, 0, len(stats.OrdersByStatus)),
	}

	for _, product := range stats.TopProducts {
		out.TopProducts = append(out.TopProducts, TopProductResponse(product))
	}
	for _, month := range stats.RevenueByMonth {
		out.RevenueByMonth = append(out.RevenueByMonth, MonthlyRevenueResponse(month))
	}
	for _, count := range stats.OrdersByStatus {
		status := entity.CanonicalOrderStatus(string(count.Status))
		out.OrdersByStatus = append(out.OrdersByStatus, StatusCountResponse{
			Status: string(status),
			Label:  status.Label(),
			Count:  count.Count,
		})
	}

	return out
}
