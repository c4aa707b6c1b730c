// Package mocks provides testify mocks of the use case interfaces for handler tests.
package mocks

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthUsecase struct {
	mock.Mock
}

func NewMockAuthUsecase(t *testing.T) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthUsecase) authOutput(args mock.Arguments) (*usecase.AuthOutput, error) {
	output, _ := args.Get(0).(*usecase.AuthOutput)

	return output, args.Error(1)
}

func (m *MockAuthUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	return m.authOutput(m.Called(ctx, input))
}

func (m *MockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	return m.authOutput(m.Called(ctx, input))
}

func (m *MockAuthUsecase) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.AuthOutput, error) {
	return m.authOutput(m.Called(ctx, input))
}

func (m *MockAuthUsecase) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.AuthOutput, error) {
	return m.authOutput(m.Called(ctx, input))
}

func (m *MockAuthUsecase) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthUsecase) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

type MockProductUsecase struct {
	mock.Mock
}

func NewMockProductUsecase(t *testing.T) *MockProductUsecase {
	m := &MockProductUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProductUsecase) ListProducts(ctx context.Context, input *usecase.ListProductsInput) (*usecase.ProductPage, error) {
	args := m.Called(ctx, input)
	page, _ := args.Get(0).(*usecase.ProductPage)

	return page, args.Error(1)
}

func (m *MockProductUsecase) SearchProducts(ctx context.Context, input *usecase.SearchProductsInput) ([]*entity.Product, error) {
	args := m.Called(ctx, input)
	products, _ := args.Get(0).([]*entity.Product)

	return products, args.Error(1)
}

func (m *MockProductUsecase) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockProductUsecase) AdminListProducts(ctx context.Context, input *usecase.ListProductsInput) (*usecase.ProductPage, error) {
	args := m.Called(ctx, input)
	page, _ := args.Get(0).(*usecase.ProductPage)

	return page, args.Error(1)
}

func (m *MockProductUsecase) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	args := m.Called(ctx, input)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockProductUsecase) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	args := m.Called(ctx, id, input)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockProductUsecase) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCartUsecase struct {
	mock.Mock
}

func NewMockCartUsecase(t *testing.T) *MockCartUsecase {
	m := &MockCartUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCartUsecase) cart(args mock.Arguments) (*entity.Cart, error) {
	cart, _ := args.Get(0).(*entity.Cart)

	return cart, args.Error(1)
}

func (m *MockCartUsecase) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	return m.cart(m.Called(ctx, userID))
}

func (m *MockCartUsecase) AddItem(ctx context.Context, userID uuid.UUID, input *usecase.CartItemInput) (*entity.Cart, error) {
	return m.cart(m.Called(ctx, userID, input))
}

func (m *MockCartUsecase) UpdateItem(ctx context.Context, userID uuid.UUID, input *usecase.CartItemInput) (*entity.Cart, error) {
	return m.cart(m.Called(ctx, userID, input))
}

func (m *MockCartUsecase) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*entity.Cart, error) {
	return m.cart(m.Called(ctx, userID, productID))
}

type MockOrderUsecase struct {
	mock.Mock
}

func NewMockOrderUsecase(t *testing.T) *MockOrderUsecase {
	m := &MockOrderUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderUsecase) order(args mock.Arguments) (*entity.Order, error) {
	order, _ := args.Get(0).(*entity.Order)

	return order, args.Error(1)
}

func (m *MockOrderUsecase) page(args mock.Arguments) (*usecase.OrderPage, error) {
	page, _ := args.Get(0).(*usecase.OrderPage)

	return page, args.Error(1)
}

func (m *MockOrderUsecase) Checkout(ctx context.Context, input *usecase.CheckoutInput) (*entity.Order, error) {
	return m.order(m.Called(ctx, input))
}

func (m *MockOrderUsecase) ListMyOrders(ctx context.Context, userID uuid.UUID, page usecase.PageRequest) (*usecase.OrderPage, error) {
	return m.page(m.Called(ctx, userID, page))
}

func (m *MockOrderUsecase) GetOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*entity.Order, error) {
	return m.order(m.Called(ctx, actor, id))
}

func (m *MockOrderUsecase) UpdateOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.UpdateOrderInput) (*entity.Order, error) {
	return m.order(m.Called(ctx, actor, id, input))
}

func (m *MockOrderUsecase) UpdateOrderStatus(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	return m.order(m.Called(ctx, actor, id, input))
}

func (m *MockOrderUsecase) DeleteOrder(ctx context.Context, actor usecase.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockOrderUsecase) ListOrders(ctx context.Context, input *usecase.ListOrdersInput) (*usecase.OrderPage, error) {
	return m.page(m.Called(ctx, input))
}

func (m *MockOrderUsecase) ExportOrders(ctx context.Context, input *usecase.ListOrdersInput) (*usecase.OrderExport, error) {
	args := m.Called(ctx, input)
	export, _ := args.Get(0).(*usecase.OrderExport)

	return export, args.Error(1)
}

func (m *MockOrderUsecase) OrderHistory(ctx context.Context, id uuid.UUID) ([]*entity.OrderEvent, error) {
	args := m.Called(ctx, id)
	events, _ := args.Get(0).([]*entity.OrderEvent)

	return events, args.Error(1)
}

func (m *MockOrderUsecase) OrderQRCode(ctx context.Context, actor usecase.Actor, id uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, actor, id)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}

func (m *MockOrderUsecase) PaymentProof(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*usecase.PaymentProofFile, error) {
	args := m.Called(ctx, actor, id)
	file, _ := args.Get(0).(*usecase.PaymentProofFile)

	return file, args.Error(1)
}

type MockContactUsecase struct {
	mock.Mock
}

func NewMockContactUsecase(t *testing.T) *MockContactUsecase {
	m := &MockContactUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockContactUsecase) Submit(ctx context.Context, input *usecase.SubmitContactInput) (*entity.ContactMessage, error) {
	args := m.Called(ctx, input)
	message, _ := args.Get(0).(*entity.ContactMessage)

	return message, args.Error(1)
}

func (m *MockContactUsecase) List(ctx context.Context, input *usecase.ListContactsInput) (*usecase.ContactPage, error) {
	args := m.Called(ctx, input)
	page, _ := args.Get(0).(*usecase.ContactPage)

	return page, args.Error(1)
}

func (m *MockContactUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.ContactMessage, error) {
	args := m.Called(ctx, id, status)
	message, _ := args.Get(0).(*entity.ContactMessage)

	return message, args.Error(1)
}

func (m *MockContactUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockNewsletterUsecase struct {
	mock.Mock
}

func NewMockNewsletterUsecase(t *testing.T) *MockNewsletterUsecase {
	m := &MockNewsletterUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNewsletterUsecase) Subscribe(ctx context.Context, email string) (*usecase.SubscribeOutput, error) {
	args := m.Called(ctx, email)
	output, _ := args.Get(0).(*usecase.SubscribeOutput)

	return output, args.Error(1)
}

type MockUserUsecase struct {
	mock.Mock
}

func NewMockUserUsecase(t *testing.T) *MockUserUsecase {
	m := &MockUserUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, input *usecase.ListUsersInput) (*usecase.UserPage, error) {
	args := m.Called(ctx, input)
	page, _ := args.Get(0).(*usecase.UserPage)

	return page, args.Error(1)
}

func (m *MockUserUsecase) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, actorID, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	args := m.Called(ctx, actorID, id, input)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	return m.Called(ctx, actorID, id).Error(0)
}

type MockStatsUsecase struct {
	mock.Mock
}

func NewMockStatsUsecase(t *testing.T) *MockStatsUsecase {
	m := &MockStatsUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStatsUsecase) DashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*entity.DashboardStats)

	return stats, args.Error(1)
}

type MockOrderEventUsecase struct {
	mock.Mock
}

func NewMockOrderEventUsecase(t *testing.T) *MockOrderEventUsecase {
	m := &MockOrderEventUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderEventUsecase) RecordOrderEvent(ctx context.Context, messageID string, event *service.OrderEvent) (bool, error) {
	args := m.Called(ctx, messageID, event)

	return args.Bool(0), args.Error(1)
}
