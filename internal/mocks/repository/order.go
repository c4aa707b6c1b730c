package mocks

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository(t *testing.T) *MockOrderRepository {
	m := &MockOrderRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*entity.Order)

	return order, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*entity.Order)

	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*entity.Order)

	return order, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) UpdatePaymentDetails(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) CountNonCanonicalStatuses(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) NormalizeStatuses(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

type MockOrderEventRepository struct {
	mock.Mock
}

func NewMockOrderEventRepository(t *testing.T) *MockOrderEventRepository {
	m := &MockOrderEventRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderEventRepository) Append(ctx context.Context, event *entity.OrderEvent) (bool, error) {
	args := m.Called(ctx, event)

	return args.Bool(0), args.Error(1)
}

func (m *MockOrderEventRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderEvent, error) {
	args := m.Called(ctx, orderID)
	events, _ := args.Get(0).([]*entity.OrderEvent)

	return events, args.Error(1)
}
