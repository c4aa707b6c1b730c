package mocks

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockContactRepository struct {
	mock.Mock
}

func NewMockContactRepository(t *testing.T) *MockContactRepository {
	m := &MockContactRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockContactRepository) Create(ctx context.Context, message *entity.ContactMessage) error {
	return m.Called(ctx, message).Error(0)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ContactMessage, error) {
	args := m.Called(ctx, id)
	message, _ := args.Get(0).(*entity.ContactMessage)

	return message, args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context, filter repository.ContactFilter) ([]*entity.ContactMessage, int64, error) {
	args := m.Called(ctx, filter)
	messages, _ := args.Get(0).([]*entity.ContactMessage)

	return messages, args.Get(1).(int64), args.Error(2)
}

func (m *MockContactRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ContactStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockNewsletterRepository struct {
	mock.Mock
}

func NewMockNewsletterRepository(t *testing.T) *MockNewsletterRepository {
	m := &MockNewsletterRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNewsletterRepository) FindByEmail(ctx context.Context, email string) (*entity.NewsletterSubscriber, error) {
	args := m.Called(ctx, email)
	subscriber, _ := args.Get(0).(*entity.NewsletterSubscriber)

	return subscriber, args.Error(1)
}

func (m *MockNewsletterRepository) Create(ctx context.Context, subscriber *entity.NewsletterSubscriber) error {
	return m.Called(ctx, subscriber).Error(0)
}

func (m *MockNewsletterRepository) Update(ctx context.Context, subscriber *entity.NewsletterSubscriber) error {
	return m.Called(ctx, subscriber).Error(0)
}

type MockStatsRepository struct {
	mock.Mock
}

func NewMockStatsRepository(t *testing.T) *MockStatsRepository {
	m := &MockStatsRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStatsRepository) Overview(ctx context.Context, query repository.OverviewQuery) (*entity.DashboardOverview, error) {
	args := m.Called(ctx, query)
	overview, _ := args.Get(0).(*entity.DashboardOverview)

	return overview, args.Error(1)
}

func (m *MockStatsRepository) RecentOrders(ctx context.Context, limit int) ([]*entity.Order, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]*entity.Order)

	return orders, args.Error(1)
}

func (m *MockStatsRepository) TopProducts(ctx context.Context, limit int) ([]entity.TopProduct, error) {
	args := m.Called(ctx, limit)
	products, _ := args.Get(0).([]entity.TopProduct)

	return products, args.Error(1)
}

func (m *MockStatsRepository) RevenueByMonth(ctx context.Context, since time.Time) ([]entity.MonthlyRevenue, error) {
	args := m.Called(ctx, since)
	revenue, _ := args.Get(0).([]entity.MonthlyRevenue)

	return revenue, args.Error(1)
}

func (m *MockStatsRepository) OrdersByStatus(ctx context.Context) ([]entity.StatusCount, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).([]entity.StatusCount)

	return counts, args.Error(1)
}
