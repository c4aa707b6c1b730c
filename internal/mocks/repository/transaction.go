// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"testing"

	"storefront/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// TxFunc is the callback handed to TransactionManager.Execute.
type TxFunc = func(repository.RepositoryFactory) error

type MockTransactionManager struct {
	mock.Mock
}

func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Execute returns the configured error, or runs fn when the expectation returns a func(TxFunc) error.
func (m *MockTransactionManager) Execute(ctx context.Context, fn TxFunc) error {
	args := m.Called(ctx, fn)
	if run, ok := args.Get(0).(func(TxFunc) error); ok {
		return run(fn)
	}

	return args.Error(0)
}

// RunWith expects one Execute call that runs its callback against factory.
func (m *MockTransactionManager) RunWith(factory repository.RepositoryFactory) *mock.Call {
	return m.On("Execute", mock.Anything, mock.Anything).Return(func(fn TxFunc) error {
		return fn(factory)
	}).Once()
}

type MockRepositoryFactory struct {
	mock.Mock
}

func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) NewUserRepository() repository.UserRepository {
	repo, _ := m.Called().Get(0).(repository.UserRepository)

	return repo
}

func (m *MockRepositoryFactory) NewAuthRepository() repository.AuthRepository {
	repo, _ := m.Called().Get(0).(repository.AuthRepository)

	return repo
}

func (m *MockRepositoryFactory) NewRefreshTokenRepository() repository.RefreshTokenRepository {
	repo, _ := m.Called().Get(0).(repository.RefreshTokenRepository)

	return repo
}

func (m *MockRepositoryFactory) NewProductRepository() repository.ProductRepository {
	repo, _ := m.Called().Get(0).(repository.ProductRepository)

	return repo
}

func (m *MockRepositoryFactory) NewCartRepository() repository.CartRepository {
	repo, _ := m.Called().Get(0).(repository.CartRepository)

	return repo
}

func (m *MockRepositoryFactory) NewOrderRepository() repository.OrderRepository {
	repo, _ := m.Called().Get(0).(repository.OrderRepository)

	return repo
}
