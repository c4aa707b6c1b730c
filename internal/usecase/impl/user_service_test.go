package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userServiceFixtures struct {
	service          usecase.UserUsecase
	txManager        *mockRepo.MockTransactionManager
	factory          *mockRepo.MockRepositoryFactory
	userRepo         *mockRepo.MockUserRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
}

func createTestUserService(t *testing.T) userServiceFixtures {
	fx := userServiceFixtures{
		txManager:        mockRepo.NewMockTransactionManager(t),
		factory:          mockRepo.NewMockRepositoryFactory(t),
		userRepo:         mockRepo.NewMockUserRepository(t),
		refreshTokenRepo: mockRepo.NewMockRefreshTokenRepository(t),
	}
	fx.service = NewUserService(UserServiceParams{
		TxManager: fx.txManager,
		UserRepo:  fx.userRepo,
		Logger:    newDiscardLogger(),
	})

	return fx
}

func (fx userServiceFixtures) expectTx() {
	fx.txManager.RunWith(fx.factory)
	fx.factory.On("NewUserRepository").Return(fx.userRepo)
	fx.factory.On("NewRefreshTokenRepository").Return(fx.refreshTokenRepo).Maybe()
}

func TestUserService_ListUsers(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.On("List", ctx, repository.UserFilter{
		Role:   entity.RoleAdmin,
		Search: "siti",
		Page:   repository.Page{Offset: 0, Limit: 20},
	}).Return([]*entity.User{{Name: "Siti"}}, int64(1), nil)

	page, err := fx.service.ListUsers(ctx, &usecase.ListUsersInput{Role: "ADMIN", Search: " siti "})

	require.NoError(t, err)
	assert.Len(t, page.Users, 1)

	_, err = fx.service.ListUsers(ctx, &usecase.ListUsersInput{Role: "root"})
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestUserService_UpdateUser_DeactivateRevokesSessions(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	actorID := uuid.New()
	user := &entity.User{ID: uuid.New(), Name: "Budi", Role: entity.RoleUser, IsActive: true}

	fx.expectTx()
	fx.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	fx.userRepo.On("Update", ctx, user).Return(nil)
	fx.refreshTokenRepo.On("DeleteRefreshTokensByUserID", ctx, user.ID).Return(nil)

	inactive := false
	role := "Admin"
	updated, err := fx.service.UpdateUser(ctx, actorID, user.ID, &usecase.UpdateUserInput{Role: &role, IsActive: &inactive})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)
	assert.False(t, updated.IsActive)
}

func TestUserService_UpdateUser_SelfProtection(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin, IsActive: true}

	fx.userRepo.On("FindByID", ctx, admin.ID).Return(admin, nil)

	fx.expectTx()
	role := "user"
	_, err := fx.service.UpdateUser(ctx, admin.ID, admin.ID, &usecase.UpdateUserInput{Role: &role})
	assertErrorCode(t, err, "FORBIDDEN")

	fx.expectTx()
	inactive := false
	_, err = fx.service.UpdateUser(ctx, admin.ID, admin.ID, &usecase.UpdateUserInput{IsActive: &inactive})
	assertErrorCode(t, err, "FORBIDDEN")

	fx.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_DeleteUser(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	actorID := uuid.New()

	err := fx.service.DeleteUser(ctx, actorID, actorID)
	assertErrorCode(t, err, "FORBIDDEN")

	withOrders := uuid.New()
	fx.userRepo.On("Delete", ctx, withOrders).Return(repository.ErrUserHasOrders)
	err = fx.service.DeleteUser(ctx, actorID, withOrders)
	assertErrorCode(t, err, "CONFLICT")

	missing := uuid.New()
	fx.userRepo.On("Delete", ctx, missing).Return(repository.ErrUserNotFound)
	err = fx.service.DeleteUser(ctx, actorID, missing)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	target := uuid.New()
	fx.userRepo.On("Delete", ctx, target).Return(nil)
	require.NoError(t, fx.service.DeleteUser(ctx, actorID, target))
}
