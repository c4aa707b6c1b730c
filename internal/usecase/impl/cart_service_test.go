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

type cartServiceFixtures struct {
	service     usecase.CartUsecase
	txManager   *mockRepo.MockTransactionManager
	factory     *mockRepo.MockRepositoryFactory
	cartRepo    *mockRepo.MockCartRepository
	txCartRepo  *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	fx := cartServiceFixtures{
		txManager:   mockRepo.NewMockTransactionManager(t),
		factory:     mockRepo.NewMockRepositoryFactory(t),
		cartRepo:    mockRepo.NewMockCartRepository(t),
		txCartRepo:  mockRepo.NewMockCartRepository(t),
		productRepo: mockRepo.NewMockProductRepository(t),
	}
	fx.service = NewCartService(CartServiceParams{
		TxManager:   fx.txManager,
		CartRepo:    fx.cartRepo,
		ProductRepo: fx.productRepo,
		Logger:      newDiscardLogger(),
	})

	return fx
}

func (fx cartServiceFixtures) expectTx() {
	fx.txManager.RunWith(fx.factory)
	fx.factory.On("NewCartRepository").Return(fx.txCartRepo)
}

func TestCartService_GetCart_CreatesOnFirstUse(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.On("FindByUserID", ctx, userID).Return(nil, repository.ErrCartNotFound)
	fx.cartRepo.On("Create", ctx, mock.MatchedBy(func(cart *entity.Cart) bool {
		return cart.UserID == userID && len(cart.Items) == 0
	})).Return(nil)

	cart, err := fx.service.GetCart(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, cart.UserID)
	assert.NotNil(t, cart.Items)
}

func TestCartService_AddItem_SnapshotsProduct(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := &entity.Product{ID: uuid.New(), Name: "Kopi Gayo", Price: 25000, Stock: 3, IsActive: true}
	cart := &entity.Cart{ID: uuid.New(), UserID: userID}

	fx.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	fx.expectTx()
	fx.txCartRepo.On("FindByUserIDForUpdate", ctx, userID).Return(cart, nil)
	fx.txCartRepo.On("Save", ctx, cart).Return(nil)

	got, err := fx.service.AddItem(ctx, userID, &usecase.CartItemInput{ProductID: product.ID})

	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Quantity)
	assert.Equal(t, int64(25000), got.Items[0].Price)
	assert.Equal(t, "/gambarProduct/placeholder.jpg", got.Items[0].Image)

	// A later price change does not touch the existing line.
	product.Price = 30000
	fx.expectTx()
	got, err = fx.service.AddItem(ctx, userID, &usecase.CartItemInput{ProductID: product.ID, Quantity: 2})

	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)
	assert.Equal(t, int64(25000), got.Items[0].Price)
}

func TestCartService_AddItem_CreatesMissingCart(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := &entity.Product{ID: uuid.New(), Name: "Teh", Price: 15000, IsActive: true}

	fx.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	fx.expectTx()
	fx.txCartRepo.On("FindByUserIDForUpdate", ctx, userID).Return(nil, repository.ErrCartNotFound)
	fx.txCartRepo.On("Create", ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)
	fx.txCartRepo.On("Save", ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)

	got, err := fx.service.AddItem(ctx, userID, &usecase.CartItemInput{ProductID: product.ID, Quantity: 4})

	require.NoError(t, err)
	assert.Equal(t, int64(60000), got.Subtotal())
}

func TestCartService_AddItem_Rejections(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := fx.service.AddItem(ctx, userID, &usecase.CartItemInput{})
	assert.True(t, errors.Is(err, domainerrors.ErrProductIDRequired))

	missing := uuid.New()
	fx.productRepo.On("FindByID", ctx, missing).Return(nil, repository.ErrProductNotFound)
	_, err = fx.service.AddItem(ctx, userID, &usecase.CartItemInput{ProductID: missing})
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	inactive := &entity.Product{ID: uuid.New(), IsActive: false}
	fx.productRepo.On("FindByID", ctx, inactive.ID).Return(inactive, nil)
	_, err = fx.service.AddItem(ctx, userID, &usecase.CartItemInput{ProductID: inactive.ID})
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCartService_UpdateItem(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	cart := &entity.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []entity.CartItem{{ProductID: productID, Price: 1000, Quantity: 1}},
	}

	fx.expectTx()
	fx.txCartRepo.On("FindByUserIDForUpdate", ctx, userID).Return(cart, nil)
	fx.txCartRepo.On("Save", ctx, cart).Return(nil)

	got, err := fx.service.UpdateItem(ctx, userID, &usecase.CartItemInput{ProductID: productID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, got.Items[0].Quantity)

	fx.expectTx()
	_, err = fx.service.UpdateItem(ctx, userID, &usecase.CartItemInput{ProductID: uuid.New(), Quantity: 1})
	assert.True(t, errors.Is(err, domainerrors.ErrItemNotInCart))

	fx.expectTx()
	got, err = fx.service.UpdateItem(ctx, userID, &usecase.CartItemInput{ProductID: productID, Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestCartService_UpdateItem_NoCart(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.expectTx()
	fx.txCartRepo.On("FindByUserIDForUpdate", ctx, userID).Return(nil, repository.ErrCartNotFound)

	_, err := fx.service.UpdateItem(ctx, userID, &usecase.CartItemInput{ProductID: uuid.New(), Quantity: 1})

	assert.True(t, errors.Is(err, domainerrors.ErrCartNotFound))
	fx.txCartRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCartService_RemoveItem(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	keep, drop := uuid.New(), uuid.New()
	cart := &entity.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []entity.CartItem{{ProductID: keep, Quantity: 1}, {ProductID: drop, Quantity: 2}},
	}

	fx.expectTx()
	fx.txCartRepo.On("FindByUserIDForUpdate", ctx, userID).Return(cart, nil)
	fx.txCartRepo.On("Save", ctx, cart).Return(nil)

	got, err := fx.service.RemoveItem(ctx, userID, drop)

	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, keep, got.Items[0].ProductID)
}
