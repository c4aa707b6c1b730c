package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type cartService struct {
	txManager   repository.TransactionManager
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager:   params.TxManager,
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrCartNotFound) {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	cart = &entity.Cart{UserID: userID, Items: []entity.CartItem{}}
	if err := srv.cartRepo.Create(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to create cart")
	}

	return cart, nil
}

func (srv *cartService) AddItem(ctx context.Context, userID uuid.UUID, input *usecase.CartItemInput) (*entity.Cart, error) {
	if input.ProductID == uuid.Nil {
		return nil, domainerrors.ErrProductIDRequired
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}
	if !product.IsActive {
		return nil, domainerrors.ErrProductNotFound
	}

	return srv.mutate(ctx, userID, true, func(cart *entity.Cart) error {
		cart.AddItem(product, quantity)
		srv.log(ctx).Debug("Cart item added", slog.String("productID", product.ID.String()), slog.Int("quantity", quantity))

		return nil
	})
}

func (srv *cartService) UpdateItem(ctx context.Context, userID uuid.UUID, input *usecase.CartItemInput) (*entity.Cart, error) {
	if input.ProductID == uuid.Nil {
		return nil, domainerrors.ErrProductIDRequired
	}

	return srv.mutate(ctx, userID, false, func(cart *entity.Cart) error {
		if !cart.SetQuantity(input.ProductID, input.Quantity) {
			return domainerrors.ErrItemNotInCart
		}

		return nil
	})
}

func (srv *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*entity.Cart, error) {
	if productID == uuid.Nil {
		return nil, domainerrors.ErrProductIDRequired
	}

	return srv.mutate(ctx, userID, false, func(cart *entity.Cart) error {
		cart.RemoveItem(productID)

		return nil
	})
}

// mutate locks the cart row, applies fn and saves the result. With create the cart is made on demand.
func (srv *cartService) mutate(ctx context.Context, userID uuid.UUID, create bool, fn func(*entity.Cart) error) (*entity.Cart, error) {
	var saved *entity.Cart

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		cart, err := cartRepo.FindByUserIDForUpdate(ctx, userID)
		if errors.Is(err, repository.ErrCartNotFound) {
			if !create {
				return domainerrors.ErrCartNotFound
			}
			cart = &entity.Cart{UserID: userID, Items: []entity.CartItem{}}
			if err := cartRepo.Create(ctx, cart); err != nil {
				return errors.Wrap(err, "failed to create cart")
			}
		} else if err != nil {
			return errors.Wrap(err, "failed to load cart")
		}

		if err := fn(cart); err != nil {
			return err
		}

		if err := cartRepo.Save(ctx, cart); err != nil {
			return errors.Wrap(err, "failed to save cart")
		}
		saved = cart

		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}
