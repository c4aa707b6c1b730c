package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (repo *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	return repo.find(ctx, userID, false)
}

// FindByUserIDForUpdate takes a row lock on the cart. Only meaningful inside a transaction.
func (repo *cartRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	return repo.find(ctx, userID, true)
}

func (repo *cartRepository) find(ctx context.Context, userID uuid.UUID, lock bool) (*entity.Cart, error) {
	db := repo.db.WithContext(ctx)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var cartM model.CartModel
	if err := db.Where("user_id = ?", userID).First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	// Items are loaded separately so the row lock above stays on the cart row only.
	var items []model.CartItemModel
	if err := repo.db.WithContext(ctx).
		Where("cart_id = ?", cartM.ID).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load cart items")
	}
	cartM.Items = items

	return toCartDomain(&cartM), nil
}

// Create inserts an empty cart. A concurrent create for the same user is absorbed and the existing cart is returned.
func (repo *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	cartM := &model.CartModel{ID: cart.ID, UserID: cart.UserID}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(cartM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	existing, err := repo.FindByUserID(ctx, cart.UserID)
	if err != nil {
		return err
	}
	*cart = *existing

	return nil
}

// Save replaces the stored lines with cart.Items.
func (repo *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("cart_id = ?", cart.ID).Delete(&model.CartItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to replace cart items")
	}

	if len(cart.Items) > 0 {
		items := make([]model.CartItemModel, 0, len(cart.Items))
		for i, item := range cart.Items {
			items = append(items, model.CartItemModel{
				CartID:    cart.ID,
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
				Image:     item.Image,
				Position:  i,
			})
		}
		if err := db.Create(&items).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to save cart items")
		}
	}

	return repo.touch(ctx, cart)
}

func (repo *cartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&model.CartItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear cart")
	}

	return repo.touch(ctx, &entity.Cart{ID: cartID})
}

func (repo *cartRepository) touch(ctx context.Context, cart *entity.Cart) error {
	now := time.Now()
	result := repo.db.WithContext(ctx).Model(&model.CartModel{}).Where("id = ?", cart.ID).Update("updated_at", now)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update cart")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}
	cart.UpdatedAt = now

	return nil
}

func toCartDomain(data *model.CartModel) *entity.Cart {
	items := make([]entity.CartItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	return &entity.Cart{
		ID:        data.ID,
		UserID:    data.UserID,
		Items:     items,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
