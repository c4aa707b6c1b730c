package postgres

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type newsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository is the constructor for newsletterRepository.
func NewNewsletterRepository(db *gorm.DB) repository.NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (repo *newsletterRepository) FindByEmail(ctx context.Context, email string) (*entity.NewsletterSubscriber, error) {
	var subscriberM model.NewsletterSubscriberModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&subscriberM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubscriberNotFound
		}

		return nil, errors.Wrap(err, "failed to find subscriber")
	}

	return toSubscriberDomain(&subscriberM), nil
}

func (repo *newsletterRepository) Create(ctx context.Context, subscriber *entity.NewsletterSubscriber) error {
	subscriberM := &model.NewsletterSubscriberModel{
		ID:           subscriber.ID,
		Email:        strings.ToLower(strings.TrimSpace(subscriber.Email)),
		IsActive:     subscriber.IsActive,
		SubscribedAt: subscriber.SubscribedAt,
	}

	if err := repo.db.WithContext(ctx).Create(subscriberM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAlreadySubscribed
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create subscriber")
	}

	subscriber.ID = subscriberM.ID
	subscriber.CreatedAt = subscriberM.CreatedAt
	subscriber.UpdatedAt = subscriberM.UpdatedAt

	return nil
}

func (repo *newsletterRepository) Update(ctx context.Context, subscriber *entity.NewsletterSubscriber) error {
	now := time.Now()
	result := repo.db.WithContext(ctx).Model(&model.NewsletterSubscriberModel{}).
		Where("id = ?", subscriber.ID).
		Updates(map[string]any{
			"is_active":     subscriber.IsActive,
			"subscribed_at": subscriber.SubscribedAt,
			"updated_at":    now,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update subscriber")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSubscriberNotFound
	}
	subscriber.UpdatedAt = now

	return nil
}

func toSubscriberDomain(data *model.NewsletterSubscriberModel) *entity.NewsletterSubscriber {
	return &entity.NewsletterSubscriber{
		ID:           data.ID,
		Email:        data.Email,
		IsActive:     data.IsActive,
		SubscribedAt: data.SubscribedAt,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
