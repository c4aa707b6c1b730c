package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrSubscriberNotFound is returned when an email is not on the list.
var ErrSubscriberNotFound = errors.New("newsletter subscriber not found")

// NewsletterRepository persists newsletter subscriptions.
type NewsletterRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.NewsletterSubscriber, error)
	Create(ctx context.Context, subscriber *entity.NewsletterSubscriber) error
	Update(ctx context.Context, subscriber *entity.NewsletterSubscriber) error
}
