package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrContactNotFound is returned when a contact message does not exist.
var ErrContactNotFound = errors.New("contact message not found")

// ContactFilter narrows the admin inbox.
type ContactFilter struct {
	Status entity.ContactStatus // Empty means any.
	Page   Page
}

// ContactRepository persists contact form messages.
type ContactRepository interface {
	Create(ctx context.Context, message *entity.ContactMessage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ContactMessage, error)
	// List returns one page, newest first, and the total match count.
	List(ctx context.Context, filter ContactFilter) ([]*entity.ContactMessage, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ContactStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
