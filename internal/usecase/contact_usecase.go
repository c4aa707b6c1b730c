package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitContactInput is the public contact form.
type SubmitContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Subject   string
	Message   string
}

// ListContactsInput filters the admin inbox.
type ListContactsInput struct {
	Status string
	Page   PageRequest
}

// ContactPage is one page of contact messages.
type ContactPage struct {
	Messages   []*entity.ContactMessage
	Pagination Pagination
}

// ContactUsecase handles contact form messages.
type ContactUsecase interface {
	Submit(ctx context.Context, input *SubmitContactInput) (*entity.ContactMessage, error)
	List(ctx context.Context, input *ListContactsInput) (*ContactPage, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.ContactMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubscribeOutput reports what happened to a newsletter signup.
type SubscribeOutput struct {
	Subscriber  *entity.NewsletterSubscriber
	Reactivated bool
}

// NewsletterUsecase handles newsletter signups.
type NewsletterUsecase interface {
	Subscribe(ctx context.Context, email string) (*SubscribeOutput, error)
}
