package entity

import (
	"time"

	"github.com/google/uuid"
)

// NewsletterSubscriber is an email on the mailing list.
type NewsletterSubscriber struct {
	ID           uuid.UUID
	Email        string
	IsActive     bool
	SubscribedAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
