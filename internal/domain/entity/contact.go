package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactStatus tracks how far the team got with a message.
type ContactStatus string

const (
	ContactStatusNew     ContactStatus = "new"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
)

// ParseContactStatus normalizes raw and reports whether it is known.
func ParseContactStatus(raw string) (ContactStatus, bool) {
	status := ContactStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case ContactStatusNew, ContactStatusRead, ContactStatusReplied:
		return status, true
	default:
		return status, false
	}
}

// ContactMessage is a message sent through the contact form.
type ContactMessage struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Subject   string
	Message   string
	Status    ContactStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
