package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ListUsersInput filters the admin user listing.
type ListUsersInput struct {
	Role   string
	Search string
	Page   PageRequest
}

// UpdateUserInput holds the fields an admin may change. Nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Role     *string
	IsActive *bool
}

// UserPage is one page of users.
type UserPage struct {
	Users      []*entity.User
	Pagination Pagination
}

// UserUsecase is the admin console's user management.
type UserUsecase interface {
	ListUsers(ctx context.Context, input *ListUsersInput) (*UserPage, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateUser(ctx context.Context, actorID, id uuid.UUID, input *UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, actorID, id uuid.UUID) error
}
