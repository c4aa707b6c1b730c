// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can shop and, with the admin role, operate the store.
type User struct {
	ID        uuid.UUID    // The Global Unique Identifier (GUID) for the user.
	Email     string       // The user's primary contact email, used as a login identifier.
	Name      string       // The user's display name.
	Role      Role         // Either RoleUser or RoleAdmin.
	Provider  ProviderType // How the account was first created.
	IsActive  bool         // Inactive accounts cannot sign in.
	CreatedAt time.Time    // Timestamp of when this user account was created.
	UpdatedAt time.Time    // Timestamp of the last modification to this user's data.
}

// IsAdmin reports whether the user may use the admin console.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Roles returns the roles carried in access tokens. Admins keep the shopper role.
func (u *User) Roles() Roles {
	if u.IsAdmin() {
		return Roles{RoleUser, RoleAdmin}
	}

	return Roles{RoleUser}
}
