package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleTenantAdmin Role = "tenant_admin"
	RoleTenantUser  Role = "tenant_user"
)

type User struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("invalid or expired session token")
)

type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// Session is a verified login, decoded from a bearer token.
type Session struct {
	UserID    uuid.UUID
	TenantID  uuid.UUID
	Role      Role
	ExpiresAt time.Time
}

// Allowed reports whether the session's role is one of the given roles.
// Super admins pass every check.
func (s Session) Allowed(roles ...Role) bool {
	if s.Role == RoleSuperAdmin {
		return true
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}
