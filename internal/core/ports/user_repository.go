package ports

import (
	"context"

	"github.com/hostcraft/platform-api/internal/core/domain"
)

// ListUsersFilter carries query parameters for the admin user list.
type ListUsersFilter struct {
	Role   string // optional: filter by role
	Status string // optional: filter by status
	Search string // optional: partial match on username or email
	Page   int    // 1-based
	Limit  int    // capped by the service
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Upsert creates the user on first login and refreshes the identity
	// fields (username, email, avatar) afterwards. Role and status are never
	// touched by an upsert; they are owned by the admin operations below.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error
	Delete(ctx context.Context, id string) error
}
