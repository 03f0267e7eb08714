package ports

import (
	"context"

	"github.com/hostcraft/platform-api/internal/core/domain"
)

// ListUsersResult is a page of users plus pagination totals.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines the admin user-management use cases. Every mutation
// takes the acting user's id and re-checks the role hierarchy against the
// stored records, never trusting the session's role claim alone.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) (*ListUsersResult, error)
	ChangeRole(ctx context.Context, actorID, targetID string, role domain.Role) error
	Ban(ctx context.Context, actorID, targetID string) error
	Unban(ctx context.Context, actorID, targetID string) error
	Delete(ctx context.Context, actorID, targetID string) error
}
