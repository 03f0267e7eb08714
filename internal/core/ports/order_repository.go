package ports

import (
	"context"

	"github.com/hostcraft/platform-api/internal/core/domain"
)

// ListOrdersFilter carries query parameters for the admin order list.
type ListOrdersFilter struct {
	UserID string // non-empty = scoped to one customer (profile page)
	Status string // optional
	Type   string // optional
	Page   int    // 1-based
	Limit  int    // capped by the service
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Insert(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// UpdateStatus transitions the order in a single conditional update that
	// only matches documents currently in `from`. Zero matches means the order
	// is absent or no longer in `from`; implementations return
	// domain.ErrOrderNotFound or domain.ErrInvalidTransition accordingly.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
}
