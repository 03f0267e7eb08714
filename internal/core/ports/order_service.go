package ports

import (
	"context"
	"time"

	"github.com/hostcraft/platform-api/internal/core/domain"
)

// CreateOrderInput carries everything needed to place an order. Price is the
// undiscounted amount in integer currency units; the service applies the
// coupon (if any) before persisting.
type CreateOrderInput struct {
	UserID       string
	PlanName     string
	Type         domain.OrderType
	Price        int64
	Currency     string
	CustomerInfo domain.CustomerInfo
	CouponCode   string // optional
}

// OrderResult is returned after checkout.
type OrderResult struct {
	ID         string
	Status     string
	Price      string
	CouponCode string
	// Credential is the generated VPS panel credential, returned exactly once
	// at creation. Empty for non-VPS orders.
	Credential string
	CreatedAt  time.Time
}

// ListOrdersInput carries parameters for the admin list endpoint.
type ListOrdersInput struct {
	UserID string
	Status string
	Type   string
	Page   int
	Limit  int
}

// ListOrdersResult is a page of orders plus pagination totals.
type ListOrdersResult struct {
	Items      []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderService defines the order use cases.
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderResult, error)
	Confirm(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, input ListOrdersInput) (*ListOrdersResult, error)
	// History returns the customer's own orders, newest first.
	History(ctx context.Context, userID string) ([]*domain.Order, error)
}
