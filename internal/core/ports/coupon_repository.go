package ports

import (
	"context"

	"github.com/hostcraft/platform-api/internal/core/domain"
)

// RedemptionWithUser is a redemption row joined with the redeeming user,
// as shown on the admin coupon detail page.
type RedemptionWithUser struct {
	Redemption domain.Redemption
	User       *domain.User // nil when the account has since been deleted
}

// CouponRepository defines persistence operations for coupons and redemptions.
type CouponRepository interface {
	// Insert persists a new coupon. A duplicate normalized code yields
	// domain.ErrCouponExists (unique index, no read-before-write).
	Insert(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error)
	FindByCode(ctx context.Context, code string) (*domain.Coupon, error)
	FindByID(ctx context.Context, id string) (*domain.Coupon, error)
	List(ctx context.Context) ([]*domain.Coupon, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error

	// Redeem increments usage_count by one in a single conditional statement
	// that only matches while usage_count < max_uses and is_active. It returns
	// the post-increment coupon, domain.ErrCouponExhausted when the condition
	// did not hold, or domain.ErrCouponNotFound.
	Redeem(ctx context.Context, id string) (*domain.Coupon, error)
	InsertRedemption(ctx context.Context, r *domain.Redemption) error
	ListRedemptions(ctx context.Context, couponID string) ([]*RedemptionWithUser, error)
}
