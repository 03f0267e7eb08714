package ports

import (
	"context"

	"github.com/hostcraft/platform-api/internal/core/domain"
)

// CouponValidation is returned by Validate for the pre-checkout check.
type CouponValidation struct {
	Coupon             *domain.Coupon
	DiscountPercentage int
}

// CreateCouponInput carries the admin form fields for a new coupon.
type CreateCouponInput struct {
	Code               string
	DiscountPercentage int // 1–100
	MaxUses            int // >= 1
}

// CouponService defines the coupon use cases.
type CouponService interface {
	// Validate looks up the coupon by normalized code and checks it is
	// currently redeemable for the given user.
	Validate(ctx context.Context, code, userID string) (*CouponValidation, error)
	// Redeem atomically consumes one use and records the redemption.
	// Exhaustion is detected server-side in the same statement.
	Redeem(ctx context.Context, couponID, userID string) (*domain.Coupon, error)
	Create(ctx context.Context, input CreateCouponInput) (*domain.Coupon, error)
	List(ctx context.Context) ([]*domain.Coupon, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	Redemptions(ctx context.Context, couponID string) ([]*RedemptionWithUser, error)
}
