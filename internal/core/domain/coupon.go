package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	// ErrValidation marks input that failed a service-level check; wrapped
	// with the field detail.
	ErrValidation = errors.New("validation failed")

	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponInactive  = errors.New("coupon is inactive")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
	ErrCouponExists    = errors.New("coupon code already exists")
)

// Coupon is a percentage discount with a bounded number of redemptions.
// Invariant: 0 <= UsageCount <= MaxUses; redeemable only while IsActive
// and UsageCount < MaxUses.
type Coupon struct {
	ID                 string    `json:"id" bson:"_id,omitempty"`
	Code               string    `json:"code" bson:"code"`
	DiscountPercentage int       `json:"discount_percentage" bson:"discount_percentage"`
	MaxUses            int       `json:"max_uses" bson:"max_uses"`
	UsageCount         int       `json:"usage_count" bson:"usage_count"`
	IsActive           bool      `json:"is_active" bson:"is_active"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
}

// Redemption records one use of a coupon by one user.
type Redemption struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	CouponID  string    `json:"coupon_id" bson:"coupon_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NormalizeCode canonicalizes a coupon code for lookup and storage.
// Codes are case-insensitive; the stored form is uppercase.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Redeemable reports whether the coupon can currently be applied.
func (c *Coupon) Redeemable() error {
	if !c.IsActive {
		return ErrCouponInactive
	}
	if c.UsageCount >= c.MaxUses {
		return ErrCouponExhausted
	}
	return nil
}

// ApplyDiscount returns price reduced by pct percent, rounded to the nearest
// integer currency unit. 999 at 20% yields 799.
func ApplyDiscount(price int64, pct int) int64 {
	return int64(math.Round(float64(price) * (1 - float64(pct)/100)))
}
