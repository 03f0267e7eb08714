package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hostcraft/platform-api/internal/api/metrics"
	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

// CouponService implements coupon validation, redemption, and admin CRUD.
type CouponService struct {
	repo   ports.CouponRepository
	logger zerolog.Logger
}

func NewCouponService(repo ports.CouponRepository, logger zerolog.Logger) *CouponService {
	return &CouponService{repo: repo, logger: logger}
}

// Validate looks up the coupon by normalized code and checks redeemability.
func (s *CouponService) Validate(ctx context.Context, code, userID string) (*ports.CouponValidation, error) {
	coupon, err := s.repo.FindByCode(ctx, domain.NormalizeCode(code))
	if err != nil {
		metrics.CouponValidationFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	if err := coupon.Redeemable(); err != nil {
		metrics.CouponValidationFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	s.logger.Debug().Str("code", coupon.Code).Str("user_id", userID).Msg("coupon validated")
	return &ports.CouponValidation{
		Coupon:             coupon,
		DiscountPercentage: coupon.DiscountPercentage,
	}, nil
}

// Redeem consumes one use and records who redeemed it. The usage increment is
// a single conditional statement in the repository, so two concurrent
// redemptions of a coupon with one use left cannot both succeed.
func (s *CouponService) Redeem(ctx context.Context, couponID, userID string) (*domain.Coupon, error) {
	coupon, err := s.repo.Redeem(ctx, couponID)
	if err != nil {
		return nil, err
	}

	redemption := &domain.Redemption{
		CouponID:  coupon.ID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	// The use is already consumed; a failed audit row must not undo that.
	if err := s.repo.InsertRedemption(ctx, redemption); err != nil {
		s.logger.Error().Err(err).Str("coupon_id", coupon.ID).Str("user_id", userID).
			Msg("failed to record redemption")
	}

	metrics.CouponsRedeemedTotal.WithLabelValues(coupon.Code).Inc()
	s.logger.Info().Str("code", coupon.Code).Str("user_id", userID).
		Int("usage_count", coupon.UsageCount).Int("max_uses", coupon.MaxUses).
		Msg("coupon redeemed")
	return coupon, nil
}

// Create persists a new coupon. Duplicate detection is delegated to the
// unique index on the normalized code; there is no read-before-write.
func (s *CouponService) Create(ctx context.Context, input ports.CreateCouponInput) (*domain.Coupon, error) {
	code := domain.NormalizeCode(input.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", domain.ErrValidation)
	}
	if input.DiscountPercentage < 1 || input.DiscountPercentage > 100 {
		return nil, fmt.Errorf("%w: discount percentage must be between 1 and 100", domain.ErrValidation)
	}
	if input.MaxUses < 1 {
		return nil, fmt.Errorf("%w: max uses must be at least 1", domain.ErrValidation)
	}

	coupon := &domain.Coupon{
		Code:               code,
		DiscountPercentage: input.DiscountPercentage,
		MaxUses:            input.MaxUses,
		UsageCount:         0,
		IsActive:           true,
		CreatedAt:          time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, coupon)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("code", created.Code).Int("discount", created.DiscountPercentage).
		Int("max_uses", created.MaxUses).Msg("coupon created")
	return created, nil
}

func (s *CouponService) List(ctx context.Context) ([]*domain.Coupon, error) {
	return s.repo.List(ctx)
}

func (s *CouponService) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.logger.Info().Str("coupon_id", id).Bool("active", active).Msg("coupon active flag changed")
	return nil
}

func (s *CouponService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("coupon_id", id).Msg("coupon deleted")
	return nil
}

func (s *CouponService) Redemptions(ctx context.Context, couponID string) ([]*ports.RedemptionWithUser, error) {
	if _, err := s.repo.FindByID(ctx, couponID); err != nil {
		return nil, err
	}
	return s.repo.ListRedemptions(ctx, couponID)
}

// failureReason maps a validation error to a metric label.
func failureReason(err error) string {
	switch err {
	case domain.ErrCouponNotFound:
		return "not_found"
	case domain.ErrCouponInactive:
		return "inactive"
	case domain.ErrCouponExhausted:
		return "exhausted"
	default:
		return "store_error"
	}
}
