package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hostcraft/platform-api/internal/api/metrics"
	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// OrderService implements checkout and the admin order lifecycle.
type OrderService struct {
	repo     ports.OrderRepository
	coupons  ports.CouponService
	notifier ports.OrderNotifier
	logger   zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, coupons ports.CouponService, notifier ports.OrderNotifier, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, coupons: coupons, notifier: notifier, logger: logger}
}

// Create places an order. When a coupon code is supplied, redemption is the
// gating step: the order is only inserted after the coupon use has been
// consumed, so an invalid or exhausted code aborts checkout with no writes.
func (s *OrderService) Create(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderResult, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidOrderType
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}

	finalPrice := input.Price
	couponCode := ""
	if input.CouponCode != "" {
		// 1. Validate against current usage/expiry state.
		validation, err := s.coupons.Validate(ctx, input.CouponCode, input.UserID)
		if err != nil {
			return nil, err
		}
		// 2. Consume the use before any order write.
		coupon, err := s.coupons.Redeem(ctx, validation.Coupon.ID, input.UserID)
		if err != nil {
			return nil, err
		}
		finalPrice = domain.ApplyDiscount(input.Price, coupon.DiscountPercentage)
		couponCode = coupon.Code
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:           generateOrderID(input.Type),
		UserID:       input.UserID,
		PlanName:     input.PlanName,
		Type:         input.Type,
		Status:       domain.OrderPending,
		Price:        formatPrice(finalPrice, input.Currency),
		CouponCode:   couponCode,
		CustomerInfo: input.CustomerInfo,
		CreatedAt:    now,
	}

	// VPS orders get a one-shot panel credential; only its hash is stored.
	credential := ""
	if input.Type == domain.OrderVPS {
		var err error
		credential, err = generateCredential()
		if err != nil {
			return nil, fmt.Errorf("generate credential: %w", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash credential: %w", err)
		}
		order.CredentialHash = string(hash)
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		// The coupon use, if any, is already consumed. Accepted trade-off:
		// the customer loses a use, never gains a free discount.
		s.logger.Error().Err(err).Str("order_id", order.ID).Str("coupon", couponCode).
			Msg("failed to insert order")
		return nil, err
	}

	metrics.OrdersCreatedTotal.WithLabelValues(string(input.Type)).Inc()
	s.logger.Info().Str("order_id", order.ID).Str("user_id", input.UserID).
		Str("plan", input.PlanName).Str("price", order.Price).Str("coupon", couponCode).
		Msg("order created")

	if s.notifier != nil {
		if err := s.notifier.NotifyOrderCreated(ctx, ports.OrderNotification{
			Order:      order,
			Credential: credential,
		}); err != nil {
			s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("order notification failed")
		}
	}

	return &ports.OrderResult{
		ID:         order.ID,
		Status:     string(order.Status),
		Price:      order.Price,
		CouponCode: couponCode,
		Credential: credential,
		CreatedAt:  order.CreatedAt,
	}, nil
}

// Confirm moves a pending order to confirmed.
func (s *OrderService) Confirm(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.OrderConfirmed)
}

// Cancel moves a pending order to cancelled.
func (s *OrderService) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.OrderCancelled)
}

func (s *OrderService) transition(ctx context.Context, id string, to domain.OrderStatus) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, to)
	}
	// The update re-checks the current status so a concurrent transition
	// cannot slip through between the read and the write.
	if err := s.repo.UpdateStatus(ctx, id, order.Status, to); err != nil {
		return err
	}
	s.logger.Info().Str("order_id", id).Str("status", string(to)).Msg("order status changed")
	return nil
}

// Delete removes an order in any state.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("order_id", id).Msg("order deleted")
	return nil
}

// List returns a page of orders for the admin table.
func (s *OrderService) List(ctx context.Context, input ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListOrdersFilter{
		UserID: input.UserID,
		Status: input.Status,
		Type:   input.Type,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListOrdersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// History returns the customer's own orders, newest first.
func (s *OrderService) History(ctx context.Context, userID string) ([]*domain.Order, error) {
	items, _, err := s.repo.List(ctx, ports.ListOrdersFilter{
		UserID: userID,
		Page:   1,
		Limit:  maxPageLimit,
	})
	return items, err
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateOrderID returns an id in the format {prefix}-{8 base-36 chars},
// e.g. mc-4k9zp2q7.
func generateOrderID(t domain.OrderType) string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock
		return fmt.Sprintf("%s-%08x", t.IDPrefix(), time.Now().UnixNano()&0xFFFFFFFF)
	}
	for i := range b {
		b[i] = base36[int(b[i])%len(base36)]
	}
	return t.IDPrefix() + "-" + string(b)
}

// generateCredential returns a 16-character panel credential.
func generateCredential() (string, error) {
	const alphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b), nil
}

// formatPrice renders the persisted display string, e.g. "400 EUR".
func formatPrice(amount int64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%d", amount)
	}
	return fmt.Sprintf("%d %s", amount, currency)
}
