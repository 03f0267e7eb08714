package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	byID      map[string]*domain.Order
	insertErr error // if set, Insert returns this error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byID: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Insert(_ context.Context, o *domain.Order) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

// UpdateStatus mirrors the conditional update of the Mongo repository: the
// document must still be in `from` for the write to match.
func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus) error {
	o, ok := r.byID[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != from {
		return domain.ErrInvalidTransition
	}
	o.Status = to
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	var matched []*domain.Order
	for _, o := range r.byID {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		if f.Type != "" && string(o.Type) != f.Type {
			continue
		}
		clone := *o
		matched = append(matched, &clone)
	}
	total := int64(len(matched))

	skip := (f.Page - 1) * f.Limit
	if skip < 0 {
		skip = 0
	}
	if skip >= len(matched) {
		return []*domain.Order{}, total, nil
	}
	end := skip + f.Limit
	if f.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func checkoutInput(orderType domain.OrderType, price int64, coupon string) ports.CreateOrderInput {
	return ports.CreateOrderInput{
		UserID:   "user_1",
		PlanName: "Iron",
		Type:     orderType,
		Price:    price,
		Currency: "EUR",
		CustomerInfo: domain.CustomerInfo{
			"discord": "steve#0001",
			"email":   "steve@example.com",
		},
		CouponCode: coupon,
	}
}

func newOrderService(repo *stubOrderRepo, couponRepo *stubCouponRepo) *OrderService {
	coupons := NewCouponService(couponRepo, discardLogger)
	return NewOrderService(repo, coupons, nil, discardLogger)
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestOrderService_Create_IDPrefixMatchesType(t *testing.T) {
	cases := []struct {
		orderType domain.OrderType
		prefix    string
	}{
		{domain.OrderHosting, "mc-"},
		{domain.OrderVPS, "vps-"},
		{domain.OrderDomain, "dom-"},
	}
	for _, tc := range cases {
		repo := newStubOrderRepo()
		svc := newOrderService(repo, newStubCouponRepo())

		result, err := svc.Create(context.Background(), checkoutInput(tc.orderType, 500, ""))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.orderType, err)
		}
		if !strings.HasPrefix(result.ID, tc.prefix) {
			t.Errorf("%s: id %q must start with %q", tc.orderType, result.ID, tc.prefix)
		}
		// prefix + "-" + 8 random chars
		if len(result.ID) != len(tc.prefix)+8 {
			t.Errorf("%s: id %q has wrong length", tc.orderType, result.ID)
		}
		if result.Status != string(domain.OrderPending) {
			t.Errorf("new order status = %q, want pending", result.Status)
		}
	}
}

func TestOrderService_Create_RejectsUnknownType(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo, newStubCouponRepo())

	_, err := svc.Create(context.Background(), checkoutInput(domain.OrderType("dedicated"), 500, ""))
	if !errors.Is(err, domain.ErrInvalidOrderType) {
		t.Errorf("expected ErrInvalidOrderType, got %v", err)
	}
}

func TestOrderService_Create_FormatsPrice(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo, newStubCouponRepo())

	result, err := svc.Create(context.Background(), checkoutInput(domain.OrderHosting, 999, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Price != "999 EUR" {
		t.Errorf("price = %q, want %q", result.Price, "999 EUR")
	}
}

func TestOrderService_Create_VPSGetsCredential(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo, newStubCouponRepo())

	result, err := svc.Create(context.Background(), checkoutInput(domain.OrderVPS, 1200, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Credential) != 16 {
		t.Fatalf("expected 16-char credential, got %q", result.Credential)
	}

	stored := repo.byID[result.ID]
	if stored.CredentialHash == "" {
		t.Error("stored order must carry the credential hash")
	}
	if strings.Contains(stored.CredentialHash, result.Credential) {
		t.Error("plaintext credential must not be persisted")
	}
}

func TestOrderService_Create_NonVPSHasNoCredential(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo, newStubCouponRepo())

	result, _ := svc.Create(context.Background(), checkoutInput(domain.OrderHosting, 500, ""))
	if result.Credential != "" {
		t.Errorf("hosting order must not get a credential, got %q", result.Credential)
	}
}

// ---------------------------------------------------------------------------
// Coupon workflow
// ---------------------------------------------------------------------------

func TestOrderService_Create_AppliesCouponDiscount(t *testing.T) {
	couponRepo := newStubCouponRepo()
	seedCoupon(couponRepo, "SAVE20", 20, 5, 0, true)
	repo := newStubOrderRepo()
	svc := newOrderService(repo, couponRepo)

	result, err := svc.Create(context.Background(), checkoutInput(domain.OrderHosting, 999, "save20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Price != "799 EUR" {
		t.Errorf("discounted price = %q, want %q", result.Price, "799 EUR")
	}
	if result.CouponCode != "SAVE20" {
		t.Errorf("coupon code = %q, want SAVE20", result.CouponCode)
	}
}

// End-to-end scenario: SAVE20 (20%, max_uses=1) applied to a 500 order gives
// 400 and consumes the only use; the second attempt fails with exhaustion and
// no second order is written.
func TestOrderService_Create_SingleUseCouponLifecycle(t *testing.T) {
	couponRepo := newStubCouponRepo()
	c := seedCoupon(couponRepo, "SAVE20", 20, 1, 0, true)
	repo := newStubOrderRepo()
	svc := newOrderService(repo, couponRepo)

	first, err := svc.Create(context.Background(), checkoutInput(domain.OrderHosting, 500, "SAVE20"))
	if err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	if first.Price != "400 EUR" {
		t.Errorf("first price = %q, want %q", first.Price, "400 EUR")
	}
	if couponRepo.byID[c.ID].UsageCount != 1 {
		t.Errorf("usage_count = %d, want 1", couponRepo.byID[c.ID].UsageCount)
	}

	_, err = svc.Create(context.Background(), checkoutInput(domain.OrderHosting, 500, "SAVE20"))
	if !errors.Is(err, domain.ErrCouponExhausted) {
		t.Fatalf("second checkout: expected ErrCouponExhausted, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Errorf("expected 1 stored order, got %d", len(repo.byID))
	}
}

func TestOrderService_Create_InvalidCouponAbortsBeforeInsert(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo, newStubCouponRepo())

	_, err := svc.Create(context.Background(), checkoutInput(domain.OrderHosting, 500, "GHOST"))
	if !errors.Is(err, domain.ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Errorf("no order may be written when the coupon is invalid, got %d", len(repo.byID))
	}
}

// ---------------------------------------------------------------------------
// Lifecycle tests
// ---------------------------------------------------------------------------

func TestOrderService_ConfirmAndCancel(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo, newStubCouponRepo())

	result, _ := svc.Create(context.Background(), checkoutInput(domain.OrderHosting, 500, ""))

	if err := svc.Confirm(context.Background(), result.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if repo.byID[result.ID].Status != domain.OrderConfirmed {
		t.Errorf("status = %q, want confirmed", repo.byID[result.ID].Status)
	}

	// confirmed is terminal
	if err := svc.Cancel(context.Background(), result.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("cancel after confirm: expected ErrInvalidTransition, got %v", err)
	}
}

func TestOrderService_CancelPending(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo, newStubCouponRepo())

	result, _ := svc.Create(context.Background(), checkoutInput(domain.OrderDomain, 12, ""))
	if err := svc.Cancel(context.Background(), result.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if repo.byID[result.ID].Status != domain.OrderCancelled {
		t.Errorf("status = %q, want cancelled", repo.byID[result.ID].Status)
	}
}

func TestOrderService_Confirm_NotFound(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubCouponRepo())

	if err := svc.Confirm(context.Background(), "mc-ghost123"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_Delete_AnyState(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo, newStubCouponRepo())

	result, _ := svc.Create(context.Background(), checkoutInput(domain.OrderHosting, 500, ""))
	_ = svc.Confirm(context.Background(), result.ID)

	if err := svc.Delete(context.Background(), result.ID); err != nil {
		t.Fatalf("delete confirmed order: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Error("order must be gone after delete")
	}
}

func TestOrderService_Delete_NotFound(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubCouponRepo())

	if err := svc.Delete(context.Background(), "vps-ghost456"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List / History tests
// ---------------------------------------------------------------------------

func TestOrderService_List_FiltersAndPaginates(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo, newStubCouponRepo())

	for i := 0; i < 3; i++ {
		_, _ = svc.Create(context.Background(), checkoutInput(domain.OrderHosting, 500, ""))
	}
	_, _ = svc.Create(context.Background(), checkoutInput(domain.OrderVPS, 1200, ""))

	res, err := svc.List(context.Background(), ports.ListOrdersInput{Type: "hosting", Page: 1, Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 3 {
		t.Errorf("total = %d, want 3", res.Total)
	}
	if len(res.Items) != 2 {
		t.Errorf("page size = %d, want 2", len(res.Items))
	}
	if res.TotalPages != 2 {
		t.Errorf("total_pages = %d, want 2", res.TotalPages)
	}
}

func TestOrderService_List_LimitCapped(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubCouponRepo())

	res, err := svc.List(context.Background(), ports.ListOrdersInput{Page: 1, Limit: 999})
	if err != nil {
		t.Fatal(err)
	}
	if res.Limit != maxPageLimit {
		t.Errorf("limit = %d, want %d", res.Limit, maxPageLimit)
	}
}

func TestOrderService_History_ScopedToUser(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo, newStubCouponRepo())

	_, _ = svc.Create(context.Background(), checkoutInput(domain.OrderHosting, 500, ""))
	other := checkoutInput(domain.OrderHosting, 500, "")
	other.UserID = "user_2"
	_, _ = svc.Create(context.Background(), other)

	orders, err := svc.History(context.Background(), "user_1")
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if orders[0].UserID != "user_1" {
		t.Errorf("order belongs to %q", orders[0].UserID)
	}
}
