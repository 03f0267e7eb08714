package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

type stubCouponService struct {
	validateFn func(ctx context.Context, code, userID string) (*ports.CouponValidation, error)
	createFn   func(ctx context.Context, input ports.CreateCouponInput) (*domain.Coupon, error)
	listFn     func(ctx context.Context) ([]*domain.Coupon, error)
}

func (s *stubCouponService) Validate(ctx context.Context, code, userID string) (*ports.CouponValidation, error) {
	return s.validateFn(ctx, code, userID)
}

func (s *stubCouponService) Redeem(ctx context.Context, couponID, userID string) (*domain.Coupon, error) {
	panic("not used in handler tests")
}

func (s *stubCouponService) Create(ctx context.Context, input ports.CreateCouponInput) (*domain.Coupon, error) {
	return s.createFn(ctx, input)
}

func (s *stubCouponService) List(ctx context.Context) ([]*domain.Coupon, error) {
	return s.listFn(ctx)
}

func (s *stubCouponService) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}

func (s *stubCouponService) Delete(ctx context.Context, id string) error {
	return nil
}

func (s *stubCouponService) Redemptions(ctx context.Context, couponID string) ([]*ports.RedemptionWithUser, error) {
	return nil, nil
}

func newCouponContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u_1")
	c.Set("role", "user")
	return c, rec
}

func TestCouponHandler_Validate_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubCouponService{
		validateFn: func(ctx context.Context, code, userID string) (*ports.CouponValidation, error) {
			if code != "save20" || userID != "u_1" {
				t.Fatalf("unexpected args: %s %s", code, userID)
			}
			return &ports.CouponValidation{
				Coupon:             &domain.Coupon{Code: "SAVE20", DiscountPercentage: 20},
				DiscountPercentage: 20,
			}, nil
		},
	}
	handler := NewCouponHandler(stub)

	c, rec := newCouponContext(e, http.MethodPost, "/v1/coupons/validate", `{"code":"save20"}`)
	if err := handler.Validate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp validateCouponResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Code != "SAVE20" || resp.DiscountPercentage != 20 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCouponHandler_Validate_MissingCode(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewCouponHandler(&stubCouponService{})

	c, _ := newCouponContext(e, http.MethodPost, "/v1/coupons/validate", `{}`)
	err := handler.Validate(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestCouponHandler_Validate_ErrorPropagates(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubCouponService{
		validateFn: func(ctx context.Context, code, userID string) (*ports.CouponValidation, error) {
			return nil, domain.ErrCouponExhausted
		},
	}
	handler := NewCouponHandler(stub)

	c, _ := newCouponContext(e, http.MethodPost, "/v1/coupons/validate", `{"code":"GONE"}`)
	if err := handler.Validate(c); err != domain.ErrCouponExhausted {
		t.Fatalf("expected domain error to propagate, got %v", err)
	}
}

func TestCouponHandler_Create_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubCouponService{
		createFn: func(ctx context.Context, input ports.CreateCouponInput) (*domain.Coupon, error) {
			return &domain.Coupon{
				ID:                 "c1",
				Code:               "SAVE20",
				DiscountPercentage: input.DiscountPercentage,
				MaxUses:            input.MaxUses,
				IsActive:           true,
				CreatedAt:          time.Now().UTC(),
			}, nil
		},
	}
	handler := NewCouponHandler(stub)

	c, rec := newCouponContext(e, http.MethodPost, "/v1/admin/coupons",
		`{"code":"save20","discount_percentage":20,"max_uses":1}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp couponResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Code != "SAVE20" || !resp.IsActive {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCouponHandler_Create_BadPercentage(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewCouponHandler(&stubCouponService{})

	c, _ := newCouponContext(e, http.MethodPost, "/v1/admin/coupons",
		`{"code":"X","discount_percentage":150,"max_uses":1}`)
	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
