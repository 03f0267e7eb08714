package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

// CouponHandler handles coupon validation and the admin coupon endpoints.
type CouponHandler struct {
	service ports.CouponService
}

func NewCouponHandler(service ports.CouponService) *CouponHandler {
	return &CouponHandler{service: service}
}

type validateCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

type validateCouponResponse struct {
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discount_percentage"`
}

type createCouponRequest struct {
	Code               string `json:"code"                validate:"required"`
	DiscountPercentage int    `json:"discount_percentage" validate:"required,min=1,max=100"`
	MaxUses            int    `json:"max_uses"            validate:"required,min=1"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type couponResponse struct {
	ID                 string `json:"id"`
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discount_percentage"`
	MaxUses            int    `json:"max_uses"`
	UsageCount         int    `json:"usage_count"`
	IsActive           bool   `json:"is_active"`
	CreatedAt          string `json:"created_at"`
}

type redemptionResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at"`
}

func toCouponResponse(c *domain.Coupon) couponResponse {
	return couponResponse{
		ID:                 c.ID,
		Code:               c.Code,
		DiscountPercentage: c.DiscountPercentage,
		MaxUses:            c.MaxUses,
		UsageCount:         c.UsageCount,
		IsActive:           c.IsActive,
		CreatedAt:          c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Validate handles POST /v1/coupons/validate.
//
// @Summary      Check a coupon before checkout
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      validateCouponRequest  true  "Coupon code"
// @Success      200      {object}  validateCouponResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /v1/coupons/validate [post]
func (h *CouponHandler) Validate(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req validateCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Validate(c.Request().Context(), req.Code, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, validateCouponResponse{
		Code:               result.Coupon.Code,
		DiscountPercentage: result.DiscountPercentage,
	})
}

// Create handles POST /v1/admin/coupons.
//
// @Summary      Create a coupon
// @Tags         admin-coupons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      createCouponRequest  true  "Coupon fields"
// @Success      201      {object}  couponResponse
// @Failure      400      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Router       /v1/admin/coupons [post]
func (h *CouponHandler) Create(c echo.Context) error {
	var req createCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	coupon, err := h.service.Create(c.Request().Context(), ports.CreateCouponInput{
		Code:               req.Code,
		DiscountPercentage: req.DiscountPercentage,
		MaxUses:            req.MaxUses,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCouponResponse(coupon))
}

// List handles GET /v1/admin/coupons.
//
// @Summary      List all coupons
// @Tags         admin-coupons
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  couponResponse
// @Router       /v1/admin/coupons [get]
func (h *CouponHandler) List(c echo.Context) error {
	coupons, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]couponResponse, 0, len(coupons))
	for _, coupon := range coupons {
		out = append(out, toCouponResponse(coupon))
	}
	return c.JSON(http.StatusOK, out)
}

// SetActive handles PATCH /v1/admin/coupons/:id/active.
//
// @Summary      Activate or deactivate a coupon
// @Tags         admin-coupons
// @Accept       json
// @Security     BearerAuth
// @Param        id       path  string            true  "Coupon id"
// @Param        request  body  setActiveRequest  true  "Desired state"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/coupons/{id}/active [patch]
func (h *CouponHandler) SetActive(c echo.Context) error {
	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SetActive(c.Request().Context(), c.Param("id"), *req.Active); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/admin/coupons/:id.
//
// @Summary      Delete a coupon
// @Tags         admin-coupons
// @Security     BearerAuth
// @Param        id  path  string  true  "Coupon id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/coupons/{id} [delete]
func (h *CouponHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Redemptions handles GET /v1/admin/coupons/:id/redemptions.
//
// @Summary      List redemptions for a coupon with the redeeming users
// @Tags         admin-coupons
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Coupon id"
// @Success      200  {array}   redemptionResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/coupons/{id}/redemptions [get]
func (h *CouponHandler) Redemptions(c echo.Context) error {
	items, err := h.service.Redemptions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]redemptionResponse, 0, len(items))
	for _, item := range items {
		resp := redemptionResponse{
			ID:        item.Redemption.ID,
			UserID:    item.Redemption.UserID,
			CreatedAt: item.Redemption.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if item.User != nil {
			resp.Username = item.User.Username
			resp.Email = item.User.Email
		}
		out = append(out, resp)
	}
	return c.JSON(http.StatusOK, out)
}
