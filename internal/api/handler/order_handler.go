package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

// OrderHandler handles checkout, order history, and the admin order endpoints.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type createOrderRequest struct {
	PlanName     string            `json:"plan_name"     validate:"required"`
	Type         string            `json:"type"          validate:"required,oneof=hosting vps domain"`
	Price        int64             `json:"price"         validate:"required,gt=0"`
	Currency     string            `json:"currency"      validate:"required,len=3"`
	CustomerInfo map[string]string `json:"customer_info" validate:"required"`
	CouponCode   string            `json:"coupon_code"`
}

type createOrderResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Price      string `json:"price"`
	CouponCode string `json:"coupon_code,omitempty"`
	// Credential is returned exactly once, for VPS orders only. It is not
	// retrievable afterwards.
	Credential string `json:"credential,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type orderResponse struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	PlanName     string            `json:"plan_name"`
	Type         string            `json:"type"`
	Status       string            `json:"status"`
	Price        string            `json:"price"`
	CouponCode   string            `json:"coupon_code,omitempty"`
	CustomerInfo map[string]string `json:"customer_info"`
	CreatedAt    string            `json:"created_at"`
}

type listOrdersResponse struct {
	Items      []orderResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:           o.ID,
		UserID:       o.UserID,
		PlanName:     o.PlanName,
		Type:         string(o.Type),
		Status:       string(o.Status),
		Price:        o.Price,
		CouponCode:   o.CouponCode,
		CustomerInfo: o.CustomerInfo,
		CreatedAt:    o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Create handles POST /v1/orders.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      createOrderRequest  true  "Order fields"
// @Success      201      {object}  createOrderResponse
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), ports.CreateOrderInput{
		UserID:       userID,
		PlanName:     req.PlanName,
		Type:         domain.OrderType(req.Type),
		Price:        req.Price,
		Currency:     req.Currency,
		CustomerInfo: req.CustomerInfo,
		CouponCode:   req.CouponCode,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createOrderResponse{
		ID:         result.ID,
		Status:     result.Status,
		Price:      result.Price,
		CouponCode: result.CouponCode,
		Credential: result.Credential,
		CreatedAt:  result.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// History handles GET /v1/me/orders.
//
// @Summary      Current user's order history
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  orderResponse
// @Router       /v1/me/orders [get]
func (h *OrderHandler) History(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	orders, err := h.service.History(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(http.StatusOK, out)
}

// List handles GET /v1/admin/orders.
//
// @Summary      List orders with filters and pagination
// @Tags         admin-orders
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  false  "Filter by customer"
// @Param        status   query     string  false  "Filter by status"
// @Param        type     query     string  false  "Filter by product type"
// @Param        page     query     int     false  "Page (1-based)"
// @Param        limit    query     int     false  "Page size (max 100)"
// @Success      200      {object}  listOrdersResponse
// @Router       /v1/admin/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListOrdersInput{
		UserID: c.QueryParam("user_id"),
		Status: c.QueryParam("status"),
		Type:   c.QueryParam("type"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	items := make([]orderResponse, 0, len(result.Items))
	for _, o := range result.Items {
		items = append(items, toOrderResponse(o))
	}
	return c.JSON(http.StatusOK, listOrdersResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Confirm handles POST /v1/admin/orders/:id/confirm.
//
// @Summary      Confirm a pending order
// @Tags         admin-orders
// @Security     BearerAuth
// @Param        id  path  string  true  "Order id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/orders/{id}/confirm [post]
func (h *OrderHandler) Confirm(c echo.Context) error {
	if err := h.service.Confirm(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Cancel handles POST /v1/admin/orders/:id/cancel.
//
// @Summary      Cancel a pending order
// @Tags         admin-orders
// @Security     BearerAuth
// @Param        id  path  string  true  "Order id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c echo.Context) error {
	if err := h.service.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/admin/orders/:id.
//
// @Summary      Delete an order in any state
// @Tags         admin-orders
// @Security     BearerAuth
// @Param        id  path  string  true  "Order id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
