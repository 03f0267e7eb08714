package domain

import (
	"errors"
	"time"
)

// OrderType distinguishes the three product lines.
type OrderType string

const (
	OrderHosting OrderType = "hosting"
	OrderVPS     OrderType = "vps"
	OrderDomain  OrderType = "domain"
)

// idPrefixes maps each order type to the prefix of its generated id.
var idPrefixes = map[OrderType]string{
	OrderHosting: "mc",
	OrderVPS:     "vps",
	OrderDomain:  "dom",
}

// IDPrefix returns the order-id prefix for the type ("mc", "vps", "dom").
func (t OrderType) IDPrefix() string {
	return idPrefixes[t]
}

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	_, ok := idPrefixes[t]
	return ok
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCancelled OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// confirmed and cancelled are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderConfirmed, OrderCancelled},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidOrderType  = errors.New("invalid order type")
)

// CustomerInfo is the free-form contact record attached to an order.
type CustomerInfo map[string]string

// Order is a purchase of a plan by a user. Price is the display string shown
// on invoices and admin pages ("400 EUR"); discounting happens before it is
// formatted. For VPS orders CredentialHash holds the bcrypt hash of the
// generated panel credential — the plaintext is never persisted.
type Order struct {
	ID             string       `json:"id" bson:"_id"`
	UserID         string       `json:"user_id" bson:"user_id"`
	PlanName       string       `json:"plan_name" bson:"plan_name"`
	Type           OrderType    `json:"type" bson:"type"`
	Status         OrderStatus  `json:"status" bson:"status"`
	Price          string       `json:"price" bson:"price"`
	CouponCode     string       `json:"coupon_code,omitempty" bson:"coupon_code,omitempty"`
	CustomerInfo   CustomerInfo `json:"customer_info" bson:"customer_info"`
	CredentialHash string       `json:"-" bson:"credential_hash,omitempty"`
	CreatedAt      time.Time    `json:"created_at" bson:"created_at"`
}
