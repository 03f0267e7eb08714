package domain

import "testing"

func TestOrderType_IDPrefix(t *testing.T) {
	cases := []struct {
		orderType OrderType
		want      string
	}{
		{OrderHosting, "mc"},
		{OrderVPS, "vps"},
		{OrderDomain, "dom"},
	}
	for _, tc := range cases {
		if got := tc.orderType.IDPrefix(); got != tc.want {
			t.Errorf("IDPrefix(%s) = %q, want %q", tc.orderType, got, tc.want)
		}
	}
}

func TestOrderType_Valid(t *testing.T) {
	if !OrderHosting.Valid() || !OrderVPS.Valid() || !OrderDomain.Valid() {
		t.Error("known types must be valid")
	}
	if OrderType("dedicated").Valid() {
		t.Error("unknown type must be invalid")
	}
}

func TestOrderStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderCancelled, true},
		{OrderConfirmed, OrderCancelled, false},
		{OrderConfirmed, OrderPending, false},
		{OrderCancelled, OrderConfirmed, false},
		{OrderCancelled, OrderPending, false},
		{OrderPending, OrderPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}
