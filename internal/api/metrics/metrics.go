// Package metrics defines all custom Prometheus metrics for the hosting
// platform API. It is the single source of truth for metric names, labels,
// and help strings; the promauto registrations run at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hostcraft"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts successfully placed orders.
// Label:
//   - type: "hosting", "vps", or "domain"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by product type.",
	},
	[]string{"type"},
)

// ── Coupon metrics ────────────────────────────────────────────────────────────

// CouponsRedeemedTotal counts consumed coupon uses.
// Label:
//   - code: the coupon code (bounded: codes are admin-created)
var CouponsRedeemedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coupons_redeemed_total",
		Help:      "Total number of coupon redemptions, by code.",
	},
	[]string{"code"},
)

// CouponValidationFailuresTotal counts rejected validation attempts.
// Label:
//   - reason: "not_found", "inactive", "exhausted", or "store_error"
var CouponValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coupon_validation_failures_total",
		Help:      "Total number of coupon validations that failed, by reason.",
	},
	[]string{"reason"},
)

// ── Webhook metrics ───────────────────────────────────────────────────────────

// WebhookDeliveriesTotal counts outbound order notifications.
// Label:
//   - result: "ok" or "error"
var WebhookDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_deliveries_total",
		Help:      "Total number of outbound order webhook deliveries, by result.",
	},
	[]string{"result"},
)

// NotifyQueueDepth tracks the number of notifications waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", …)
var NotifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
