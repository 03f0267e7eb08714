// Package notify delivers order notifications to an outbound chat webhook.
// Delivery is best-effort: failures are logged and counted, never retried,
// and never surface to the checkout path.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hostcraft/platform-api/internal/api/metrics"
	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

const deliveryTimeout = 10 * time.Second

// Webhook posts order notifications as JSON to a chat webhook URL.
type Webhook struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

func NewWebhook(url string, log zerolog.Logger) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: deliveryTimeout},
		log:    log,
	}
}

// NotifyOrderCreated formats and posts a single notification. The VPS panel
// credential is redacted before it leaves the process.
func (w *Webhook) NotifyOrderCreated(ctx context.Context, n ports.OrderNotification) error {
	payload := map[string]string{"content": formatMessage(n)}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		metrics.WebhookDeliveriesTotal.WithLabelValues("error").Inc()
		w.log.Error().Err(err).Str("order_id", n.Order.ID).Msg("webhook delivery failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.WebhookDeliveriesTotal.WithLabelValues("error").Inc()
		w.log.Error().Int("status", resp.StatusCode).Str("order_id", n.Order.ID).
			Msg("webhook delivery rejected")
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode)
	}

	metrics.WebhookDeliveriesTotal.WithLabelValues("ok").Inc()
	return nil
}

func formatMessage(n ports.OrderNotification) string {
	o := n.Order

	var b strings.Builder
	fmt.Fprintf(&b, "New order **%s**\n", o.ID)
	fmt.Fprintf(&b, "Plan: %s (%s)\n", o.PlanName, o.Type)
	fmt.Fprintf(&b, "Price: %s\n", o.Price)
	if o.CouponCode != "" {
		fmt.Fprintf(&b, "Coupon: %s\n", o.CouponCode)
	}
	for _, key := range []string{"name", "email", "discord"} {
		if v := o.CustomerInfo[key]; v != "" {
			fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(key[:1])+key[1:], v)
		}
	}
	if o.Type == domain.OrderVPS && n.Credential != "" {
		fmt.Fprintf(&b, "Panel credential: %s\n", redactCredential(n.Credential))
	}
	return b.String()
}

// redactCredential keeps the first two characters as a recognition hint.
func redactCredential(cred string) string {
	if len(cred) <= 2 {
		return "****"
	}
	return cred[:2] + "****"
}
