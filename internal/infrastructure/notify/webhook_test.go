package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

func sampleNotification(orderType domain.OrderType, credential string) ports.OrderNotification {
	return ports.OrderNotification{
		Order: &domain.Order{
			ID:         "vps-1a2b3c4d",
			UserID:     "u_1",
			PlanName:   "Cloud VPS M",
			Type:       orderType,
			Status:     domain.OrderPending,
			Price:      "799 EUR",
			CouponCode: "SAVE20",
			CustomerInfo: domain.CustomerInfo{
				"name":  "Alex",
				"email": "alex@example.com",
			},
			CreatedAt: time.Now().UTC(),
		},
		Credential: credential,
	}
}

func TestWebhook_DeliversFormattedPayload(t *testing.T) {
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL, zerolog.Nop())
	if err := hook.NotifyOrderCreated(context.Background(), sampleNotification(domain.OrderVPS, "s3cretpassw0rd16")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := payload["content"]
	for _, want := range []string{"vps-1a2b3c4d", "Cloud VPS M", "799 EUR", "SAVE20", "alex@example.com"} {
		if !strings.Contains(content, want) {
			t.Errorf("message missing %q:\n%s", want, content)
		}
	}
}

func TestWebhook_RedactsVPSCredential(t *testing.T) {
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL, zerolog.Nop())
	if err := hook.NotifyOrderCreated(context.Background(), sampleNotification(domain.OrderVPS, "s3cretpassw0rd16")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := payload["content"]
	if strings.Contains(content, "s3cretpassw0rd16") {
		t.Fatal("plaintext credential leaked into webhook message")
	}
	if !strings.Contains(content, "s3****") {
		t.Errorf("expected redacted credential hint, got:\n%s", content)
	}
}

func TestWebhook_NoCredentialLineForHostingOrders(t *testing.T) {
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL, zerolog.Nop())
	n := sampleNotification(domain.OrderHosting, "")
	n.Order.ID = "mc-1a2b3c4d"
	if err := hook.NotifyOrderCreated(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(payload["content"], "credential") {
		t.Errorf("hosting order message must not mention a credential:\n%s", payload["content"])
	}
}

func TestWebhook_NonSuccessStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL, zerolog.Nop())
	if err := hook.NotifyOrderCreated(context.Background(), sampleNotification(domain.OrderVPS, "x")); err == nil {
		t.Fatal("expected error on 502 response")
	}
}

func TestRedactCredential(t *testing.T) {
	cases := []struct{ in, want string }{
		{"s3cretpassw0rd16", "s3****"},
		{"ab", "****"},
		{"a", "****"},
		{"", "****"},
	}
	for _, tc := range cases {
		if got := redactCredential(tc.in); got != tc.want {
			t.Errorf("redactCredential(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type recordingNotifier struct {
	mu       sync.Mutex
	received []ports.OrderNotification
	done     chan struct{}
}

func (r *recordingNotifier) NotifyOrderCreated(_ context.Context, n ports.OrderNotification) error {
	r.mu.Lock()
	r.received = append(r.received, n)
	r.mu.Unlock()
	select {
	case r.done <- struct{}{}:
	default:
	}
	return nil
}

func TestDispatcher_DeliversThroughWorkers(t *testing.T) {
	rec := &recordingNotifier{done: make(chan struct{}, 1)}
	d := NewDispatcher(2, rec, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	if err := d.NotifyOrderCreated(ctx, sampleNotification(domain.OrderVPS, "cred")); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification never reached the delegate")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.received) != 1 {
		t.Fatalf("delivered %d notifications, want 1", len(rec.received))
	}
	if rec.received[0].Order.ID != "vps-1a2b3c4d" {
		t.Errorf("delivered wrong order: %s", rec.received[0].Order.ID)
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, &recordingNotifier{done: make(chan struct{}, 1)}, zerolog.Nop())
	first := d.shardIndex("mc-1a2b3c4d")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("mc-1a2b3c4d"); got != first {
			t.Fatalf("shard index changed: %d != %d", got, first)
		}
	}
}
