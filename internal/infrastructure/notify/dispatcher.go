package notify

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/hostcraft/platform-api/internal/api/metrics"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans order notifications out to a fixed set of workers using
// consistent hashing on the order id, so notifications for the same order
// are delivered in sequence. It satisfies ports.OrderNotifier: Enqueue is
// what the checkout path sees, delivery happens on the worker goroutines.
type Dispatcher struct {
	workers  []chan ports.OrderNotification
	delegate ports.OrderNotifier
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, delegate ports.OrderNotifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.OrderNotification, numWorkers),
		delegate: delegate,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.OrderNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// NotifyOrderCreated enqueues the notification and returns immediately.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) NotifyOrderCreated(_ context.Context, n ports.OrderNotification) error {
	idx := d.shardIndex(n.Order.ID)
	d.workers[idx] <- n
	metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	return nil
}

// shardIndex maps an order id deterministically to a worker index.
func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.OrderNotification) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotifyQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.delegate.NotifyOrderCreated(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("order_id", n.Order.ID).
					Int("worker_id", id).
					Msg("order notification failed")
			}
		}
	}
}
