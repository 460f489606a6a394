package worker

import (
	"context"
	"log/slog"
	"time"
)

// OrderExpirer fails PENDING orders created before cutoff.
type OrderExpirer interface {
	ExpireStale(ctx context.Context, cutoff time.Time) (int, error)
}

// ExpiryWorker sweeps PENDING orders whose expiry timer was lost, for example
// across a restart.
type ExpiryWorker struct {
	orders   OrderExpirer
	interval time.Duration
	window   time.Duration
	now      func() time.Time
}

func NewExpiryWorker(orders OrderExpirer, interval, window time.Duration) *ExpiryWorker {
	return &ExpiryWorker{
		orders:   orders,
		interval: interval,
		window:   window,
		now:      time.Now,
	}
}

func (w *ExpiryWorker) Start(ctx context.Context) {
	slog.Info("starting expiry worker", "interval", w.interval, "window", w.window)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	n, err := w.orders.ExpireStale(ctx, w.now().Add(-w.window))
	if err != nil {
		slog.Error("expiry sweep failed", "expired", n, "error", err)
	}
	if n > 0 {
		slog.Info("expired stale orders", "count", n)
	}
}
