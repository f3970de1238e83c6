// Package notifications delivers earning notifications after the ledger write has committed.
// Delivery is best-effort: a failed send is logged and counted, never returned to the ingest caller.
package notifications

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/royalty_settlement_app/internal/middleware"
	"github.com/SscSPs/royalty_settlement_app/internal/observability/metrics"
)

const defaultSendTimeout = 10 * time.Second

// Dispatcher fans notifications out to a sender on background goroutines.
type Dispatcher struct {
	sender  portssvc.NotificationSender
	metrics *metrics.SettlementMetrics
	timeout time.Duration
	wg      sync.WaitGroup
}

var _ portssvc.NotificationDispatcher = (*Dispatcher)(nil)

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatchMetrics counts failed sends.
func WithDispatchMetrics(m *metrics.SettlementMetrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithSendTimeout bounds each individual send.
func WithSendTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

func NewDispatcher(sender portssvc.NotificationSender, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{sender: sender, timeout: defaultSendTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch returns immediately. Sends outlive the request context but keep its values (logger, ids).
func (d *Dispatcher) Dispatch(ctx context.Context, notifications []domain.EarningNotification) {
	base := context.WithoutCancel(ctx)
	for _, n := range notifications {
		d.wg.Add(1)
		go func(n domain.EarningNotification) {
			defer d.wg.Done()
			sendCtx, cancel := context.WithTimeout(base, d.timeout)
			defer cancel()
			if err := d.sender.NotifyEarning(sendCtx, n); err != nil {
				d.metrics.NotificationFailed()
				middleware.GetLoggerFromCtx(ctx).Warn("Earning notification failed",
					slog.String("earning_id", n.EarningID),
					slog.String("release_id", n.ReleaseID),
					slog.String("error", err.Error()))
			}
		}(n)
	}
}

// Wait blocks until every dispatched send has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close waits for in-flight sends or gives up when ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Join(errors.New("notifications still in flight"), ctx.Err())
	}
}
