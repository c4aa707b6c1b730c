package pubsub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/domain/service"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
)

const (
	publishTimeout        = 30 * time.Second
	defaultPublishWorkers = 8
)

// asyncPublisher hands events to a bounded goroutine pool so callers never wait on the broker.
// When every worker is busy the event is dropped and logged.
type asyncPublisher struct {
	next   service.EventPublisher
	pool   *ants.Pool
	wg     sync.WaitGroup
	logger *slog.Logger
}

// NewAsyncPublisher wraps next with a pool of at most workers goroutines.
func NewAsyncPublisher(next service.EventPublisher, workers int, logger *slog.Logger) (service.EventPublisher, error) {
	if workers <= 0 {
		workers = defaultPublishWorkers
	}
	pool, err := ants.NewPool(workers,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p any) {
			logger.Error("[AsyncPublisher] Publish panicked", slog.Any("panic", p))
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create publish pool")
	}

	return &asyncPublisher{
		next:   next,
		pool:   pool,
		logger: logger,
	}, nil
}

// PublishOrderEvent queues the event and returns at once. Delivery errors and drops are logged, not returned.
func (p *asyncPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	// The request context ends with the response; keep its values only.
	publishCtx := context.WithoutCancel(ctx)

	p.wg.Add(1)
	err := p.pool.Submit(func() {
		defer p.wg.Done()

		ctx, cancel := context.WithTimeout(publishCtx, publishTimeout)
		defer cancel()

		if err := p.next.PublishOrderEvent(ctx, event); err != nil {
			p.logger.Error("[AsyncPublisher] Failed to publish order event",
				slog.String("type", event.Type),
				slog.String("order_id", event.OrderID),
				slog.Any("error", err),
			)
		}
	})
	if err != nil {
		p.wg.Done()
		if errors.Is(err, ants.ErrPoolOverload) {
			p.logger.Warn("[AsyncPublisher] Publish pool saturated, dropping order event",
				slog.String("type", event.Type),
				slog.String("order_id", event.OrderID),
			)

			return nil
		}

		return errors.Wrap(err, "submit order event")
	}

	return nil
}

// Close waits for queued events, then closes the wrapped publisher.
func (p *asyncPublisher) Close() error {
	p.wg.Wait()
	p.pool.Release()

	return p.next.Close()
}
