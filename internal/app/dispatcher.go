package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// Dispatcher routes trade events to the subscribers registered for their kind.
// It is built once at startup and shared by whatever transport delivers events.
type Dispatcher struct {
	mu          sync.RWMutex
	subscribers map[domain.EventKind][]domain.EventSubscriber
	logger      *slog.Logger
}

// NewDispatcher creates an empty dispatcher. A nil logger uses slog.Default().
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		subscribers: make(map[domain.EventKind][]domain.EventSubscriber),
		logger:      logger,
	}
}

// Subscribe registers sub for the given event kinds.
func (d *Dispatcher) Subscribe(sub domain.EventSubscriber, kinds ...domain.EventKind) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, kind := range kinds {
		d.subscribers[kind] = append(d.subscribers[kind], sub)
	}
}

// Dispatch delivers event to every matching subscriber. Subscriber failures
// are logged and never returned: delivery is best-effort.
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.TradeEvent) {
	d.mu.RLock()
	subs := append([]domain.EventSubscriber(nil), d.subscribers[event.Kind]...)
	d.mu.RUnlock()

	if len(subs) == 0 {
		d.logger.DebugContext(ctx, "no subscribers for event",
			"event", event.Kind,
			"trade_id", event.Trade.ID,
		)
		return
	}

	for _, sub := range subs {
		if err := d.deliver(ctx, sub, event); err != nil {
			d.logger.ErrorContext(ctx, "event subscriber failed",
				"event", event.Kind,
				"trade_id", event.Trade.ID,
				"subscriber", fmt.Sprintf("%T", sub),
				"error", err,
			)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, sub domain.EventSubscriber, event domain.TradeEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panic: %v", r)
		}
	}()
	return sub.Handle(ctx, event)
}

// Compile-time check: DirectPublisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*DirectPublisher)(nil)

// DirectPublisher hands events straight to a Dispatcher in the caller's
// goroutine. It never returns an error.
type DirectPublisher struct {
	dispatcher *Dispatcher
}

// NewDirectPublisher creates a publisher that dispatches in-process.
func NewDirectPublisher(d *Dispatcher) *DirectPublisher {
	return &DirectPublisher{dispatcher: d}
}

func (p *DirectPublisher) Publish(ctx context.Context, event domain.TradeEvent) error {
	p.dispatcher.Dispatch(ctx, event)
	return nil
}
