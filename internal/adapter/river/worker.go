package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// Dispatcher routes a trade event to its subscribers.
type Dispatcher interface {
	Dispatch(ctx context.Context, event domain.TradeEvent)
}

// NotificationWorker hands queued trade events to the dispatcher.
// Subscriber failures are handled by the dispatcher, so jobs are never retried.
type NotificationWorker struct {
	river.WorkerDefaults[TradeEventArgs]
	dispatcher Dispatcher
}

// NewNotificationWorker creates a worker delivering to d.
func NewNotificationWorker(d Dispatcher) *NotificationWorker {
	return &NotificationWorker{dispatcher: d}
}

// Work processes a single trade event job.
func (w *NotificationWorker) Work(ctx context.Context, job *river.Job[TradeEventArgs]) error {
	slog.DebugContext(ctx, "processing trade event",
		"event", job.Args.EventKind,
		"trade_id", job.Args.TradeID,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	w.dispatcher.Dispatch(ctx, job.Args.Event())
	return nil
}
