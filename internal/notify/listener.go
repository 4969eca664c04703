package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// Compile-time check: Listener implements domain.EventSubscriber.
var _ domain.EventSubscriber = (*Listener)(nil)

// Listener persists one notification per trade event it is subscribed to.
type Listener struct {
	sink   domain.NotificationRepository
	logger *slog.Logger
}

// NewListener creates a listener writing to sink. A nil logger uses slog.Default().
func NewListener(sink domain.NotificationRepository, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{sink: sink, logger: logger}
}

// Kinds returns the event kinds the listener should be subscribed to.
func (l *Listener) Kinds() []domain.EventKind {
	return Kinds()
}

// Handle renders and stores the notification for event. Events without a
// template are ignored.
func (l *Listener) Handle(ctx context.Context, event domain.TradeEvent) error {
	typ, payload, message, ok := Render(event)
	if !ok {
		return nil
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Errorf("generating notification id: %w", err)
	}

	n := domain.NewNotification(id.String(), payload.AddresseeID, typ, message, payload.TradeID)
	if err := l.sink.Create(ctx, n); err != nil {
		return fmt.Errorf("storing %s notification: %w", typ, err)
	}

	l.logger.InfoContext(ctx, "notification created",
		"notification_id", n.ID,
		"user_id", n.UserID,
		"type", n.Type,
		"trade_id", n.TradeID,
	)
	return nil
}
