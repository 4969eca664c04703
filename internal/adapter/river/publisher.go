package river

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// TradeEventArgs carries a trade event through the job queue. It includes a
// snapshot of the trade at publish time, so the worker never needs to query
// the database to rebuild the event.
type TradeEventArgs struct {
	EventKind         string    `json:"kind"`
	TradeID           string    `json:"trade_id"`
	ProposerID        string    `json:"proposer_id"`
	ReceiverID        string    `json:"receiver_id"`
	ProposerServiceID string    `json:"proposer_service_id"`
	ReceiverServiceID string    `json:"receiver_service_id"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	ActorID           string    `json:"actor_id"`
	ActorName         string    `json:"actor_name,omitempty"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (TradeEventArgs) Kind() string { return "trade.event" }

// InsertOpts routes trade events to the notifications queue. The worker
// never fails a job, so one attempt is enough.
func (TradeEventArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{Queue: QueueNotifications, MaxAttempts: 1}
}

// newTradeEventArgs snapshots event into job args.
func newTradeEventArgs(event domain.TradeEvent) TradeEventArgs {
	t := event.Trade
	return TradeEventArgs{
		EventKind:         string(event.Kind),
		TradeID:           t.ID,
		ProposerID:        t.ProposerID,
		ReceiverID:        t.ReceiverID,
		ProposerServiceID: t.ProposerServiceID,
		ReceiverServiceID: t.ReceiverServiceID,
		Status:            string(t.Status),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		ActorID:           event.ActorID,
		ActorName:         event.ActorName,
	}
}

// Event rebuilds the domain event carried by the job.
func (a TradeEventArgs) Event() domain.TradeEvent {
	return domain.TradeEvent{
		Kind: domain.EventKind(a.EventKind),
		Trade: domain.TradeProposal{
			ID:                a.TradeID,
			ProposerID:        a.ProposerID,
			ReceiverID:        a.ReceiverID,
			ProposerServiceID: a.ProposerServiceID,
			ReceiverServiceID: a.ReceiverServiceID,
			Status:            domain.Status(a.Status),
			CreatedAt:         a.CreatedAt,
			UpdatedAt:         a.UpdatedAt,
		},
		ActorID:   a.ActorID,
		ActorName: a.ActorName,
	}
}

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a trade event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.TradeEvent) error {
	if _, err := p.client.Insert(ctx, newTradeEventArgs(event), nil); err != nil {
		return fmt.Errorf("enqueuing trade event job: %w", err)
	}
	return nil
}
