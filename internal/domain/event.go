package domain

// EventKind identifies a trade lifecycle event.
type EventKind string

const (
	EventTradeCreated   EventKind = "trade.created"
	EventTradeAccepted  EventKind = "trade.accepted"
	EventTradeRejected  EventKind = "trade.rejected"
	EventTradeCompleted EventKind = "trade.completed"
)

// TradeEvent is published after a trade is created or changes status.
// ActorID is the user who caused the event. ActorName is set for
// TradeCreated (proposer) and TradeAccepted (receiver).
type TradeEvent struct {
	Kind      EventKind
	Trade     TradeProposal
	ActorID   string
	ActorName string
}
