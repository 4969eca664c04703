package notify

import (
	"fmt"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// Payload is the structured input every template renders from.
type Payload struct {
	TradeID     string
	AddresseeID string
	DisplayName string
}

// template turns a trade event into a notification for one addressee.
type template struct {
	Type      domain.NotificationType
	addressee func(domain.TradeEvent) string
	message   func(Payload) string
}

// templates is the closed set of notifications produced by trade events.
// TradeRejected has no entry: rejections do not notify the proposer.
var templates = map[domain.EventKind]template{
	domain.EventTradeCreated: {
		Type:      domain.NotificationTradeProposal,
		addressee: func(e domain.TradeEvent) string { return e.Trade.ReceiverID },
		message: func(p Payload) string {
			return fmt.Sprintf("%s proposed a trade for your service.", subject(p.DisplayName))
		},
	},
	domain.EventTradeAccepted: {
		Type:      domain.NotificationTradeAccepted,
		addressee: func(e domain.TradeEvent) string { return e.Trade.ProposerID },
		message: func(p Payload) string {
			return fmt.Sprintf("%s accepted your trade proposal!", subject(p.DisplayName))
		},
	},
	domain.EventTradeCompleted: {
		Type:      domain.NotificationTradeCompleted,
		addressee: func(e domain.TradeEvent) string { return e.Trade.Counterpart(e.ActorID) },
		message: func(Payload) string {
			return "The trade has been marked as completed."
		},
	},
}

// Kinds returns the event kinds that produce a notification.
func Kinds() []domain.EventKind {
	return []domain.EventKind{
		domain.EventTradeCreated,
		domain.EventTradeAccepted,
		domain.EventTradeCompleted,
	}
}

// Render builds the payload and message for event. ok is false for event
// kinds that have no template.
func Render(event domain.TradeEvent) (typ domain.NotificationType, payload Payload, message string, ok bool) {
	tpl, ok := templates[event.Kind]
	if !ok {
		return "", Payload{}, "", false
	}

	payload = Payload{
		TradeID:     event.Trade.ID,
		AddresseeID: tpl.addressee(event),
		DisplayName: event.ActorName,
	}
	return tpl.Type, payload, tpl.message(payload), true
}

func subject(name string) string {
	if name == "" {
		return "Someone"
	}
	return name
}
