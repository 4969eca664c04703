package domain

import "time"

// NotificationType enumerates the notifications the marketplace sends.
type NotificationType string

const (
	NotificationTradeProposal  NotificationType = "TRADE_PROPOSAL"
	NotificationTradeAccepted  NotificationType = "TRADE_ACCEPTED"
	NotificationTradeCompleted NotificationType = "TRADE_COMPLETED"
)

// Notification is a message addressed to one user about one trade.
type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Message   string
	TradeID   string
	Read      bool
	CreatedAt time.Time
}

// NewNotification creates an unread notification.
func NewNotification(id, userID string, typ NotificationType, message, tradeID string) Notification {
	return Notification{
		ID:        id,
		UserID:    userID,
		Type:      typ,
		Message:   message,
		TradeID:   tradeID,
		CreatedAt: time.Now().UTC(),
	}
}
