package domain

import "context"

// UserRepository defines the persistence contract for users.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

// ListingRepository defines the persistence contract for service listings.
type ListingRepository interface {
	Create(ctx context.Context, listing Listing) error
	GetByID(ctx context.Context, id string) (Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]Listing, error)
}

// TradeRepository defines the persistence contract for trade proposals.
type TradeRepository interface {
	Create(ctx context.Context, trade TradeProposal) error
	GetByID(ctx context.Context, id string) (TradeProposal, error)
	// UpdateStatus moves the trade to "to" only if it is currently "from".
	// It returns ErrStaleStatus when no row matched.
	UpdateStatus(ctx context.Context, id string, from, to Status) (TradeProposal, error)
	ListByReceiver(ctx context.Context, userID string) ([]TradeDetail, error)
	ListByProposer(ctx context.Context, userID string) ([]TradeDetail, error)
}

// NotificationRepository is the sink the notification listener writes to.
type NotificationRepository interface {
	Create(ctx context.Context, n Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

// EventPublisher defines the contract for emitting trade events.
type EventPublisher interface {
	Publish(ctx context.Context, event TradeEvent) error
}

// EventSubscriber consumes trade events routed by a dispatcher.
type EventSubscriber interface {
	Handle(ctx context.Context, event TradeEvent) error
}

// TransitionValidator checks an action against the trade state machine and
// returns the destination status.
type TransitionValidator interface {
	Apply(ctx context.Context, current Status, action Action) (Status, error)
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(userID string, kind TokenKind) (string, error)
	Verify(token string, kind TokenKind) (string, error)
}
