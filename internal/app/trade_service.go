package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// TradeService orchestrates the trade proposal lifecycle.
type TradeService struct {
	trades    domain.TradeRepository
	listings  domain.ListingRepository
	users     domain.UserRepository
	publisher domain.EventPublisher
	validator domain.TransitionValidator
	logger    *slog.Logger
}

// NewTradeService creates a service with the given adapters. A nil logger uses slog.Default().
func NewTradeService(
	trades domain.TradeRepository,
	listings domain.ListingRepository,
	users domain.UserRepository,
	publisher domain.EventPublisher,
	validator domain.TransitionValidator,
	logger *slog.Logger,
) *TradeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TradeService{
		trades:    trades,
		listings:  listings,
		users:     users,
		publisher: publisher,
		validator: validator,
		logger:    logger,
	}
}

// Propose offers proposerServiceID in exchange for receiverServiceID. The
// receiver is always the owner of the requested listing.
func (s *TradeService) Propose(ctx context.Context, proposerID, proposerServiceID, receiverServiceID string) (domain.TradeProposal, error) {
	requested, err := s.listings.GetByID(ctx, receiverServiceID)
	if err != nil {
		return domain.TradeProposal{}, err
	}
	if requested.OwnerID == proposerID {
		return domain.TradeProposal{}, &domain.InvalidOperationError{Reason: "cannot trade with yourself"}
	}

	offered, err := s.listings.GetByID(ctx, proposerServiceID)
	if err != nil {
		return domain.TradeProposal{}, err
	}
	if offered.OwnerID != proposerID {
		return domain.TradeProposal{}, &domain.InvalidOperationError{Reason: "not the owner of offered service"}
	}

	id, err := generateID()
	if err != nil {
		return domain.TradeProposal{}, fmt.Errorf("generating trade id: %w", err)
	}

	trade := domain.NewTradeProposal(id, proposerID, requested.OwnerID, offered.ID, requested.ID)

	if err := s.trades.Create(ctx, trade); err != nil {
		return domain.TradeProposal{}, fmt.Errorf("creating trade: %w", err)
	}

	s.publish(ctx, domain.TradeEvent{
		Kind:      domain.EventTradeCreated,
		Trade:     trade,
		ActorID:   proposerID,
		ActorName: s.displayName(ctx, proposerID),
	})

	return trade, nil
}

// GetTrades returns the trades a user received and the ones they proposed.
func (s *TradeService) GetTrades(ctx context.Context, userID string) (domain.TradeList, error) {
	incoming, err := s.trades.ListByReceiver(ctx, userID)
	if err != nil {
		return domain.TradeList{}, fmt.Errorf("listing incoming trades: %w", err)
	}

	outgoing, err := s.trades.ListByProposer(ctx, userID)
	if err != nil {
		return domain.TradeList{}, fmt.Errorf("listing outgoing trades: %w", err)
	}

	return domain.TradeList{Incoming: incoming, Outgoing: outgoing}, nil
}

// Respond accepts or rejects a pending trade. Only the receiver may respond.
func (s *TradeService) Respond(ctx context.Context, userID, tradeID string, action domain.Action) (domain.TradeProposal, error) {
	if action != domain.ActionAccept && action != domain.ActionReject {
		return domain.TradeProposal{}, &domain.InvalidOperationError{Reason: "action must be 'accept' or 'reject'"}
	}

	trade, err := s.trades.GetByID(ctx, tradeID)
	if err != nil {
		return domain.TradeProposal{}, err
	}

	if trade.ReceiverID != userID {
		return domain.TradeProposal{}, &domain.PermissionDeniedError{Reason: "only the receiver may respond to this trade"}
	}

	updated, err := s.transition(ctx, trade, action, "trade has already been processed")
	if err != nil {
		return domain.TradeProposal{}, err
	}

	if action == domain.ActionAccept {
		s.publish(ctx, domain.TradeEvent{
			Kind:      domain.EventTradeAccepted,
			Trade:     updated,
			ActorID:   userID,
			ActorName: s.displayName(ctx, userID),
		})
	} else {
		s.publish(ctx, domain.TradeEvent{
			Kind:    domain.EventTradeRejected,
			Trade:   updated,
			ActorID: userID,
		})
	}

	return updated, nil
}

// Complete marks an accepted trade as completed. Either participant may complete it.
func (s *TradeService) Complete(ctx context.Context, userID, tradeID string) (domain.TradeProposal, error) {
	trade, err := s.trades.GetByID(ctx, tradeID)
	if err != nil {
		return domain.TradeProposal{}, err
	}

	if !trade.IsParticipant(userID) {
		return domain.TradeProposal{}, &domain.PermissionDeniedError{Reason: "not a participant"}
	}

	updated, err := s.transition(ctx, trade, domain.ActionComplete, "only accepted trades can be completed")
	if err != nil {
		return domain.TradeProposal{}, err
	}

	s.publish(ctx, domain.TradeEvent{
		Kind:    domain.EventTradeCompleted,
		Trade:   updated,
		ActorID: userID,
	})

	return updated, nil
}

// transition validates the action against the state machine and applies it
// with a conditional update keyed on the status that was validated.
func (s *TradeService) transition(ctx context.Context, trade domain.TradeProposal, action domain.Action, reason string) (domain.TradeProposal, error) {
	next, err := s.validator.Apply(ctx, trade.Status, action)
	if err != nil {
		var trErr *domain.TransitionError
		if errors.As(err, &trErr) {
			return domain.TradeProposal{}, &domain.InvalidStateError{Current: trade.Status, Reason: reason, Err: err}
		}
		return domain.TradeProposal{}, fmt.Errorf("validating transition: %w", err)
	}

	updated, err := s.trades.UpdateStatus(ctx, trade.ID, trade.Status, next)
	if err != nil {
		if errors.Is(err, domain.ErrStaleStatus) {
			// Lost a race with another writer; report what the caller would
			// have seen had it arrived second.
			current := trade.Status
			if fresh, getErr := s.trades.GetByID(ctx, trade.ID); getErr == nil {
				current = fresh.Status
			}
			return domain.TradeProposal{}, &domain.InvalidStateError{Current: current, Reason: reason, Err: err}
		}
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TradeProposal{}, err
		}
		return domain.TradeProposal{}, fmt.Errorf("updating trade status: %w", err)
	}

	return updated, nil
}

// publish emits an event without letting delivery problems affect the caller.
func (s *TradeService) publish(ctx context.Context, event domain.TradeEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "publishing trade event",
			"event", event.Kind,
			"trade_id", event.Trade.ID,
			"error", err,
		)
		return
	}
	s.logger.InfoContext(ctx, "trade event published",
		"event", event.Kind,
		"trade_id", event.Trade.ID,
		"status", event.Trade.Status,
	)
}

func (s *TradeService) displayName(ctx context.Context, userID string) string {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "resolving display name",
			"user_id", userID,
			"error", err,
		)
		return ""
	}
	return user.Name
}
