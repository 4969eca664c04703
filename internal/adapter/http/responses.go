package http

import (
	"time"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID        string `json:"id" doc:"Unique identifier"`
	Name      string `json:"name" doc:"Display name"`
	Email     string `json:"email" doc:"Email address"`
	CreatedAt string `json:"createdAt" doc:"Registration timestamp (RFC 3339)"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: formatTime(u.CreatedAt),
	}
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken" doc:"Short-lived bearer token"`
}

// UserRef is a compact reference to a user.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ServiceRef is a compact reference to a listing.
type ServiceRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ServiceResponse is the API representation of a listing.
type ServiceResponse struct {
	ID          string  `json:"id" doc:"Unique identifier"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	OwnerID     string  `json:"ownerId"`
	Owner       UserRef `json:"owner"`
	CreatedAt   string  `json:"createdAt" doc:"Creation timestamp (RFC 3339)"`
}

func toServiceResponse(l domain.Listing) ServiceResponse {
	return ServiceResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Category:    l.Category,
		OwnerID:     l.OwnerID,
		Owner:       UserRef{ID: l.OwnerID, Name: l.OwnerName},
		CreatedAt:   formatTime(l.CreatedAt),
	}
}

// TradeResponse is the API representation of a trade proposal. The nested
// references are only present in trade listings.
type TradeResponse struct {
	ID                string      `json:"id" doc:"Unique identifier"`
	ProposerID        string      `json:"proposerId"`
	ReceiverID        string      `json:"receiverId"`
	ProposerServiceID string      `json:"proposerServiceId"`
	ReceiverServiceID string      `json:"receiverServiceId"`
	Status            string      `json:"status" enum:"PENDING,ACCEPTED,REJECTED,COMPLETED"`
	CreatedAt         string      `json:"createdAt"`
	UpdatedAt         string      `json:"updatedAt"`
	Proposer          *UserRef    `json:"proposer,omitempty"`
	Receiver          *UserRef    `json:"receiver,omitempty"`
	ProposerService   *ServiceRef `json:"proposerService,omitempty"`
	ReceiverService   *ServiceRef `json:"receiverService,omitempty"`
}

func toTradeResponse(t domain.TradeProposal) TradeResponse {
	return TradeResponse{
		ID:                t.ID,
		ProposerID:        t.ProposerID,
		ReceiverID:        t.ReceiverID,
		ProposerServiceID: t.ProposerServiceID,
		ReceiverServiceID: t.ReceiverServiceID,
		Status:            string(t.Status),
		CreatedAt:         formatTime(t.CreatedAt),
		UpdatedAt:         formatTime(t.UpdatedAt),
	}
}

func toTradeDetailResponse(d domain.TradeDetail) TradeResponse {
	resp := toTradeResponse(d.TradeProposal)
	resp.Proposer = &UserRef{ID: d.ProposerID, Name: d.ProposerName}
	resp.Receiver = &UserRef{ID: d.ReceiverID, Name: d.ReceiverName}
	resp.ProposerService = &ServiceRef{ID: d.ProposerServiceID, Title: d.ProposerServiceTitle}
	resp.ReceiverService = &ServiceRef{ID: d.ReceiverServiceID, Title: d.ReceiverServiceTitle}
	return resp
}

func toTradeDetailResponses(details []domain.TradeDetail) []TradeResponse {
	out := make([]TradeResponse, len(details))
	for i, d := range details {
		out[i] = toTradeDetailResponse(d)
	}
	return out
}

// TradesResponse splits a user's trades by direction.
type TradesResponse struct {
	Incoming []TradeResponse `json:"incoming" doc:"Trades where the caller is the receiver"`
	Outgoing []TradeResponse `json:"outgoing" doc:"Trades the caller proposed"`
}

// NotificationResponse is the API representation of a notification.
type NotificationResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Type      string `json:"type" enum:"TRADE_PROPOSAL,TRADE_ACCEPTED,TRADE_COMPLETED"`
	Message   string `json:"message"`
	TradeID   string `json:"tradeId,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

func toNotificationResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Message:   n.Message,
		TradeID:   n.TradeID,
		Read:      n.Read,
		CreatedAt: formatTime(n.CreatedAt),
	}
}
