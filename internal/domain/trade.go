package domain

import "time"

// Status represents the lifecycle state of a trade proposal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
)

// Action is a request to move a trade from one status to another.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
)

// Transition defines a valid state change: an action moves a trade from Src to Dst.
type Transition struct {
	Action Action
	Src    Status
	Dst    Status
}

// Transitions defines all valid state changes in the trade lifecycle.
// REJECTED and COMPLETED are terminal and nothing leads back to PENDING.
var Transitions = []Transition{
	{Action: ActionAccept, Src: StatusPending, Dst: StatusAccepted},
	{Action: ActionReject, Src: StatusPending, Dst: StatusRejected},
	{Action: ActionComplete, Src: StatusAccepted, Dst: StatusCompleted},
}

// TradeProposal is an offer to exchange one listing for another between two users.
type TradeProposal struct {
	ID                string
	ProposerID        string
	ReceiverID        string
	ProposerServiceID string
	ReceiverServiceID string
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewTradeProposal creates a proposal in the initial PENDING state.
func NewTradeProposal(id, proposerID, receiverID, proposerServiceID, receiverServiceID string) TradeProposal {
	now := time.Now().UTC()
	return TradeProposal{
		ID:                id,
		ProposerID:        proposerID,
		ReceiverID:        receiverID,
		ProposerServiceID: proposerServiceID,
		ReceiverServiceID: receiverServiceID,
		Status:            StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// IsParticipant reports whether userID is the proposer or the receiver.
func (t TradeProposal) IsParticipant(userID string) bool {
	return userID == t.ProposerID || userID == t.ReceiverID
}

// Counterpart returns the participant that is not userID.
func (t TradeProposal) Counterpart(userID string) string {
	if userID == t.ProposerID {
		return t.ReceiverID
	}
	return t.ProposerID
}

// TradeDetail is a trade joined with the names and titles shown to users.
type TradeDetail struct {
	TradeProposal
	ProposerName         string
	ReceiverName         string
	ProposerServiceTitle string
	ReceiverServiceTitle string
}

// TradeList groups a user's trades by direction, newest first.
type TradeList struct {
	Incoming []TradeDetail
	Outgoing []TradeDetail
}
