package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

type ProposeTradeInput struct {
	Body struct {
		ProposerServiceID string `json:"proposerServiceId" minLength:"1" doc:"Service offered by the caller"`
		ReceiverServiceID string `json:"receiverServiceId" minLength:"1" doc:"Service requested in exchange"`
	}
}

type TradeOutput struct {
	Body TradeResponse
}

type ListTradesOutput struct {
	Body TradesResponse
}

type RespondTradeInput struct {
	ID   string `path:"id" doc:"Trade ID"`
	Body struct {
		Action string `json:"action" enum:"accept,reject" doc:"Response to the proposal"`
	}
}

type CompleteTradeInput struct {
	ID string `path:"id" doc:"Trade ID"`
}

func (h *handlers) registerTrades() {
	huma.Register(h.api, h.authenticated(huma.Operation{
		OperationID:   "propose-trade",
		Method:        http.MethodPost,
		Path:          "/api/v1/trades",
		Summary:       "Propose a trade",
		Tags:          []string{"Trades"},
		DefaultStatus: http.StatusCreated,
	}), func(ctx context.Context, input *ProposeTradeInput) (*TradeOutput, error) {
		trade, err := h.Trades.Propose(ctx, userIDFrom(ctx), input.Body.ProposerServiceID, input.Body.ReceiverServiceID)
		if err != nil {
			return nil, toHumaError(ctx, h.Logger, err)
		}
		return &TradeOutput{Body: toTradeResponse(trade)}, nil
	})

	huma.Register(h.api, h.authenticated(huma.Operation{
		OperationID: "list-trades",
		Method:      http.MethodGet,
		Path:        "/api/v1/trades",
		Summary:     "List incoming and outgoing trades",
		Tags:        []string{"Trades"},
	}), func(ctx context.Context, _ *struct{}) (*ListTradesOutput, error) {
		list, err := h.Trades.GetTrades(ctx, userIDFrom(ctx))
		if err != nil {
			return nil, toHumaError(ctx, h.Logger, err)
		}
		return &ListTradesOutput{Body: TradesResponse{
			Incoming: toTradeDetailResponses(list.Incoming),
			Outgoing: toTradeDetailResponses(list.Outgoing),
		}}, nil
	})

	huma.Register(h.api, h.authenticated(huma.Operation{
		OperationID: "respond-trade",
		Method:      http.MethodPut,
		Path:        "/api/v1/trades/{id}/respond",
		Summary:     "Accept or reject a pending trade",
		Tags:        []string{"Trades"},
	}), func(ctx context.Context, input *RespondTradeInput) (*TradeOutput, error) {
		trade, err := h.Trades.Respond(ctx, userIDFrom(ctx), input.ID, domain.Action(input.Body.Action))
		if err != nil {
			return nil, toHumaError(ctx, h.Logger, err)
		}
		return &TradeOutput{Body: toTradeResponse(trade)}, nil
	})

	huma.Register(h.api, h.authenticated(huma.Operation{
		OperationID: "complete-trade",
		Method:      http.MethodPut,
		Path:        "/api/v1/trades/{id}/complete",
		Summary:     "Mark an accepted trade as completed",
		Tags:        []string{"Trades"},
	}), func(ctx context.Context, input *CompleteTradeInput) (*TradeOutput, error) {
		trade, err := h.Trades.Complete(ctx, userIDFrom(ctx), input.ID)
		if err != nil {
			return nil, toHumaError(ctx, h.Logger, err)
		}
		return &TradeOutput{Body: toTradeResponse(trade)}, nil
	})
}
