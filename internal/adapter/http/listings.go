package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

type CreateServiceInput struct {
	Body struct {
		Title       string `json:"title" maxLength:"255" doc:"Short title"`
		Description string `json:"description" maxLength:"5000" doc:"What is offered"`
		Category    string `json:"category" maxLength:"100" doc:"Category"`
	}
}

type ServiceOutput struct {
	Body ServiceResponse
}

type GetServiceInput struct {
	ID string `path:"id" doc:"Service ID"`
}

type ListServicesInput struct {
	Query    string `query:"q" required:"false" doc:"Case-insensitive search over title and description"`
	Category string `query:"category" required:"false" doc:"Filter by category"`
	Owner    string `query:"owner" required:"false" doc:"Filter by owner ID"`
}

type ListServicesOutput struct {
	Body []ServiceResponse
}

func (h *handlers) registerListings() {
	huma.Register(h.api, huma.Operation{
		OperationID: "list-services",
		Method:      http.MethodGet,
		Path:        "/api/v1/services",
		Summary:     "List services, newest first",
		Tags:        []string{"Services"},
	}, func(ctx context.Context, input *ListServicesInput) (*ListServicesOutput, error) {
		listings, err := h.Listings.List(ctx, domain.ListingFilter{
			Query:    input.Query,
			Category: input.Category,
			OwnerID:  input.Owner,
		})
		if err != nil {
			return nil, toHumaError(ctx, h.Logger, err)
		}

		resp := make([]ServiceResponse, len(listings))
		for i, l := range listings {
			resp[i] = toServiceResponse(l)
		}
		return &ListServicesOutput{Body: resp}, nil
	})

	huma.Register(h.api, huma.Operation{
		OperationID: "get-service",
		Method:      http.MethodGet,
		Path:        "/api/v1/services/{id}",
		Summary:     "Get a service by ID",
		Tags:        []string{"Services"},
	}, func(ctx context.Context, input *GetServiceInput) (*ServiceOutput, error) {
		listing, err := h.Listings.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(ctx, h.Logger, err)
		}
		return &ServiceOutput{Body: toServiceResponse(listing)}, nil
	})

	huma.Register(h.api, h.authenticated(huma.Operation{
		OperationID:   "create-service",
		Method:        http.MethodPost,
		Path:          "/api/v1/services",
		Summary:       "Offer a new service",
		Tags:          []string{"Services"},
		DefaultStatus: http.StatusCreated,
	}), func(ctx context.Context, input *CreateServiceInput) (*ServiceOutput, error) {
		listing, err := h.Listings.Create(ctx, userIDFrom(ctx), input.Body.Title, input.Body.Description, input.Body.Category)
		if err != nil {
			return nil, toHumaError(ctx, h.Logger, err)
		}
		return &ServiceOutput{Body: toServiceResponse(listing)}, nil
	})
}
