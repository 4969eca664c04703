package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// ListingService manages the services users offer for barter.
type ListingService struct {
	repo domain.ListingRepository
}

func NewListingService(repo domain.ListingRepository) *ListingService {
	return &ListingService{repo: repo}
}

// Create publishes a new listing owned by ownerID.
func (s *ListingService) Create(ctx context.Context, ownerID, title, description, category string) (domain.Listing, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	category = strings.TrimSpace(category)
	if title == "" || description == "" || category == "" {
		return domain.Listing{}, &domain.InvalidOperationError{Reason: "title, description, and category are required"}
	}

	id, err := generateID()
	if err != nil {
		return domain.Listing{}, fmt.Errorf("generating listing id: %w", err)
	}

	listing := domain.NewListing(id, ownerID, title, description, category)
	if err := s.repo.Create(ctx, listing); err != nil {
		return domain.Listing{}, fmt.Errorf("creating listing: %w", err)
	}

	// Re-read to pick up the owner's display name.
	return s.repo.GetByID(ctx, id)
}

func (s *ListingService) GetByID(ctx context.Context, id string) (domain.Listing, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ListingService) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	return s.repo.List(ctx, filter)
}
