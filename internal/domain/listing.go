package domain

import "time"

// Listing is a service a user offers for barter.
type Listing struct {
	ID          string
	OwnerID     string
	OwnerName   string
	Title       string
	Description string
	Category    string
	CreatedAt   time.Time
}

// NewListing creates a listing owned by ownerID.
func NewListing(id, ownerID, title, description, category string) Listing {
	return Listing{
		ID:          id,
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Category:    category,
		CreatedAt:   time.Now().UTC(),
	}
}

// ListingFilter holds optional criteria for listing services.
type ListingFilter struct {
	// Query matches title or description, case-insensitively.
	Query    string
	Category string
	OwnerID  string
}
