package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/neomorfeo/skillbarter/internal/app"
	"github.com/neomorfeo/skillbarter/internal/domain"
)

func TestListingCreate_Success(t *testing.T) {
	repo := newMockListings()
	svc := app.NewListingService(repo)

	listing, err := svc.Create(context.Background(), "alice", "  Guitar lessons ", "Beginner chords", "music")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.Title != "Guitar lessons" {
		t.Errorf("Title = %q, want trimmed", listing.Title)
	}
	if listing.OwnerID != "alice" || listing.OwnerName != "owner-alice" {
		t.Errorf("owner = %q/%q", listing.OwnerID, listing.OwnerName)
	}
}

func TestListingCreate_RequiredFields(t *testing.T) {
	tests := []struct {
		name                         string
		title, description, category string
	}{
		{name: "no title", description: "d", category: "c"},
		{name: "no description", title: "t", category: "c"},
		{name: "no category", title: "t", description: "d"},
		{name: "blank title", title: "   ", description: "d", category: "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := app.NewListingService(newMockListings())
			_, err := svc.Create(context.Background(), "alice", tt.title, tt.description, tt.category)
			assertInvalidOperation(t, err)
			if err.Error() != "title, description, and category are required" {
				t.Errorf("message = %q", err.Error())
			}
		})
	}
}

func TestListingGetByID_NotFound(t *testing.T) {
	svc := app.NewListingService(newMockListings())

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("expected ErrListingNotFound, got %v", err)
	}
}

func TestNotificationService_ListAndMarkRead(t *testing.T) {
	repo := &mockNotifications{}
	_ = repo.Create(context.Background(), domain.NewNotification("n-1", "bob", domain.NotificationTradeProposal, "hi", "tr-1"))
	svc := app.NewNotificationService(repo)

	unread, err := svc.List(context.Background(), "bob", true)
	if err != nil || len(unread) != 1 {
		t.Fatalf("List(unread) = %v, %v", unread, err)
	}

	if err := svc.MarkRead(context.Background(), "alice", "n-1"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Errorf("expected ErrNotificationNotFound for other user, got %v", err)
	}
	if err := svc.MarkRead(context.Background(), "bob", "n-1"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	unread, _ = svc.List(context.Background(), "bob", true)
	if len(unread) != 0 {
		t.Errorf("expected no unread notifications, got %d", len(unread))
	}
	all, _ := svc.List(context.Background(), "bob", false)
	if len(all) != 1 || !all[0].Read {
		t.Errorf("all = %+v", all)
	}
}
