package sqlite_test

import (
	"context"
	"testing"

	"github.com/neomorfeo/skillbarter/internal/adapter/sqlite"
	"github.com/neomorfeo/skillbarter/internal/domain"
)

// newTestStore creates an in-memory SQLite store for testing.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreateUser(t *testing.T, store *sqlite.Store, id, name string) domain.User {
	t.Helper()
	user := domain.NewUser(id, name, id+"@uni.edu", "hash")
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("mustCreateUser failed: %v", err)
	}
	return user
}

func mustCreateListing(t *testing.T, store *sqlite.Store, id, ownerID, title, category string) domain.Listing {
	t.Helper()
	listing := domain.NewListing(id, ownerID, title, "Description of "+title, category)
	if err := store.Listings().Create(context.Background(), listing); err != nil {
		t.Fatalf("mustCreateListing failed: %v", err)
	}
	return listing
}

func mustCreateTrade(t *testing.T, store *sqlite.Store, trade domain.TradeProposal) {
	t.Helper()
	if err := store.Trades().Create(context.Background(), trade); err != nil {
		t.Fatalf("mustCreateTrade failed: %v", err)
	}
}

func TestNew_MigrationsAreIdempotent(t *testing.T) {
	dbPath := t.TempDir() + "/skillbarter.db"

	first, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	mustCreateUser(t, first, "alice", "Alice")
	first.Close()

	second, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	got, err := second.Users().GetByID(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByID after reopen: %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("Name = %q, want %q", got.Name, "Alice")
	}
}
