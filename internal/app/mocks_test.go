package app_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// --- Mocks ---

type mockUsers struct {
	byID map[string]domain.User
	err  error
}

func newMockUsers(users ...domain.User) *mockUsers {
	m := &mockUsers{byID: make(map[string]domain.User)}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *mockUsers) Create(_ context.Context, u domain.User) error {
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return &domain.EmailConflictError{Email: u.Email}
		}
	}
	m.byID[u.ID] = u
	return nil
}

func (m *mockUsers) GetByID(_ context.Context, id string) (domain.User, error) {
	if m.err != nil {
		return domain.User{}, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

type mockListings struct {
	byID map[string]domain.Listing
}

func newMockListings(listings ...domain.Listing) *mockListings {
	m := &mockListings{byID: make(map[string]domain.Listing)}
	for _, l := range listings {
		m.byID[l.ID] = l
	}
	return m
}

func (m *mockListings) Create(_ context.Context, l domain.Listing) error {
	l.OwnerName = "owner-" + l.OwnerID
	m.byID[l.ID] = l
	return nil
}

func (m *mockListings) GetByID(_ context.Context, id string) (domain.Listing, error) {
	l, ok := m.byID[id]
	if !ok {
		return domain.Listing{}, domain.ErrListingNotFound
	}
	return l, nil
}

func (m *mockListings) List(_ context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	out := make([]domain.Listing, 0, len(m.byID))
	for _, l := range m.byID {
		if filter.Category != "" && l.Category != filter.Category {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type mockTrades struct {
	mu     sync.Mutex
	byID   map[string]domain.TradeProposal
	order  []string
	stale  bool // force the next UpdateStatus to lose a race
	racer  domain.Status
	writes int
}

func newMockTrades() *mockTrades {
	return &mockTrades{byID: make(map[string]domain.TradeProposal)}
}

func (m *mockTrades) Create(_ context.Context, t domain.TradeProposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[t.ID] = t
	m.order = append(m.order, t.ID)
	return nil
}

func (m *mockTrades) GetByID(_ context.Context, id string) (domain.TradeProposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok {
		return domain.TradeProposal{}, domain.ErrTradeNotFound
	}
	return t, nil
}

func (m *mockTrades) UpdateStatus(_ context.Context, id string, from, to domain.Status) (domain.TradeProposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok {
		return domain.TradeProposal{}, domain.ErrTradeNotFound
	}
	if m.stale {
		m.stale = false
		t.Status = m.racer
		m.byID[id] = t
		return domain.TradeProposal{}, domain.ErrStaleStatus
	}
	if t.Status != from {
		return domain.TradeProposal{}, domain.ErrStaleStatus
	}
	t.Status = to
	m.byID[id] = t
	m.writes++
	return t, nil
}

func (m *mockTrades) ListByReceiver(_ context.Context, userID string) ([]domain.TradeDetail, error) {
	return m.list(func(t domain.TradeProposal) bool { return t.ReceiverID == userID }), nil
}

func (m *mockTrades) ListByProposer(_ context.Context, userID string) ([]domain.TradeDetail, error) {
	return m.list(func(t domain.TradeProposal) bool { return t.ProposerID == userID }), nil
}

// list returns matching trades newest first, using insertion order.
func (m *mockTrades) list(match func(domain.TradeProposal) bool) []domain.TradeDetail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.TradeDetail, 0)
	for i := len(m.order) - 1; i >= 0; i-- {
		t := m.byID[m.order[i]]
		if match(t) {
			out = append(out, domain.TradeDetail{TradeProposal: t})
		}
	}
	return out
}

type mockPublisher struct {
	mu     sync.Mutex
	events []domain.TradeEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, e domain.TradeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return m.err
}

func (m *mockPublisher) kinds() []domain.EventKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.EventKind, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Kind)
	}
	return out
}

type mockHasher struct{}

func (mockHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (mockHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// mockTokens encodes the kind and user into the token string.
type mockTokens struct{}

func (mockTokens) Issue(userID string, kind domain.TokenKind) (string, error) {
	return string(kind) + ":" + userID, nil
}

func (mockTokens) Verify(token string, kind domain.TokenKind) (string, error) {
	prefix := string(kind) + ":"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", errors.New("bad token")
	}
	return token[len(prefix):], nil
}

type mockNotifications struct {
	items []domain.Notification
}

func (m *mockNotifications) Create(_ context.Context, n domain.Notification) error {
	m.items = append(m.items, n)
	return nil
}

func (m *mockNotifications) ListByUser(_ context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	out := make([]domain.Notification, 0)
	for _, n := range m.items {
		if n.UserID != userID || (unreadOnly && n.Read) {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockNotifications) MarkRead(_ context.Context, id, userID string) error {
	for i, n := range m.items {
		if n.ID == id && n.UserID == userID {
			m.items[i].Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}
