package otel_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	adapter "github.com/neomorfeo/skillbarter/internal/adapter/otel"
	"github.com/neomorfeo/skillbarter/internal/domain"
)

// --- Test tracer setup ---

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter
}

// --- Mock repository ---

type mockTrades struct {
	trades map[string]domain.TradeProposal
}

func newMockTrades() *mockTrades {
	return &mockTrades{trades: make(map[string]domain.TradeProposal)}
}

func (m *mockTrades) Create(_ context.Context, t domain.TradeProposal) error {
	m.trades[t.ID] = t
	return nil
}

func (m *mockTrades) GetByID(_ context.Context, id string) (domain.TradeProposal, error) {
	t, ok := m.trades[id]
	if !ok {
		return domain.TradeProposal{}, domain.ErrTradeNotFound
	}
	return t, nil
}

func (m *mockTrades) UpdateStatus(_ context.Context, id string, from, to domain.Status) (domain.TradeProposal, error) {
	t, ok := m.trades[id]
	if !ok {
		return domain.TradeProposal{}, domain.ErrTradeNotFound
	}
	if t.Status != from {
		return domain.TradeProposal{}, domain.ErrStaleStatus
	}
	t.Status = to
	m.trades[id] = t
	return t, nil
}

func (m *mockTrades) ListByReceiver(_ context.Context, userID string) ([]domain.TradeDetail, error) {
	var out []domain.TradeDetail
	for _, t := range m.trades {
		if t.ReceiverID == userID {
			out = append(out, domain.TradeDetail{TradeProposal: t})
		}
	}
	return out, nil
}

func (m *mockTrades) ListByProposer(_ context.Context, userID string) ([]domain.TradeDetail, error) {
	var out []domain.TradeDetail
	for _, t := range m.trades {
		if t.ProposerID == userID {
			out = append(out, domain.TradeDetail{TradeProposal: t})
		}
	}
	return out, nil
}

// --- Tests ---

func TestTracingTradeRepository_Create_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingTradeRepository(newMockTrades())

	trade := domain.NewTradeProposal("tr-1", "alice", "bob", "l-a", "l-b")
	if err := repo.Create(context.Background(), trade); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "TradeRepository.Create" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "TradeRepository.Create")
	}

	assertAttribute(t, spans[0], "trade.id", "tr-1")
	assertAttribute(t, spans[0], "trade.proposer_id", "alice")
	assertAttribute(t, spans[0], "trade.receiver_id", "bob")
}

func TestTracingTradeRepository_GetByID_NotFound(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingTradeRepository(newMockTrades())

	if _, err := repo.GetByID(context.Background(), "missing"); err == nil {
		t.Fatal("expected error")
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected error event recorded on span")
	}
}

func TestTracingTradeRepository_UpdateStatus_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockTrades()
	repo := adapter.NewTracingTradeRepository(inner)
	inner.trades["tr-1"] = domain.NewTradeProposal("tr-1", "alice", "bob", "l-a", "l-b")

	updated, err := repo.UpdateStatus(context.Background(), "tr-1", domain.StatusPending, domain.StatusAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusAccepted {
		t.Errorf("Status = %q, want %q", updated.Status, domain.StatusAccepted)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "TradeRepository.UpdateStatus" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "TradeRepository.UpdateStatus")
	}

	assertAttribute(t, spans[0], "trade.status.from", "PENDING")
	assertAttribute(t, spans[0], "trade.status.to", "ACCEPTED")
}

func TestTracingTradeRepository_ListByReceiver_RecordsCount(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockTrades()
	repo := adapter.NewTracingTradeRepository(inner)
	inner.trades["tr-1"] = domain.NewTradeProposal("tr-1", "alice", "bob", "l-a", "l-b")
	inner.trades["tr-2"] = domain.NewTradeProposal("tr-2", "carol", "bob", "l-c", "l-b")

	trades, err := repo.ListByReceiver(context.Background(), "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 2 {
		t.Errorf("got %d trades, want 2", len(trades))
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "TradeRepository.ListByReceiver" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "TradeRepository.ListByReceiver")
	}

	assertAttribute(t, spans[0], "user.id", "bob")
	assertAttribute(t, spans[0], "result.count", "2")
}

// assertAttribute checks that a span has an attribute with the given key and string value.
func assertAttribute(t *testing.T, span tracetest.SpanStub, key, want string) {
	t.Helper()
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			got := attr.Value.Emit()
			if got != want {
				t.Errorf("attribute %q = %q, want %q", key, got, want)
			}
			return
		}
	}
	t.Errorf("attribute %q not found on span %q", key, span.Name)
}
