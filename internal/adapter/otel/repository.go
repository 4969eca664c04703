package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

const tracerName = "github.com/neomorfeo/skillbarter/internal/adapter/otel"

// TracingTradeRepository wraps a domain.TradeRepository with OpenTelemetry tracing.
// Each method creates a span with trade attributes and records errors.
type TracingTradeRepository struct {
	next   domain.TradeRepository
	tracer trace.Tracer
}

// Compile-time check: TracingTradeRepository implements domain.TradeRepository.
var _ domain.TradeRepository = (*TracingTradeRepository)(nil)

// NewTracingTradeRepository creates a tracing decorator around the given repository.
func NewTracingTradeRepository(next domain.TradeRepository) *TracingTradeRepository {
	return &TracingTradeRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingTradeRepository) Create(ctx context.Context, trade domain.TradeProposal) error {
	ctx, span := r.tracer.Start(ctx, "TradeRepository.Create",
		trace.WithAttributes(
			attribute.String("trade.id", trade.ID),
			attribute.String("trade.proposer_id", trade.ProposerID),
			attribute.String("trade.receiver_id", trade.ReceiverID),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, trade)
	recordError(span, err)
	return err
}

func (r *TracingTradeRepository) GetByID(ctx context.Context, id string) (domain.TradeProposal, error) {
	ctx, span := r.tracer.Start(ctx, "TradeRepository.GetByID",
		trace.WithAttributes(attribute.String("trade.id", id)),
	)
	defer span.End()

	trade, err := r.next.GetByID(ctx, id)
	if err == nil {
		span.SetAttributes(attribute.String("trade.status", string(trade.Status)))
	}
	recordError(span, err)
	return trade, err
}

func (r *TracingTradeRepository) UpdateStatus(ctx context.Context, id string, from, to domain.Status) (domain.TradeProposal, error) {
	ctx, span := r.tracer.Start(ctx, "TradeRepository.UpdateStatus",
		trace.WithAttributes(
			attribute.String("trade.id", id),
			attribute.String("trade.status.from", string(from)),
			attribute.String("trade.status.to", string(to)),
		),
	)
	defer span.End()

	trade, err := r.next.UpdateStatus(ctx, id, from, to)
	recordError(span, err)
	return trade, err
}

func (r *TracingTradeRepository) ListByReceiver(ctx context.Context, userID string) ([]domain.TradeDetail, error) {
	return r.list(ctx, "TradeRepository.ListByReceiver", userID, r.next.ListByReceiver)
}

func (r *TracingTradeRepository) ListByProposer(ctx context.Context, userID string) ([]domain.TradeDetail, error) {
	return r.list(ctx, "TradeRepository.ListByProposer", userID, r.next.ListByProposer)
}

func (r *TracingTradeRepository) list(
	ctx context.Context,
	name, userID string,
	fn func(context.Context, string) ([]domain.TradeDetail, error),
) ([]domain.TradeDetail, error) {
	ctx, span := r.tracer.Start(ctx, name,
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	trades, err := fn(ctx, userID)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(trades)))
	}
	recordError(span, err)
	return trades, err
}

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
