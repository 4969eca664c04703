package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/neomorfeo/skillbarter/internal/app"
	"github.com/neomorfeo/skillbarter/internal/domain"
)

type recordingSubscriber struct {
	seen []domain.EventKind
	err  error
	boom bool
}

func (r *recordingSubscriber) Handle(_ context.Context, e domain.TradeEvent) error {
	if r.boom {
		panic("subscriber exploded")
	}
	r.seen = append(r.seen, e.Kind)
	return r.err
}

func TestDispatcher_RoutesByKind(t *testing.T) {
	d := app.NewDispatcher(nil)
	created := &recordingSubscriber{}
	all := &recordingSubscriber{}
	d.Subscribe(created, domain.EventTradeCreated)
	d.Subscribe(all, domain.EventTradeCreated, domain.EventTradeRejected)

	d.Dispatch(context.Background(), domain.TradeEvent{Kind: domain.EventTradeCreated})
	d.Dispatch(context.Background(), domain.TradeEvent{Kind: domain.EventTradeRejected})
	d.Dispatch(context.Background(), domain.TradeEvent{Kind: domain.EventTradeCompleted})

	if len(created.seen) != 1 {
		t.Errorf("created subscriber saw %v, want 1 event", created.seen)
	}
	if len(all.seen) != 2 {
		t.Errorf("multi subscriber saw %v, want 2 events", all.seen)
	}
}

func TestDispatcher_IsolatesFailures(t *testing.T) {
	d := app.NewDispatcher(nil)
	failing := &recordingSubscriber{err: errors.New("disk full")}
	panicking := &recordingSubscriber{boom: true}
	healthy := &recordingSubscriber{}
	d.Subscribe(failing, domain.EventTradeAccepted)
	d.Subscribe(panicking, domain.EventTradeAccepted)
	d.Subscribe(healthy, domain.EventTradeAccepted)

	d.Dispatch(context.Background(), domain.TradeEvent{Kind: domain.EventTradeAccepted})

	if len(healthy.seen) != 1 {
		t.Errorf("healthy subscriber saw %v, want 1 event", healthy.seen)
	}
}

func TestDirectPublisher_NeverFails(t *testing.T) {
	d := app.NewDispatcher(nil)
	d.Subscribe(&recordingSubscriber{err: errors.New("nope")}, domain.EventTradeCreated)
	pub := app.NewDirectPublisher(d)

	if err := pub.Publish(context.Background(), domain.TradeEvent{Kind: domain.EventTradeCreated}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
