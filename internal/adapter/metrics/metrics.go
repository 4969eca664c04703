package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Metrics holds the Prometheus collectors for the trade workflow.
// Each instance owns a private registry so tests can build as many as they need.
type Metrics struct {
	registry      *prometheus.Registry
	tradeEvents   *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tradeEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skillbarter",
			Name:      "trade_events_total",
			Help:      "Trade lifecycle events published, segmented by kind and outcome.",
		}, []string{"kind", "outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skillbarter",
			Name:      "notifications_total",
			Help:      "Notifications written, segmented by type and outcome.",
		}, []string{"type", "outcome"}),
	}
	m.registry.MustRegister(
		m.tradeEvents,
		m.notifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// TradeEvents exposes the trade event counter.
func (m *Metrics) TradeEvents() *prometheus.CounterVec {
	return m.tradeEvents
}

// NotificationsCounter exposes the notification counter.
func (m *Metrics) NotificationsCounter() *prometheus.CounterVec {
	return m.notifications
}

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeOK
}

// Compile-time check: CountingPublisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*CountingPublisher)(nil)

// CountingPublisher counts every event passed to the wrapped publisher.
type CountingPublisher struct {
	next    domain.EventPublisher
	counter *prometheus.CounterVec
}

// Publisher wraps next so each publish is counted by kind and outcome.
func (m *Metrics) Publisher(next domain.EventPublisher) *CountingPublisher {
	return &CountingPublisher{next: next, counter: m.tradeEvents}
}

func (p *CountingPublisher) Publish(ctx context.Context, event domain.TradeEvent) error {
	err := p.next.Publish(ctx, event)
	p.counter.WithLabelValues(string(event.Kind), outcome(err)).Inc()
	return err
}

// Compile-time check: CountingNotifications implements domain.NotificationRepository.
var _ domain.NotificationRepository = (*CountingNotifications)(nil)

// CountingNotifications counts notification writes on the wrapped repository.
type CountingNotifications struct {
	next    domain.NotificationRepository
	counter *prometheus.CounterVec
}

// Notifications wraps next so each Create is counted by type and outcome.
func (m *Metrics) Notifications(next domain.NotificationRepository) *CountingNotifications {
	return &CountingNotifications{next: next, counter: m.notifications}
}

func (n *CountingNotifications) Create(ctx context.Context, notification domain.Notification) error {
	err := n.next.Create(ctx, notification)
	n.counter.WithLabelValues(string(notification.Type), outcome(err)).Inc()
	return err
}

func (n *CountingNotifications) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	return n.next.ListByUser(ctx, userID, unreadOnly)
}

func (n *CountingNotifications) MarkRead(ctx context.Context, id, userID string) error {
	return n.next.MarkRead(ctx, id, userID)
}
