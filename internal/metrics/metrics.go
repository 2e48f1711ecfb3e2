package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Metrics holds the storefront collectors
type Metrics struct {
	CartEvents      *prometheus.CounterVec
	OrdersCompleted prometheus.Counter
	PhotosUnlocked  prometheus.Counter
	RevenueCents    prometheus.Counter
	Notifications   *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		CartEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_events_total",
			Help:      "Cart state machine events by event name and result.",
		}, []string{"event", "result"}),
		OrdersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_completed_total",
			Help:      "Orders completed through the simulated checkout.",
		}),
		PhotosUnlocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "photos_unlocked_total",
			Help:      "Photos unlocked by completed orders.",
		}),
		RevenueCents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_cents_total",
			Help:      "Simulated revenue in cents.",
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_notifications_total",
			Help:      "Order confirmation notifications by result.",
		}, []string{"result"}),
		gatherer: reg,
	}

	reg.MustRegister(m.CartEvents, m.OrdersCompleted, m.PhotosUnlocked, m.RevenueCents, m.Notifications)
	return m
}

// NewDefault registers the storefront collectors together with the Go
// runtime and process collectors.
func NewDefault() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return New(reg)
}

// ObserveEvent counts one state machine event
func (m *Metrics) ObserveEvent(event string, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	m.CartEvents.WithLabelValues(event, result).Inc()
}

// ObserveOrder counts a completed order
func (m *Metrics) ObserveOrder(photos int, totalCents int64) {
	m.OrdersCompleted.Inc()
	m.PhotosUnlocked.Add(float64(photos))
	m.RevenueCents.Add(float64(totalCents))
}

// ObserveNotification counts a notification attempt
func (m *Metrics) ObserveNotification(err error) {
	if err != nil {
		m.Notifications.WithLabelValues("failed").Inc()
		return
	}
	m.Notifications.WithLabelValues("sent").Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
