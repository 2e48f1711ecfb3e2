package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveEvent("add_to_cart", nil)
	m.ObserveEvent("add_to_cart", nil)
	m.ObserveEvent("enter_checkout", errors.New("empty cart"))
	m.ObserveOrder(2, 3500)
	m.ObserveNotification(nil)
	m.ObserveNotification(errors.New("nats down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CartEvents.WithLabelValues("add_to_cart", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CartEvents.WithLabelValues("enter_checkout", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersCompleted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PhotosUnlocked))
	assert.Equal(t, 3500.0, testutil.ToFloat64(m.RevenueCents))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("failed")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveOrder(1, 1500)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storefront_orders_completed_total 1")
	assert.Contains(t, w.Body.String(), "storefront_revenue_cents_total 1500")
}
