// Package metrics exposes the domain and HTTP counters on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, []string{"method", "route"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booking_http_request_duration_seconds",
		Help:    "Histogram of latencies for HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	BookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_bookings_total",
		Help: "Booking attempts by outcome.",
	}, []string{"result"})

	WebhookNotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_webhook_notifications_total",
		Help: "Provider push notifications by outcome.",
	}, []string{"outcome"})

	ReconcileRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_reconcile_runs_total",
		Help: "Availability reconciliation runs by result.",
	}, []string{"result"})

	ProviderRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booking_provider_request_duration_seconds",
		Help:    "Histogram of latencies for calendar provider calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "status"})
)

// Booking outcome labels.
const (
	ResultConfirmed    = "confirmed"
	ResultSlotTaken    = "slot_taken"
	ResultQuotaBlocked = "quota_blocked"
	ResultError        = "error"
)

// Webhook outcome labels.
const (
	OutcomeAccepted  = "accepted"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
)

// Reconcile result labels.
const (
	ReconcileFresh    = "fresh"
	ReconcileSnapshot = "snapshot"
	ReconcileFailed   = "failed"
)

// Middleware records per-route request counts and latencies. The route
// pattern label comes from gin's FullPath so path parameters do not explode
// cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, route).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route, status).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
