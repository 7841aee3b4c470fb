// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lembretes"

type Metrics struct {
	gatherer prometheus.Gatherer

	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	ReminderOps         *prometheus.CounterVec
	LoginAttempts       *prometheus.CounterVec
}

// New registers the collectors on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewWith(reg, reg)
}

// NewWith registers the collectors on reg and serves from g.
func NewWith(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: g,
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		ReminderOps: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reminder_operations_total",
				Help:      "Reminder create/delete operations by outcome",
			},
			[]string{"op", "outcome"}, // outcome: ok, noop, or an error kind
		),
		LoginAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "login_attempts_total",
				Help:      "Login attempts by result",
			},
			[]string{"result"},
		),
	}
}

// ObserveHTTPRequest records one finished request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	s := strconv.Itoa(status)
	m.HTTPRequestDuration.WithLabelValues(method, route, s).Observe(d.Seconds())
	m.HTTPRequestsTotal.WithLabelValues(method, route, s).Inc()
}

// ReminderOp implements services.ReminderObserver.
func (m *Metrics) ReminderOp(op, outcome string) {
	m.ReminderOps.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) LoginAttempt(result string) {
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
