// /metricsで公開するprometheusの指標
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metricsはnilでも呼べる。テストではレジストリを渡さなくてよい
type Metrics struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	ordersCreated *prometheus.CounterVec
	emailFailures *prometheus.CounterVec
	rateLimited   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders created by initial status.",
	}, []string{"status"})
	emailFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "email_send_failures_total",
		Help: "Emails that could not be delivered, by kind.",
	}, []string{"kind"})
	rateLimited := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_rate_limited_total",
		Help: "Requests rejected by the auth rate limiter, by policy.",
	}, []string{"policy"})
	reg.MustRegister(requests, latency, ordersCreated, emailFailures, rateLimited)
	return &Metrics{
		requests:      requests,
		latency:       latency,
		ordersCreated: ordersCreated,
		emailFailures: emailFailures,
		rateLimited:   rateLimited,
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) OrderCreated(status string) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.WithLabelValues(normalizeLabel(status)).Inc()
}

func (m *Metrics) EmailFailed(kind string) {
	if m == nil || m.emailFailures == nil {
		return
	}
	m.emailFailures.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (m *Metrics) RateLimited(policy string) {
	if m == nil || m.rateLimited == nil {
		return
	}
	m.rateLimited.WithLabelValues(normalizeLabel(policy)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
