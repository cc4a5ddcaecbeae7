package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Body check outcomes.
const (
	OutcomeValid     = "valid"
	OutcomeInvalid   = "invalid"
	OutcomeMalformed = "malformed"
	OutcomeTooLarge  = "too_large"
)

// Metrics holds the request and body-check collectors.
type Metrics struct {
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	bodyChecks *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dappbot_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dappbot_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		bodyChecks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dappbot_body_checks_total",
				Help: "Request bodies checked against a shape, by outcome",
			},
			[]string{"shape", "outcome"},
		),
	}
}

// Handler returns a middleware that records request metrics.
func (m *Metrics) Handler() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			path := routePattern(r)
			m.requests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
			m.duration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

func (m *Metrics) observeBody(shape, outcome string) {
	if m == nil {
		return
	}
	m.bodyChecks.WithLabelValues(shape, outcome).Inc()
}

// routePattern keeps label cardinality bounded: the chi route pattern when
// one matched, the raw path otherwise.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return r.URL.Path
}
