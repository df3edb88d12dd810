package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	CompaniesCreated   prometheus.Counter
	OwnersCreated      prometheus.Counter
	ValidationFailures prometheus.Counter
}

// New creates and registers all metrics against the given registerer. Tests
// pass a fresh registry so suites can build multiple handlers.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "boiregistry_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "boiregistry_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		CompaniesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "boiregistry_reporting_companies_created_total",
			Help: "Total number of reporting companies created",
		}),
		OwnersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "boiregistry_beneficial_owners_created_total",
			Help: "Total number of beneficial owners created",
		}),
		ValidationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "boiregistry_validation_failures_total",
			Help: "Total number of requests rejected by field validation",
		}),
	}
}

// Middleware instruments requests with the counter and latency histogram.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		status := strconv.Itoa(sw.status)
		m.RequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		m.RequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
