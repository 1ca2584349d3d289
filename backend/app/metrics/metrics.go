package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors plus Go runtime stats.
	Registry = prometheus.NewRegistry()

	InFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wine_cellar",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wine_cellar",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wine_cellar",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wine_cellar",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	storeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wine_cellar",
			Subsystem: "inventory",
			Name:      "store_errors_total",
			Help:      "Store failures turned into redirects, by operation.",
		},
		[]string{"op"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		InFlight,
		httpRequests,
		httpDuration,
		logins,
		storeErrors,
	)
}

func ObserveRequest(method, route, status string, d time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordLogin counts a login attempt; outcome is "success", "failure" or "error".
func RecordLogin(outcome string) { logins.WithLabelValues(outcome).Inc() }

func RecordStoreError(op string) { storeErrors.WithLabelValues(op).Inc() }

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
