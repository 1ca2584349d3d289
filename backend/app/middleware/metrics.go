package middleware

import (
	"net/http"
	"strconv"
	"time"

	"wine-cellar/backend/app/metrics"

	"github.com/go-chi/chi/v5"
)

// Metrics records request counts and latency per route pattern, so ids in
// paths do not blow up label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.InFlight.Inc()
		defer metrics.InFlight.Dec()

		sw := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		metrics.ObserveRequest(r.Method, route, strconv.Itoa(sw.status), time.Since(start))
	})
}
