package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reqs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gotikameta_http_requests_total",
		Help: "How many HTTP requests processed, partitioned by status code, method and route.",
	}, []string{"code", "method", "route"})
	latency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gotikameta_http_request_duration_seconds",
		Help:    "How long it took to process the request, partitioned by status code, method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"code", "method", "route"})
)

// MetricsConfig configuration of the metrics middleware
type MetricsConfig struct {
	SkipFunc func(r *http.Request) bool
}

// MetricsHandler counting requests and their latency
func MetricsHandler(cfg MetricsConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if cfg.SkipFunc != nil && cfg.SkipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			code := strconv.Itoa(ww.Status())
			reqs.WithLabelValues(code, r.Method, route).Inc()
			latency.WithLabelValues(code, r.Method, route).Observe(time.Since(start).Seconds())
		}
		return http.HandlerFunc(fn)
	}
}
