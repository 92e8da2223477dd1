package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tavish/resourceful"
)

// Metrics creates an interceptor that records per-call Prometheus metrics:
// a request counter labeled by endpoint, action, and status code, and a
// duration histogram labeled by endpoint and action. Collectors are
// registered on reg; pass prometheus.DefaultRegisterer for the default.
func Metrics(reg prometheus.Registerer) resourceful.UnaryInterceptor {
	requests := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "resourceful_requests_total",
		Help: "Total number of endpoint action calls.",
	}, []string{"endpoint", "action", "code"})

	duration := promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resourceful_request_duration_seconds",
		Help:    "Duration of endpoint action calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "action"})

	return func(ctx context.Context, info *resourceful.CallInfo, req *http.Request, next resourceful.HandlerFunc) (*http.Response, error) {
		start := time.Now()
		res, err := next(ctx, req)

		code := "error"
		if err == nil {
			code = strconv.Itoa(res.StatusCode)
		}
		requests.WithLabelValues(info.Endpoint, info.Action, code).Inc()
		duration.WithLabelValues(info.Endpoint, info.Action).Observe(time.Since(start).Seconds())

		return res, err
	}
}
