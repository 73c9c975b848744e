package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess       = "success"
	OutcomeInvalid       = "invalid_credentials"
	OutcomeBadRequest    = "bad_request"
	OutcomeMisconfigured = "misconfigured"
	OutcomeError         = "error"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "college_login_attempts_total",
		Help: "Login attempts by outcome",
	}, []string{"outcome"})

	tokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "college_tokens_issued_total",
		Help: "Bearer tokens issued",
	})

	tokenRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "college_token_rejections_total",
		Help: "Bearer tokens that failed validation",
	})

	// path is the echo route template, so ids do not explode cardinality.
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "college_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "path", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "college_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

func LoginAttempt(outcome string) { loginAttempts.WithLabelValues(outcome).Inc() }

func TokenIssued() { tokensIssued.Inc() }

func TokenRejected() { tokenRejections.Inc() }

func ObserveRequest(method, path string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
