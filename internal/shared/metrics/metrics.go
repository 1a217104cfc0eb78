package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcome labels.
const (
	OutcomeSent          = "sent"
	OutcomeFailed        = "failed"
	OutcomeNotConfigured = "not_configured"
)

var (
	registry = prometheus.NewRegistry()

	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds.",
		Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"route", "method"})

	resumeParseTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_parse_total",
		Help: "Parsed resumes by response mode.",
	}, []string{"mode"})

	modelFallbackTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_model_fallback_total",
		Help: "Fallbacks from the model path by reason.",
	}, []string{"reason"})

	applicationSubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "application_submissions_total",
		Help: "Application submissions by outcome.",
	}, []string{"outcome"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequestsTotal,
		httpRequestDuration,
		resumeParseTotal,
		modelFallbackTotal,
		applicationSubmissionsTotal,
	)
}

// ObserveRequest records one completed HTTP request.
func ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// IncResumeParse counts a parse response in the given mode.
func IncResumeParse(mode string) {
	resumeParseTotal.WithLabelValues(mode).Inc()
}

// IncModelFallback counts a fallback from the model path.
func IncModelFallback(reason string) {
	modelFallbackTotal.WithLabelValues(reason).Inc()
}

// IncApplicationSubmission counts a submission outcome.
func IncApplicationSubmission(outcome string) {
	applicationSubmissionsTotal.WithLabelValues(outcome).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
