package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "volunteer_platform",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "volunteer_platform",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "volunteer_platform",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	profileSteps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "volunteer_platform",
			Subsystem: "profile",
			Name:      "step_writes_total",
			Help:      "Profile wizard step writes by step and outcome.",
		},
		[]string{"step", "outcome"},
	)

	surveyEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "volunteer_platform",
			Subsystem: "surveys",
			Name:      "events_total",
			Help:      "Survey mutations by action.",
		},
		[]string{"action"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		profileSteps,
		surveyEvents,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RequestStarted() {
	httpInFlight.Inc()
}

func RequestFinished(method, route, status string, seconds float64) {
	httpInFlight.Dec()
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordProfileStep counts a wizard write; step is step1..step3 or submit.
func RecordProfileStep(step string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	profileSteps.WithLabelValues(step, outcome).Inc()
}

// RecordSurvey counts a successful survey create, update or delete.
func RecordSurvey(action string) {
	surveyEvents.WithLabelValues(action).Inc()
}
