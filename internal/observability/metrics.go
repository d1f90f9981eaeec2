// Package observability provides Prometheus metrics and OpenTelemetry tracing setup.
package observability

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedbackSubmissions counts created feedback entries by kind (bug_report, feature_request).
	FeedbackSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedbackhub_submissions_total",
		Help: "Total number of feedback entries created, by kind",
	}, []string{"kind"})

	// FeedbackUpvotes counts upvote attempts by outcome (recorded, duplicate).
	FeedbackUpvotes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedbackhub_upvotes_total",
		Help: "Total number of feature request upvote attempts, by outcome",
	}, []string{"outcome"})

	// StatusUpdates counts admin status updates by kind.
	StatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedbackhub_status_updates_total",
		Help: "Total number of admin status updates, by kind",
	}, []string{"kind"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedbackhub_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// NewHTTPMetrics creates the fiberprometheus middleware for per-route HTTP metrics.
func NewHTTPMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// RegisterMetricsRoute exposes the Prometheus scrape endpoint on the app.
func RegisterMetricsRoute(prom *fiberprometheus.FiberPrometheus, app *fiber.App) {
	prom.RegisterAt(app, "/metrics")
}
