package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	LoginRequestsTotal       metric.Int64Counter
	SignUpRequestsTotal      metric.Int64Counter
	SuggestionRequestsTotal  metric.Int64Counter
	SuggestionCacheHitsTotal metric.Int64Counter
	LLMDurationSeconds       metric.Float64Histogram
	DbQueryErrorsTotal       metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments exactly once.
// It gets the Meter from the globally configured MeterProvider, so the
// tracer package must be initialized first.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("kitchenbuddy")
		var err error
		m := &AppMetrics{}

		m.LoginRequestsTotal, err = meter.Int64Counter(
			"login_requests_total",
			metric.WithDescription("Total number of login requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create login_requests_total: %v", err)
		}

		m.SignUpRequestsTotal, err = meter.Int64Counter(
			"signup_requests_total",
			metric.WithDescription("Total number of sign-up requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create signup_requests_total: %v", err)
		}

		m.SuggestionRequestsTotal, err = meter.Int64Counter(
			"suggestion_requests_total",
			metric.WithDescription("Total number of recipe suggestion requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create suggestion_requests_total: %v", err)
		}

		m.SuggestionCacheHitsTotal, err = meter.Int64Counter(
			"suggestion_cache_hits_total",
			metric.WithDescription("Recipe suggestion requests served from the in-memory cache"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create suggestion_cache_hits_total: %v", err)
		}

		m.LLMDurationSeconds, err = meter.Float64Histogram(
			"llm_request_duration_seconds",
			metric.WithDescription("Duration of outbound LLM completion calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_request_duration_seconds: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics.InitAppMetrics must be called at startup before Get")
	}
	return appMetrics
}
