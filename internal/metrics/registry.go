package metrics

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Registry holds all domain-specific metrics for the application
type Registry struct {
	meter metric.Meter

	// Assessment Metrics
	AssessmentDuration    metric.Float64Histogram
	AssessmentCounter     metric.Int64Counter
	RiskScoreDistribution metric.Float64Histogram
	AssessmentsPerSecond  metric.Float64ObservableGauge
	InFlightAssessments   metric.Int64ObservableGauge

	// Evaluator Metrics
	EvaluatorDuration     metric.Float64Histogram
	EvaluatorErrorCounter metric.Int64Counter

	// Carrier Gateway Metrics
	CarrierLookupLatency  metric.Float64Histogram
	DefaultProfileCounter metric.Int64Counter

	// System Metrics
	APIRequestDuration metric.Float64Histogram
	APIRequestCounter  metric.Int64Counter

	// State for observable metrics
	mu                  sync.RWMutex
	inFlight            int64
	assessmentsTotal    int64
	lastAssessmentCount int64
	lastAssessmentTime  time.Time
}

// NewRegistry creates a new metrics registry with all domain metrics
func NewRegistry(meterName string) (*Registry, error) {
	meter := otel.Meter(meterName)
	r := &Registry{
		meter:              meter,
		lastAssessmentTime: time.Now(),
	}

	if err := r.initAssessmentMetrics(); err != nil {
		return nil, err
	}

	if err := r.initEvaluatorMetrics(); err != nil {
		return nil, err
	}

	if err := r.initCarrierMetrics(); err != nil {
		return nil, err
	}

	if err := r.initSystemMetrics(); err != nil {
		return nil, err
	}

	return r, nil
}

// initAssessmentMetrics initializes assessment pipeline metrics
func (r *Registry) initAssessmentMetrics() error {
	var err error

	r.AssessmentDuration, err = r.meter.Float64Histogram(
		"ssre.assessment.duration",
		metric.WithDescription("End-to-end fraud assessment duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 50, 100, 500, 1000, 3000, 5000),
	)
	if err != nil {
		return err
	}

	r.AssessmentCounter, err = r.meter.Int64Counter(
		"ssre.assessment.total",
		metric.WithDescription("Total number of fraud assessments by decision"),
	)
	if err != nil {
		return err
	}

	r.RiskScoreDistribution, err = r.meter.Float64Histogram(
		"ssre.assessment.risk_score",
		metric.WithDescription("Distribution of final weighted risk scores"),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 75, 80, 90),
	)
	if err != nil {
		return err
	}

	r.AssessmentsPerSecond, err = r.meter.Float64ObservableGauge(
		"ssre.assessment.throughput_per_second",
		metric.WithDescription("Current assessment throughput per second"),
		metric.WithFloat64Callback(func(ctx context.Context, o metric.Float64Observer) error {
			r.mu.RLock()
			defer r.mu.RUnlock()

			now := time.Now()
			elapsed := now.Sub(r.lastAssessmentTime).Seconds()
			if elapsed > 0 {
				rate := float64(r.assessmentsTotal-r.lastAssessmentCount) / elapsed
				o.Observe(rate)
				r.lastAssessmentCount = r.assessmentsTotal
				r.lastAssessmentTime = now
			}
			return nil
		}),
	)
	if err != nil {
		return err
	}

	r.InFlightAssessments, err = r.meter.Int64ObservableGauge(
		"ssre.assessment.in_flight",
		metric.WithDescription("Number of assessments currently being processed"),
		metric.WithInt64Callback(func(ctx context.Context, o metric.Int64Observer) error {
			r.mu.RLock()
			defer r.mu.RUnlock()
			o.Observe(r.inFlight)
			return nil
		}),
	)

	return err
}

// initEvaluatorMetrics initializes per-evaluator metrics
func (r *Registry) initEvaluatorMetrics() error {
	var err error

	r.EvaluatorDuration, err = r.meter.Float64Histogram(
		"ssre.evaluator.duration",
		metric.WithDescription("Individual evaluator execution time in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000, 3000),
	)
	if err != nil {
		return err
	}

	r.EvaluatorErrorCounter, err = r.meter.Int64Counter(
		"ssre.evaluator.error_total",
		metric.WithDescription("Total evaluator failures that degraded to the neutral fallback"),
	)

	return err
}

// initCarrierMetrics initializes carrier gateway metrics
func (r *Registry) initCarrierMetrics() error {
	var err error

	r.CarrierLookupLatency, err = r.meter.Float64Histogram(
		"ssre.carrier.lookup_latency",
		metric.WithDescription("Carrier intelligence lookup latency in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 50, 100, 250, 500, 1000, 2000),
	)
	if err != nil {
		return err
	}

	r.DefaultProfileCounter, err = r.meter.Int64Counter(
		"ssre.carrier.default_profile_total",
		metric.WithDescription("Total lookups that degraded to the default low-risk profile"),
	)

	return err
}

// initSystemMetrics initializes system-level metrics
func (r *Registry) initSystemMetrics() error {
	var err error

	r.APIRequestDuration, err = r.meter.Float64Histogram(
		"ssre.api.request_duration",
		metric.WithDescription("API request duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 50, 100, 500, 1000, 5000),
	)
	if err != nil {
		return err
	}

	r.APIRequestCounter, err = r.meter.Int64Counter(
		"ssre.api.request_total",
		metric.WithDescription("Total number of API requests"),
	)

	return err
}

// Helper methods for updating observable metric values

// IncrementInFlight adjusts the in-flight assessment count
func (r *Registry) IncrementInFlight(delta int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight += delta
}

// Helper methods for recording metrics with common attribute patterns

// RecordAssessment records one completed assessment
func (r *Registry) RecordAssessment(ctx context.Context, durationMs, riskScore float64, decision string) {
	attrs := []attribute.KeyValue{
		attribute.String("decision", decision),
	}

	r.AssessmentDuration.Record(ctx, durationMs, metric.WithAttributes(attrs...))
	r.RiskScoreDistribution.Record(ctx, riskScore)
	r.AssessmentCounter.Add(ctx, 1, metric.WithAttributes(attrs...))

	r.mu.Lock()
	r.assessmentsTotal++
	r.mu.Unlock()
}

// RecordEvaluator records one evaluator execution
func (r *Registry) RecordEvaluator(ctx context.Context, durationMs float64, evaluator string, degraded bool) {
	attrs := []attribute.KeyValue{
		attribute.String("evaluator", evaluator),
	}

	r.EvaluatorDuration.Record(ctx, durationMs, metric.WithAttributes(attrs...))

	if degraded {
		r.EvaluatorErrorCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordCarrierLookup records one carrier gateway lookup
func (r *Registry) RecordCarrierLookup(ctx context.Context, latencyMs float64, mode string, defaulted bool) {
	attrs := []attribute.KeyValue{
		attribute.String("mode", mode),
	}

	r.CarrierLookupLatency.Record(ctx, latencyMs, metric.WithAttributes(attrs...))

	if defaulted {
		r.DefaultProfileCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordAPIRequest records API request metrics
func (r *Registry) RecordAPIRequest(ctx context.Context, duration float64, method, path string, statusCode int) {
	attrs := []attribute.KeyValue{
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status_code", statusCode),
	}

	r.APIRequestDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
	r.APIRequestCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
}
