package assessment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/errors"
	"github.com/telcoshield/simswap-risk-engine/internal/domain/transaction"
	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/carrier"
	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/telemetry"
	"github.com/telcoshield/simswap-risk-engine/internal/metrics"
)

const defaultEvaluatorTimeout = 3 * time.Second

// Config tunes the assessment pipeline
type Config struct {
	// EvaluatorTimeout bounds each evaluator; an evaluator that misses it
	// degrades to the neutral fallback without delaying the others
	EvaluatorTimeout time.Duration

	// HomeCountry is the country code treated as domestic
	HomeCountry string

	// HomeIPPrefix marks IP addresses considered in-country
	HomeIPPrefix string
}

func (c Config) withDefaults() Config {
	if c.EvaluatorTimeout <= 0 {
		c.EvaluatorTimeout = defaultEvaluatorTimeout
	}
	if c.HomeCountry == "" {
		c.HomeCountry = "ZA"
	}
	if c.HomeIPPrefix == "" {
		c.HomeIPPrefix = "196."
	}
	return c
}

type service struct {
	evaluators []Evaluator
	aggregator Aggregator
	timeout    time.Duration
	logger     *slog.Logger
	registry   *metrics.Registry
	tracer     trace.Tracer
}

// NewService wires the four standard evaluators against the given carrier
// gateway. The registry may be nil when metrics are not wanted, as in tests.
func NewService(gateway carrier.Gateway, cfg Config, logger *slog.Logger, registry *metrics.Registry) Service {
	cfg = cfg.withDefaults()

	return NewServiceWithEvaluators(
		[]Evaluator{
			NewSIMIntelligenceEvaluator(gateway),
			NewGeographicEvaluator(cfg.HomeCountry, cfg.HomeIPPrefix),
			NewDeviceTrustEvaluator(gateway),
			NewTransactionContextEvaluator(),
		},
		NewAggregator(),
		cfg,
		logger,
		registry,
	)
}

// NewServiceWithEvaluators accepts an explicit evaluator set, used by tests
// to substitute controlled signals
func NewServiceWithEvaluators(evaluators []Evaluator, aggregator Aggregator, cfg Config, logger *slog.Logger, registry *metrics.Registry) Service {
	cfg = cfg.withDefaults()

	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		evaluators: evaluators,
		aggregator: aggregator,
		timeout:    cfg.EvaluatorTimeout,
		logger:     logger,
		registry:   registry,
		tracer:     telemetry.Tracer("assessment"),
	}
}

func (s *service) Assess(ctx context.Context, tx *transaction.Transaction) (*FraudAssessment, error) {
	if tx == nil {
		return nil, errors.ErrEmptyTransaction
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "assessment.Assess")
	defer span.End()
	span.SetAttributes(
		attribute.String("transaction.id", tx.ID),
		attribute.String("transaction.msisdn", tx.MSISDN.String()),
	)

	if s.registry != nil {
		s.registry.IncrementInFlight(1)
		defer s.registry.IncrementInFlight(-1)
	}

	start := time.Now()

	results := s.dispatch(ctx, tx)
	result := s.aggregator.Aggregate(tx, results)
	result.ProcessingTimeMs = time.Since(start).Milliseconds()

	span.SetAttributes(
		attribute.String("assessment.decision", string(result.Decision)),
		attribute.Float64("assessment.risk_score", result.RiskScore.Value()),
	)

	s.logger.InfoContext(ctx, "fraud assessment completed",
		slog.String("transaction_id", tx.ID),
		slog.String("decision", string(result.Decision)),
		slog.Float64("risk_score", result.RiskScore.Value()),
		slog.Float64("confidence", result.Confidence),
		slog.Int64("processing_time_ms", result.ProcessingTimeMs),
	)

	if s.registry != nil {
		s.registry.RecordAssessment(ctx,
			float64(result.ProcessingTimeMs),
			result.RiskScore.Value(),
			string(result.Decision))
	}

	return result, nil
}

// dispatch runs all evaluators concurrently and collects every result. The
// slice order matches the registration order regardless of completion order.
func (s *service) dispatch(ctx context.Context, tx *transaction.Transaction) []SignalResult {
	type indexed struct {
		idx int
		res SignalResult
	}

	resultChan := make(chan indexed, len(s.evaluators))
	for i, ev := range s.evaluators {
		go func(idx int, ev Evaluator) {
			resultChan <- indexed{idx: idx, res: s.runEvaluator(ctx, ev, tx)}
		}(i, ev)
	}

	results := make([]SignalResult, len(s.evaluators))
	for range s.evaluators {
		r := <-resultChan
		results[r.idx] = r.res
	}
	return results
}

// runEvaluator bounds one evaluator with the per-evaluator timeout and
// converts panics into the neutral fallback result
func (s *service) runEvaluator(ctx context.Context, ev Evaluator, tx *transaction.Transaction) SignalResult {
	evalCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan SignalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- errorResult(ev.Name(), fmt.Errorf("evaluator panic: %v", r))
			}
		}()
		done <- ev.Evaluate(evalCtx, tx)
	}()

	var res SignalResult
	select {
	case res = <-done:
	case <-evalCtx.Done():
		res = errorResult(ev.Name(), errors.NewTimeoutError(ev.Name()))
	}

	res.ElapsedMs = time.Since(start).Milliseconds()

	if res.IsError() {
		s.logger.WarnContext(ctx, "evaluator degraded to fallback",
			slog.String("evaluator", ev.Name()),
			slog.String("error", res.Error),
		)
	}

	if s.registry != nil {
		s.registry.RecordEvaluator(ctx, float64(res.ElapsedMs), ev.Name(), res.IsError())
	}

	return res
}
