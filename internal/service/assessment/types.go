package assessment

import (
	"time"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
)

// Status marks whether an evaluator produced a real score or degraded
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Decision is the final outcome of an assessment
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReview  Decision = "REVIEW"
	DecisionBlock   Decision = "BLOCK"
)

// SignalResult is the output of a single evaluator. A success result always
// carries a valid clamped score; an error result carries the neutral fallback
// score and low confidence. Either way it participates in aggregation; a
// failed evaluator is never dropped.
type SignalResult struct {
	Evaluator  string           `json:"evaluator"`
	Status     Status           `json:"status"`
	Score      values.RiskScore `json:"risk_score"`
	Indicators []string         `json:"indicators,omitempty"`
	Confidence float64          `json:"confidence"`

	// Details is an evaluator-specific payload, opaque to the aggregator
	Details map[string]interface{} `json:"details,omitempty"`

	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"execution_time_ms"`
}

// IsError reports whether the result is a degraded fallback
func (r SignalResult) IsError() bool {
	return r.Status == StatusError
}

// FraudAssessment is the final output of the engine, immutable once built
type FraudAssessment struct {
	TransactionID string           `json:"transaction_id"`
	Decision      Decision         `json:"decision"`
	RiskScore     values.RiskScore `json:"risk_score"`
	Explanation   string           `json:"explanation"`

	// RiskFactors is the per-evaluator score breakdown
	RiskFactors map[string]float64 `json:"risk_factors"`

	// KeyIndicators is the de-duplicated union of all evaluator indicators,
	// insertion order preserved
	KeyIndicators []string `json:"key_indicators"`

	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`

	ProcessingTimeMs int64  `json:"processing_time_ms"`
	SystemVersion    string `json:"system_version"`

	// Results carries the full per-evaluator audit trail
	Results []SignalResult `json:"agent_results,omitempty"`
}

func errorResult(evaluator string, err error) SignalResult {
	return SignalResult{
		Evaluator:  evaluator,
		Status:     StatusError,
		Score:      values.MustNewRiskScore(neutralScore),
		Confidence: errorConfidence,
		Error:      err.Error(),
	}
}
