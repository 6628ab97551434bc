package assessment

import (
	"context"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/transaction"
	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/carrier"
)

// simIntelligenceEvaluator scores the risk of a recent SIM swap on the
// subscriber. It is the heaviest-weighted signal in the engine.
type simIntelligenceEvaluator struct {
	gateway carrier.Gateway
}

// NewSIMIntelligenceEvaluator builds the SIM swap evaluator
func NewSIMIntelligenceEvaluator(gateway carrier.Gateway) Evaluator {
	return &simIntelligenceEvaluator{gateway: gateway}
}

func (e *simIntelligenceEvaluator) Name() string {
	return EvaluatorSIMIntelligence
}

func (e *simIntelligenceEvaluator) Evaluate(ctx context.Context, tx *transaction.Transaction) SignalResult {
	profile, err := e.gateway.Lookup(ctx, tx.MSISDN)
	if err != nil {
		return errorResult(e.Name(), err)
	}

	var score float64
	var indicators []string

	if profile.SIMChange.Detected {
		score += 40
		indicators = append(indicators, IndicatorRecentSIMSwap)

		if profile.SIMChange.Date != nil &&
			clock.Now().Sub(*profile.SIMChange.Date) < veryRecentSwapWindow {
			score += 30
			indicators = append(indicators, IndicatorVeryRecentSIMSwap)
		}
	}

	if profile.HasFraudIndicator(carrierSIMSwapIndicator) {
		score += 20
		indicators = append(indicators, IndicatorCarrierFraudFlag)
	}

	details := map[string]interface{}{
		"sim_swap_detected":   profile.SIMChange.Detected,
		"carrier_score":       profile.SIMChange.Score,
		"carrier_confidence":  profile.SIMChange.Confidence,
		"network_operator":    profile.Network.Operator,
		"carrier_request_id":  profile.RequestID,
		"carrier_response_ms": profile.Metrics.ResponseTimeMs,
	}
	if profile.SIMChange.Date != nil {
		details["sim_swap_date"] = profile.SIMChange.Date.Format("2006-01-02")
	}

	return SignalResult{
		Evaluator:  e.Name(),
		Status:     StatusSuccess,
		Score:      values.ClampRiskScore(score),
		Indicators: indicators,
		Confidence: simConfidence,
		Details:    details,
	}
}
