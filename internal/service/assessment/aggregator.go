package assessment

import (
	"fmt"
	"math"
	"strings"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/transaction"
	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
)

// weightedAggregator combines evaluator signals with fixed weights
type weightedAggregator struct {
	weights map[string]float64
}

// NewAggregator builds the standard weighted aggregator
func NewAggregator() Aggregator {
	return &weightedAggregator{weights: evaluatorWeights}
}

// Aggregate computes the weighted risk score, decision, mean confidence,
// indicator union and explanation from the evaluator results. Results are
// processed in the order given, so the same inputs always produce the same
// output.
func (a *weightedAggregator) Aggregate(tx *transaction.Transaction, results []SignalResult) *FraudAssessment {
	var (
		weightedSum     float64
		confidenceSum   float64
		riskFactors     = make(map[string]float64, len(results))
		keyIndicators   []string
		seenIndicators  = make(map[string]struct{})
		topEvaluator    string
		topContribution = math.Inf(-1)
	)

	for _, res := range results {
		weight := a.weights[res.Evaluator]
		score := res.Score.Value()

		contribution := weight * score
		weightedSum += contribution
		confidenceSum += res.Confidence
		riskFactors[res.Evaluator] = score

		if contribution > topContribution {
			topContribution = contribution
			topEvaluator = res.Evaluator
		}

		for _, ind := range res.Indicators {
			if _, seen := seenIndicators[ind]; seen {
				continue
			}
			seenIndicators[ind] = struct{}{}
			keyIndicators = append(keyIndicators, ind)
		}
	}

	finalScore := math.Round(weightedSum*100) / 100
	riskScore := values.ClampRiskScore(finalScore)

	decision := decide(riskScore)

	confidence := 0.0
	if len(results) > 0 {
		confidence = math.Round(confidenceSum/float64(len(results))*100) / 100
	}

	return &FraudAssessment{
		TransactionID: tx.ID,
		Decision:      decision,
		RiskScore:     riskScore,
		Explanation:   buildExplanation(decision, riskScore, topEvaluator, riskFactors[topEvaluator], keyIndicators),
		RiskFactors:   riskFactors,
		KeyIndicators: keyIndicators,
		Confidence:    confidence,
		Timestamp:     clock.Now().UTC(),
		SystemVersion: SystemVersion,
		Results:       results,
	}
}

func decide(score values.RiskScore) Decision {
	switch {
	case score.IsAtLeast(blockThreshold):
		return DecisionBlock
	case score.IsAtLeast(reviewThreshold):
		return DecisionReview
	default:
		return DecisionApprove
	}
}

// buildExplanation renders a human-readable summary of the decision. The
// wording is fixed so identical inputs explain themselves identically.
func buildExplanation(decision Decision, score values.RiskScore, topEvaluator string, topScore float64, indicators []string) string {
	var sb strings.Builder

	switch decision {
	case DecisionBlock:
		fmt.Fprintf(&sb, "High fraud risk detected (score %.2f). Transaction blocked.", score.Value())
	case DecisionReview:
		fmt.Fprintf(&sb, "Elevated fraud risk (score %.2f). Manual review required.", score.Value())
	default:
		fmt.Fprintf(&sb, "Low fraud risk (score %.2f). Transaction approved.", score.Value())
	}

	if topEvaluator != "" && topScore > 0 {
		fmt.Fprintf(&sb, " Primary signal: %s (%.0f).", topEvaluator, topScore)
	}

	if len(indicators) > 0 {
		fmt.Fprintf(&sb, " Indicators: %s.", strings.Join(indicators, ", "))
	}

	return sb.String()
}
