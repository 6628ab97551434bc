package assessment

import (
	"context"
	"strings"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/transaction"
	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
)

// transactionContextEvaluator scores the transaction's own shape: amount
// bands, merchant category and time of day.
type transactionContextEvaluator struct{}

// NewTransactionContextEvaluator builds the transaction context evaluator
func NewTransactionContextEvaluator() Evaluator {
	return &transactionContextEvaluator{}
}

func (e *transactionContextEvaluator) Name() string {
	return EvaluatorTransactionContext
}

func (e *transactionContextEvaluator) Evaluate(ctx context.Context, tx *transaction.Transaction) SignalResult {
	if err := ctx.Err(); err != nil {
		return errorResult(e.Name(), err)
	}

	var score float64
	var indicators []string

	switch {
	case tx.Amount.GreaterThan(highValueThreshold):
		score += 30
		indicators = append(indicators, IndicatorHighValueTxn)
	case tx.Amount.GreaterThan(mediumValueThreshold):
		score += 15
		indicators = append(indicators, IndicatorMediumValueTxn)
	}

	merchant := strings.ToLower(tx.Merchant)
	for _, term := range highRiskMerchantTerms {
		if strings.Contains(merchant, term) {
			score += 25
			indicators = append(indicators, IndicatorHighRiskMerchant)
			break
		}
	}

	hour := tx.Hour()
	if hour >= 0 && hour < unusualTimeCutoffHour {
		score += 15
		indicators = append(indicators, IndicatorUnusualTime)
	}

	return SignalResult{
		Evaluator:  e.Name(),
		Status:     StatusSuccess,
		Score:      values.ClampRiskScore(score),
		Indicators: indicators,
		Confidence: contextConfidence,
		Details: map[string]interface{}{
			"amount":   tx.Amount.String(),
			"merchant": tx.Merchant,
			"hour":     hour,
		},
	}
}
