package assessment

import (
	"context"
	"strings"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/transaction"
	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
)

// geographicEvaluator scores location anomalies. A transaction with no
// location block at all scores as both international and foreign-IP, which
// keeps blind spots from reading as safe.
type geographicEvaluator struct {
	homeCountry  string
	homeIPPrefix string
}

// NewGeographicEvaluator builds the geographic anomaly evaluator
func NewGeographicEvaluator(homeCountry, homeIPPrefix string) Evaluator {
	return &geographicEvaluator{
		homeCountry:  homeCountry,
		homeIPPrefix: homeIPPrefix,
	}
}

func (e *geographicEvaluator) Name() string {
	return EvaluatorGeographic
}

func (e *geographicEvaluator) Evaluate(ctx context.Context, tx *transaction.Transaction) SignalResult {
	if err := ctx.Err(); err != nil {
		return errorResult(e.Name(), err)
	}

	var country, city string
	if tx.Location != nil {
		country = tx.Location.Country
		city = tx.Location.City
	}

	var score float64
	var indicators []string

	if country != e.homeCountry {
		score += 30
		indicators = append(indicators, IndicatorInternationalTxn)
	}

	if strings.HasPrefix(tx.IPAddress, e.homeIPPrefix) {
		score -= 10
	} else {
		score += 20
		indicators = append(indicators, IndicatorForeignIPAddress)
	}

	lowerCity := strings.ToLower(city)
	for _, suspect := range suspiciousCities {
		if lowerCity == suspect {
			score += 40
			indicators = append(indicators, IndicatorSuspiciousLocation)
			break
		}
	}

	return SignalResult{
		Evaluator:  e.Name(),
		Status:     StatusSuccess,
		Score:      values.ClampRiskScore(score),
		Indicators: indicators,
		Confidence: geoConfidence,
		Details: map[string]interface{}{
			"country":    country,
			"city":       city,
			"ip_address": tx.IPAddress,
		},
	}
}
