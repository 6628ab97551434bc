package assessment

import (
	"context"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/transaction"
	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/carrier"
)

// deviceTrustEvaluator scores device identity anomalies using both the
// transaction's own device fields and the carrier's device change record.
type deviceTrustEvaluator struct {
	gateway carrier.Gateway
}

// NewDeviceTrustEvaluator builds the device trust evaluator
func NewDeviceTrustEvaluator(gateway carrier.Gateway) Evaluator {
	return &deviceTrustEvaluator{gateway: gateway}
}

func (e *deviceTrustEvaluator) Name() string {
	return EvaluatorDeviceTrust
}

func (e *deviceTrustEvaluator) Evaluate(ctx context.Context, tx *transaction.Transaction) SignalResult {
	var score float64
	var indicators []string

	if tx.DeviceID == "" || tx.DeviceID == invalidDeviceSentinel {
		score += 50
		indicators = append(indicators, IndicatorInvalidDeviceID)
	}

	profile, err := e.gateway.Lookup(ctx, tx.MSISDN)
	if err != nil {
		return errorResult(e.Name(), err)
	}

	if profile.DeviceChange.Detected {
		score += 30
		indicators = append(indicators, IndicatorDeviceChange)

		current := profile.DeviceChange.CurrentDeviceID
		if current != "" && current != tx.DeviceID {
			score += 20
			indicators = append(indicators, IndicatorDeviceMismatch)
		}
	}

	return SignalResult{
		Evaluator:  e.Name(),
		Status:     StatusSuccess,
		Score:      values.ClampRiskScore(score),
		Indicators: indicators,
		Confidence: deviceConfidence,
		Details: map[string]interface{}{
			"transaction_device_id":  tx.DeviceID,
			"device_change_detected": profile.DeviceChange.Detected,
			"carrier_device_score":   profile.DeviceChange.Score,
			"current_device_id":      profile.DeviceChange.CurrentDeviceID,
		},
	}
}
