package assessment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Evaluator names, used as keys in the weighted aggregation and in the
// per-evaluator score breakdown.
const (
	EvaluatorSIMIntelligence    = "sim_intelligence"
	EvaluatorGeographic         = "geographic_intelligence"
	EvaluatorDeviceTrust        = "device_trust"
	EvaluatorTransactionContext = "transaction_context"
)

// Fixed aggregation weights. They must sum to 1.0.
var evaluatorWeights = map[string]float64{
	EvaluatorSIMIntelligence:    0.35,
	EvaluatorGeographic:         0.25,
	EvaluatorDeviceTrust:        0.25,
	EvaluatorTransactionContext: 0.15,
}

// Decision thresholds on the final weighted score
const (
	blockThreshold  = 75.0
	reviewThreshold = 50.0
)

// Indicator tags
const (
	IndicatorRecentSIMSwap      = "recent_sim_swap"
	IndicatorVeryRecentSIMSwap  = "very_recent_sim_swap"
	IndicatorCarrierFraudFlag   = "carrier_fraud_flag"
	IndicatorInternationalTxn   = "international_transaction"
	IndicatorForeignIPAddress   = "foreign_ip_address"
	IndicatorSuspiciousLocation = "suspicious_location"
	IndicatorInvalidDeviceID    = "invalid_device_id"
	IndicatorDeviceChange       = "device_change_detected"
	IndicatorDeviceMismatch     = "device_mismatch"
	IndicatorHighValueTxn       = "high_value_transaction"
	IndicatorMediumValueTxn     = "medium_value_transaction"
	IndicatorHighRiskMerchant   = "high_risk_merchant"
	IndicatorUnusualTime        = "unusual_time"
)

// Per-evaluator success confidences and the shared error fallback
const (
	simConfidence     = 0.85
	geoConfidence     = 0.75
	deviceConfidence  = 0.80
	contextConfidence = 0.90

	errorConfidence = 0.1
	neutralScore    = 50.0
)

// Scoring constants
const (
	// carrier-side fraud indicator tag checked by the SIM evaluator
	carrierSIMSwapIndicator = "sim_swap"

	// a SIM swap inside this window is "very recent"
	veryRecentSwapWindow = 7 * 24 * time.Hour

	// sentinel device identifier treated as invalid
	invalidDeviceSentinel = "000000000000000"

	// transactions between midnight and this hour are unusual
	unusualTimeCutoffHour = 6
)

var (
	highValueThreshold   = decimal.NewFromInt(10000)
	mediumValueThreshold = decimal.NewFromInt(5000)

	// merchant-name vocabulary considered high risk, matched case-insensitively
	highRiskMerchantTerms = []string{"electronics", "gift card", "crypto", "forex"}

	// city names that indicate an obscured location
	suspiciousCities = []string{"unknown", "vpn", "proxy"}
)

// SystemVersion is stamped on every assessment for audit
const SystemVersion = "2.0.0"
