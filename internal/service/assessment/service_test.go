package assessment

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/errors"
	"github.com/telcoshield/simswap-risk-engine/internal/domain/transaction"
	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/carrier"
	"github.com/telcoshield/simswap-risk-engine/internal/testutil"
	"github.com/telcoshield/simswap-risk-engine/internal/testutil/fixtures"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, store carrier.Gateway) Service {
	t.Helper()
	return NewService(store, Config{}, discardLogger(), nil)
}

// stubEvaluator returns a canned result, optionally slow or panicking
type stubEvaluator struct {
	name     string
	result   SignalResult
	delay    time.Duration
	panicMsg string
}

func (s *stubEvaluator) Name() string { return s.name }

func (s *stubEvaluator) Evaluate(ctx context.Context, tx *transaction.Transaction) SignalResult {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
		}
	}
	return s.result
}

func TestService_Assess_RejectsInvalidInput(t *testing.T) {
	svc := newTestService(t, carrier.NewStaticStore())

	t.Run("nil transaction", func(t *testing.T) {
		_, err := svc.Assess(context.Background(), nil)
		assert.ErrorIs(t, err, errors.ErrEmptyTransaction)
	})

	t.Run("missing id", func(t *testing.T) {
		tx := &transaction.Transaction{
			MSISDN: values.MustNewMSISDN("27821234567"),
			Amount: decimal.NewFromInt(100),
		}
		_, err := svc.Assess(context.Background(), tx)
		assert.ErrorIs(t, err, errors.ErrEmptyTransaction)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		tx := &transaction.Transaction{
			ID:     "TXN-002",
			MSISDN: values.MustNewMSISDN("27821234567"),
			Amount: decimal.Zero,
		}
		_, err := svc.Assess(context.Background(), tx)
		assert.ErrorIs(t, err, errors.ErrInvalidAmount)
	})

	t.Run("empty msisdn", func(t *testing.T) {
		tx := &transaction.Transaction{
			ID:     "TXN-003",
			Amount: decimal.NewFromInt(100),
		}
		_, err := svc.Assess(context.Background(), tx)
		assert.ErrorIs(t, err, errors.ErrInvalidMSISDN)
	})
}

func TestService_Assess_LowRiskTransaction(t *testing.T) {
	SetClock(NewMockClock(testNow))
	defer ResetClock()

	store := carrier.NewStaticStore()
	store.Put(fixtures.NewProfileBuilder(t, "27821234567").Build())

	// defaults are domestic, home IP and a 14:00 timestamp
	tx := fixtures.NewTransactionBuilder(t).
		WithID("TXN-LOW").
		WithMerchant("Electronics Store").
		Build()

	got, err := newTestService(t, store).Assess(testutil.TestContext(t), tx)
	require.NoError(t, err)

	assert.Equal(t, DecisionApprove, got.Decision)
	// only the merchant-name signal fires: 0.15 * 25
	assert.Equal(t, 3.75, got.RiskScore.Value())
	assert.Equal(t, []string{IndicatorHighRiskMerchant}, got.KeyIndicators)
	assert.Len(t, got.Results, 4)
	for _, res := range got.Results {
		assert.Equal(t, StatusSuccess, res.Status)
	}
}

func TestService_Assess_HighRiskTransaction(t *testing.T) {
	SetClock(NewMockClock(testNow))
	defer ResetClock()

	store := carrier.NewStaticStore()
	store.Put(fixtures.NewProfileBuilder(t, "27649308536").
		WithSIMSwap(testNow.Add(-3*24*time.Hour), 71).
		WithDeviceChange("241797497350208", 82).
		WithNetwork("MTN", "5G", "ZA").
		Build())

	tx := fixtures.NewTransactionBuilder(t).
		WithID("TXN-HIGH").
		WithMSISDN("27649308536").
		WithAmount(15000).
		WithMerchant("Crypto Exchange").
		WithTimestamp(time.Date(2025, 5, 10, 2, 30, 0, 0, time.UTC)).
		WithDevice("351234567890123", "185.220.100.1").
		WithLocation("US", "VPN").
		Build()

	got, err := newTestService(t, store).Assess(testutil.TestContext(t), tx)
	require.NoError(t, err)

	// sim 90*0.35 + geo 90*0.25 + device 50*0.25 + context 70*0.15
	assert.Equal(t, 77.0, got.RiskScore.Value())
	assert.Equal(t, DecisionBlock, got.Decision)
	assert.Subset(t, got.KeyIndicators, []string{
		IndicatorVeryRecentSIMSwap,
		IndicatorDeviceMismatch,
		IndicatorForeignIPAddress,
		IndicatorHighValueTxn,
		IndicatorHighRiskMerchant,
	})
}

func TestService_Assess_UnknownSubscriberUsesDefaultProfile(t *testing.T) {
	SetClock(NewMockClock(testNow))
	defer ResetClock()

	// empty store, every lookup degrades to the default low-risk profile
	store := carrier.NewStaticStore()

	tx := fixtures.NewTransactionBuilder(t).
		WithID("TXN-UNKNOWN").
		WithMSISDN("27999999999").
		WithLocation("ZA", "Durban").
		Build()

	got, err := newTestService(t, store).Assess(testutil.TestContext(t), tx)
	require.NoError(t, err)

	// carrier-backed evaluators contribute nothing without a record
	assert.Equal(t, 0.0, got.RiskFactors[EvaluatorSIMIntelligence])
	assert.Equal(t, 0.0, got.RiskFactors[EvaluatorDeviceTrust])
	assert.Equal(t, DecisionApprove, got.Decision)
}

func TestService_Assess_EvaluatorTimeoutDegrades(t *testing.T) {
	evaluators := []Evaluator{
		&stubEvaluator{
			name:   EvaluatorSIMIntelligence,
			result: signal(EvaluatorSIMIntelligence, 90, simConfidence),
			delay:  200 * time.Millisecond,
		},
		&stubEvaluator{
			name:   EvaluatorGeographic,
			result: signal(EvaluatorGeographic, 0, geoConfidence),
		},
		&stubEvaluator{
			name:   EvaluatorDeviceTrust,
			result: signal(EvaluatorDeviceTrust, 0, deviceConfidence),
		},
		&stubEvaluator{
			name:   EvaluatorTransactionContext,
			result: signal(EvaluatorTransactionContext, 0, contextConfidence),
		},
	}

	svc := NewServiceWithEvaluators(evaluators, NewAggregator(),
		Config{EvaluatorTimeout: 20 * time.Millisecond}, discardLogger(), nil)

	got, err := svc.Assess(context.Background(), newTestTransaction(t))
	require.NoError(t, err)

	sim := got.Results[0]
	assert.Equal(t, StatusError, sim.Status)
	assert.Equal(t, neutralScore, sim.Score.Value())
	assert.Equal(t, errorConfidence, sim.Confidence)

	// the slow evaluator never blocks the others
	for _, res := range got.Results[1:] {
		assert.Equal(t, StatusSuccess, res.Status)
	}
}

func TestService_Assess_EvaluatorPanicDegrades(t *testing.T) {
	evaluators := []Evaluator{
		&stubEvaluator{
			name:     EvaluatorSIMIntelligence,
			panicMsg: "nil map write",
		},
		&stubEvaluator{
			name:   EvaluatorGeographic,
			result: signal(EvaluatorGeographic, 40, geoConfidence),
		},
		&stubEvaluator{
			name:   EvaluatorDeviceTrust,
			result: signal(EvaluatorDeviceTrust, 40, deviceConfidence),
		},
		&stubEvaluator{
			name:   EvaluatorTransactionContext,
			result: signal(EvaluatorTransactionContext, 40, contextConfidence),
		},
	}

	svc := NewServiceWithEvaluators(evaluators, NewAggregator(), Config{}, discardLogger(), nil)

	got, err := svc.Assess(context.Background(), newTestTransaction(t))
	require.NoError(t, err)

	sim := got.Results[0]
	assert.Equal(t, StatusError, sim.Status)
	assert.Contains(t, sim.Error, "panic")
	assert.Equal(t, neutralScore, sim.Score.Value())

	// isolation: the healthy evaluators keep their real scores
	assert.Equal(t, 40.0, got.RiskFactors[EvaluatorGeographic])
	assert.Equal(t, 40.0, got.RiskFactors[EvaluatorDeviceTrust])
	assert.Equal(t, 40.0, got.RiskFactors[EvaluatorTransactionContext])
}

func TestService_Assess_ResultOrderIsStable(t *testing.T) {
	evaluators := []Evaluator{
		&stubEvaluator{
			name:   EvaluatorSIMIntelligence,
			result: signal(EvaluatorSIMIntelligence, 10, simConfidence),
			delay:  30 * time.Millisecond,
		},
		&stubEvaluator{
			name:   EvaluatorGeographic,
			result: signal(EvaluatorGeographic, 20, geoConfidence),
			delay:  10 * time.Millisecond,
		},
		&stubEvaluator{
			name:   EvaluatorDeviceTrust,
			result: signal(EvaluatorDeviceTrust, 30, deviceConfidence),
		},
		&stubEvaluator{
			name:   EvaluatorTransactionContext,
			result: signal(EvaluatorTransactionContext, 40, contextConfidence),
			delay:  20 * time.Millisecond,
		},
	}

	svc := NewServiceWithEvaluators(evaluators, NewAggregator(), Config{}, discardLogger(), nil)

	got, err := svc.Assess(context.Background(), newTestTransaction(t))
	require.NoError(t, err)

	require.Len(t, got.Results, 4)
	assert.Equal(t, EvaluatorSIMIntelligence, got.Results[0].Evaluator)
	assert.Equal(t, EvaluatorGeographic, got.Results[1].Evaluator)
	assert.Equal(t, EvaluatorDeviceTrust, got.Results[2].Evaluator)
	assert.Equal(t, EvaluatorTransactionContext, got.Results[3].Evaluator)
}

func TestService_Assess_CanceledContext(t *testing.T) {
	svc := newTestService(t, carrier.NewStaticStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Assess(ctx, newTestTransaction(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_Assess_Idempotent(t *testing.T) {
	SetClock(NewMockClock(testNow))
	defer ResetClock()

	store := carrier.NewStaticStore()
	store.Put(&carrier.Profile{
		MSISDN:    "27821234567",
		SIMChange: carrier.SIMChange{Detected: true},
	})

	tx := newTestTransaction(t).WithDevice("351234567890123", "196.25.1.1").
		WithLocation(transaction.Location{Country: "ZA", City: "Pretoria"})

	svc := newTestService(t, store)

	first, err := svc.Assess(context.Background(), tx)
	require.NoError(t, err)
	second, err := svc.Assess(context.Background(), tx)
	require.NoError(t, err)

	assert.Equal(t, first.RiskScore, second.RiskScore)
	assert.Equal(t, first.Decision, second.Decision)
	assert.Equal(t, first.KeyIndicators, second.KeyIndicators)
	assert.Equal(t, first.Explanation, second.Explanation)
}
