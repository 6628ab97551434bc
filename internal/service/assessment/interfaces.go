package assessment

import (
	"context"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/transaction"
)

// Service orchestrates a full fraud assessment for one transaction
type Service interface {
	// Assess validates the transaction, runs all evaluators concurrently and
	// aggregates their signals into a decision. It returns an error only for
	// invalid input or a dead context; evaluator failures degrade in place.
	Assess(ctx context.Context, tx *transaction.Transaction) (*FraudAssessment, error)
}

// Evaluator scores one independent fraud dimension.
//
// Evaluate must not fail the assessment: implementations report their own
// internal failures as an error-status SignalResult. The orchestrator adds a
// second guard for timeouts and panics.
type Evaluator interface {
	Name() string
	Evaluate(ctx context.Context, tx *transaction.Transaction) SignalResult
}

// Aggregator combines evaluator signals into a final assessment
type Aggregator interface {
	Aggregate(tx *transaction.Transaction, results []SignalResult) *FraudAssessment
}
