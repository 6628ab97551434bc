package values

import (
	"encoding/json"
	"fmt"
	"math"
)

// RiskScore represents a normalized fraud risk score in the range [0,100].
// Higher is riskier.
type RiskScore struct {
	value float64
}

// NewRiskScore creates a RiskScore, rejecting values outside [0,100]
func NewRiskScore(value float64) (RiskScore, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return RiskScore{}, fmt.Errorf("risk score must be a finite number")
	}
	if value < 0 || value > 100 {
		return RiskScore{}, fmt.Errorf("risk score %v out of range [0,100]", value)
	}
	return RiskScore{value: value}, nil
}

// ClampRiskScore creates a RiskScore, clamping the input into [0,100].
// Used by evaluators whose additive scoring can run past either bound.
func ClampRiskScore(value float64) RiskScore {
	if math.IsNaN(value) {
		return RiskScore{}
	}
	return RiskScore{value: math.Min(100, math.Max(0, value))}
}

// MustNewRiskScore creates a RiskScore and panics on error (for constants/tests)
func MustNewRiskScore(value float64) RiskScore {
	s, err := NewRiskScore(value)
	if err != nil {
		panic(err)
	}
	return s
}

// Value returns the numeric score
func (s RiskScore) Value() float64 {
	return s.value
}

// Equal checks if two RiskScore values are equal
func (s RiskScore) Equal(other RiskScore) bool {
	return s.value == other.value
}

// IsHigherThan reports whether s exceeds the given threshold
func (s RiskScore) IsHigherThan(threshold float64) bool {
	return s.value > threshold
}

// IsAtLeast reports whether s meets or exceeds the given threshold
func (s RiskScore) IsAtLeast(threshold float64) bool {
	return s.value >= threshold
}

func (s RiskScore) String() string {
	return fmt.Sprintf("%.2f", s.value)
}

// MarshalJSON implements JSON marshaling
func (s RiskScore) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

// UnmarshalJSON implements JSON unmarshaling
func (s *RiskScore) UnmarshalJSON(data []byte) error {
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	score, err := NewRiskScore(value)
	if err != nil {
		return err
	}

	*s = score
	return nil
}
