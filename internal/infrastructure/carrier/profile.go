package carrier

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
)

// Profile is the structured carrier-intelligence record for a subscriber.
// A fresh instance is constructed per lookup and never mutated; profiles are
// not shared across evaluators or cached across transactions.
type Profile struct {
	Provider string `json:"provider"`
	MSISDN   string `json:"msisdn"`

	SIMChange    SIMChange    `json:"sim_change"`
	DeviceChange DeviceChange `json:"device_change"`
	Network      Network      `json:"network"`
	Metrics      Metrics      `json:"metrics"`

	FraudIndicators   []string  `json:"fraud_indicators"`
	ResponseTimestamp time.Time `json:"response_timestamp"`
	RequestID         string    `json:"request_id"`

	defaulted bool
}

// IsDefault reports whether this profile was synthesized because no carrier
// record exists for the subscriber.
func (p *Profile) IsDefault() bool {
	return p.defaulted
}

// SIMChange describes recent SIM replacement activity on the subscription
type SIMChange struct {
	Score      int        `json:"score"`
	Detected   bool       `json:"detected"`
	Date       *time.Time `json:"date,omitempty"`
	Confidence int        `json:"confidence"`
}

// DeviceChange describes recent handset changes on the subscription
type DeviceChange struct {
	Score            int        `json:"score"`
	Detected         bool       `json:"detected"`
	Date             *time.Time `json:"date,omitempty"`
	PreviousDeviceID string     `json:"previous_device_id,omitempty"`
	CurrentDeviceID  string     `json:"current_device_id"`
}

// Network holds the subscription's current network metadata
type Network struct {
	Operator string `json:"operator"`
	Type     string `json:"type"`
	Roaming  bool   `json:"roaming"`
	Country  string `json:"country"`
}

// Metrics holds provider-side measurements for the lookup
type Metrics struct {
	VelocityScore  int `json:"velocity_score"`
	ResponseTimeMs int `json:"api_response_time_ms"`
	StatusCode     int `json:"api_status_code"`
}

// HasFraudIndicator reports whether the carrier flagged the given indicator
func (p *Profile) HasFraudIndicator(indicator string) bool {
	for _, i := range p.FraudIndicators {
		if i == indicator {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so each caller owns its own instance
func (p *Profile) Clone() *Profile {
	c := *p
	if p.SIMChange.Date != nil {
		d := *p.SIMChange.Date
		c.SIMChange.Date = &d
	}
	if p.DeviceChange.Date != nil {
		d := *p.DeviceChange.Date
		c.DeviceChange.Date = &d
	}
	if p.FraudIndicators != nil {
		c.FraudIndicators = append([]string(nil), p.FraudIndicators...)
	}
	return &c
}

// DefaultProfile returns the low-risk profile served when no record exists
// for the subscriber. Absence of fraud data is treated as absence of fraud
// evidence, so downstream evaluators never see a missing record.
func DefaultProfile(msisdn values.MSISDN) *Profile {
	return &Profile{
		Provider: "carrier-intelligence",
		MSISDN:   msisdn.String(),
		SIMChange: SIMChange{
			Score:      5,
			Detected:   false,
			Confidence: 10,
		},
		DeviceChange: DeviceChange{
			Score:           5,
			Detected:        false,
			CurrentDeviceID: "UNKNOWN",
		},
		Network: Network{
			Operator: "UNKNOWN",
			Type:     "UNKNOWN",
			Roaming:  false,
			Country:  "ZA",
		},
		Metrics: Metrics{
			VelocityScore: 10,
			StatusCode:    200,
		},
		FraudIndicators:   []string{},
		ResponseTimestamp: time.Now(),
		RequestID:         newRequestID(),
		defaulted:         true,
	}
}

func newRequestID() string {
	return fmt.Sprintf("REQ-%s", uuid.New().String()[:8])
}
