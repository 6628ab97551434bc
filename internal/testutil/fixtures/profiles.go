package fixtures

import (
	"testing"
	"time"

	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/carrier"
)

// ProfileBuilder builds test carrier profiles
type ProfileBuilder struct {
	t       *testing.T
	profile carrier.Profile
}

// NewProfileBuilder creates a builder for a clean subscriber record
func NewProfileBuilder(t *testing.T, msisdn string) *ProfileBuilder {
	t.Helper()

	return &ProfileBuilder{
		t: t,
		profile: carrier.Profile{
			Provider: "carrier-intelligence",
			MSISDN:   msisdn,
			Network:  carrier.Network{Operator: "Vodacom", Type: "4G", Country: "ZA"},
			Metrics:  carrier.Metrics{VelocityScore: 10, StatusCode: 200},
		},
	}
}

// WithSIMSwap marks a SIM change at the given time
func (b *ProfileBuilder) WithSIMSwap(date time.Time, score int) *ProfileBuilder {
	b.profile.SIMChange = carrier.SIMChange{
		Score:      score,
		Detected:   true,
		Date:       &date,
		Confidence: score,
	}
	b.profile.FraudIndicators = append(b.profile.FraudIndicators, "sim_swap")
	return b
}

// WithDeviceChange marks a device change to the given identifier
func (b *ProfileBuilder) WithDeviceChange(currentDeviceID string, score int) *ProfileBuilder {
	b.profile.DeviceChange = carrier.DeviceChange{
		Score:           score,
		Detected:        true,
		CurrentDeviceID: currentDeviceID,
	}
	b.profile.FraudIndicators = append(b.profile.FraudIndicators, "device_change")
	return b
}

// WithNetwork overrides the network block
func (b *ProfileBuilder) WithNetwork(operator, networkType, country string) *ProfileBuilder {
	b.profile.Network = carrier.Network{Operator: operator, Type: networkType, Country: country}
	return b
}

// WithVelocityScore sets the carrier velocity score
func (b *ProfileBuilder) WithVelocityScore(score int) *ProfileBuilder {
	b.profile.Metrics.VelocityScore = score
	return b
}

// Build returns the assembled profile
func (b *ProfileBuilder) Build() *carrier.Profile {
	b.t.Helper()
	return b.profile.Clone()
}
