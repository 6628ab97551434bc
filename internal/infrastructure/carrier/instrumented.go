package carrier

import (
	"context"
	"time"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
	"github.com/telcoshield/simswap-risk-engine/internal/metrics"
)

// instrumentedGateway decorates a Gateway with lookup metrics
type instrumentedGateway struct {
	next     Gateway
	registry *metrics.Registry
	mode     string
}

// NewInstrumentedGateway wraps a gateway so every lookup records latency and
// default-profile fallbacks. A nil registry returns the gateway unchanged.
func NewInstrumentedGateway(next Gateway, registry *metrics.Registry, mode string) Gateway {
	if registry == nil {
		return next
	}
	return &instrumentedGateway{
		next:     next,
		registry: registry,
		mode:     mode,
	}
}

func (g *instrumentedGateway) Lookup(ctx context.Context, msisdn values.MSISDN) (*Profile, error) {
	start := time.Now()
	profile, err := g.next.Lookup(ctx, msisdn)
	if err != nil {
		return nil, err
	}

	g.registry.RecordCarrierLookup(ctx,
		float64(time.Since(start).Milliseconds()), g.mode, profile.IsDefault())

	return profile, nil
}
