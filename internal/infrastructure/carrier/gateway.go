package carrier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/config"
)

// Gateway is the outbound contract to the carrier intelligence provider.
//
// Lookup never surfaces "record not found": a missing record maps to the
// default low-risk profile. The only error a Gateway may return is the
// caller's own context expiring mid-call; that error belongs to the caller's
// fallback layer, not the gateway's.
type Gateway interface {
	Lookup(ctx context.Context, msisdn values.MSISDN) (*Profile, error)
}

// httpGateway talks to a live carrier intelligence API
type httpGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewHTTPGateway creates a rate-limited HTTP client for the carrier API
func NewHTTPGateway(cfg *config.CarrierConfig, logger *zap.Logger) (Gateway, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg == nil || cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("carrier API base URL is required")
	}

	timeout := cfg.APITimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	rps := cfg.RateLimit.RequestsPerSecond
	if rps <= 0 {
		rps = 50
	}
	burst := cfg.RateLimit.BurstSize
	if burst <= 0 {
		burst = rps
	}

	return &httpGateway{
		baseURL: cfg.APIBaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}, nil
}

// Lookup fetches the carrier profile for a subscriber. Transport failures
// and non-200 responses degrade to the default profile; only context
// expiry is propagated.
func (g *httpGateway) Lookup(ctx context.Context, msisdn values.MSISDN) (*Profile, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/subscribers/%s/intelligence", g.baseURL, msisdn.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.logger.Warn("carrier lookup failed, serving default profile",
			zap.String("msisdn", msisdn.String()),
			zap.Error(err))
		return DefaultProfile(msisdn), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("carrier lookup returned non-200, serving default profile",
			zap.String("msisdn", msisdn.String()),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)))
		return DefaultProfile(msisdn), nil
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		g.logger.Warn("carrier response decode failed, serving default profile",
			zap.String("msisdn", msisdn.String()),
			zap.Error(err))
		return DefaultProfile(msisdn), nil
	}

	if profile.MSISDN == "" {
		profile.MSISDN = msisdn.String()
	}
	if profile.RequestID == "" {
		profile.RequestID = newRequestID()
	}
	if profile.ResponseTimestamp.IsZero() {
		profile.ResponseTimestamp = time.Now()
	}
	profile.Metrics.ResponseTimeMs = int(time.Since(start).Milliseconds())

	return &profile, nil
}
