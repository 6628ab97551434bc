package carrier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/config"
)

func newTestHTTPGateway(t *testing.T, handler http.HandlerFunc) Gateway {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw, err := NewHTTPGateway(&config.CarrierConfig{
		APIBaseURL: srv.URL,
		APIKey:     "test-key",
		APITimeout: time.Second,
		RateLimit:  config.RateLimitConfig{RequestsPerSecond: 100, BurstSize: 100},
	}, zap.NewNop())
	require.NoError(t, err)

	return gw
}

func TestHTTPGateway_Lookup(t *testing.T) {
	gw := newTestHTTPGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/v1/subscribers/27649308536/intelligence", r.URL.Path)

		json.NewEncoder(w).Encode(&Profile{
			MSISDN:          "27649308536",
			SIMChange:       SIMChange{Score: 71, Detected: true, Confidence: 71},
			Network:         Network{Operator: "MTN", Type: "5G", Country: "ZA"},
			FraudIndicators: []string{"sim_swap"},
		})
	})

	got, err := gw.Lookup(context.Background(), values.MustNewMSISDN("27649308536"))
	require.NoError(t, err)
	assert.True(t, got.SIMChange.Detected)
	assert.Equal(t, "MTN", got.Network.Operator)
	assert.NotEmpty(t, got.RequestID)
	assert.False(t, got.ResponseTimestamp.IsZero())
}

func TestHTTPGateway_Lookup_NotFoundServesDefault(t *testing.T) {
	gw := newTestHTTPGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no record", http.StatusNotFound)
	})

	got, err := gw.Lookup(context.Background(), values.MustNewMSISDN("27999999999"))
	require.NoError(t, err)
	assert.False(t, got.SIMChange.Detected)
	assert.Empty(t, got.FraudIndicators)
}

func TestHTTPGateway_Lookup_ServerErrorServesDefault(t *testing.T) {
	gw := newTestHTTPGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	got, err := gw.Lookup(context.Background(), values.MustNewMSISDN("27821234567"))
	require.NoError(t, err)
	assert.False(t, got.DeviceChange.Detected)
}

func TestHTTPGateway_Lookup_CanceledContext(t *testing.T) {
	gw := newTestHTTPGateway(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.Lookup(ctx, values.MustNewMSISDN("27821234567"))
	assert.Error(t, err)
}

func TestStaticStore_Lookup(t *testing.T) {
	store := NewStaticStore()
	store.Put(&Profile{
		MSISDN:    "27821234567",
		SIMChange: SIMChange{Score: 60, Detected: true},
	})

	got, err := store.Lookup(context.Background(), values.MustNewMSISDN("27821234567"))
	require.NoError(t, err)
	assert.True(t, got.SIMChange.Detected)

	// callers own their copy
	got.SIMChange.Score = 0
	again, err := store.Lookup(context.Background(), values.MustNewMSISDN("27821234567"))
	require.NoError(t, err)
	assert.Equal(t, 60, again.SIMChange.Score)

	// unknown subscriber degrades to the default profile
	missing, err := store.Lookup(context.Background(), values.MustNewMSISDN("27999999999"))
	require.NoError(t, err)
	assert.False(t, missing.SIMChange.Detected)
}
