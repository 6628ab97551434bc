package carrier

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
)

func newTestRedisStore(t *testing.T) (Gateway, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStoreWithClient(client, zap.NewNop()), client
}

func TestRedisStore_Lookup(t *testing.T) {
	ctx := context.Background()
	store, client := newTestRedisStore(t)

	swapDate := time.Date(2025, 4, 26, 7, 52, 31, 0, time.UTC)
	stored := &Profile{
		Provider: "carrier-intelligence",
		MSISDN:   "27649308536",
		SIMChange: SIMChange{
			Score:      71,
			Detected:   true,
			Date:       &swapDate,
			Confidence: 71,
		},
		DeviceChange: DeviceChange{
			Score:            82,
			Detected:         true,
			PreviousDeviceID: "341638944846312",
			CurrentDeviceID:  "241797497350208",
		},
		Network:         Network{Operator: "MTN", Type: "5G", Country: "ZA"},
		Metrics:         Metrics{VelocityScore: 56, StatusCode: 200},
		FraudIndicators: []string{"sim_swap", "device_change"},
		RequestID:       "REQ-263321a4",
	}
	require.NoError(t, StoreProfile(ctx, client, stored))

	got, err := store.Lookup(ctx, values.MustNewMSISDN("27649308536"))
	require.NoError(t, err)
	assert.True(t, got.SIMChange.Detected)
	assert.Equal(t, 82, got.DeviceChange.Score)
	assert.Equal(t, "MTN", got.Network.Operator)
	assert.True(t, got.HasFraudIndicator("sim_swap"))
}

func TestRedisStore_Lookup_MissingRecordServesDefault(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	got, err := store.Lookup(ctx, values.MustNewMSISDN("27999999999"))
	require.NoError(t, err)
	assert.False(t, got.SIMChange.Detected)
	assert.False(t, got.DeviceChange.Detected)
	assert.Empty(t, got.FraudIndicators)
	assert.Equal(t, "27999999999", got.MSISDN)
}

func TestRedisStore_Lookup_CorruptRecordServesDefault(t *testing.T) {
	ctx := context.Background()
	store, client := newTestRedisStore(t)

	require.NoError(t, client.Set(ctx, profileKeyPrefix+"27821234567", "not-json", 0).Err())

	got, err := store.Lookup(ctx, values.MustNewMSISDN("27821234567"))
	require.NoError(t, err)
	assert.False(t, got.SIMChange.Detected)
}

func TestRedisStore_Lookup_CanceledContext(t *testing.T) {
	store, _ := newTestRedisStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Lookup(ctx, values.MustNewMSISDN("27821234567"))
	assert.ErrorIs(t, err, context.Canceled)
}
