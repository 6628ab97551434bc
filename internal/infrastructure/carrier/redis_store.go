package carrier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/config"
)

const profileKeyPrefix = "carrier:profile:"

// redisStore serves carrier profiles from Redis. Deployments load fixture
// or batch-replicated carrier records as JSON under carrier:profile:<msisdn>;
// the engine treats the store exactly like a live provider.
type redisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore creates a Redis-backed carrier profile store
func NewRedisStore(cfg *config.RedisConfig, logger *zap.Logger) (Gateway, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("redis config is required")
	}

	opts := &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Info("carrier profile store initialized",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB))

	return &redisStore{
		client: client,
		logger: logger,
	}, nil
}

// NewRedisStoreWithClient wraps an existing client (used in tests)
func NewRedisStoreWithClient(client *redis.Client, logger *zap.Logger) Gateway {
	return &redisStore{client: client, logger: logger}
}

// Lookup returns the stored profile for the subscriber, or the default
// low-risk profile when no record exists or the store is unreachable.
func (s *redisStore) Lookup(ctx context.Context, msisdn values.MSISDN) (*Profile, error) {
	raw, err := s.client.Get(ctx, profileKeyPrefix+msisdn.String()).Result()
	if err != nil {
		if err == redis.Nil {
			return DefaultProfile(msisdn), nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("carrier profile read failed, serving default profile",
			zap.String("msisdn", msisdn.String()),
			zap.Error(err))
		return DefaultProfile(msisdn), nil
	}

	var profile Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		s.logger.Warn("carrier profile unmarshal failed, serving default profile",
			zap.String("msisdn", msisdn.String()),
			zap.Error(err))
		return DefaultProfile(msisdn), nil
	}

	if profile.MSISDN == "" {
		profile.MSISDN = msisdn.String()
	}

	return &profile, nil
}

// StoreProfile writes a profile record, keyed by its MSISDN. Used by fixture
// loaders and tests; the assessment path never writes.
func StoreProfile(ctx context.Context, client *redis.Client, profile *Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return client.Set(ctx, profileKeyPrefix+profile.MSISDN, data, 0).Err()
}
