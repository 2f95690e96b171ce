package cache

import (
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore builds the webhook fast-path store from configuration.
// Redis when enabled and reachable, with an in-memory fallback so a cache
// outage never blocks webhook processing (the DB ledger stays authoritative).
func NewIdempotencyStore(cfg *config.Config, logger *zap.Logger) shared.IdempotencyStore {
	if cfg.Redis.Enabled {
		store, err := NewRedisIdempotencyStore(cfg.Redis)
		if err == nil {
			logger.Info("Using Redis idempotency store",
				zap.String("addr", cfg.Redis.Addr()))
			return store
		}
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store",
			zap.Error(err))
	}
	return NewInMemoryIdempotencyStore()
}
