package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/gym-finder/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type quotaRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewQuotaRepository(client *redis.Client, logger *zap.Logger) repository.QuotaRepository {
	return &quotaRepository{
		client: client,
		logger: logger,
	}
}

// Increment runs INCR and sets the expiry only when the key has none,
// so the window is anchored at the first request.
func (r *quotaRepository) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to increment quota counter", zap.String("key", key), zap.Error(err))
		return 0, fmt.Errorf("quota increment error: %w", err)
	}

	r.logger.Debug("Quota counter incremented", zap.String("key", key), zap.Int64("count", incr.Val()))
	return incr.Val(), nil
}
