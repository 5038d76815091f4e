package googleplaces

import (
	"context"
	"fmt"
	"time"

	"github.com/gym-finder/internal/domain"
	"github.com/gym-finder/internal/domain/repository"
	"go.uber.org/zap"
)

// QuotaGuard caps provider calls per fixed window. Counter failures fail open.
type QuotaGuard struct {
	next        repository.PlaceSearchClient
	quota       repository.QuotaRepository
	key         string
	maxRequests int64
	window      time.Duration
	logger      *zap.Logger
}

// NewQuotaGuard wraps next. keyID identifies the API key in counter names
// and must not be the key itself.
func NewQuotaGuard(
	next repository.PlaceSearchClient,
	quota repository.QuotaRepository,
	keyID string,
	maxRequests int,
	window time.Duration,
	logger *zap.Logger,
) *QuotaGuard {
	return &QuotaGuard{
		next:        next,
		quota:       quota,
		key:         fmt.Sprintf("quota:places:%s", keyID),
		maxRequests: int64(maxRequests),
		window:      window,
		logger:      logger,
	}
}

func (g *QuotaGuard) FetchNearby(
	ctx context.Context,
	center domain.Coordinate,
	radiusMeters int,
) ([]domain.Place, error) {
	count, err := g.quota.Increment(ctx, g.key, g.window)
	if err != nil {
		g.logger.Warn("Quota counter unavailable, allowing request", zap.Error(err))
		return g.next.FetchNearby(ctx, center, radiusMeters)
	}

	if count > g.maxRequests {
		g.logger.Warn("Places quota exhausted",
			zap.Int64("count", count),
			zap.Int64("max", g.maxRequests),
			zap.Duration("window", g.window))
		return nil, ProviderError(StatusOverQueryLimit, "local request quota exhausted")
	}

	return g.next.FetchNearby(ctx, center, radiusMeters)
}
