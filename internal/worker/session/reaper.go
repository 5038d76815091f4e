package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gym-finder/internal/worker"
)

// IdleCloser closes screens inactive for longer than ttl.
type IdleCloser interface {
	CloseIdle(ttl time.Duration) int
}

// ReaperWorker unmounts screens whose client went away without closing them.
type ReaperWorker struct {
	*worker.BaseWorker
	screens  IdleCloser
	ttl      time.Duration
	interval time.Duration
}

func NewReaperWorker(screens IdleCloser, ttl, interval time.Duration, logger *zap.Logger) *ReaperWorker {
	return &ReaperWorker{
		BaseWorker: worker.NewBaseWorker("session-reaper", logger),
		screens:    screens,
		ttl:        ttl,
		interval:   interval,
	}
}

func (w *ReaperWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting session reaper",
		zap.Duration("idle_ttl", w.ttl),
		zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			if closed := w.screens.CloseIdle(w.ttl); closed > 0 {
				logger.Debug("Reaped idle screens", zap.Int("closed", closed))
			}
		}
	}
}
