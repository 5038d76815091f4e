package repository

import (
	"context"
	"time"
)

// QuotaRepository counts events in fixed windows.
type QuotaRepository interface {
	// Increment bumps the counter for key in the current window and returns
	// the new count. The window starts with the first increment.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}
