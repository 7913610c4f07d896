package memory

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically removes expired entries from a Store.
//
// The store expires lazily on its own; running a Sweeper changes that
// behavior, so it is only started when explicitly configured.
type Sweeper struct {
	store    *Store
	interval time.Duration
	logger   *slog.Logger
	onSwept  func(removed int)
}

// NewSweeper creates a sweeper that runs every interval.
func NewSweeper(store *Store, interval time.Duration, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// OnSwept registers fn to receive the count of every non-empty sweep.
// It must be called before Run.
func (s *Sweeper) OnSwept(fn func(removed int)) {
	s.onSwept = fn
}

// Run sweeps until ctx is cancelled. It blocks.
func (s *Sweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce()
		case <-ctx.Done():
			s.logger.Debug("expiry sweeper stopped")
			return
		}
	}
}

func (s *Sweeper) runOnce() int {
	removed := s.store.RemoveExpired()
	if removed > 0 {
		s.logger.Debug("expiry sweeper removed keys", "count", removed)
		if s.onSwept != nil {
			s.onSwept(removed)
		}
	}
	return removed
}
