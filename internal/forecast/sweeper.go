package forecast

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CacheSweeper periodically purges expired cache entries. Get already treats
// expired entries as misses; sweeping only bounds memory.
type CacheSweeper struct {
	cache    *Cache
	interval time.Duration
	logger   *zap.Logger

	shutdownCh chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

func NewCacheSweeper(cache *Cache, interval time.Duration, logger *zap.Logger) *CacheSweeper {
	return &CacheSweeper{
		cache:      cache,
		interval:   interval,
		logger:     logger.With(zap.String("worker", "cache_sweeper")),
		shutdownCh: make(chan struct{}),
	}
}

// Start launches the sweep loop. A non-positive interval disables sweeping.
func (s *CacheSweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Cache sweeper disabled")
		return
	}

	s.wg.Add(1)
	go s.run(ctx)
}

func (s *CacheSweeper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Cache sweeper started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.shutdownCh:
			s.logger.Info("Shutdown signal received, cache sweeper stopping")
			return
		case <-ctx.Done():
			s.logger.Info("Context cancelled, cache sweeper stopping")
			return
		}
	}
}

func (s *CacheSweeper) sweep() {
	if removed := s.cache.Purge(); removed > 0 {
		s.logger.Debug("Purged expired forecasts",
			zap.Int("removed", removed),
			zap.Int("cache_size", s.cache.Len()))
	}
}

// Stop signals the loop and waits for it to exit. Safe to call more than once.
func (s *CacheSweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.shutdownCh)
	})
	s.wg.Wait()
}
