// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// PrunableCache is any cache that can drop its expired entries in bulk.
type PrunableCache interface {
	Prune() int
}

// CachePruneScheduler periodically evicts expired cache entries so a
// long-running process does not accumulate dead lookups.
type CachePruneScheduler struct {
	cache PrunableCache

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewCachePruneScheduler creates a new scheduler instance.
func NewCachePruneScheduler(cache PrunableCache) *CachePruneScheduler {
	return &CachePruneScheduler{
		cache: cache,
		cron:  cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start schedules pruning with the given cron expression.
func (s *CachePruneScheduler) Start(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	_, err := s.cron.AddFunc(schedule, func() {
		if pruned := s.cache.Prune(); pruned > 0 {
			log.Printf("Cache prune: dropped %d expired entries", pruned)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cache prune job: %w", err)
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Cache prune scheduler: started with schedule '%s'", schedule)

	return nil
}

// Stop halts the scheduler, waiting for a running job to finish.
func (s *CachePruneScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	log.Printf("Cache prune scheduler: stopped")
}
