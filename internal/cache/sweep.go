package cache

import (
	"context"
	"time"
)

// Cleaner is implemented by caches that can drop expired entries in bulk.
type Cleaner interface {
	CleanExpired() int
}

// Sweeper periodically cleans registered caches until its context ends.
type Sweeper struct {
	caches []Cleaner
}

func NewSweeper(caches ...Cleaner) *Sweeper {
	return &Sweeper{caches: caches}
}

// Run blocks, sweeping at the given interval, until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, c := range s.caches {
				c.CleanExpired()
			}
		case <-ctx.Done():
			return
		}
	}
}
