// Package worker runs the background janitor: it deletes expired
// sessions from the database and sweeps expired entries out of the
// in-process page cache on a fixed interval.
package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/LianaVolkova/yatube/internal/repository"
)

// Sweeper drops expired entries from a cache and reports how many were
// removed. The Redis-backed page cache expires keys natively and does
// not need one.
type Sweeper interface {
	Sweep() int
}

// Janitor periodically prunes expired sessions and, when given a
// Sweeper, expired page cache entries.
type Janitor struct {
	sessionRepo repository.SessionRepository
	sweeper     Sweeper // may be nil
	interval    time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewJanitor(sessionRepo repository.SessionRepository, sweeper Sweeper, interval time.Duration) *Janitor {
	return &Janitor{
		sessionRepo: sessionRepo,
		sweeper:     sweeper,
		interval:    interval,
	}
}

// Start launches the janitor loop. Call Stop to shut it down.
func (j *Janitor) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel

	j.wg.Add(1)
	go j.run(ctx)

	log.Printf("[Janitor] Started: interval=%s", j.interval)
}

// Stop signals the loop to exit and waits for the in-flight pass to
// finish.
func (j *Janitor) Stop() {
	if j.cancel != nil {
		j.cancel()
	}
	j.wg.Wait()
	log.Println("[Janitor] Stopped")
}

func (j *Janitor) run(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	deleted, err := j.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("[Janitor] Session cleanup FAILED: %v", err)
	} else if deleted > 0 {
		log.Printf("[Janitor] Deleted %d expired sessions", deleted)
	}

	if j.sweeper != nil {
		if removed := j.sweeper.Sweep(); removed > 0 {
			log.Printf("[Janitor] Swept %d expired page cache entries", removed)
		}
	}
}
