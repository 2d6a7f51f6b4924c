package scheduler

import (
	"sync"
	"time"

	"github.com/osse101/HomeboxBridge_Go/internal/logger"
	"github.com/osse101/HomeboxBridge_Go/internal/worker"
)

// LogMsgTickSkipped is logged when a tick finds the previous run still queued
const LogMsgTickSkipped = "Previous run still queued, skipping tick"

// Enqueuer is the part of the worker pool the scheduler feeds
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule enqueues job every interval. Ticks never block: when the pool
// queue is full the tick is skipped, so a slow run delays the cadence
// instead of piling up passes.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.pool.TryEnqueue(job) {
					logger.Debug(LogMsgTickSkipped, "interval", interval)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs. Safe to call twice.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
	})
	s.wg.Wait()
}
