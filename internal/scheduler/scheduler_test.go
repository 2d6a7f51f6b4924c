package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/HomeboxBridge_Go/internal/testing/leaktest"
	"github.com/osse101/HomeboxBridge_Go/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	atomic.AddInt32(&m.RunCount, 1)
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

// fullQueue rejects every job
type fullQueue struct {
	attempts int32
}

func (f *fullQueue) TryEnqueue(worker.Job) bool {
	atomic.AddInt32(&f.attempts, 1)
	return false
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start(context.Background())
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{Done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)

	timeout := time.After(time.Second)
	runCount := 0
	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

func TestScheduler_FullQueueDoesNotBlock(t *testing.T) {
	queue := &fullQueue{}
	sched := New(queue)

	sched.Schedule(5*time.Millisecond, &MockJob{Done: make(chan struct{}, 1)})

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&queue.attempts) >= 3 }, time.Second, 5*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		sched.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a full queue")
	}
}

func TestScheduler_StopReleasesGoroutines(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		sched := New(&fullQueue{})
		sched.Schedule(time.Hour, &MockJob{})
		sched.Schedule(time.Hour, &MockJob{})
		sched.Stop()
		sched.Stop()
	})
}
