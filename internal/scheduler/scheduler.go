// Package scheduler enqueues recurring jobs on the worker pool.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/CurioSync_Go/internal/logger"
	"github.com/osse101/CurioSync_Go/internal/worker"
)

const (
	LogMsgJobScheduled = "Recurring job scheduled"
	LogMsgJobDisabled  = "Recurring job disabled"
	LogMsgJobSkipped   = "Recurring job skipped, queue full"
)

type entry struct {
	interval time.Duration
	job      worker.Job
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	queue   worker.Enqueuer
	entries []entry
	quit    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	started bool
}

// New creates a new scheduler
func New(queue worker.Enqueuer) *Scheduler {
	return &Scheduler{
		queue: queue,
		quit:  make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval once Start is called.
// A non-positive interval disables the job.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	log := logger.FromContext(context.Background())
	if interval <= 0 {
		log.Info(LogMsgJobDisabled, "job", job.Name())
		return
	}
	s.entries = append(s.entries, entry{interval: interval, job: job})
	log.Info(LogMsgJobScheduled, "job", job.Name(), "interval", interval)
}

// Start launches one ticker per scheduled job. Jobs first run one interval after Start.
func (s *Scheduler) Start() {
	if s.started {
		return
	}
	s.started = true
	for _, e := range s.entries {
		s.wg.Add(1)
		go s.loop(e)
	}
}

func (s *Scheduler) loop(e entry) {
	defer s.wg.Done()
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !s.queue.Enqueue(e.job) {
				logger.FromContext(context.Background()).Warn(LogMsgJobSkipped, "job", e.job.Name())
			}
		case <-s.quit:
			return
		}
	}
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}
