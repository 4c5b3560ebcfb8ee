package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CurioSync_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	err      error
	panics   bool
	block    chan struct{}
}

func (j *testJob) Name() string { return "test" }

func (j *testJob) Process(ctx context.Context) error {
	if j.block != nil {
		select {
		case <-j.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	atomic.AddInt32(j.executed, 1)
	if j.panics {
		panic("boom")
	}
	return j.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(2, 10)
	pool.Start()
	defer pool.Stop()

	job := &testJob{executed: &executed}
	assert.True(t, pool.Enqueue(job))
	assert.True(t, pool.Enqueue(job))

	waitFor(t, func() bool { return atomic.LoadInt32(&executed) == 2 })
}

func TestPool_FailingAndPanickingJobsKeepWorkerAlive(t *testing.T) {
	var executed int32
	pool := NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	pool.Enqueue(&testJob{executed: &executed, panics: true})
	pool.Enqueue(&testJob{executed: &executed, err: errors.New("failed")})
	pool.Enqueue(&testJob{executed: &executed})

	waitFor(t, func() bool { return atomic.LoadInt32(&executed) == 3 })
}

func TestPool_EnqueueFullQueue(t *testing.T) {
	var executed int32
	block := make(chan struct{})
	pool := NewPool(1, 1)
	pool.Start()
	defer pool.Stop()
	defer close(block)

	// First job occupies the worker, second fills the queue
	assert.True(t, pool.Enqueue(&testJob{executed: &executed, block: block}))
	waitFor(t, func() bool { return len(pool.jobQueue) == 0 })
	assert.True(t, pool.Enqueue(&testJob{executed: &executed}))

	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))
}

func TestPool_StopCancelsRunningJobs(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1)
	pool.Start()

	pool.Enqueue(&testJob{executed: &executed, block: make(chan struct{})})

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
	assert.Zero(t, atomic.LoadInt32(&executed))
	assert.False(t, pool.Enqueue(&testJob{executed: &executed}), "stopped pool rejects jobs")

	pool.Stop()
}

func TestPool_StopLeavesNoGoroutines(t *testing.T) {
	leaktest.VerifyNone(t, func() {
		var executed int32
		pool := NewPool(4, 8)
		pool.Start()
		for i := 0; i < 4; i++ {
			pool.Enqueue(&testJob{executed: &executed, block: make(chan struct{})})
		}
		pool.Stop()
	})
}
