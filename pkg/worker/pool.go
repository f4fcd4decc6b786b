package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrPoolStopped is returned by Submit once the pool has shut down
var ErrPoolStopped = errors.New("worker pool stopped")

// Handler executes a single task
type Handler[T any, R any] func(ctx context.Context, task T) R

// Pool is a generic worker pool that runs tasks on a bounded set of goroutines
type Pool[T any, R any] struct {
	workerCount int
	poolName    string // For logging
	handler     Handler[T, R]

	jobChan chan Job[T, R]
	done    chan struct{}
}

// Job represents a task together with the channel its result goes back on
type Job[T any, R any] struct {
	Ctx   context.Context
	Task  T
	Reply chan R
}

// NewPool creates a new generic worker pool
func NewPool[T any, R any](workerCount, queueSize int, poolName string, handler Handler[T, R]) *Pool[T, R] {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &Pool[T, R]{
		workerCount: workerCount,
		poolName:    poolName,
		handler:     handler,
		jobChan:     make(chan Job[T, R], queueSize),
		done:        make(chan struct{}),
	}
}

// Start begins the worker pool (call once at startup)
func (p *Pool[T, R]) Start(ctx context.Context) {
	slog.Info("Starting workers", "component", "WorkerPool", "pool", p.poolName, "workers", p.workerCount)

	var wg sync.WaitGroup
	for i := 0; i < p.workerCount; i++ {
		wg.Add(1)
		go p.worker(ctx, i, &wg)
	}

	// Wait for all workers to finish when context is done
	go func() {
		wg.Wait()
		close(p.done)
		slog.Info("All workers stopped", "component", "WorkerPool", "pool", p.poolName)
	}()
}

// Submit queues a task and blocks until a worker has produced its result.
// It returns early with the context error if ctx ends first.
func (p *Pool[T, R]) Submit(ctx context.Context, task T) (R, error) {
	var zero R
	reply := make(chan R, 1)

	select {
	case p.jobChan <- Job[T, R]{Ctx: ctx, Task: task, Reply: reply}:
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-p.done:
		return zero, ErrPoolStopped
	}

	select {
	case result := <-reply:
		return result, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-p.done:
		return zero, ErrPoolStopped
	}
}

// worker processes jobs continuously
func (p *Pool[T, R]) worker(ctx context.Context, id int, wg *sync.WaitGroup) {
	defer wg.Done()
	slog.Debug("Worker started", "component", "WorkerPool", "pool", p.poolName, "worker", id)

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Worker stopping", "component", "WorkerPool", "pool", p.poolName, "worker", id)
			return

		case job := <-p.jobChan:
			if job.Ctx.Err() != nil {
				// Caller already gave up
				continue
			}
			job.Reply <- p.handler(job.Ctx, job.Task)
		}
	}
}
