// Package parallel runs independent units of work on a bounded set of goroutines.
package parallel

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrTooManyWorkers is returned when the worker count exceeds MaxWorkers.
	ErrTooManyWorkers = errors.New("worker count exceeds maximum")

	// ErrPoolClosed is returned by Submit after Wait or Close.
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrTaskPanicked wraps a panic recovered from a task.
	ErrTaskPanicked = errors.New("task panicked")
)

// MaxWorkers bounds the pool size. The task queue is buffered at twice the
// worker count, so this also bounds that allocation.
const MaxWorkers = 4096

// Task is a unit of work. A non-nil error is reported by Wait.
type Task func() error

// WorkerPool manages a pool of worker goroutines. The first task error (or
// recovered panic) is kept and returned from Wait; later tasks still run.
type WorkerPool struct {
	workers   int
	taskQueue chan Task
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // guards closed against a send racing close
	closed    bool

	errOnce  sync.Once
	firstErr error
}

// NewWorkerPool creates a pool with the given number of workers. Values
// below 1 are treated as 1.
func NewWorkerPool(workers int) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}

	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan Task, workers*2),
	}

	for i := 0; i < pool.workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool, nil
}

// Workers returns the number of worker goroutines
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		if err := wp.run(task); err != nil {
			wp.errOnce.Do(func() { wp.firstErr = err })
		}
	}
}

func (wp *WorkerPool) run(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	return task()
}

// Submit queues a task. Returns ErrPoolClosed once the pool is closed.
func (wp *WorkerPool) Submit(task Task) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return ErrPoolClosed
	}

	wp.taskQueue <- task
	return nil
}

// Close stops accepting tasks and waits for queued ones to finish. Safe to
// call more than once.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Wait closes the pool, waits for every task, and returns the first error.
func (wp *WorkerPool) Wait() error {
	wp.Close()
	return wp.firstErr
}

// EffectiveWorkers returns how many goroutines ForEach uses for n items:
// never more than n, and 1 when it runs inline.
func EffectiveWorkers(n, workers int) int {
	if workers <= 1 || n <= 1 {
		return 1
	}
	return min(workers, n)
}

// ForEach runs fn for every index in [0, n) on a pool of the given size and
// returns the first error. With workers <= 1 it runs inline, in order.
func ForEach(n, workers int, fn func(i int) error) error {
	workers = EffectiveWorkers(n, workers)
	if workers == 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	pool, err := NewWorkerPool(workers)
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		idx := i
		if err := pool.Submit(func() error { return fn(idx) }); err != nil {
			pool.Close()
			return err
		}
	}
	return pool.Wait()
}
