package payout

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrPoolClosed is returned by AddTask after Close.
var ErrPoolClosed = errors.New("worker pool closed")

type WorkerPoolI interface {
	AddTask(ctx context.Context, task Task) error
	Close()
}

type Task func() error

// WorkerPool fans payout tasks out to a fixed set of workers over a buffered
// channel. Close stops intake; tasks already queued still run.
type WorkerPool struct {
	tasks     chan Task
	done      chan struct{}
	closeOnce sync.Once
}

func NewWorkerPool(size int) *WorkerPool {
	wp := &WorkerPool{
		tasks: make(chan Task, size),
		done:  make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	for task := range wp.tasks {
		if err := task(); err != nil {
			zap.L().Error("payout task failed", zap.Error(err))
		}
	}
}

func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.done:
		return ErrPoolClosed
	case wp.tasks <- task:
		return nil
	}
}

// Close is idempotent. Workers drain tasks already queued and then exit;
// subsequent AddTask calls fail with ErrPoolClosed. Callers must not run
// AddTask concurrently with Close.
func (wp *WorkerPool) Close() {
	wp.closeOnce.Do(func() {
		close(wp.done)
		close(wp.tasks)
	})
}
