package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrLoopClosed is returned when work is posted to a closed Loop.
var ErrLoopClosed = errors.New("scheduler: loop closed")

// ErrLoopFull is returned when the macrotask queue is full.
var ErrLoopFull = errors.New("scheduler: loop queue full")

// Loop is a single-goroutine event loop. Macrotasks arrive through Post from
// any goroutine. Microtasks are queued from the loop goroutine and all run
// after the current macrotask, before the next one starts.
type Loop struct {
	tasks     chan func()
	micro     []func()
	done      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

// NewLoop creates a Loop whose macrotask queue holds size entries.
func NewLoop(size int, logger *slog.Logger) *Loop {
	if size <= 0 {
		size = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		tasks:  make(chan func(), size),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Post queues fn as a macrotask. It is safe to call from any goroutine.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrLoopClosed
	default:
		l.logger.Warn("loop: queue full, dropping task")
		return ErrLoopFull
	}
}

// Do posts fn and waits for it to finish or for ctx to end.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	if err := l.Post(func() { result <- fn() }); err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopClosed
	}
}

// QueueMicrotask queues fn to run after the current macrotask. It must only
// be called from the loop goroutine.
func (l *Loop) QueueMicrotask(fn func()) {
	l.micro = append(l.micro, fn)
}

// Run processes tasks until ctx ends or Close is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			l.safe(fn)
			l.runMicrotasks()
		}
	}
}

func (l *Loop) runMicrotasks() {
	for len(l.micro) > 0 {
		fn := l.micro[0]
		l.micro[0] = nil
		l.micro = l.micro[1:]
		l.safe(fn)
	}
}

func (l *Loop) safe(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop: task panicked", "error", fmt.Sprint(r))
		}
	}()
	fn()
}

// Close stops the loop. Pending tasks are discarded.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}
