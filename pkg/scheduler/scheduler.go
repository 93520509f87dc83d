// Package scheduler defers work to the end of the current synchronous turn.
//
// A Scheduler is a FIFO queue of tasks drained in a single batch. The first
// Enqueue of a turn posts exactly one drain; later enqueues in the same turn,
// and tasks enqueued by tasks during the drain, ride along in that drain.
//
// Where the drain runs is up to the host. By default it runs when the
// outermost Turn ends; callers bracket a synchronous operation with Turn and
// the work it enqueued runs right after. With a Loop (WithLoop) the drain is
// a microtask that runs after the current macrotask and before the next one.
// WithManualFlush parks the drain until Flush, which is how tests run
// deferred work deterministically.
package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Task is a unit of deferred work. A returned error is logged.
type Task func() error

// AsyncTask starts work that completes later. The channel, if not nil, is
// awaited on its own goroutine solely to log a failure.
type AsyncTask func() <-chan error

// Metrics receives scheduler events. internal/telemetry implements it.
type Metrics interface {
	TaskRun()
	TaskFailed()
	Drained(tasks int)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger for task failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// WithPoster sets the function used to schedule a drain. It is called at
// most once per drain with the drain function.
func WithPoster(post func(drain func())) Option {
	return func(s *Scheduler) {
		if post != nil {
			s.post = post
		}
	}
}

// WithManualFlush parks posted drains until Flush is called.
func WithManualFlush() Option {
	return WithPoster(func(func()) {})
}

// WithLoop drains the queue as a microtask of l.
func WithLoop(l *Loop) Option {
	return WithPoster(l.QueueMicrotask)
}

// Scheduler is a deferred-task queue.
type Scheduler struct {
	mu        sync.Mutex
	tasks     []Task
	scheduled bool

	// depth counts open turns; due is set when a drain was posted while
	// one was open.
	depth int
	due   bool

	post    func(drain func())
	logger  *slog.Logger
	metrics Metrics
}

// New creates a Scheduler. Without WithPoster, WithLoop or WithManualFlush,
// queued tasks run when the outermost Turn ends.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{logger: slog.Default()}
	s.post = s.endOfTurn
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue appends task and schedules a drain if none is pending.
func (s *Scheduler) Enqueue(task Task) {
	if task == nil {
		return
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	if s.scheduled {
		s.mu.Unlock()
		return
	}
	s.scheduled = true
	s.mu.Unlock()

	s.post(s.drain)
}

// EnqueueAsync enqueues a task whose result arrives later.
func (s *Scheduler) EnqueueAsync(task AsyncTask) {
	if task == nil {
		return
	}
	s.Enqueue(func() error {
		done := task()
		if done == nil {
			return nil
		}
		go func() {
			if err := <-done; err != nil {
				s.fail(err)
			}
		}()
		return nil
	})
}

// Turn opens a synchronous turn and returns the function that closes it.
// Turns nest. A drain posted by the default poster while a turn is open runs
// when the outermost turn closes; outside any turn it runs immediately.
// Posters set with WithPoster or WithLoop ignore turns.
func (s *Scheduler) Turn() (end func()) {
	s.mu.Lock()
	s.depth++
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.depth--
			run := s.depth == 0 && s.due
			if run {
				s.due = false
			}
			s.mu.Unlock()
			if run {
				s.drain()
			}
		})
	}
}

func (s *Scheduler) endOfTurn(drain func()) {
	s.mu.Lock()
	if s.depth > 0 {
		s.due = true
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	drain()
}

// Flush runs the pending drain now. It is a no-op when the queue is empty.
func (s *Scheduler) Flush() {
	s.drain()
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Scheduled reports whether a drain has been posted and not yet finished.
func (s *Scheduler) Scheduled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduled
}

// drain pops and runs tasks until the queue is empty. The length is
// re-checked each iteration, so tasks enqueued by tasks run in this drain.
func (s *Scheduler) drain() {
	ran := 0
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 {
			s.scheduled = false
			s.mu.Unlock()
			break
		}
		task := s.tasks[0]
		s.tasks[0] = nil
		s.tasks = s.tasks[1:]
		s.mu.Unlock()

		s.run(task)
		ran++
	}
	if ran > 0 && s.metrics != nil {
		s.metrics.Drained(ran)
	}
}

func (s *Scheduler) run(task Task) {
	if s.metrics != nil {
		s.metrics.TaskRun()
	}
	defer func() {
		if r := recover(); r != nil {
			s.fail(fmt.Errorf("panic: %v", r))
		}
	}()
	if err := task(); err != nil {
		s.fail(err)
	}
}

func (s *Scheduler) fail(err error) {
	if s.metrics != nil {
		s.metrics.TaskFailed()
	}
	s.logger.Error("scheduler: task failed", "error", err)
}

var defaultScheduler atomic.Pointer[Scheduler]

func init() {
	defaultScheduler.Store(New())
}

// Default returns the process-wide scheduler.
func Default() *Scheduler {
	return defaultScheduler.Load()
}

// SetDefault replaces the process-wide scheduler and returns a function
// that restores the previous one.
func SetDefault(s *Scheduler) (restore func()) {
	prev := defaultScheduler.Swap(s)
	return func() { defaultScheduler.Store(prev) }
}

// Enqueue adds task to the process-wide scheduler.
func Enqueue(task Task) {
	Default().Enqueue(task)
}
