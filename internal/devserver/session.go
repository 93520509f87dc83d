package devserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vango-dev/laiweb/internal/telemetry"
	"github.com/vango-dev/laiweb/pkg/runtime"
	"github.com/vango-dev/laiweb/pkg/scheduler"
	"github.com/vango-dev/laiweb/pkg/target/memory"
	"github.com/vango-dev/laiweb/pkg/target/record"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

const closeTimeout = 2 * time.Second

// Session is one mounted component with its own document and event loop.
// All access to the document happens on the loop goroutine.
type Session struct {
	doc    *memory.Document
	rec    *record.Recorder
	loop   *scheduler.Loop
	inst   *runtime.Instance
	logger *slog.Logger
}

// SessionOptions configures NewSession.
type SessionOptions struct {
	Logger   *slog.Logger
	Metrics  *telemetry.Metrics
	Equality vdom.Equality
}

// NewSession starts a loop and mounts def on it. The loop stops when ctx
// ends or Close is called.
func NewSession(ctx context.Context, def *runtime.Definition, opts SessionOptions) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	equal := opts.Equality
	if equal == nil {
		equal = vdom.KeyedEqual
	}

	loop := scheduler.NewLoop(256, logger)
	go func() {
		loop.Run(ctx)
		loop.Close()
	}()

	doc := memory.New()
	rec := record.New(doc)
	sched := scheduler.New(
		scheduler.WithLogger(logger),
		scheduler.WithMetrics(opts.Metrics),
		scheduler.WithLoop(loop),
	)
	rt := runtime.New(rec,
		runtime.WithScheduler(sched),
		runtime.WithLogger(logger),
		runtime.WithEquality(equal),
		runtime.WithMetrics(opts.Metrics),
		runtime.WithContext(ctx),
	)

	s := &Session{doc: doc, rec: rec, loop: loop, logger: logger}
	err := loop.Do(ctx, func() error {
		s.inst = rt.NewInstance(def, nil, nil, nil)
		return s.inst.Mount(doc.Body(), runtime.End)
	})
	if err != nil {
		loop.Close()
		return nil, err
	}
	return s, nil
}

// Dispatch fires event on the element with the given id.
func (s *Session) Dispatch(ctx context.Context, id uint64, event string, value any) error {
	return s.loop.Do(ctx, func() error {
		node := s.doc.FindByID(id)
		if node == nil {
			return fmt.Errorf("devserver: no element with id %d", id)
		}
		if s.doc.Dispatch(node, event, value) == 0 {
			s.logger.Warn("devserver: no listener", "id", id, "event", event)
		}
		return nil
	})
}

// Snapshot returns the current HTML and the mutations since the last
// snapshot. It runs after any hooks queued by earlier events.
func (s *Session) Snapshot(ctx context.Context) (ServerMessage, error) {
	var msg ServerMessage
	err := s.loop.Do(ctx, func() error {
		msg = ServerMessage{
			Type: MessageRender,
			HTML: memory.InnerHTML(s.doc.Body(), memory.HTMLOptions{NodeIDs: true}),
			Ops:  countOps(s.rec.Drain()),
		}
		return nil
	})
	return msg, err
}

// Close unmounts the component and stops the loop.
func (s *Session) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	err := s.loop.Do(ctx, func() error {
		return s.inst.Unmount()
	})
	if err != nil {
		s.logger.Debug("devserver: unmount failed", "error", err)
	}
	s.loop.Close()
}

func countOps(ms []record.Mutation) map[string]int {
	if len(ms) == 0 {
		return nil
	}
	out := make(map[string]int)
	for _, m := range ms {
		out[string(m.Op)]++
	}
	return out
}
