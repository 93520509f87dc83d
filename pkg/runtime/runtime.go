package runtime

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/laiweb/internal/telemetry"
	"github.com/vango-dev/laiweb/pkg/scheduler"
	"github.com/vango-dev/laiweb/pkg/target"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

// Runtime mounts, patches and destroys virtual trees against one render
// target. It also tracks live component instances so that a component can
// find its parent by ID when an event fires.
//
// A Runtime is not safe for concurrent use. Drive it from a single goroutine,
// such as a scheduler.Loop.
type Runtime struct {
	target  target.Renderer
	sched   *scheduler.Scheduler
	logger  *slog.Logger
	equal   vdom.Equality
	metrics *telemetry.Metrics
	tracer  trace.Tracer
	ctx     context.Context

	instances map[uint64]*Instance
	nextID    uint64
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithScheduler sets the scheduler used for lifecycle hooks. Every public
// Runtime and Instance operation runs as a scheduler turn, so hooks it
// enqueued run when it returns unless the scheduler drains elsewhere.
// Default: scheduler.Default().
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(rt *Runtime) {
		if s != nil {
			rt.sched = s
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithEquality sets the identity predicate used to match old and new
// nodes. Default: vdom.KeyedEqual. Pass vdom.NodesEqual to ignore keys.
func WithEquality(eq vdom.Equality) Option {
	return func(rt *Runtime) {
		if eq != nil {
			rt.equal = eq
		}
	}
}

// WithMetrics sets the Prometheus collectors. Default: none.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(rt *Runtime) {
		rt.metrics = m
	}
}

// WithTracer sets the tracer for component spans.
// Default: the global OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(rt *Runtime) {
		if t != nil {
			rt.tracer = t
		}
	}
}

// WithContext sets the parent context for component spans.
func WithContext(ctx context.Context) Option {
	return func(rt *Runtime) {
		if ctx != nil {
			rt.ctx = ctx
		}
	}
}

// New creates a Runtime that renders into r.
func New(r target.Renderer, opts ...Option) *Runtime {
	rt := &Runtime{
		target:    r,
		sched:     scheduler.Default(),
		logger:    slog.Default(),
		equal:     vdom.KeyedEqual,
		tracer:    telemetry.Tracer(),
		ctx:       context.Background(),
		instances: make(map[uint64]*Instance),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Renderer returns the render target.
func (rt *Runtime) Renderer() target.Renderer {
	return rt.target
}

// Scheduler returns the scheduler used for lifecycle hooks.
func (rt *Runtime) Scheduler() *scheduler.Scheduler {
	return rt.sched
}

// Logger returns the runtime logger.
func (rt *Runtime) Logger() *slog.Logger {
	return rt.logger
}

// Lookup returns the mounted instance with the given ID, or nil.
func (rt *Runtime) Lookup(id uint64) *Instance {
	return rt.instances[id]
}

// Position is an insertion point among a parent's children: either a
// concrete index or the end.
type Position struct {
	index int
	set   bool
}

// End appends.
var End = Position{}

// At inserts before the child currently at index i. Indices past the last
// child append; negative indices are rejected by Mount.
func At(i int) Position {
	return Position{index: i, set: true}
}

// Index returns the index and whether one is set.
func (p Position) Index() (int, bool) {
	return p.index, p.set
}

func (p Position) shift(n int) Position {
	if !p.set {
		return p
	}
	return At(p.index + n)
}

// handlesOf returns the top-level target handles a mounted node occupies in
// its parent, in order. Fragments contribute their children's handles and
// components the elements of their instance.
func handlesOf(n *vdom.VNode) []target.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case vdom.KindText, vdom.KindElement:
		if n.El != nil {
			return []target.Node{n.El}
		}
	case vdom.KindFragment:
		var out []target.Node
		for _, child := range n.Children {
			out = append(out, handlesOf(child)...)
		}
		return out
	case vdom.KindComponent:
		if n.Instance != nil {
			return n.Instance.Elements()
		}
	}
	return nil
}

// attached reports whether n is part of a mounted tree.
func attached(n *vdom.VNode) bool {
	return n.El != nil || n.Instance != nil
}
