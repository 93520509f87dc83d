// Package dispatch implements a per-owner publish/subscribe registry.
//
// A Dispatcher maps event names to ordered handler lists and keeps a list
// of hooks that run after every dispatch, whatever the event. Components use
// one Dispatcher each to deliver the events they emit to the handlers their
// parent bound.
package dispatch

import (
	"log/slog"
	"reflect"
	"slices"
)

// Handler receives dispatched payloads.
type Handler interface {
	Handle(payload any)
}

// HandlerFunc adapts a function to Handler. Function values cannot be
// compared, so every HandlerFunc registration is distinct.
type HandlerFunc func(payload any)

// Handle implements Handler.
func (f HandlerFunc) Handle(payload any) { f(payload) }

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for unregistered dispatch warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

type subscription struct {
	handler Handler
}

type hook struct {
	fn func()
}

// Dispatcher is a publish/subscribe registry keyed by event name.
// It is not safe for concurrent use; all calls happen on the owner's thread.
type Dispatcher struct {
	subs   map[string][]*subscription
	after  []*hook
	logger *slog.Logger
}

// New creates an empty Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		subs:   make(map[string][]*subscription),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Subscribe registers h for event and returns a function that removes it.
// Registering a handler equal to one already subscribed for the same event
// does nothing and returns an inert unsubscribe.
func (d *Dispatcher) Subscribe(event string, h Handler) func() {
	if h == nil {
		return func() {}
	}
	for _, s := range d.subs[event] {
		if sameHandler(s.handler, h) {
			return func() {}
		}
	}

	sub := &subscription{handler: h}
	d.subs[event] = append(d.subs[event], sub)
	return func() {
		list := d.subs[event]
		if i := slices.Index(list, sub); i >= 0 {
			d.subs[event] = slices.Delete(list, i, i+1)
		}
	}
}

// SubscribeFunc is shorthand for Subscribe(event, HandlerFunc(fn)).
func (d *Dispatcher) SubscribeFunc(event string, fn func(payload any)) func() {
	return d.Subscribe(event, HandlerFunc(fn))
}

// sameHandler compares handlers only when their dynamic types are
// comparable; comparing two func values would panic.
func sameHandler(a, b Handler) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// Dispatch calls every handler subscribed to event in subscription order,
// then every after-dispatch hook in registration order. Dispatching an event
// nobody subscribed to logs a warning and is otherwise a no-op.
func (d *Dispatcher) Dispatch(event string, payload any) {
	list := d.subs[event]
	if len(list) == 0 {
		d.logger.Warn("dispatch: event has no subscribers", "event", event)
	}
	for _, s := range slices.Clone(list) {
		s.handler.Handle(payload)
	}
	for _, h := range slices.Clone(d.after) {
		h.fn()
	}
}

// AfterEveryCommand registers a hook run after every dispatch and returns a
// function that unregisters it.
func (d *Dispatcher) AfterEveryCommand(fn func()) func() {
	h := &hook{fn: fn}
	d.after = append(d.after, h)
	return func() {
		if i := slices.Index(d.after, h); i >= 0 {
			d.after = slices.Delete(d.after, i, i+1)
		}
	}
}

// Has reports whether event has at least one subscriber.
func (d *Dispatcher) Has(event string) bool {
	return len(d.subs[event]) > 0
}

// Len returns the number of subscribers for event.
func (d *Dispatcher) Len(event string) int {
	return len(d.subs[event])
}
