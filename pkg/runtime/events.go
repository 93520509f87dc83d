package runtime

import (
	"fmt"

	"github.com/vango-dev/laiweb/pkg/dispatch"
	"github.com/vango-dev/laiweb/pkg/target"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

// addListener registers one target listener for event that forwards to the
// binding's current Handler.
func (rt *Runtime) addListener(el target.Node, event string, handler any, owner *Instance) *vdom.Listener {
	l := &vdom.Listener{Event: event, Handler: handler}
	l.Handle = rt.target.AddListener(el, event, func(payload any) {
		rt.invoke(event, l.Handler, payload, owner)
	})
	return l
}

// patchEvents rebinds el from the old listeners to events. Events present
// in both keep their target listener and only swap the handler.
func (rt *Runtime) patchEvents(el target.Node, old map[string]*vdom.Listener, events vdom.Events, owner *Instance) map[string]*vdom.Listener {
	out := make(map[string]*vdom.Listener, len(events))
	for _, name := range sortedKeys(old) {
		l := old[name]
		h, ok := events[name]
		if !ok || h == nil {
			rt.target.RemoveListener(el, name, l.Handle)
			continue
		}
		l.Handler = h
		out[name] = l
	}
	for _, name := range sortedKeys(events) {
		h := events[name]
		if _, ok := out[name]; ok || h == nil {
			continue
		}
		out[name] = rt.addListener(el, name, h, owner)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// removeListeners detaches every listener bound to node.
func (rt *Runtime) removeListeners(node *vdom.VNode) {
	for _, name := range sortedKeys(node.Listeners) {
		l := node.Listeners[name]
		rt.target.RemoveListener(node.El, name, l.Handle)
	}
}

// invoke calls handler with payload. Method handlers are looked up on
// owner when the event fires.
func (rt *Runtime) invoke(event string, handler any, payload any, owner *Instance) {
	defer rt.sched.Turn()()
	switch h := handler.(type) {
	case func():
		h()
	case func(any):
		h(payload)
	case func(*Instance, any):
		h(owner, payload)
	case vdom.Method:
		if owner == nil {
			rt.logger.Error("event: method handler without a component",
				"event", event, "method", string(h))
			return
		}
		if _, err := owner.Call(string(h), payload); err != nil {
			rt.logger.Error("event: handler failed", "event", event, "error", err)
		}
	case dispatch.Handler:
		h.Handle(payload)
	default:
		rt.logger.Error("event: unsupported handler type",
			"event", event, "type", fmt.Sprintf("%T", handler))
	}
}
