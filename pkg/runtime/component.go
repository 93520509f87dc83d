package runtime

import (
	"errors"
	"strings"
	"time"

	lwerrors "github.com/vango-dev/laiweb/internal/errors"
	"github.com/vango-dev/laiweb/internal/telemetry"
	"github.com/vango-dev/laiweb/pkg/dispatch"
	"github.com/vango-dev/laiweb/pkg/target"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

// State is a component's state. It is replaced, never mutated, on update.
type State map[string]any

// MethodFunc is a user method bound to a component instance.
type MethodFunc func(c *Instance, args ...any) any

// Options describes a component.
type Options struct {
	// Name identifies the component in logs, metrics and spans.
	Name string

	// State returns the initial state for the given props. Optional.
	State func(props vdom.Props) State

	// Render returns the component's tree. Required.
	Render func(c *Instance) *vdom.VNode

	// Methods are callable through Instance.Call and vdom.Method handlers.
	Methods map[string]MethodFunc

	// OnMounted runs on the scheduler after the component is mounted.
	OnMounted func(c *Instance) error

	// OnUnmounted runs on the scheduler after the component is unmounted.
	OnUnmounted func(c *Instance) error
}

// Definition is a component type created by Define. Use it as the type of
// component nodes or instantiate it directly with Runtime.NewInstance.
type Definition struct {
	opts Options
}

// Define creates a component type. It panics if Render is nil.
func Define(opts Options) *Definition {
	if opts.Render == nil {
		panic("runtime: Define requires a Render function")
	}
	if opts.Name == "" {
		opts.Name = "Component"
	}
	return &Definition{opts: opts}
}

// ComponentName implements vdom.ComponentType.
func (d *Definition) ComponentName() string {
	return d.opts.Name
}

// Node returns a component node for d.
func (d *Definition) Node(props vdom.Props, children ...any) *vdom.VNode {
	return vdom.Component(d, props, children...)
}

// reservedMethods are the lowercased names users cannot bind as methods.
var reservedMethods = map[string]bool{
	"render":       true,
	"mount":        true,
	"unmount":      true,
	"updatestate":  true,
	"updateprops":  true,
	"emit":         true,
	"elements":     true,
	"firstelement": true,
	"offset":       true,
	"state":        true,
	"props":        true,
}

// Instance is a live component: its state, props, rendered tree and the
// dispatcher carrying the events it emits to its parent.
type Instance struct {
	id       uint64
	def      *Definition
	rt       *Runtime
	parentID uint64

	state   State
	props   vdom.Props
	events  vdom.Events
	methods map[string]MethodFunc

	vdom    *vdom.VNode
	host    target.Node
	anchor  int
	mounted bool

	dispatcher    *dispatch.Dispatcher
	subscriptions map[string]func()
}

// NewInstance creates an unmounted instance of def. events maps event names
// this instance emits to handlers, which are resolved against parent when
// the event fires. parent may be nil.
func (rt *Runtime) NewInstance(def *Definition, props vdom.Props, events vdom.Events, parent *Instance) *Instance {
	rt.nextID++
	c := &Instance{
		id:            rt.nextID,
		def:           def,
		rt:            rt,
		props:         props.Clone(),
		events:        events,
		methods:       make(map[string]MethodFunc, len(def.opts.Methods)),
		dispatcher:    dispatch.New(dispatch.WithLogger(rt.logger)),
		subscriptions: make(map[string]func()),
	}
	if c.props == nil {
		c.props = vdom.Props{}
	}
	if parent != nil {
		c.parentID = parent.id
	}

	c.state = State{}
	if def.opts.State != nil {
		if s := def.opts.State(c.props); s != nil {
			c.state = s
		}
	}

	for _, name := range sortedKeys(def.opts.Methods) {
		if reservedMethods[strings.ToLower(name)] {
			err := lwerrors.New("L003").WithOp("define").WithSubject(def.opts.Name + "." + name)
			rt.logger.Error("component: method name is reserved",
				"component", def.opts.Name, "method", name, "error", err)
			continue
		}
		c.methods[name] = def.opts.Methods[name]
	}
	return c
}

// ID returns the instance ID, unique within its Runtime.
func (c *Instance) ID() uint64 { return c.id }

// Name returns the component name.
func (c *Instance) Name() string { return c.def.opts.Name }

// State returns the current state. Do not modify it; use UpdateState.
func (c *Instance) State() State { return c.state }

// Props returns the current props. Do not modify them; use UpdateProps.
func (c *Instance) Props() vdom.Props { return c.props }

// Tree returns the mounted tree, or nil.
func (c *Instance) Tree() *vdom.VNode { return c.vdom }

// Host returns the target node the component is mounted into, or nil.
func (c *Instance) Host() target.Node { return c.host }

// IsMounted reports whether the component is mounted.
func (c *Instance) IsMounted() bool { return c.mounted }

// Parent returns the parent instance while it is mounted, or nil.
func (c *Instance) Parent() *Instance {
	if c.parentID == 0 {
		return nil
	}
	return c.rt.Lookup(c.parentID)
}

// Render calls the definition's render function.
func (c *Instance) Render() *vdom.VNode {
	c.rt.metrics.Render(c.Name())
	return c.def.opts.Render(c)
}

// Mount renders the component and mounts the result into parent at pos.
func (c *Instance) Mount(parent target.Node, pos Position) (err error) {
	defer c.rt.sched.Turn()()
	if c.mounted {
		c.rt.metrics.LifecycleError("mount")
		return errAlreadyMounted(c.Name())
	}

	_, span := telemetry.Start(c.rt.ctx, c.rt.tracer, "component.mount", telemetry.ComponentAttrs(c.Name(), c.id)...)
	defer func() { telemetry.End(span, err) }()

	tree := c.Render()
	if tree == nil {
		return errNilRender(c.Name())
	}

	c.host = parent
	c.vdom = tree
	c.anchor = len(c.rt.target.ChildNodes(parent))
	if i, ok := pos.Index(); ok && i < c.anchor {
		c.anchor = i
	}
	c.rt.instances[c.id] = c
	if err := c.rt.Mount(tree, parent, pos, c); err != nil {
		err = errors.Join(err, c.rt.Destroy(tree))
		delete(c.rt.instances, c.id)
		c.host = nil
		c.vdom = nil
		return err
	}

	c.wireEventHandlers()
	c.mounted = true

	if hook := c.def.opts.OnMounted; hook != nil {
		c.rt.sched.Enqueue(c.hookTask("onMounted", hook))
	}
	return nil
}

// Unmount destroys the component's tree, drops its event subscriptions and
// resets its state.
func (c *Instance) Unmount() (err error) {
	defer c.rt.sched.Turn()()
	if !c.mounted {
		c.rt.metrics.LifecycleError("unmount")
		return errNotMounted("unmount", c.Name())
	}

	_, span := telemetry.Start(c.rt.ctx, c.rt.tracer, "component.unmount", telemetry.ComponentAttrs(c.Name(), c.id)...)
	defer func() { telemetry.End(span, err) }()

	err = c.rt.Destroy(c.vdom)

	for _, name := range sortedKeys(c.subscriptions) {
		c.subscriptions[name]()
	}
	c.subscriptions = make(map[string]func())
	c.vdom = nil
	c.host = nil
	c.state = State{}
	c.mounted = false
	delete(c.rt.instances, c.id)

	if hook := c.def.opts.OnUnmounted; hook != nil {
		c.rt.sched.Enqueue(c.hookTask("onUnmounted", hook))
	}
	return err
}

func (c *Instance) hookTask(op string, hook func(*Instance) error) func() error {
	return func() error {
		if err := hook(c); err != nil {
			c.rt.metrics.LifecycleError(op)
			return lwerrors.New("S001").WithOp(op).WithSubject(c.Name()).Wrap(err)
		}
		return nil
	}
}

// UpdateState merges partial into a new state and re-renders.
func (c *Instance) UpdateState(partial State) error {
	defer c.rt.sched.Turn()()
	if !c.mounted {
		c.rt.metrics.LifecycleError("updateState")
		return errNotMounted("updateState", c.Name())
	}
	next := make(State, len(c.state)+len(partial))
	for k, v := range c.state {
		next[k] = v
	}
	for k, v := range partial {
		next[k] = v
	}
	c.state = next
	return c.patch("component.updateState")
}

// UpdateProps merges props into the current props and re-renders when the
// result differs. Function-valued props always count as changed.
func (c *Instance) UpdateProps(props vdom.Props) error {
	defer c.rt.sched.Turn()()
	if !c.mounted {
		c.rt.metrics.LifecycleError("updateProps")
		return errNotMounted("updateProps", c.Name())
	}
	next := c.props.Clone()
	if next == nil {
		next = vdom.Props{}
	}
	for k, v := range props {
		next[k] = v
	}
	if propsUnchanged(c.props, next) {
		return nil
	}
	c.props = next
	return c.patch("component.updateProps")
}

func propsUnchanged(a, b vdom.Props) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !propsEqual(av, bv) {
			return false
		}
	}
	return true
}

func (c *Instance) patch(op string) (err error) {
	start := time.Now()
	_, span := telemetry.Start(c.rt.ctx, c.rt.tracer, op, telemetry.ComponentAttrs(c.Name(), c.id)...)
	defer func() {
		telemetry.End(span, err)
		c.rt.metrics.PatchDuration(time.Since(start))
	}()

	next := c.Render()
	if next == nil {
		return errNilRender(c.Name())
	}
	c.anchor = c.Offset()
	c.vdom, err = c.rt.Patch(c.vdom, next, c.host, c)
	c.rt.logger.Debug("component: patched", "component", c.Name(), "id", c.id, "op", op)
	return err
}

// Emit dispatches event with payload to the handlers the parent bound.
func (c *Instance) Emit(event string, payload any) {
	defer c.rt.sched.Turn()()
	c.dispatcher.Dispatch(event, payload)
}

// Subscribe adds fn as a handler for events this instance emits.
func (c *Instance) Subscribe(event string, fn func(payload any)) func() {
	return c.dispatcher.SubscribeFunc(event, fn)
}

// Call invokes the named method.
func (c *Instance) Call(name string, args ...any) (any, error) {
	m, ok := c.methods[name]
	if !ok {
		return nil, errUnknownMethod(c.Name(), name)
	}
	defer c.rt.sched.Turn()()
	return m(c, args...), nil
}

// Elements returns the component's top-level target nodes, in order.
func (c *Instance) Elements() []target.Node {
	if c.vdom == nil {
		return nil
	}
	return handlesOf(c.vdom)
}

// FirstElement returns the first top-level target node, or nil.
func (c *Instance) FirstElement() target.Node {
	if els := c.Elements(); len(els) > 0 {
		return els[0]
	}
	return nil
}

// Offset returns the index of FirstElement in the host. A component that
// currently renders no elements reports the index it last started at.
func (c *Instance) Offset() int {
	if c.host == nil {
		return 0
	}
	if i := target.IndexOf(c.rt.target, c.host, c.FirstElement()); i >= 0 {
		return i
	}
	return c.anchor
}

func (c *Instance) wireEventHandlers() {
	for _, name := range sortedKeys(c.events) {
		c.subscribeEvent(name)
	}
}

func (c *Instance) subscribeEvent(name string) {
	if c.events[name] == nil {
		return
	}
	c.subscriptions[name] = c.dispatcher.SubscribeFunc(name, func(payload any) {
		c.rt.invoke(name, c.events[name], payload, c.Parent())
	})
}

// setEvents replaces the parent's event bindings. Bindings for events in
// both maps keep their subscription and pick up the new handler.
func (c *Instance) setEvents(events vdom.Events) {
	c.events = events
	if !c.mounted {
		return
	}
	for _, name := range sortedKeys(c.subscriptions) {
		if events[name] == nil {
			c.subscriptions[name]()
			delete(c.subscriptions, name)
		}
	}
	for _, name := range sortedKeys(events) {
		if _, ok := c.subscriptions[name]; !ok {
			c.subscribeEvent(name)
		}
	}
}
