package vdom

import "github.com/vango-dev/laiweb/pkg/target"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindText      Kind = iota + 1 // Plain text node
	KindElement                   // <div>, <button>, etc.
	KindFragment                  // Grouping without wrapper
	KindComponent                 // Component placeholder
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Reserved prop names.
const (
	PropOn    = "on"
	PropKey   = "key"
	PropClass = "class"
	PropStyle = "style"
)

// VNode is a node of a virtual tree.
//
// El, Listeners and Instance are bookkeeping written by the runtime. They are
// set exactly while the node is mounted and cleared together on destroy.
type VNode struct {
	Kind     Kind          // Node type
	Tag      string        // Element tag name (KindElement)
	Type     ComponentType // Component type (KindComponent)
	Value    string        // Text content (KindText)
	Props    Props         // Attributes, "on" events and "key"
	Children []*VNode      // Child nodes

	// El is the target handle. For fragments it is the parent handle, since
	// a fragment has no container of its own.
	El target.Node

	// Listeners maps event names to the bindings attached to El.
	Listeners map[string]*Listener

	// Instance is the component mounted for a KindComponent node.
	Instance Mounted
}

// Props holds attributes, the "on" event map and the reserved "key".
type Props map[string]any

// Events maps event names to handlers. A handler is a func(), a
// func(payload any) or a Method resolved on the owning component.
type Events map[string]any

// Method names a method of the owning component, resolved when the event
// fires rather than when the tree is built.
type Method string

// Listener is an event binding on a mounted element. The runtime registers
// a single target listener per event and routes it to Handler, so swapping
// Handler rebinds the event without touching the target.
type Listener struct {
	Event   string
	Handler any
	Handle  target.Listener
}

// ComponentType identifies a component definition. Two component nodes are
// the same slot only if their types are identical values.
type ComponentType interface {
	ComponentName() string
}

// Mounted is the view of a live component instance a node keeps.
type Mounted interface {
	Elements() []target.Node
	FirstElement() target.Node
}

// IsMounted reports whether the node currently has a target handle.
func (v *VNode) IsMounted() bool {
	return v != nil && v.El != nil
}

// Events returns the node's "on" map, or nil.
func (v *VNode) Events() Events {
	if v == nil {
		return nil
	}
	return v.Props.Events()
}

// Events returns the "on" map, or nil.
func (p Props) Events() Events {
	switch on := p[PropOn].(type) {
	case Events:
		return on
	case map[string]any:
		return Events(on)
	default:
		return nil
	}
}

// Split separates the props into plain props (without "on" and "key") and
// the event map. The receiver is not modified.
func (p Props) Split() (Props, Events) {
	props := make(Props, len(p))
	for k, v := range p {
		if k == PropOn || k == PropKey {
			continue
		}
		props[k] = v
	}
	events := p.Events()
	if events == nil {
		events = Events{}
	}
	return props, events
}

// Clone returns a shallow copy.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
