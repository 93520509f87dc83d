// Package target defines the render target the runtime mutates.
//
// The runtime never touches a concrete tree directly. Every structural or
// attribute change goes through a Renderer, which owns the live nodes and
// hands back opaque handles. The runtime only stores those handles on the
// virtual nodes for bookkeeping.
//
// Two implementations ship with the module: memory.Document, an in-memory
// tree that can be serialized to HTML, and record.Recorder, a decorator that
// logs every mutation passing through it.
package target

// Node is an opaque handle to a node in the render target.
// Handles must be comparable; the runtime compares them with ==.
type Node any

// Listener is an opaque handle to an attached event listener.
type Listener any

// Callback receives the payload of a target event.
type Callback func(payload any)

// Renderer is the set of primitives the runtime needs from a render target.
type Renderer interface {
	// CreateText creates a detached text node.
	CreateText(value string) Node

	// CreateElement creates a detached element node.
	CreateElement(tag string) Node

	// SetText replaces the content of a text node.
	SetText(node Node, value string)

	// InsertBefore inserts node into parent before ref. A nil ref appends.
	// If node is already attached somewhere it is moved. Inserting a node
	// before itself leaves the tree unchanged.
	InsertBefore(parent, node, ref Node)

	// Remove detaches node from its parent. Detached nodes are ignored.
	Remove(node Node)

	// ChildNodes returns the current children of parent in order.
	// The returned slice must not be retained across mutations.
	ChildNodes(parent Node) []Node

	// SetAttribute sets an attribute. A nil value removes the attribute and
	// a bool value toggles its presence.
	SetAttribute(node Node, name string, value any)

	// RemoveAttribute removes an attribute.
	RemoveAttribute(node Node, name string)

	// SetStyle sets one style property.
	SetStyle(node Node, name, value string)

	// RemoveStyle clears one style property.
	RemoveStyle(node Node, name string)

	// SetClassList replaces the class list of an element.
	SetClassList(node Node, names []string)

	// AddListener attaches cb for event and returns a handle to detach it.
	AddListener(node Node, event string, cb Callback) Listener

	// RemoveListener detaches a listener previously returned by AddListener.
	RemoveListener(node Node, event string, l Listener)
}

// IndexOf returns the position of child among parent's children, or -1.
func IndexOf(r Renderer, parent, child Node) int {
	if parent == nil || child == nil {
		return -1
	}
	for i, n := range r.ChildNodes(parent) {
		if n == child {
			return i
		}
	}
	return -1
}

// ChildAt returns the child of parent at index i, or nil when i is out of range.
func ChildAt(r Renderer, parent Node, i int) Node {
	children := r.ChildNodes(parent)
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}
