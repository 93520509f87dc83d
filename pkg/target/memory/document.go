// Package memory implements target.Renderer over an in-memory node tree.
//
// A Document behaves like a minimal DOM: elements own ordered children,
// attributes, inline styles, a class list and event listeners. It is the
// render target used by tests, the CLI and the dev server, and it can be
// serialized to HTML with InnerHTML.
package memory

import (
	"slices"

	"github.com/vango-dev/laiweb/pkg/target"
)

// NodeType distinguishes element nodes from text nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
)

// Node is a node in a Document.
type Node struct {
	ID       uint64
	Type     NodeType
	Tag      string
	Text     string
	Parent   *Node
	Children []*Node
	Attrs    map[string]string
	Style    map[string]string
	Classes  []string

	listeners map[string][]*listener
}

type listener struct {
	cb target.Callback
}

// Document is an in-memory render target.
// It is not safe for concurrent use.
type Document struct {
	body   *Node
	nextID uint64
	byID   map[uint64]*Node
}

var _ target.Renderer = (*Document)(nil)

// New creates a Document with an empty <body> root.
func New() *Document {
	d := &Document{byID: make(map[uint64]*Node)}
	d.body = d.newNode(ElementNode, "body", "")
	return d
}

// Body returns the root element.
func (d *Document) Body() *Node {
	return d.body
}

// NewElement creates a detached element, for building fixtures by hand.
func (d *Document) NewElement(tag string) *Node {
	return d.newNode(ElementNode, tag, "")
}

// FindByID returns the node with the given ID, or nil.
func (d *Document) FindByID(id uint64) *Node {
	return d.byID[id]
}

func (d *Document) newNode(typ NodeType, tag, text string) *Node {
	d.nextID++
	n := &Node{ID: d.nextID, Type: typ, Tag: tag, Text: text}
	if typ == ElementNode {
		n.Attrs = make(map[string]string)
		n.Style = make(map[string]string)
	}
	d.byID[n.ID] = n
	return n
}

func asNode(n target.Node) *Node {
	node, _ := n.(*Node)
	return node
}

// CreateText implements target.Renderer.
func (d *Document) CreateText(value string) target.Node {
	return d.newNode(TextNode, "", value)
}

// CreateElement implements target.Renderer.
func (d *Document) CreateElement(tag string) target.Node {
	return d.newNode(ElementNode, tag, "")
}

// SetText implements target.Renderer.
func (d *Document) SetText(n target.Node, value string) {
	if node := asNode(n); node != nil {
		node.Text = value
	}
}

// InsertBefore implements target.Renderer.
func (d *Document) InsertBefore(p, n, ref target.Node) {
	parent, node, before := asNode(p), asNode(n), asNode(ref)
	if parent == nil || node == nil || node == before {
		return
	}
	node.detach()

	at := len(parent.Children)
	if before != nil {
		if i := slices.Index(parent.Children, before); i >= 0 {
			at = i
		}
	}
	parent.Children = slices.Insert(parent.Children, at, node)
	node.Parent = parent
}

// Remove implements target.Renderer.
func (d *Document) Remove(n target.Node) {
	if node := asNode(n); node != nil {
		node.detach()
		delete(d.byID, node.ID)
	}
}

func (n *Node) detach() {
	if n.Parent == nil {
		return
	}
	if i := slices.Index(n.Parent.Children, n); i >= 0 {
		n.Parent.Children = slices.Delete(n.Parent.Children, i, i+1)
	}
	n.Parent = nil
}

// ChildNodes implements target.Renderer.
func (d *Document) ChildNodes(p target.Node) []target.Node {
	parent := asNode(p)
	if parent == nil {
		return nil
	}
	out := make([]target.Node, len(parent.Children))
	for i, c := range parent.Children {
		out[i] = c
	}
	return out
}

// SetAttribute implements target.Renderer.
func (d *Document) SetAttribute(n target.Node, name string, value any) {
	node := asNode(n)
	if node == nil || node.Type != ElementNode {
		return
	}
	switch v := value.(type) {
	case nil:
		delete(node.Attrs, name)
	case bool:
		if v {
			node.Attrs[name] = ""
		} else {
			delete(node.Attrs, name)
		}
	default:
		node.Attrs[name] = stringify(v)
	}
}

// RemoveAttribute implements target.Renderer.
func (d *Document) RemoveAttribute(n target.Node, name string) {
	if node := asNode(n); node != nil && node.Attrs != nil {
		delete(node.Attrs, name)
	}
}

// SetStyle implements target.Renderer.
func (d *Document) SetStyle(n target.Node, name, value string) {
	if node := asNode(n); node != nil && node.Style != nil {
		if value == "" {
			delete(node.Style, name)
			return
		}
		node.Style[name] = value
	}
}

// RemoveStyle implements target.Renderer.
func (d *Document) RemoveStyle(n target.Node, name string) {
	if node := asNode(n); node != nil && node.Style != nil {
		delete(node.Style, name)
	}
}

// SetClassList implements target.Renderer.
func (d *Document) SetClassList(n target.Node, names []string) {
	if node := asNode(n); node != nil {
		node.Classes = slices.Clone(names)
	}
}

// AddListener implements target.Renderer.
func (d *Document) AddListener(n target.Node, event string, cb target.Callback) target.Listener {
	node := asNode(n)
	if node == nil {
		return nil
	}
	if node.listeners == nil {
		node.listeners = make(map[string][]*listener)
	}
	l := &listener{cb: cb}
	node.listeners[event] = append(node.listeners[event], l)
	return l
}

// RemoveListener implements target.Renderer.
func (d *Document) RemoveListener(n target.Node, event string, h target.Listener) {
	node := asNode(n)
	l, _ := h.(*listener)
	if node == nil || l == nil {
		return
	}
	list := node.listeners[event]
	if i := slices.Index(list, l); i >= 0 {
		list = slices.Delete(list, i, i+1)
	}
	if len(list) == 0 {
		delete(node.listeners, event)
		return
	}
	node.listeners[event] = list
}

// ListenerCount returns how many listeners are attached to n for event.
func (n *Node) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// HasListeners reports whether any listener is attached to n.
func (n *Node) HasListeners() bool {
	return len(n.listeners) > 0
}

// Dispatch invokes every listener attached to n for event, in attach order,
// and returns how many ran.
func (d *Document) Dispatch(n *Node, event string, payload any) int {
	if n == nil {
		return 0
	}
	list := slices.Clone(n.listeners[event])
	for _, l := range list {
		l.cb(payload)
	}
	return len(list)
}

// Query returns every element under root (inclusive) with the given tag,
// in document order.
func Query(root *Node, tag string) []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Type == ElementNode && n.Tag == tag {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *Node) string {
	if n == nil {
		return ""
	}
	if n.Type == TextNode {
		return n.Text
	}
	var s string
	for _, c := range n.Children {
		s += TextContent(c)
	}
	return s
}
