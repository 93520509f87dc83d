// Package record provides a target.Renderer decorator that logs mutations.
package record

import (
	"fmt"

	"github.com/vango-dev/laiweb/pkg/target"
)

// Op names a renderer call.
type Op string

const (
	OpCreateText      Op = "createText"
	OpCreateElement   Op = "createElement"
	OpSetText         Op = "setText"
	OpInsert          Op = "insert"
	OpRemove          Op = "remove"
	OpSetAttribute    Op = "setAttribute"
	OpRemoveAttribute Op = "removeAttribute"
	OpSetStyle        Op = "setStyle"
	OpRemoveStyle     Op = "removeStyle"
	OpSetClassList    Op = "setClassList"
	OpAddListener     Op = "addListener"
	OpRemoveListener  Op = "removeListener"
)

// Mutation is one recorded renderer call. Reads (ChildNodes) are not recorded.
type Mutation struct {
	Op     Op          `json:"op"`
	Node   target.Node `json:"-"`
	Parent target.Node `json:"-"`
	Name   string      `json:"name,omitempty"`
	Value  string      `json:"value,omitempty"`
}

// String implements fmt.Stringer.
func (m Mutation) String() string {
	switch {
	case m.Name != "" && m.Value != "":
		return fmt.Sprintf("%s %s=%s", m.Op, m.Name, m.Value)
	case m.Name != "":
		return fmt.Sprintf("%s %s", m.Op, m.Name)
	case m.Value != "":
		return fmt.Sprintf("%s %q", m.Op, m.Value)
	default:
		return string(m.Op)
	}
}

// Recorder forwards every call to an underlying renderer and records it.
type Recorder struct {
	next      target.Renderer
	mutations []Mutation

	// OnMutation, when set, is called after each recorded mutation.
	OnMutation func(Mutation)
}

var _ target.Renderer = (*Recorder)(nil)

// New wraps next.
func New(next target.Renderer) *Recorder {
	return &Recorder{next: next}
}

// Unwrap returns the decorated renderer.
func (r *Recorder) Unwrap() target.Renderer {
	return r.next
}

// Mutations returns the recorded mutations without clearing them.
func (r *Recorder) Mutations() []Mutation {
	return r.mutations
}

// Len returns the number of recorded mutations.
func (r *Recorder) Len() int {
	return len(r.mutations)
}

// Drain returns the recorded mutations and clears the log.
func (r *Recorder) Drain() []Mutation {
	out := r.mutations
	r.mutations = nil
	return out
}

// Reset clears the log.
func (r *Recorder) Reset() {
	r.mutations = nil
}

// Ops returns the recorded op names in order.
func (r *Recorder) Ops() []Op {
	ops := make([]Op, len(r.mutations))
	for i, m := range r.mutations {
		ops[i] = m.Op
	}
	return ops
}

func (r *Recorder) add(m Mutation) {
	r.mutations = append(r.mutations, m)
	if r.OnMutation != nil {
		r.OnMutation(m)
	}
}

// CreateText implements target.Renderer.
func (r *Recorder) CreateText(value string) target.Node {
	n := r.next.CreateText(value)
	r.add(Mutation{Op: OpCreateText, Node: n, Value: value})
	return n
}

// CreateElement implements target.Renderer.
func (r *Recorder) CreateElement(tag string) target.Node {
	n := r.next.CreateElement(tag)
	r.add(Mutation{Op: OpCreateElement, Node: n, Name: tag})
	return n
}

// SetText implements target.Renderer.
func (r *Recorder) SetText(node target.Node, value string) {
	r.next.SetText(node, value)
	r.add(Mutation{Op: OpSetText, Node: node, Value: value})
}

// InsertBefore implements target.Renderer.
func (r *Recorder) InsertBefore(parent, node, ref target.Node) {
	r.next.InsertBefore(parent, node, ref)
	r.add(Mutation{Op: OpInsert, Node: node, Parent: parent})
}

// Remove implements target.Renderer.
func (r *Recorder) Remove(node target.Node) {
	r.next.Remove(node)
	r.add(Mutation{Op: OpRemove, Node: node})
}

// ChildNodes implements target.Renderer.
func (r *Recorder) ChildNodes(parent target.Node) []target.Node {
	return r.next.ChildNodes(parent)
}

// SetAttribute implements target.Renderer.
func (r *Recorder) SetAttribute(node target.Node, name string, value any) {
	r.next.SetAttribute(node, name, value)
	r.add(Mutation{Op: OpSetAttribute, Node: node, Name: name, Value: fmt.Sprint(value)})
}

// RemoveAttribute implements target.Renderer.
func (r *Recorder) RemoveAttribute(node target.Node, name string) {
	r.next.RemoveAttribute(node, name)
	r.add(Mutation{Op: OpRemoveAttribute, Node: node, Name: name})
}

// SetStyle implements target.Renderer.
func (r *Recorder) SetStyle(node target.Node, name, value string) {
	r.next.SetStyle(node, name, value)
	r.add(Mutation{Op: OpSetStyle, Node: node, Name: name, Value: value})
}

// RemoveStyle implements target.Renderer.
func (r *Recorder) RemoveStyle(node target.Node, name string) {
	r.next.RemoveStyle(node, name)
	r.add(Mutation{Op: OpRemoveStyle, Node: node, Name: name})
}

// SetClassList implements target.Renderer.
func (r *Recorder) SetClassList(node target.Node, names []string) {
	r.next.SetClassList(node, names)
	r.add(Mutation{Op: OpSetClassList, Node: node, Value: fmt.Sprint(names)})
}

// AddListener implements target.Renderer.
func (r *Recorder) AddListener(node target.Node, event string, cb target.Callback) target.Listener {
	l := r.next.AddListener(node, event, cb)
	r.add(Mutation{Op: OpAddListener, Node: node, Name: event})
	return l
}

// RemoveListener implements target.Renderer.
func (r *Recorder) RemoveListener(node target.Node, event string, l target.Listener) {
	r.next.RemoveListener(node, event, l)
	r.add(Mutation{Op: OpRemoveListener, Node: node, Name: event})
}
