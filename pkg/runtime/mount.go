package runtime

import (
	"github.com/vango-dev/laiweb/pkg/target"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

// Mount creates the target nodes for node and inserts them into parent at
// pos. owner is the component whose methods resolve vdom.Method handlers in
// the subtree; it is nil for trees mounted outside a component.
//
// On success every node in the subtree is mounted. On error the subtree may
// be partially mounted and should be passed to Destroy.
func (rt *Runtime) Mount(node *vdom.VNode, parent target.Node, pos Position, owner *Instance) error {
	defer rt.sched.Turn()()
	if node == nil {
		return nil
	}
	if i, ok := pos.Index(); ok && i < 0 {
		return errInvalidIndex(i)
	}

	var err error
	switch node.Kind {
	case vdom.KindText:
		err = rt.mountText(node, parent, pos)
	case vdom.KindElement:
		err = rt.mountElement(node, parent, pos, owner)
	case vdom.KindFragment:
		err = rt.mountFragment(node, parent, pos, owner)
	case vdom.KindComponent:
		err = rt.mountComponent(node, parent, pos, owner)
	default:
		return errUnknownKind(node.Kind)
	}
	if err == nil {
		rt.metrics.Mount(node.Kind.String())
	}
	return err
}

func (rt *Runtime) mountText(node *vdom.VNode, parent target.Node, pos Position) error {
	el := rt.target.CreateText(node.Value)
	node.El = el
	rt.insert(el, parent, pos)
	return nil
}

func (rt *Runtime) mountElement(node *vdom.VNode, parent target.Node, pos Position, owner *Instance) error {
	el := rt.target.CreateElement(node.Tag)
	node.El = el
	rt.addProps(el, node, owner)

	for _, child := range node.Children {
		if err := rt.Mount(child, el, End, owner); err != nil {
			return err
		}
	}

	rt.insert(el, parent, pos)
	return nil
}

// mountFragment mounts the children in order starting at pos. Each child
// advances the position by the number of handles it occupies, so nested
// fragments and multi-element components keep their siblings in order.
func (rt *Runtime) mountFragment(node *vdom.VNode, parent target.Node, pos Position, owner *Instance) error {
	node.El = parent
	next := pos
	for _, child := range node.Children {
		if err := rt.Mount(child, parent, next, owner); err != nil {
			return err
		}
		next = next.shift(len(handlesOf(child)))
	}
	return nil
}

// mountComponent instantiates the node's definition with the node's props
// and events and mounts it. Declared children are left to the component's
// render function and are not mounted here.
func (rt *Runtime) mountComponent(node *vdom.VNode, parent target.Node, pos Position, owner *Instance) error {
	def, ok := node.Type.(*Definition)
	if !ok || def == nil {
		return errUnknownComponent(node.Type)
	}

	props, events := node.Props.Split()
	inst := rt.NewInstance(def, props, events, owner)
	if err := inst.Mount(parent, pos); err != nil {
		return err
	}
	node.Instance = inst
	node.El = inst.FirstElement()
	return nil
}

// insert places el among parent's children. Indices past the end append.
func (rt *Runtime) insert(el, parent target.Node, pos Position) {
	if parent == nil {
		return
	}
	i, ok := pos.Index()
	if !ok {
		rt.target.InsertBefore(parent, el, nil)
		return
	}
	rt.target.InsertBefore(parent, el, target.ChildAt(rt.target, parent, i))
}
