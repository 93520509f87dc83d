package runtime

import (
	"errors"

	"github.com/vango-dev/laiweb/pkg/listdiff"
	"github.com/vango-dev/laiweb/pkg/target"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

// Patch reconciles the mounted tree old against next and returns the tree
// that is now mounted, which is next. parent is the target node old lives
// in; it is used when old has to be replaced.
//
// When the roots are the same slot, next takes over old's handles, props
// and listeners are updated in place and children are reconciled by
// listdiff.Sequence. Otherwise old is destroyed and next is mounted where
// old's first handle was. An old tree that is not attached has no position,
// so next is appended to parent.
func (rt *Runtime) Patch(old, next *vdom.VNode, parent target.Node, owner *Instance) (*vdom.VNode, error) {
	defer rt.sched.Turn()()
	switch {
	case old == nil && next == nil:
		return nil, nil
	case old == nil:
		return next, rt.Mount(next, parent, End, owner)
	case next == nil:
		return nil, rt.Destroy(old)
	}

	if !rt.equal(old, next) {
		return next, rt.replace(old, next, parent, owner)
	}

	next.El = old.El
	switch old.Kind {
	case vdom.KindText:
		if old.El != nil && old.Value != next.Value {
			rt.target.SetText(old.El, next.Value)
		}
		return next, nil

	case vdom.KindElement:
		if old.El != nil {
			rt.patchProps(old.El, old, next, owner)
		}

	case vdom.KindComponent:
		return next, rt.patchComponent(old, next)
	}

	return next, rt.patchChildren(old, next, owner)
}

// replace destroys old and mounts next at old's position, or at the end of
// parent when old is not attached.
func (rt *Runtime) replace(old, next *vdom.VNode, parent target.Node, owner *Instance) error {
	pos := End
	if attached(old) {
		if handles := handlesOf(old); len(handles) > 0 {
			if i := target.IndexOf(rt.target, parent, handles[0]); i >= 0 {
				pos = At(i)
			}
		}
	}
	err := rt.Destroy(old)
	return errors.Join(err, rt.Mount(next, parent, pos, owner))
}

// patchComponent forwards the new node's props and events to the live
// instance, which re-renders only if the props changed.
func (rt *Runtime) patchComponent(old, next *vdom.VNode) error {
	inst, ok := old.Instance.(*Instance)
	if !ok || inst == nil {
		return nil
	}
	next.Instance = inst

	props, events := next.Props.Split()
	inst.setEvents(events)
	err := inst.UpdateProps(props)
	next.El = inst.FirstElement()
	return err
}

// patchChildren applies the edit sequence between old's and next's
// children. Op indices count child nodes; they are converted to indices
// among parent's children by counting the handles of the new children
// already in place. When the children sit directly in owner's host, indices
// are also shifted by the owner's offset so they land after whatever
// precedes the component in that host.
func (rt *Runtime) patchChildren(old, next *vdom.VNode, owner *Instance) error {
	parent := old.El
	if parent == nil {
		return nil
	}

	oldChildren := vdom.ExtractChildren(old)
	newChildren := vdom.ExtractChildren(next)
	ops := listdiff.Sequence[*vdom.VNode](oldChildren, newChildren, rt.equal)

	offset := 0
	if owner != nil && owner.host == parent {
		offset = owner.Offset()
	}

	var err error
	for _, op := range ops {
		switch op.Op {
		case listdiff.OpAdd:
			at := handleIndex(newChildren, op.Index) + offset
			err = errors.Join(err, rt.Mount(op.Item, parent, At(at), owner))

		case listdiff.OpRemove:
			err = errors.Join(err, rt.Destroy(op.Item))

		case listdiff.OpMove:
			oldChild := oldChildren[op.OriginalIndex]
			at := handleIndex(newChildren, op.Index) + offset
			rt.moveHandles(parent, handlesOf(oldChild), at)
			_, pErr := rt.Patch(oldChild, newChildren[op.Index], parent, owner)
			err = errors.Join(err, pErr)

		case listdiff.OpNoop:
			_, pErr := rt.Patch(oldChildren[op.OriginalIndex], newChildren[op.Index], parent, owner)
			err = errors.Join(err, pErr)
		}
	}

	adoptFragments(next, parent)
	for op, n := range listdiff.Counts(ops) {
		rt.metrics.DiffOp(op.String(), n)
	}
	return err
}

// handleIndex returns the number of target nodes occupied by children[:i].
// A component rendering a fragment counts once per element; one rendering
// nothing counts zero.
func handleIndex(children []*vdom.VNode, i int) int {
	n := 0
	for _, child := range children[:min(i, len(children))] {
		n += len(handlesOf(child))
	}
	return n
}

// adoptFragments points nested fragments of node at parent. Their children
// were reconciled through the flattened list, so the fragments themselves
// were never patched.
func adoptFragments(node *vdom.VNode, parent target.Node) {
	for _, child := range node.Children {
		if child.Kind == vdom.KindFragment {
			child.El = parent
			adoptFragments(child, parent)
		}
	}
}

// moveHandles moves handles, in order, before the child currently at index
// at. The reference child is resolved before anything moves.
func (rt *Runtime) moveHandles(parent target.Node, handles []target.Node, at int) {
	ref := target.ChildAt(rt.target, parent, at)
	for _, h := range handles {
		if h == ref {
			ref = target.ChildAt(rt.target, parent, target.IndexOf(rt.target, parent, h)+1)
			continue
		}
		rt.target.InsertBefore(parent, h, ref)
	}
}
