package runtime

import (
	"errors"

	"github.com/vango-dev/laiweb/pkg/scheduler"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

// Destroy removes node's target nodes, detaches its listeners and unmounts
// its components, depth first. Afterwards El, Listeners and Instance are
// cleared on every node of the subtree, even when an error is returned.
//
// onUnmounted hooks are enqueued on the scheduler when node is a component,
// after its own OnUnmounted.
func (rt *Runtime) Destroy(node *vdom.VNode, onUnmounted ...scheduler.Task) error {
	defer rt.sched.Turn()()
	if node == nil {
		return nil
	}

	var err error
	switch node.Kind {
	case vdom.KindText:
		if node.El != nil {
			rt.target.Remove(node.El)
		}

	case vdom.KindElement:
		if node.El == nil {
			break
		}
		rt.removeListeners(node)
		rt.target.Remove(node.El)
		for _, child := range node.Children {
			err = errors.Join(err, rt.Destroy(child))
		}

	case vdom.KindFragment:
		for _, child := range node.Children {
			err = errors.Join(err, rt.Destroy(child))
		}

	case vdom.KindComponent:
		if inst, ok := node.Instance.(*Instance); ok && inst != nil {
			err = errors.Join(err, inst.Unmount())
			for _, hook := range onUnmounted {
				rt.sched.Enqueue(hook)
			}
		}
		for _, child := range node.Children {
			err = errors.Join(err, rt.Destroy(child))
		}

	default:
		err = errUnknownKind(node.Kind)
	}

	node.El = nil
	node.Listeners = nil
	node.Instance = nil
	rt.metrics.Destroy(node.Kind.String())
	return err
}
