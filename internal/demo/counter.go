package demo

import (
	"github.com/vango-dev/laiweb/pkg/runtime"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

// Counter shows a number between two buttons. The "start" prop sets the
// initial count. Every change emits "changed" with the new count.
var Counter = runtime.Define(runtime.Options{
	Name: "Counter",
	State: func(props vdom.Props) runtime.State {
		return runtime.State{"count": intProp(props["start"], 0)}
	},
	Render: func(c *runtime.Instance) *vdom.VNode {
		return vdom.Element("div", vdom.Props{"class": "counter"},
			vdom.Element("button", vdom.Props{
				"class": "decrement",
				"on":    vdom.Events{"click": vdom.Method("decrement")},
			}, "-"),
			vdom.Element("span", vdom.Props{"class": "count"}, c.State()["count"]),
			vdom.Element("button", vdom.Props{
				"class": "increment",
				"on":    vdom.Events{"click": vdom.Method("increment")},
			}, "+"),
		)
	},
	Methods: map[string]runtime.MethodFunc{
		"increment": func(c *runtime.Instance, _ ...any) any {
			return addCount(c, 1)
		},
		"decrement": func(c *runtime.Instance, _ ...any) any {
			return addCount(c, -1)
		},
	},
})

func addCount(c *runtime.Instance, delta int) error {
	count := c.State()["count"].(int) + delta
	if err := c.UpdateState(runtime.State{"count": count}); err != nil {
		return err
	}
	c.Emit("changed", count)
	return nil
}
