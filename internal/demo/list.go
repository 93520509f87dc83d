package demo

import (
	"github.com/vango-dev/laiweb/pkg/runtime"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

// List renders "count" keyed buttons in a fragment, so its elements sit
// directly in the parent's element. Clicking a button emits "pick" with
// the button's index.
var List = runtime.Define(runtime.Options{
	Name: "List",
	State: func(props vdom.Props) runtime.State {
		return runtime.State{"count": intProp(props["count"], 3)}
	},
	Render: func(c *runtime.Instance) *vdom.VNode {
		return vdom.Fragment(vdom.Repeat(c.State()["count"].(int), func(i int) *vdom.VNode {
			return vdom.Element("button", vdom.Key(i, vdom.Props{
				"class": "item",
				"on": vdom.Events{"click": func(c *runtime.Instance, _ any) {
					c.Emit("pick", i)
				}},
			}), "item ", i)
		}))
	},
	Methods: map[string]runtime.MethodFunc{
		"add": func(c *runtime.Instance, _ ...any) any {
			return c.UpdateState(runtime.State{"count": c.State()["count"].(int) + 1})
		},
		"remove": func(c *runtime.Instance, _ ...any) any {
			n := c.State()["count"].(int)
			if n == 0 {
				return nil
			}
			return c.UpdateState(runtime.State{"count": n - 1})
		},
	},
})
