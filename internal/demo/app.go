package demo

import (
	"fmt"

	"github.com/vango-dev/laiweb/pkg/runtime"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

// App combines the other demos. It tracks the counter's value and the last
// list item picked.
var App = runtime.Define(runtime.Options{
	Name: "App",
	State: func(vdom.Props) runtime.State {
		return runtime.State{"total": 0, "picked": -1}
	},
	Render: func(c *runtime.Instance) *vdom.VNode {
		s := c.State()
		status := "nothing picked"
		if p := s["picked"].(int); p >= 0 {
			status = fmt.Sprintf("picked %d", p)
		}
		return vdom.Element("main", nil,
			vdom.Element("p", vdom.Props{"class": "total"}, "total ", s["total"]),
			Counter.Node(vdom.Props{
				"start": s["total"],
				"on":    vdom.Events{"changed": vdom.Method("counted")},
			}),
			vdom.Element("nav", nil,
				vdom.Element("p", nil, status),
				List.Node(vdom.Props{
					"count": 3,
					"on":    vdom.Events{"pick": vdom.Method("picked")},
				}),
			),
			Todo.Node(vdom.Props{"items": []string{"write", "test"}}),
		)
	},
	Methods: map[string]runtime.MethodFunc{
		"counted": func(c *runtime.Instance, args ...any) any {
			n, _ := firstArg(args).(int)
			return c.UpdateState(runtime.State{"total": n})
		},
		"picked": func(c *runtime.Instance, args ...any) any {
			i, _ := firstArg(args).(int)
			return c.UpdateState(runtime.State{"picked": i})
		},
	},
})
