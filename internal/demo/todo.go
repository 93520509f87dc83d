package demo

import (
	"slices"
	"strings"

	"github.com/vango-dev/laiweb/pkg/runtime"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

// Item is a todo entry.
type Item struct {
	ID   int
	Text string
}

// Todo is a keyed list of items. The "items" prop seeds it with strings.
var Todo = runtime.Define(runtime.Options{
	Name: "Todo",
	State: func(props vdom.Props) runtime.State {
		var items []Item
		if seed, ok := props["items"].([]string); ok {
			for i, text := range seed {
				items = append(items, Item{ID: i + 1, Text: text})
			}
		}
		return runtime.State{"items": items, "next": len(items) + 1, "draft": ""}
	},
	Render: func(c *runtime.Instance) *vdom.VNode {
		s := c.State()
		return vdom.Element("section", vdom.Props{"class": "todo"},
			vdom.Element("input", vdom.Props{
				"value": s["draft"],
				"on":    vdom.Events{"input": vdom.Method("draft")},
			}),
			vdom.Element("button", vdom.Props{
				"class": "add",
				"on":    vdom.Events{"click": vdom.Method("add")},
			}, "Add"),
			vdom.Element("button", vdom.Props{
				"class": "reverse",
				"on":    vdom.Events{"click": vdom.Method("reverse")},
			}, "Reverse"),
			vdom.Element("ul", nil, vdom.Range(s["items"].([]Item), func(it Item, _ int) *vdom.VNode {
				return vdom.Element("li", vdom.Key(it.ID),
					it.Text,
					vdom.Element("button", vdom.Props{
						"class": "remove",
						"on": vdom.Events{"click": func(c *runtime.Instance, _ any) {
							c.Call("remove", it.ID)
						}},
					}, "x"),
				)
			})),
		)
	},
	Methods: map[string]runtime.MethodFunc{
		"draft": func(c *runtime.Instance, args ...any) any {
			text, _ := firstArg(args).(string)
			return c.UpdateState(runtime.State{"draft": text})
		},
		"add": func(c *runtime.Instance, args ...any) any {
			s := c.State()
			text, ok := firstArg(args).(string)
			if !ok {
				text = s["draft"].(string)
			}
			text = strings.TrimSpace(text)
			if text == "" {
				return nil
			}
			next := s["next"].(int)
			items := append(slices.Clone(s["items"].([]Item)), Item{ID: next, Text: text})
			return c.UpdateState(runtime.State{"items": items, "next": next + 1, "draft": ""})
		},
		"remove": func(c *runtime.Instance, args ...any) any {
			id, _ := firstArg(args).(int)
			items := slices.DeleteFunc(slices.Clone(c.State()["items"].([]Item)), func(it Item) bool {
				return it.ID == id
			})
			return c.UpdateState(runtime.State{"items": items})
		},
		"reverse": func(c *runtime.Instance, _ ...any) any {
			items := slices.Clone(c.State()["items"].([]Item))
			slices.Reverse(items)
			return c.UpdateState(runtime.State{"items": items})
		},
	},
})

func firstArg(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}
