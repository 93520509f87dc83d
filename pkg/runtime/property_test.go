package runtime

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/vango-dev/laiweb/pkg/scheduler"
	"github.com/vango-dev/laiweb/pkg/target/memory"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

func uniqueKeys(keys []int) []int {
	seen := make(map[int]bool, len(keys))
	out := make([]int, 0, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func itemsHTML(tag string, keys []int) string {
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "<%s>%d</%s>", tag, k, tag)
	}
	return b.String()
}

func intList(keys []int) *vdom.VNode {
	return vdom.Element("ul", nil, vdom.Range(keys, func(k int, _ int) *vdom.VNode {
		return vdom.Element("li", vdom.Key(k), k)
	}))
}

func quietRuntime() (*Runtime, *memory.Document) {
	doc := memory.New()
	sched := scheduler.New(scheduler.WithLogger(quietLogger()), scheduler.WithManualFlush())
	return New(doc, WithScheduler(sched), WithLogger(quietLogger())), doc
}

func TestPatchKeyedListProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	keys := gen.SliceOf(gen.IntRange(0, 9))

	properties.Property("patched list renders the new keys in order", prop.ForAll(
		func(oldKeys, newKeys []int) bool {
			oldKeys, newKeys = uniqueKeys(oldKeys), uniqueKeys(newKeys)
			rt, doc := quietRuntime()
			old := intList(oldKeys)
			if err := rt.Mount(old, doc.Body(), End, nil); err != nil {
				return false
			}
			if _, err := rt.Patch(old, intList(newKeys), doc.Body(), nil); err != nil {
				return false
			}
			return memory.InnerHTML(doc.Body()) == "<ul>"+itemsHTML("li", newKeys)+"</ul>"
		},
		keys, keys,
	))

	properties.Property("surviving keys keep their elements", prop.ForAll(
		func(oldKeys, newKeys []int) bool {
			oldKeys, newKeys = uniqueKeys(oldKeys), uniqueKeys(newKeys)
			rt, doc := quietRuntime()
			old := intList(oldKeys)
			if err := rt.Mount(old, doc.Body(), End, nil); err != nil {
				return false
			}
			before := make(map[string]any, len(old.Children))
			for _, li := range old.Children {
				k, _ := vdom.KeyOf(li)
				before[k] = li.El
			}

			next := intList(newKeys)
			if _, err := rt.Patch(old, next, doc.Body(), nil); err != nil {
				return false
			}
			for _, li := range next.Children {
				k, _ := vdom.KeyOf(li)
				if el, ok := before[k]; ok && el != li.El {
					return false
				}
			}
			return true
		},
		keys, keys,
	))

	properties.Property("fragment root stays after its preceding sibling", prop.ForAll(
		func(oldKeys, newKeys []int) bool {
			oldKeys, newKeys = uniqueKeys(oldKeys), uniqueKeys(newKeys)
			rt, doc := quietRuntime()
			doc.InsertBefore(doc.Body(), doc.NewElement("p"), nil)

			def := Define(Options{
				Name:  "Items",
				State: func(vdom.Props) State { return State{"keys": oldKeys} },
				Render: func(c *Instance) *vdom.VNode {
					return vdom.Fragment(vdom.Range(c.State()["keys"].([]int), func(k int, _ int) *vdom.VNode {
						return vdom.Element("b", vdom.Key(k), k)
					}))
				},
			})
			inst := rt.NewInstance(def, nil, nil, nil)
			if err := inst.Mount(doc.Body(), End); err != nil {
				return false
			}
			if err := inst.UpdateState(State{"keys": newKeys}); err != nil {
				return false
			}
			return memory.InnerHTML(doc.Body()) == "<p></p>"+itemsHTML("b", newKeys)
		},
		keys, keys,
	))

	properties.TestingRun(t)
}
