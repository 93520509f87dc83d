package runtime

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vango-dev/laiweb/pkg/listdiff"
	"github.com/vango-dev/laiweb/pkg/target"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

// addProps binds the node's events and applies its class, style and
// attributes to a freshly created element.
func (rt *Runtime) addProps(el target.Node, node *vdom.VNode, owner *Instance) {
	props, events := node.Props.Split()

	for _, name := range sortedKeys(events) {
		h := events[name]
		if h == nil {
			continue
		}
		if node.Listeners == nil {
			node.Listeners = make(map[string]*vdom.Listener, len(events))
		}
		node.Listeners[name] = rt.addListener(el, name, h, owner)
	}

	if classes := toClassList(props[vdom.PropClass]); len(classes) > 0 {
		rt.target.SetClassList(el, classes)
	}

	styles := toStyleMap(props[vdom.PropStyle])
	for _, name := range sortedKeys(styles) {
		rt.target.SetStyle(el, name, styles[name])
	}

	attrs := attributesOf(props)
	for _, name := range sortedKeys(attrs) {
		rt.setAttribute(el, name, attrs[name])
	}
	rt.patchBooleans(el, nil, booleansOf(props), attrs)
}

// patchProps brings el from the old node's props to the new node's.
// Only what differs reaches the target.
func (rt *Runtime) patchProps(el target.Node, old, next *vdom.VNode, owner *Instance) {
	oldProps, _ := old.Props.Split()
	newProps, newEvents := next.Props.Split()

	rt.patchClasses(el, oldProps[vdom.PropClass], newProps[vdom.PropClass])
	rt.patchStyles(el, oldProps[vdom.PropStyle], newProps[vdom.PropStyle])
	newAttrs := attributesOf(newProps)
	rt.patchAttrs(el, attributesOf(oldProps), newAttrs)
	rt.patchBooleans(el, booleansOf(oldProps), booleansOf(newProps), newAttrs)
	next.Listeners = rt.patchEvents(el, old.Listeners, newEvents, owner)
}

func (rt *Runtime) patchClasses(el target.Node, oldValue, newValue any) {
	oldClasses, newClasses := toClassList(oldValue), toClassList(newValue)
	added, removed := listdiff.Strings(oldClasses, newClasses)
	if len(added) == 0 && len(removed) == 0 {
		return
	}
	rt.target.SetClassList(el, newClasses)
}

func (rt *Runtime) patchStyles(el target.Node, oldValue, newValue any) {
	d := listdiff.Keys(toStyleMap(oldValue), toStyleMap(newValue), func(a, b string) bool { return a == b })
	newStyles := toStyleMap(newValue)
	for _, name := range d.Removed {
		rt.target.RemoveStyle(el, name)
	}
	for _, name := range d.Added {
		rt.target.SetStyle(el, name, newStyles[name])
	}
	for _, name := range d.Updated {
		rt.target.SetStyle(el, name, newStyles[name])
	}
}

func (rt *Runtime) patchAttrs(el target.Node, oldAttrs, newAttrs map[string]any) {
	d := listdiff.Keys(oldAttrs, newAttrs, propsEqual)
	for _, name := range d.Removed {
		rt.target.RemoveAttribute(el, name)
	}
	for _, name := range d.Added {
		rt.setAttribute(el, name, newAttrs[name])
	}
	for _, name := range d.Updated {
		rt.setAttribute(el, name, newAttrs[name])
	}
}

// patchBooleans toggles presence attributes. Boolean props stay out of the
// attribute diff: true sets the attribute, and losing true removes it unless
// the new props give the name a non-boolean value.
func (rt *Runtime) patchBooleans(el target.Node, oldBools, newBools map[string]bool, newAttrs map[string]any) {
	for _, name := range sortedKeys(oldBools) {
		if !oldBools[name] || newBools[name] {
			continue
		}
		if _, ok := newAttrs[name]; !ok {
			rt.target.RemoveAttribute(el, name)
		}
	}
	for _, name := range sortedKeys(newBools) {
		if newBools[name] && !oldBools[name] {
			rt.target.SetAttribute(el, name, true)
		}
	}
}

// setAttribute writes one attribute. A nil value removes it.
func (rt *Runtime) setAttribute(el target.Node, name string, value any) {
	if value == nil {
		rt.target.RemoveAttribute(el, name)
		return
	}
	rt.target.SetAttribute(el, name, value)
}

// attributesOf returns props without class, style and boolean values.
func attributesOf(props vdom.Props) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		if k == vdom.PropClass || k == vdom.PropStyle {
			continue
		}
		if _, ok := v.(bool); ok {
			continue
		}
		out[k] = v
	}
	return out
}

// booleansOf returns the boolean-valued props.
func booleansOf(props vdom.Props) map[string]bool {
	var out map[string]bool
	for k, v := range props {
		b, ok := v.(bool)
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string]bool)
		}
		out[k] = b
	}
	return out
}

// toClassList accepts a space-separated string or a string slice.
func toClassList(v any) []string {
	var raw []string
	switch c := v.(type) {
	case string:
		return strings.Fields(c)
	case []string:
		raw = c
	case []any:
		for _, item := range c {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	default:
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// toStyleMap accepts a map of properties or an inline "a: b; c: d" string.
func toStyleMap(v any) map[string]string {
	switch s := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(s))
		for k, val := range s {
			out[k] = val
		}
		return out
	case map[string]any:
		out := make(map[string]string, len(s))
		for k, val := range s {
			if val == nil {
				continue
			}
			out[k] = fmt.Sprint(val)
		}
		return out
	case string:
		out := make(map[string]string)
		for _, decl := range strings.Split(s, ";") {
			name, value, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			name, value = strings.TrimSpace(name), strings.TrimSpace(value)
			if name != "" {
				out[name] = value
			}
		}
		return out
	default:
		return nil
	}
}

// propsEqual compares two prop values. Function values are never equal.
func propsEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	}
	if reflect.TypeOf(a).Kind() == reflect.Func {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
