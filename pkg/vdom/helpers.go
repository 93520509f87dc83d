package vdom

import (
	"fmt"
	"strconv"
)

// Text creates a text node. Primitive values are stringified.
func Text(value any) *VNode {
	return &VNode{
		Kind:  KindText,
		Value: stringify(value),
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Element creates an element node. Children may be *VNode, []*VNode,
// primitives (converted to text) or nil (dropped).
func Element(tag string, props Props, children ...any) *VNode {
	if props == nil {
		props = Props{}
	}
	return &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    props,
		Children: normalize(children),
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	return &VNode{
		Kind:     KindFragment,
		Children: normalize(children),
	}
}

// Component creates a placeholder for a component of type t.
// The component is instantiated when the node is mounted.
func Component(t ComponentType, props Props, children ...any) *VNode {
	if props == nil {
		props = Props{}
	}
	return &VNode{
		Kind:     KindComponent,
		Type:     t,
		Props:    props,
		Children: normalize(children),
	}
}

// H creates an element when tag is a string and a component node when tag
// is a ComponentType. Any other tag panics.
func H(tag any, props Props, children ...any) *VNode {
	switch t := tag.(type) {
	case string:
		return Element(t, props, children...)
	case ComponentType:
		return Component(t, props, children...)
	default:
		panic(fmt.Sprintf("vdom: H: unsupported tag type %T", tag))
	}
}

// normalize drops nil children, converts primitives to text nodes and
// flattens child slices one level.
func normalize(children []any) []*VNode {
	out := make([]*VNode, 0, len(children))
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				out = append(out, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					out = append(out, c)
				}
			}
		case []any:
			out = append(out, normalize(v)...)
		default:
			if isPrimitive(v) {
				out = append(out, Text(v))
			}
		}
	}
	return out
}

func isPrimitive(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, fmt.Stringer:
		return true
	}
	return false
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// ExtractChildren returns the node's children with fragments flattened
// recursively, so the result never contains a fragment.
func ExtractChildren(node *VNode) []*VNode {
	if node == nil {
		return nil
	}
	children := make([]*VNode, 0, len(node.Children))
	for _, child := range node.Children {
		if child.Kind == KindFragment {
			children = append(children, ExtractChildren(child)...)
			continue
		}
		children = append(children, child)
	}
	return children
}

// KeyOf returns the node's "key" prop normalized to a string.
func KeyOf(node *VNode) (string, bool) {
	if node == nil || node.Props == nil {
		return "", false
	}
	k, ok := node.Props[PropKey]
	if !ok || k == nil {
		return "", false
	}
	return fmt.Sprint(k), true
}

// Key returns props carrying the given key, merged over extra.
func Key(key any, extra ...Props) Props {
	p := Props{}
	for _, e := range extra {
		for k, v := range e {
			p[k] = v
		}
	}
	p[PropKey] = key
	return p
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// When is like If but with lazy evaluation.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to VNodes, dropping nil results.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Repeat creates n nodes using the given function.
func Repeat(n int, fn func(i int) *VNode) []*VNode {
	if n <= 0 {
		return nil
	}
	result := make([]*VNode, 0, n)
	for i := 0; i < n; i++ {
		if node := fn(i); node != nil {
			result = append(result, node)
		}
	}
	return result
}
