package vdom

// Equality decides whether two nodes occupy the same slot.
type Equality func(a, b *VNode) bool

// NodesEqual reports whether a and b are the same slot: the variants match
// and, for elements and components, so does the tag or component type.
// Props and children are not considered.
func NodesEqual(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindElement:
		return a.Tag == b.Tag
	case KindComponent:
		return a.Type == b.Type
	default:
		return true
	}
}

// KeyedEqual is NodesEqual that also honours the "key" prop: two keyed
// nodes must have equal keys, and a keyed node never matches an unkeyed one.
func KeyedEqual(a, b *VNode) bool {
	if !NodesEqual(a, b) {
		return false
	}
	ka, okA := KeyOf(a)
	kb, okB := KeyOf(b)
	if okA != okB {
		return false
	}
	return ka == kb
}
