package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{Kind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPropsSplit(t *testing.T) {
	click := func() {}
	p := Props{
		"id":  "x",
		"key": "k",
		"on":  Events{"click": click},
	}

	props, events := p.Split()
	if diff := cmp.Diff(Props{"id": "x"}, props); diff != "" {
		t.Errorf("props mismatch (-want +got):\n%s", diff)
	}
	if len(events) != 1 || events["click"] == nil {
		t.Errorf("events = %v, want click", events)
	}
	if _, ok := p["on"]; !ok {
		t.Error("Split modified the receiver")
	}
}

func TestPropsEventsForms(t *testing.T) {
	tests := []struct {
		name string
		on   any
		want int
	}{
		{"Events", Events{"a": Method("m")}, 1},
		{"plain map", map[string]any{"a": Method("m"), "b": Method("n")}, 2},
		{"wrong type", "click", 0},
		{"missing", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Props{}
			if tt.on != nil {
				p["on"] = tt.on
			}
			if got := len(p.Events()); got != tt.want {
				t.Errorf("len(Events()) = %d, want %d", got, tt.want)
			}
			if _, events := p.Split(); events == nil {
				t.Error("Split() events should never be nil")
			}
		})
	}
}

func TestPropsClone(t *testing.T) {
	var nilProps Props
	if nilProps.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
	p := Props{"a": 1}
	c := p.Clone()
	c["a"] = 2
	if p["a"] != 1 {
		t.Error("Clone shares storage with the original")
	}
}

func TestVNodeIsMounted(t *testing.T) {
	var nilNode *VNode
	if nilNode.IsMounted() {
		t.Error("nil node reported mounted")
	}
	n := Element("div", nil)
	if n.IsMounted() {
		t.Error("fresh node reported mounted")
	}
	n.El = "handle"
	if !n.IsMounted() {
		t.Error("node with El reported unmounted")
	}
	if nilNode.Events() != nil {
		t.Error("nil node Events() should be nil")
	}
}
