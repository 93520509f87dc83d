package vdom

import "testing"

func TestNodesEqual(t *testing.T) {
	card, list := named("Card"), named("List")

	tests := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", Text("a"), nil, false},
		{"texts with different content", Text("a"), Text("b"), true},
		{"text and element", Text("a"), Element("a", nil), false},
		{"same tag", Element("div", Props{"id": "1"}), Element("div", Props{"id": "2"}), true},
		{"different tag", Element("div", nil), Element("span", nil), false},
		{"fragments", Fragment("a"), Fragment(), true},
		{"same component type", Component(card, nil), Component(card, Props{"x": 1}), true},
		{"different component type", Component(card, nil), Component(list, nil), false},
		{"keys ignored", Element("li", Key(1)), Element("li", Key(2)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NodesEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("NodesEqual() = %v, want %v", got, tt.want)
			}
			if got := NodesEqual(tt.b, tt.a); got != tt.want {
				t.Errorf("NodesEqual() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyedEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{"same key", Element("li", Key("a")), Element("li", Key("a")), true},
		{"different key", Element("li", Key("a")), Element("li", Key("b")), false},
		{"keyed and unkeyed", Element("li", Key("a")), Element("li", nil), false},
		{"both unkeyed", Element("li", nil), Element("li", nil), true},
		{"int and string key", Element("li", Key(1)), Element("li", Key("1")), true},
		{"same key different tag", Element("li", Key("a")), Element("p", Key("a")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyedEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("KeyedEqual() = %v, want %v", got, tt.want)
			}
		})
	}
}
