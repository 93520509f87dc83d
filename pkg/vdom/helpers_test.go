package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stringer struct{ s string }

func (s stringer) String() string { return s.s }

type named string

func (n named) ComponentName() string { return string(n) }

func TestText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"Hello, World!", "Hello, World!"},
		{42, "42"},
		{int64(-7), "-7"},
		{1.5, "1.5"},
		{true, "true"},
		{nil, ""},
		{stringer{"s"}, "s"},
	}

	for _, tt := range tests {
		node := Text(tt.in)
		if node.Kind != KindText {
			t.Errorf("Text(%v).Kind = %v, want Text", tt.in, node.Kind)
		}
		if node.Value != tt.want {
			t.Errorf("Text(%v).Value = %q, want %q", tt.in, node.Value, tt.want)
		}
	}
}

func TestTextf(t *testing.T) {
	node := Textf("Count: %d", 42)
	if node.Value != "Count: 42" {
		t.Errorf("Value = %v, want 'Count: 42'", node.Value)
	}
}

func TestElementNormalizesChildren(t *testing.T) {
	child := Element("span", nil)
	node := Element("div", nil,
		"text",
		nil,
		child,
		[]*VNode{Text(1), nil, Text(2)},
		[]any{"a", []any{"b"}},
		struct{}{},
	)

	if node.Props == nil {
		t.Error("Props is nil, want empty map")
	}

	var got []string
	for _, c := range node.Children {
		switch c.Kind {
		case KindText:
			got = append(got, c.Value)
		default:
			got = append(got, "<"+c.Tag+">")
		}
	}
	want := []string{"text", "<span>", "1", "2", "a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if node.Children[1] != child {
		t.Error("VNode child was copied")
	}
}

func TestFragment(t *testing.T) {
	node := Fragment(Element("div", nil), "x")
	if node.Kind != KindFragment {
		t.Errorf("Kind = %v, want Fragment", node.Kind)
	}
	if len(node.Children) != 2 {
		t.Errorf("Children len = %d, want 2", len(node.Children))
	}
}

func TestComponentAndH(t *testing.T) {
	typ := named("Card")

	c := Component(typ, nil, "child")
	if c.Kind != KindComponent || c.Type != typ {
		t.Errorf("Component() = %v/%v, want Component/Card", c.Kind, c.Type)
	}
	if len(c.Children) != 1 {
		t.Errorf("Children len = %d, want 1", len(c.Children))
	}

	if n := H("p", nil); n.Kind != KindElement || n.Tag != "p" {
		t.Errorf("H(p) = %v %q", n.Kind, n.Tag)
	}
	if n := H(typ, Props{"x": 1}); n.Kind != KindComponent || n.Props["x"] != 1 {
		t.Errorf("H(Card) = %v %v", n.Kind, n.Props)
	}

	defer func() {
		if recover() == nil {
			t.Error("H(42) did not panic")
		}
	}()
	H(42, nil)
}

func TestExtractChildren(t *testing.T) {
	a, b, c, d := Text("a"), Text("b"), Text("c"), Text("d")
	node := Element("div", nil, a, Fragment(b, Fragment(c)), d)

	got := ExtractChildren(node)
	want := []*VNode{a, b, c, d}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d = %q, want %q", i, got[i].Value, want[i].Value)
		}
	}
	if ExtractChildren(nil) != nil {
		t.Error("ExtractChildren(nil) should be nil")
	}
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name   string
		node   *VNode
		want   string
		wantOK bool
	}{
		{"nil", nil, "", false},
		{"no props", Text("x"), "", false},
		{"string", Element("li", Key("a")), "a", true},
		{"int", Element("li", Key(3)), "3", true},
		{"nil key", Element("li", Props{"key": nil}), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyOf(tt.node)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("KeyOf() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKeyMergesExtra(t *testing.T) {
	p := Key("k", Props{"class": "x", "key": "ignored"})
	want := Props{"class": "x", "key": "k"}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Key() mismatch (-want +got):\n%s", diff)
	}
}

func TestConditionals(t *testing.T) {
	n := Text("x")
	if If(true, n) != n || If(false, n) != nil {
		t.Error("If returned the wrong node")
	}
	called := false
	if When(false, func() *VNode { called = true; return n }) != nil || called {
		t.Error("When(false) evaluated its function")
	}
	if When(true, func() *VNode { return n }) != n {
		t.Error("When(true) returned the wrong node")
	}
}

func TestRangeAndRepeat(t *testing.T) {
	nodes := Range([]string{"a", "skip", "b"}, func(s string, i int) *VNode {
		if s == "skip" {
			return nil
		}
		return Textf("%d:%s", i, s)
	})
	if len(nodes) != 2 || nodes[0].Value != "0:a" || nodes[1].Value != "2:b" {
		t.Errorf("Range() = %v", nodes)
	}

	if Repeat(0, func(int) *VNode { return Text("") }) != nil {
		t.Error("Repeat(0) should be nil")
	}
	if got := Repeat(3, func(i int) *VNode { return Text(i) }); len(got) != 3 || got[2].Value != "2" {
		t.Errorf("Repeat(3) = %v", got)
	}
}
