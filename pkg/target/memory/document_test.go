package memory

import (
	"strconv"
	"testing"

	"github.com/vango-dev/laiweb/pkg/target"
)

func TestInsertBefore(t *testing.T) {
	d := New()
	body := d.Body()
	a, b, c := d.NewElement("a"), d.NewElement("b"), d.NewElement("c")

	d.InsertBefore(body, a, nil)
	d.InsertBefore(body, c, nil)
	d.InsertBefore(body, b, c)
	if got, want := InnerHTML(body), "<a></a><b></b><c></c>"; got != want {
		t.Fatalf("html = %q, want %q", got, want)
	}

	// Moving an attached node detaches it first.
	d.InsertBefore(body, c, a)
	if got, want := InnerHTML(body), "<c></c><a></a><b></b>"; got != want {
		t.Errorf("html after move = %q, want %q", got, want)
	}

	// Inserting before itself is a no-op.
	d.InsertBefore(body, a, a)
	if got, want := InnerHTML(body), "<c></c><a></a><b></b>"; got != want {
		t.Errorf("html after self insert = %q, want %q", got, want)
	}

	if a.Parent != body {
		t.Error("Parent not set")
	}
}

func TestRemove(t *testing.T) {
	d := New()
	el := d.CreateElement("p")
	d.InsertBefore(d.Body(), el, nil)

	d.Remove(el)
	d.Remove(el)
	if got := InnerHTML(d.Body()); got != "" {
		t.Errorf("html = %q, want empty", got)
	}
	if el.(*Node).Parent != nil {
		t.Error("Parent not cleared")
	}
}

func TestChildHelpers(t *testing.T) {
	d := New()
	body := d.Body()
	a, b := d.NewElement("a"), d.NewElement("b")
	d.InsertBefore(body, a, nil)
	d.InsertBefore(body, b, nil)

	if got := target.IndexOf(d, body, b); got != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", got)
	}
	if got := target.IndexOf(d, body, d.NewElement("x")); got != -1 {
		t.Errorf("IndexOf(detached) = %d, want -1", got)
	}
	if got := target.ChildAt(d, body, 0); got != a {
		t.Errorf("ChildAt(0) = %v, want a", got)
	}
	if got := target.ChildAt(d, body, 5); got != nil {
		t.Errorf("ChildAt(5) = %v, want nil", got)
	}
}

func TestAttributes(t *testing.T) {
	d := New()
	el := d.CreateElement("input")

	d.SetAttribute(el, "type", "checkbox")
	d.SetAttribute(el, "checked", true)
	d.SetAttribute(el, "disabled", false)
	d.SetAttribute(el, "tabindex", 2)
	d.SetAttribute(el, "title", "a \"quoted\" <value>")
	d.SetAttribute(el, "name", "x")
	d.RemoveAttribute(el, "name")
	d.SetClassList(el, []string{"big", "red"})
	d.SetStyle(el, "marginTop", "4px")
	d.SetStyle(el, "color", "red")
	d.SetStyle(el, "color", "")

	want := `<input class="big red" style="margin-top: 4px;" checked tabindex="2" title="a &quot;quoted&quot; &lt;value&gt;" type="checkbox">`
	if got := OuterHTML(el.(*Node)); got != want {
		t.Errorf("html = %q, want %q", got, want)
	}
}

func TestTextEscaping(t *testing.T) {
	d := New()
	txt := d.CreateText("a < b")
	d.InsertBefore(d.Body(), txt, nil)
	d.SetText(txt, "x & y")

	if got, want := InnerHTML(d.Body()), "x &amp; y"; got != want {
		t.Errorf("html = %q, want %q", got, want)
	}
	if got := TextContent(d.Body()); got != "x & y" {
		t.Errorf("TextContent = %q", got)
	}
}

func TestListeners(t *testing.T) {
	d := New()
	el := d.CreateElement("button")
	var got []any

	l1 := d.AddListener(el, "click", func(p any) { got = append(got, p) })
	d.AddListener(el, "click", func(any) { got = append(got, "second") })

	node := el.(*Node)
	if n := d.Dispatch(node, "click", 7); n != 2 {
		t.Errorf("Dispatch ran %d listeners, want 2", n)
	}
	if len(got) != 2 || got[0] != 7 || got[1] != "second" {
		t.Errorf("calls = %v", got)
	}

	d.RemoveListener(el, "click", l1)
	if node.ListenerCount("click") != 1 {
		t.Errorf("ListenerCount = %d, want 1", node.ListenerCount("click"))
	}
	if d.Dispatch(node, "focus", nil) != 0 {
		t.Error("unbound event dispatched")
	}
}

func TestNodeIDs(t *testing.T) {
	d := New()
	el := d.CreateElement("button")
	d.InsertBefore(d.Body(), el, nil)
	d.AddListener(el, "click", func(any) {})

	node := el.(*Node)
	if d.FindByID(node.ID) != node {
		t.Fatal("FindByID did not find the node")
	}

	got := InnerHTML(d.Body(), HTMLOptions{NodeIDs: true})
	want := `<button data-lw-id="` + strconv.FormatUint(node.ID, 10) + `"></button>`
	if got != want {
		t.Errorf("html = %q, want %q", got, want)
	}
}

func TestQueryAndVoid(t *testing.T) {
	d := New()
	div := d.CreateElement("div")
	d.InsertBefore(d.Body(), div, nil)
	d.InsertBefore(div, d.CreateElement("br"), nil)
	d.InsertBefore(div, d.CreateElement("p"), nil)

	if got := len(Query(d.Body(), "p")); got != 1 {
		t.Errorf("Query(p) = %d nodes, want 1", got)
	}
	if got, want := InnerHTML(d.Body()), "<div><br><p></p></div>"; got != want {
		t.Errorf("html = %q, want %q", got, want)
	}
}
