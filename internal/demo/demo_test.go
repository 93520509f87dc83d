package demo

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	lwerrors "github.com/vango-dev/laiweb/internal/errors"
	"github.com/vango-dev/laiweb/pkg/runtime"
	"github.com/vango-dev/laiweb/pkg/scheduler"
	"github.com/vango-dev/laiweb/pkg/target/memory"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

func mountDemo(t *testing.T, def *runtime.Definition, props vdom.Props) (*runtime.Instance, *memory.Document) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	doc := memory.New()
	rt := runtime.New(doc,
		runtime.WithLogger(logger),
		runtime.WithScheduler(scheduler.New(scheduler.WithLogger(logger))),
	)
	inst := rt.NewInstance(def, props, nil, nil)
	if err := inst.Mount(doc.Body(), runtime.End); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return inst, doc
}

func byClass(root *memory.Node, tag, class string) []*memory.Node {
	var out []*memory.Node
	for _, n := range memory.Query(root, tag) {
		if slices.Contains(n.Classes, class) {
			out = append(out, n)
		}
	}
	return out
}

func click(t *testing.T, doc *memory.Document, n *memory.Node) {
	t.Helper()
	if doc.Dispatch(n, "click", nil) != 1 {
		t.Fatalf("no click listener on <%s>", n.Tag)
	}
}

func TestLookup(t *testing.T) {
	want := []string{"app", "counter", "list", "todo"}
	if got := Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	for _, name := range want {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q) error = %v", name, err)
		}
	}

	_, err := Lookup("nope")
	var lerr *lwerrors.Error
	if !errors.As(err, &lerr) || lerr.Code != "X001" {
		t.Errorf("Lookup(nope) error = %v, want X001", err)
	}
}

func TestCounter(t *testing.T) {
	inst, doc := mountDemo(t, Counter, vdom.Props{"start": 2})
	var changes []any
	inst.Subscribe("changed", func(v any) { changes = append(changes, v) })

	body := doc.Body()
	count := byClass(body, "span", "count")[0]
	if got := memory.TextContent(count); got != "2" {
		t.Fatalf("count = %q, want 2", got)
	}

	click(t, doc, byClass(body, "button", "increment")[0])
	click(t, doc, byClass(body, "button", "increment")[0])
	click(t, doc, byClass(body, "button", "decrement")[0])

	if got := memory.TextContent(byClass(body, "span", "count")[0]); got != "3" {
		t.Errorf("count = %q, want 3", got)
	}
	if byClass(body, "span", "count")[0] != count {
		t.Error("count span was recreated")
	}
	if !slices.Equal(changes, []any{3, 4, 3}) {
		t.Errorf("changed = %v, want [3 4 3]", changes)
	}
}

func TestList(t *testing.T) {
	doc := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rt := runtime.New(doc, runtime.WithLogger(logger),
		runtime.WithScheduler(scheduler.New(scheduler.WithLogger(logger))))
	doc.InsertBefore(doc.Body(), doc.NewElement("p"), nil)

	inst := rt.NewInstance(List, vdom.Props{"count": 2}, nil, nil)
	if err := inst.Mount(doc.Body(), runtime.End); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if got := inst.Offset(); got != 1 {
		t.Errorf("Offset() = %d, want 1", got)
	}

	var picked []any
	inst.Subscribe("pick", func(v any) { picked = append(picked, v) })

	if _, err := inst.Call("add"); err != nil {
		t.Fatalf("Call(add) error = %v", err)
	}
	want := `<p></p><button class="item">item 0</button><button class="item">item 1</button><button class="item">item 2</button>`
	if got := memory.InnerHTML(doc.Body()); got != want {
		t.Errorf("html = %q, want %q", got, want)
	}

	click(t, doc, memory.Query(doc.Body(), "button")[2])
	if !slices.Equal(picked, []any{2}) {
		t.Errorf("picked = %v, want [2]", picked)
	}

	for range 4 {
		if _, err := inst.Call("remove"); err != nil {
			t.Fatalf("Call(remove) error = %v", err)
		}
	}
	if got := memory.InnerHTML(doc.Body()); got != "<p></p>" {
		t.Errorf("html = %q, want <p></p>", got)
	}
}

func todoTexts(body *memory.Node) []string {
	var out []string
	for _, li := range memory.Query(body, "li") {
		out = append(out, memory.TextContent(li.Children[0]))
	}
	return out
}

func TestTodo(t *testing.T) {
	_, doc := mountDemo(t, Todo, vdom.Props{"items": []string{"a", "b"}})
	body := doc.Body()

	input := memory.Query(body, "input")[0]
	doc.Dispatch(input, "input", "  c ")
	if got := input.Attrs["value"]; got != "  c " {
		t.Errorf("input value = %q, want draft text", got)
	}
	click(t, doc, byClass(body, "button", "add")[0])
	if got := todoTexts(body); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("items = %v, want [a b c]", got)
	}
	if got := input.Attrs["value"]; got != "" {
		t.Errorf("input value = %q, want empty after add", got)
	}

	lis := memory.Query(body, "li")
	click(t, doc, byClass(body, "button", "reverse")[0])
	if got := todoTexts(body); !slices.Equal(got, []string{"c", "b", "a"}) {
		t.Fatalf("items = %v, want [c b a]", got)
	}
	after := memory.Query(body, "li")
	if after[0] != lis[2] || after[2] != lis[0] {
		t.Error("reverse recreated keyed items")
	}

	click(t, doc, byClass(after[1], "button", "remove")[0])
	if got := todoTexts(body); !slices.Equal(got, []string{"c", "a"}) {
		t.Errorf("items = %v, want [c a]", got)
	}

	// Empty drafts are ignored.
	click(t, doc, byClass(body, "button", "add")[0])
	if got := len(memory.Query(body, "li")); got != 2 {
		t.Errorf("items = %d, want 2", got)
	}
}

func TestAppWiresChildEvents(t *testing.T) {
	inst, doc := mountDemo(t, App, nil)
	body := doc.Body()

	click(t, doc, byClass(body, "button", "increment")[0])
	click(t, doc, byClass(body, "button", "increment")[0])
	if got := inst.State()["total"]; got != 2 {
		t.Errorf("total = %v, want 2", got)
	}
	if got := memory.TextContent(byClass(body, "p", "total")[0]); got != "total 2" {
		t.Errorf("total text = %q", got)
	}
	if got := memory.TextContent(byClass(body, "span", "count")[0]); got != "2" {
		t.Errorf("count = %q, want 2", got)
	}

	nav := memory.Query(body, "nav")[0]
	click(t, doc, byClass(nav, "button", "item")[1])
	if got := memory.TextContent(memory.Query(nav, "p")[0]); got != "picked 1" {
		t.Errorf("status = %q, want picked 1", got)
	}
	if got := len(byClass(nav, "button", "item")); got != 3 {
		t.Errorf("list items = %d, want 3", got)
	}
}
