package dispatch

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

type counter struct{ n *int }

func (c counter) Handle(any) { *c.n++ }

func TestDispatchOrder(t *testing.T) {
	d := New()
	var got []string
	d.SubscribeFunc("save", func(p any) { got = append(got, "first:"+p.(string)) })
	d.SubscribeFunc("save", func(p any) { got = append(got, "second:"+p.(string)) })
	d.AfterEveryCommand(func() { got = append(got, "after") })

	d.Dispatch("save", "doc")

	want := []string{"first:doc", "second:doc", "after"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestSubscribeDeduplicatesComparableHandlers(t *testing.T) {
	d := New()
	n := 0
	h := &counter{n: &n}

	d.Subscribe("e", h)
	unsubscribe := d.Subscribe("e", h)
	unsubscribe() // inert: the second registration was ignored

	if got := d.Len("e"); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	d.Dispatch("e", nil)
	if n != 1 {
		t.Errorf("handler ran %d times, want 1", n)
	}
}

func TestSubscribeFuncsAreDistinct(t *testing.T) {
	d := New()
	fn := func(any) {}
	d.SubscribeFunc("e", fn)
	d.SubscribeFunc("e", fn)

	if got := d.Len("e"); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	d := New()
	var got []int
	unA := d.SubscribeFunc("e", func(any) { got = append(got, 1) })
	d.SubscribeFunc("e", func(any) { got = append(got, 2) })

	unA()
	unA()
	d.Dispatch("e", nil)

	if len(got) != 1 || got[0] != 2 {
		t.Errorf("calls = %v, want [2]", got)
	}
	if !d.Has("e") {
		t.Error("Has() = false, want true")
	}
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	d := New()
	calls := 0
	var unB func()
	d.SubscribeFunc("e", func(any) {
		calls++
		unB()
	})
	unB = d.SubscribeFunc("e", func(any) { calls++ })

	// The snapshot taken at dispatch time still includes the second handler.
	d.Dispatch("e", nil)
	if calls != 2 {
		t.Errorf("first dispatch calls = %d, want 2", calls)
	}
	d.Dispatch("e", nil)
	if calls != 3 {
		t.Errorf("second dispatch calls = %d, want 3", calls)
	}
}

func TestDispatchWithoutSubscribers(t *testing.T) {
	var buf bytes.Buffer
	d := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	after := 0
	remove := d.AfterEveryCommand(func() { after++ })

	d.Dispatch("missing", nil)

	if after != 1 {
		t.Errorf("after hooks ran %d times, want 1", after)
	}
	if !strings.Contains(buf.String(), "event has no subscribers") {
		t.Errorf("log = %q, want a warning", buf.String())
	}

	remove()
	d.Dispatch("missing", nil)
	if after != 1 {
		t.Errorf("removed hook still ran")
	}
}

func TestSubscribeNil(t *testing.T) {
	d := New()
	d.Subscribe("e", nil)()
	if d.Has("e") {
		t.Error("nil handler was registered")
	}
}
