package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/vango-dev/domkit/pkg/events"
)

func TestDispatch_Bubbles(t *testing.T) {
	d := NewDocument()
	frag := d.Frag(`<div><p><a>x</a></p></div>`)
	div := d.BySelector("div", frag)
	p := d.BySelector("p", frag)
	a := d.BySelector("a", frag)

	var seen []string
	d.Listen(a, "click", func(e *events.Event) { seen = append(seen, "a:"+e.CurrentTarget.Data) })
	d.Listen(p, "click", func(e *events.Event) { seen = append(seen, "p:"+e.Target.Data) })
	d.Listen(div, "click", func(e *events.Event) { seen = append(seen, "div") })

	if !d.Dispatch(events.NewEvent("click", a)) {
		t.Error("Dispatch reported a prevented default")
	}
	if diff := cmp.Diff([]string{"a:a", "p:a", "div"}, seen); diff != "" {
		t.Errorf("bubbling order (-want +got):\n%s", diff)
	}
}

func TestDispatch_StopAndPrevent(t *testing.T) {
	tests := []struct {
		name string
		evt  func(target *html.Node) *events.Event
	}{
		{"standard", func(n *html.Node) *events.Event { return events.NewEvent("click", n) }},
		{"legacy", func(n *html.Node) *events.Event { return events.NewLegacyEvent("click", n) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument()
			frag := d.Frag(`<div><a>x</a></div>`)
			a := d.BySelector("a", frag)
			div := d.BySelector("div", frag)

			parentCalled := false
			d.Listen(a, "click", func(*events.Event) {
				if events.Process(nil, true, true) != a {
					t.Error("Process(nil) should resolve the dispatched event target")
				}
			})
			d.Listen(div, "click", func(*events.Event) { parentCalled = true })

			prev := events.Current()
			if d.Dispatch(tt.evt(a)) {
				t.Error("Dispatch should report the default as prevented")
			}
			if parentCalled {
				t.Error("propagation was not stopped")
			}
			if events.Current() != prev {
				t.Error("current event should be restored after dispatch")
			}
		})
	}
}

func TestOff(t *testing.T) {
	d := NewDocument()
	el := d.CreateElement("div")
	d.Listen(el, "click", func(*events.Event) {})
	d.Listen(el, "click", func(*events.Event) {})
	if d.ListenerCount(el, "click") != 2 {
		t.Fatalf("ListenerCount = %d, want 2", d.ListenerCount(el, "click"))
	}
	d.Off(el, "click")
	if d.ListenerCount(el, "click") != 0 {
		t.Error("Off did not remove listeners")
	}
}

func TestAddScript(t *testing.T) {
	d := NewDocument()
	script := d.AddScript("/app.js", ScriptOptions{})

	if script.Parent != d.Head() {
		t.Fatal("script should be appended to head")
	}
	if v, _ := GetAttr(script, "src"); v != "/app.js" {
		t.Errorf("src = %q", v)
	}

	d.Dispatch(events.NewEvent("load", script))
	if script.Parent != nil {
		t.Error("default load listener should remove the script")
	}
}

func TestAddScript_Listeners(t *testing.T) {
	d := NewDocument()
	var loaded, failed bool
	script := d.AddScript("/app.js", ScriptOptions{
		Load:  func(*events.Event) { loaded = true },
		Error: func(*events.Event) { failed = true },
	})

	d.Dispatch(events.NewEvent("load", script))
	d.Dispatch(events.NewEvent("error", script))
	if !loaded || !failed {
		t.Errorf("loaded=%v failed=%v", loaded, failed)
	}
	if script.Parent == nil {
		t.Error("custom load listener should keep the script")
	}
}
