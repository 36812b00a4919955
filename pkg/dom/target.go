package dom

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/domkit/pkg/events"
)

// nodeTarget exposes a node of a Document as an event target.
type nodeTarget struct {
	doc  *Document
	node *html.Node
}

func (t nodeTarget) AddEventListener(typ string, fn events.Listener) {
	byType := t.doc.listeners[t.node]
	if byType == nil {
		byType = make(map[string][]events.Listener)
		t.doc.listeners[t.node] = byType
	}
	byType[typ] = append(byType[typ], fn)
}

// Target returns n as an event target for events.Listen.
func (d *Document) Target(n *html.Node) events.ListenerTarget {
	return nodeTarget{doc: d, node: n}
}

// Listen binds fn to events of type typ dispatched to n or bubbling
// through it.
func (d *Document) Listen(n *html.Node, typ string, fn events.Listener) {
	if n == nil {
		return
	}
	events.Listen(d.Target(n), typ, fn)
}

// Off removes all listeners of type typ from n.
func (d *Document) Off(n *html.Node, typ string) {
	if byType := d.listeners[n]; byType != nil {
		delete(byType, typ)
		if len(byType) == 0 {
			delete(d.listeners, n)
		}
	}
}

// ListenerCount returns the number of listeners of type typ on n.
func (d *Document) ListenerCount(n *html.Node, typ string) int {
	return len(d.listeners[n][typ])
}

// Dispatch delivers evt to its target and then to each ancestor until
// propagation is stopped, through either the standard or the legacy
// flag. evt is the current event while listeners run. Dispatch returns
// false when the default action was cancelled.
func (d *Document) Dispatch(evt *events.Event) bool {
	if evt == nil {
		return true
	}
	target := evt.Target
	if target == nil {
		target = evt.SrcElement
	}
	if target == nil {
		return true
	}

	prev := events.SetCurrent(evt)
	defer events.SetCurrent(prev)

	for n := target; n != nil; n = n.Parent {
		fns := d.listeners[n][evt.Type]
		if len(fns) == 0 {
			continue
		}
		evt.CurrentTarget = n
		for _, fn := range append([]events.Listener(nil), fns...) {
			fn(evt)
		}
		if evt.PropagationStopped() {
			break
		}
	}
	evt.CurrentTarget = nil

	d.logger.Debug("event dispatched", "type", evt.Type, "prevented", evt.DefaultPrevented())
	return !evt.DefaultPrevented()
}
