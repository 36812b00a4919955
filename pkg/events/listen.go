package events

import "golang.org/x/net/html"

// ListenerTarget is a target with standard listener registration.
type ListenerTarget interface {
	AddEventListener(typ string, fn Listener)
}

// AttachTarget is a target with legacy registration. Handlers take no
// argument and read the event from Current.
type AttachTarget interface {
	AttachEvent(name string, fn func())
}

// Listen binds fn to events of type typ on target.
//
// Targets implementing ListenerTarget are preferred. AttachTarget is used
// next, with fn wrapped to receive Current. A map[string]any target gets
// fn stored under "on"+typ. Anything else is ignored.
func Listen(target any, typ string, fn Listener) {
	if target == nil || fn == nil {
		return
	}

	switch t := target.(type) {
	case ListenerTarget:
		t.AddEventListener(typ, fn)
	case AttachTarget:
		t.AttachEvent("on"+typ, func() { fn(Current()) })
	case map[string]any:
		if t != nil {
			t["on"+typ] = fn
		}
	}
}

// Process normalizes evt and returns the node it was aimed at. A nil evt
// means the current event.
//
// With prevent set the default action is cancelled; with stop also set
// bubbling is stopped. Both the standard calls and the legacy flags are
// applied.
func Process(evt *Event, prevent, stop bool) *html.Node {
	if evt == nil {
		evt = Current()
		if evt == nil {
			return nil
		}
	}

	el := evt.Target
	if el == nil {
		el = evt.SrcElement
	}

	if prevent {
		if evt.standard {
			evt.PreventDefault()
			if stop {
				evt.StopPropagation()
			}
		}
		evt.ReturnValue = false
		if stop {
			evt.CancelBubble = true
		}
	}
	return el
}
