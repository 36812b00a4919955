// Package events binds listeners to event targets and normalizes events
// that come from either the standard or the legacy event model.
package events

import (
	"sync"

	"golang.org/x/net/html"
)

// Event is a dispatched event.
//
// Standard events support PreventDefault and StopPropagation. Legacy
// events only carry the ReturnValue and CancelBubble flags and identify
// their element through SrcElement.
type Event struct {
	Type string

	// Target is the node the event was dispatched to (standard model).
	Target *html.Node

	// SrcElement is the node the event was dispatched to (legacy model).
	SrcElement *html.Node

	// CurrentTarget is the node whose listeners are running.
	CurrentTarget *html.Node

	// ReturnValue is set to false to cancel the default action.
	ReturnValue bool

	// CancelBubble is set to true to stop bubbling.
	CancelBubble bool

	// Detail carries arbitrary event data.
	Detail any

	standard           bool
	defaultPrevented   bool
	propagationStopped bool
}

// NewEvent creates a standard event aimed at target.
func NewEvent(typ string, target *html.Node) *Event {
	return &Event{
		Type:        typ,
		Target:      target,
		ReturnValue: true,
		standard:    true,
	}
}

// NewLegacyEvent creates a legacy-model event aimed at src.
func NewLegacyEvent(typ string, src *html.Node) *Event {
	return &Event{
		Type:        typ,
		SrcElement:  src,
		ReturnValue: true,
	}
}

// Standard reports whether e supports PreventDefault and StopPropagation.
func (e *Event) Standard() bool { return e.standard }

// PreventDefault cancels the default action of a standard event.
func (e *Event) PreventDefault() {
	if e.standard {
		e.defaultPrevented = true
	}
}

// StopPropagation stops a standard event from bubbling further.
func (e *Event) StopPropagation() {
	if e.standard {
		e.propagationStopped = true
	}
}

// DefaultPrevented reports whether either model cancelled the default
// action.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented || !e.ReturnValue
}

// PropagationStopped reports whether either model stopped bubbling.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped || e.CancelBubble
}

// Listener handles an event.
type Listener func(*Event)

var global struct {
	mu  sync.RWMutex
	evt *Event
}

// Current returns the event being dispatched, if any.
func Current() *Event {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.evt
}

// SetCurrent installs e as the current event and returns the previous one.
func SetCurrent(e *Event) *Event {
	global.mu.Lock()
	defer global.mu.Unlock()
	prev := global.evt
	global.evt = e
	return prev
}
