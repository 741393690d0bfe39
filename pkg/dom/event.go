package dom

import "fmt"

// EventType identifies a pointer or activation event.
type EventType int

const (
	// EventTouchStart is the first contact of a touch interaction.
	EventTouchStart EventType = iota
	// EventTouchMove is a touch point moving.
	EventTouchMove
	// EventTouchEnd is a touch point lifting.
	EventTouchEnd
	// EventTouchCancel is a touch sequence the host aborted, for example
	// when native scrolling takes over the contact.
	EventTouchCancel
	// EventMouseDown is a mouse button press.
	EventMouseDown
	// EventMouseMove is a mouse movement with the button held.
	EventMouseMove
	// EventMouseUp is a mouse button release.
	EventMouseUp
	// EventClick is an activation, such as the synthetic click that
	// switches the host to another tab.
	EventClick
)

// String returns a human-readable representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventTouchStart:
		return "touchstart"
	case EventTouchMove:
		return "touchmove"
	case EventTouchEnd:
		return "touchend"
	case EventTouchCancel:
		return "touchcancel"
	case EventMouseDown:
		return "mousedown"
	case EventMouseMove:
		return "mousemove"
	case EventMouseUp:
		return "mouseup"
	case EventClick:
		return "click"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// IsMouse reports whether the event type originates from a mouse.
func (t EventType) IsMouse() bool {
	switch t {
	case EventMouseDown, EventMouseMove, EventMouseUp:
		return true
	case EventTouchStart, EventTouchMove, EventTouchEnd, EventTouchCancel, EventClick:
		return false
	default:
		panic(fmt.Sprintf("unhandled event type %v", t))
	}
}

// IsTouch reports whether the event type originates from a touch contact.
func (t EventType) IsTouch() bool {
	switch t {
	case EventTouchStart, EventTouchMove, EventTouchEnd, EventTouchCancel:
		return true
	case EventMouseDown, EventMouseMove, EventMouseUp, EventClick:
		return false
	default:
		panic(fmt.Sprintf("unhandled event type %v", t))
	}
}

// Listener receives dispatched events.
type Listener func(*Event)

// ListenerOptions configure a listener registration.
type ListenerOptions struct {
	// Passive promises the listener will not call PreventDefault. Hosts
	// ignore PreventDefault from passive listeners.
	Passive bool
}

// Event is one dispatched pointer or activation event.
type Event struct {
	Type EventType

	// X, Y are the pointer coordinates in viewport pixels.
	X, Y float64

	// Touches is the number of simultaneous contacts, 0 for mouse events.
	Touches int

	// Target is the innermost element the event was dispatched to.
	Target Element

	// Path is the composed path, innermost first, crossing shadow
	// boundaries through host elements. Set by the host at dispatch and
	// stable for the event's lifetime; callers must not modify it.
	Path []Element

	// Passive is set by the host while dispatching to a listener
	// registered as passive.
	Passive bool

	defaultPrevented bool
}

// ComposedPath returns the event's propagation path, innermost target first.
func (e *Event) ComposedPath() []Element { return e.Path }

// PreventDefault suppresses the host's native handling of the event. It is
// ignored during dispatch to a passive listener.
func (e *Event) PreventDefault() {
	if e.Passive {
		return
	}
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// NewClick constructs the synthetic, non-bubbling click used to activate a
// tab.
func NewClick() *Event {
	return &Event{Type: EventClick}
}
