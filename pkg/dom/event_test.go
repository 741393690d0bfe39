package dom_test

import (
	"testing"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
)

// --- EventType tests ---

func TestEventType_String(t *testing.T) {
	cases := []struct {
		t    dom.EventType
		want string
	}{
		{dom.EventTouchStart, "touchstart"},
		{dom.EventTouchMove, "touchmove"},
		{dom.EventTouchEnd, "touchend"},
		{dom.EventTouchCancel, "touchcancel"},
		{dom.EventMouseDown, "mousedown"},
		{dom.EventMouseMove, "mousemove"},
		{dom.EventMouseUp, "mouseup"},
		{dom.EventClick, "click"},
		{dom.EventType(42), "EventType(42)"},
	}
	for _, c := range cases {
		if got := c.t.String(); got != c.want {
			t.Errorf("String(%d) = %q, want %q", int(c.t), got, c.want)
		}
	}
}

func TestEventType_IsMouse(t *testing.T) {
	mouse := []dom.EventType{dom.EventMouseDown, dom.EventMouseMove, dom.EventMouseUp}
	for _, et := range mouse {
		if !et.IsMouse() {
			t.Errorf("%v.IsMouse() = false", et)
		}
		if et.IsTouch() {
			t.Errorf("%v.IsTouch() = true", et)
		}
	}
}

func TestEventType_IsTouch(t *testing.T) {
	touch := []dom.EventType{dom.EventTouchStart, dom.EventTouchMove, dom.EventTouchEnd, dom.EventTouchCancel}
	for _, et := range touch {
		if !et.IsTouch() {
			t.Errorf("%v.IsTouch() = false", et)
		}
		if et.IsMouse() {
			t.Errorf("%v.IsMouse() = true", et)
		}
	}
	if dom.EventClick.IsMouse() || dom.EventClick.IsTouch() {
		t.Error("click should be neither mouse nor touch")
	}
}

func TestEventType_IsMouse_PanicsOnUnknown(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected IsMouse to panic for an unknown event type")
		}
	}()
	dom.EventType(42).IsMouse()
}

func TestEventType_IsTouch_PanicsOnUnknown(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected IsTouch to panic for an unknown event type")
		}
	}()
	dom.EventType(42).IsTouch()
}

// --- Event tests ---

func TestEvent_PreventDefault(t *testing.T) {
	ev := &dom.Event{Type: dom.EventTouchMove}
	if ev.DefaultPrevented() {
		t.Fatal("fresh event reports DefaultPrevented")
	}
	ev.PreventDefault()
	if !ev.DefaultPrevented() {
		t.Error("PreventDefault did not take effect")
	}
}

func TestEvent_PreventDefaultIgnoredWhilePassive(t *testing.T) {
	ev := &dom.Event{Type: dom.EventTouchMove, Passive: true}
	ev.PreventDefault()
	if ev.DefaultPrevented() {
		t.Error("PreventDefault took effect during passive dispatch")
	}

	ev.Passive = false
	ev.PreventDefault()
	if !ev.DefaultPrevented() {
		t.Error("PreventDefault ignored outside passive dispatch")
	}
}

func TestNewClick(t *testing.T) {
	ev := dom.NewClick()
	if ev.Type != dom.EventClick {
		t.Errorf("Type = %v, want click", ev.Type)
	}
	if ev.DefaultPrevented() {
		t.Error("fresh click reports DefaultPrevented")
	}
}
