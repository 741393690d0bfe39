package memdom_test

import (
	"testing"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/memdom"
)

// --- Event dispatch tests ---

// nestedTarget builds body > home-assistant #shadow > hui-root #shadow >
// hui-card and returns the pieces.
func nestedTarget(doc *memdom.Document) (host, inner, card *memdom.Element) {
	host = doc.CreateElement("home-assistant")
	doc.Body().AppendChild(host)
	inner = doc.CreateElement("hui-root")
	host.AttachShadow().AppendChild(inner)
	card = doc.CreateElement("hui-card")
	inner.AttachShadow().AppendChild(card)
	return host, inner, card
}

func TestDispatchPointer_ComposedPathCrossesShadows(t *testing.T) {
	doc := memdom.NewDocument()
	host, inner, card := nestedTarget(doc)

	ev := doc.DispatchPointer(card, dom.EventTouchStart, 100, 200, 1)

	if ev.Target != dom.Element(card) {
		t.Errorf("Target = %v, want the card", ev.Target)
	}
	path := ev.ComposedPath()
	want := []dom.Element{card, inner, host, doc.Body()}
	if len(path) < len(want) {
		t.Fatalf("len(path) = %d, want at least %d", len(path), len(want))
	}
	for i, el := range want {
		if path[i] != el {
			t.Errorf("path[%d] = %v, want %v", i, path[i], el)
		}
	}
	if ev.X != 100 || ev.Y != 200 || ev.Touches != 1 {
		t.Errorf("event carried x=%g y=%g touches=%d", ev.X, ev.Y, ev.Touches)
	}
}

func TestDispatchPointer_InvokesAlongPath(t *testing.T) {
	doc := memdom.NewDocument()
	host, inner, card := nestedTarget(doc)

	var order []string
	listen := func(el *memdom.Element, name string) {
		el.AddListener(dom.EventTouchStart, func(*dom.Event) {
			order = append(order, name)
		}, dom.ListenerOptions{Passive: true})
	}
	listen(host, "host")
	listen(card, "card")
	listen(inner, "inner")

	// An element outside the path must not hear the event.
	other := doc.CreateElement("div")
	doc.Body().AppendChild(other)
	listen(other, "other")

	doc.DispatchPointer(card, dom.EventTouchStart, 0, 0, 1)

	if len(order) != 3 || order[0] != "card" || order[1] != "inner" || order[2] != "host" {
		t.Errorf("invocation order = %v, want [card inner host]", order)
	}
}

func TestDispatchPointer_TypeFilter(t *testing.T) {
	doc := memdom.NewDocument()
	_, _, card := nestedTarget(doc)

	moves := 0
	card.AddListener(dom.EventTouchMove, func(*dom.Event) { moves++ }, dom.ListenerOptions{})

	doc.DispatchPointer(card, dom.EventTouchStart, 0, 0, 1)
	if moves != 0 {
		t.Errorf("touchmove listener heard a touchstart (%d times)", moves)
	}
	doc.DispatchPointer(card, dom.EventTouchMove, 0, 0, 1)
	if moves != 1 {
		t.Errorf("touchmove listener fired %d times, want 1", moves)
	}
}

func TestAddListener_RemovalTakesEffectNextDispatch(t *testing.T) {
	doc := memdom.NewDocument()
	_, _, card := nestedTarget(doc)

	var removeSecond func()
	first, second := 0, 0
	card.AddListener(dom.EventTouchEnd, func(*dom.Event) {
		first++
		removeSecond()
	}, dom.ListenerOptions{Passive: true})
	removeSecond = card.AddListener(dom.EventTouchEnd, func(*dom.Event) {
		second++
	}, dom.ListenerOptions{Passive: true})

	doc.DispatchPointer(card, dom.EventTouchEnd, 0, 0, 0)
	if second != 1 {
		t.Errorf("listener removed mid-dispatch fired %d times in that dispatch, want 1", second)
	}

	doc.DispatchPointer(card, dom.EventTouchEnd, 0, 0, 0)
	if first != 2 {
		t.Errorf("surviving listener fired %d times, want 2", first)
	}
	if second != 1 {
		t.Errorf("removed listener fired %d times after removal, want 1", second)
	}
}

func TestAddListener_RemoveIsIdempotent(t *testing.T) {
	doc := memdom.NewDocument()
	_, _, card := nestedTarget(doc)

	fired := 0
	remove := card.AddListener(dom.EventClick, func(*dom.Event) { fired++ }, dom.ListenerOptions{})
	remove()
	remove()

	card.DispatchEvent(dom.NewClick())
	if fired != 0 {
		t.Errorf("removed listener fired %d times", fired)
	}
}

func TestPreventDefault_NonPassiveListener(t *testing.T) {
	doc := memdom.NewDocument()
	_, _, card := nestedTarget(doc)

	card.AddListener(dom.EventTouchMove, func(ev *dom.Event) {
		ev.PreventDefault()
	}, dom.ListenerOptions{})

	ev := doc.DispatchPointer(card, dom.EventTouchMove, 0, 0, 1)
	if !ev.DefaultPrevented() {
		t.Error("PreventDefault from a non-passive listener was ignored")
	}
	if ev.Passive {
		t.Error("Passive flag not reset after dispatch")
	}
}

func TestPreventDefault_PassiveListenerIgnored(t *testing.T) {
	doc := memdom.NewDocument()
	_, _, card := nestedTarget(doc)

	sawPassive := false
	card.AddListener(dom.EventTouchMove, func(ev *dom.Event) {
		sawPassive = ev.Passive
		ev.PreventDefault()
	}, dom.ListenerOptions{Passive: true})

	ev := doc.DispatchPointer(card, dom.EventTouchMove, 0, 0, 1)
	if !sawPassive {
		t.Error("listener did not observe the passive flag during dispatch")
	}
	if ev.DefaultPrevented() {
		t.Error("PreventDefault from a passive listener took effect")
	}
}

func TestDispatchEvent_DoesNotBubble(t *testing.T) {
	doc := memdom.NewDocument()
	tabs := doc.CreateElement("paper-tabs")
	doc.Body().AppendChild(tabs)
	tab := doc.CreateElement("paper-tab")
	tabs.AppendChild(tab)

	tabClicks, parentClicks := 0, 0
	tab.AddListener(dom.EventClick, func(*dom.Event) { tabClicks++ }, dom.ListenerOptions{})
	tabs.AddListener(dom.EventClick, func(*dom.Event) { parentClicks++ }, dom.ListenerOptions{})

	if ok := tab.DispatchEvent(dom.NewClick()); !ok {
		t.Error("DispatchEvent = false without PreventDefault")
	}
	if tabClicks != 1 {
		t.Errorf("target listener fired %d times, want 1", tabClicks)
	}
	if parentClicks != 0 {
		t.Errorf("parent listener fired %d times for a non-bubbling event", parentClicks)
	}
}

func TestDispatchEvent_ReportsPreventDefault(t *testing.T) {
	doc := memdom.NewDocument()
	tab := doc.CreateElement("paper-tab")
	doc.Body().AppendChild(tab)

	tab.AddListener(dom.EventClick, func(ev *dom.Event) {
		ev.PreventDefault()
	}, dom.ListenerOptions{})

	ev := dom.NewClick()
	if ok := tab.DispatchEvent(ev); ok {
		t.Error("DispatchEvent = true after PreventDefault")
	}
	if ev.Target != dom.Element(tab) {
		t.Errorf("Target = %v, want the tab", ev.Target)
	}
	if len(ev.ComposedPath()) == 0 || ev.ComposedPath()[0] != dom.Element(tab) {
		t.Error("composed path not populated for a direct dispatch")
	}
}
