package swipetest_test

import (
	"testing"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/swipetest"
)

// --- Dashboard harness tests ---

func threeTabs() []swipetest.Tab {
	return []swipetest.Tab{{Label: "Home"}, {Label: "Energy"}, {Label: "Climate"}}
}

func TestDashboard_Structure(t *testing.T) {
	b := swipetest.NewDashboard(threeTabs(), 1)

	if got := b.Doc.QuerySelector("home-assistant"); got != dom.Element(b.Shell) {
		t.Error("shell not reachable from the document")
	}
	if b.Shell.ShadowRoot() == nil || b.Main.ShadowRoot() == nil {
		t.Fatal("shell or main is missing its shadow root")
	}
	if got := b.Shell.ShadowRoot().QuerySelector("home-assistant-main"); got != dom.Element(b.Main) {
		t.Error("main not reachable through the shell shadow")
	}
	if !b.Layout.IsConnected() || !b.View.IsConnected() || !b.Tabs.IsConnected() {
		t.Error("layout subtree not connected")
	}

	if len(b.TabElems) != 3 {
		t.Fatalf("len(TabElems) = %d, want 3", len(b.TabElems))
	}
	if got := b.TabElems[1].Text(); got != "Energy" {
		t.Errorf("tab 1 label = %q, want Energy", got)
	}
	if !b.TabElems[1].HasClass("iron-selected") {
		t.Error("tab 1 should start selected")
	}
	if b.TabElems[0].HasClass("iron-selected") {
		t.Error("tab 0 should not start selected")
	}
}

func TestDashboard_HiddenTabAttribute(t *testing.T) {
	tabs := []swipetest.Tab{{Label: "Home"}, {Label: "Ghost", Hidden: true}}
	b := swipetest.NewDashboard(tabs, 0)

	if got := b.TabElems[1].ComputedStyle("display"); got != "none" {
		t.Errorf("hidden tab display = %q, want none", got)
	}

	b.SetTabHidden(1, false)
	if got := b.TabElems[1].ComputedStyle("display"); got == "none" {
		t.Error("unhidden tab still computes display none")
	}
}

func TestDashboard_TabClickActivates(t *testing.T) {
	b := swipetest.NewDashboard(threeTabs(), 0)

	b.TabElems[2].DispatchEvent(dom.NewClick())

	if got := b.ActiveTab(); got != 2 {
		t.Errorf("active tab = %d, want 2", got)
	}
	if len(b.Navigated) != 1 || b.Navigated[0] != 2 {
		t.Errorf("Navigated = %v, want [2]", b.Navigated)
	}
	if !b.TabElems[2].HasClass("iron-selected") || b.TabElems[0].HasClass("iron-selected") {
		t.Error("selected class did not move")
	}
	if got := b.Card.Text(); got != "content 2" {
		t.Errorf("card content = %q, want content 2", got)
	}
}

func TestDashboard_ReplaceLayoutPreservesActive(t *testing.T) {
	b := swipetest.NewDashboard(threeTabs(), 1)
	oldLayout := b.Layout

	b.ReplaceLayout()

	if oldLayout.IsConnected() {
		t.Error("old layout still connected")
	}
	if !b.Layout.IsConnected() {
		t.Error("new layout not connected")
	}
	if b.Layout == oldLayout {
		t.Error("layout was not rebuilt")
	}
	if !b.TabElems[1].HasClass("iron-selected") {
		t.Error("active tab not preserved across the rebuild")
	}
}

func TestDashboard_ReplaceDashboardRootRebuildsShadow(t *testing.T) {
	b := swipetest.NewDashboard(threeTabs(), 0)
	oldRoot := b.HuiRoot

	b.ReplaceDashboardRoot()

	if oldRoot.IsConnected() {
		t.Error("old hui-root still connected")
	}
	if got := b.Panel.ShadowRoot().QuerySelector("hui-root"); got != dom.Element(b.HuiRoot) {
		t.Error("new hui-root not reachable through the panel shadow")
	}
}

func TestDashboard_PerformDispatchesSequence(t *testing.T) {
	b := swipetest.NewDashboard(threeTabs(), 0)

	var types []dom.EventType
	var xs []float64
	for _, et := range []dom.EventType{dom.EventTouchStart, dom.EventTouchMove, dom.EventTouchEnd} {
		et := et
		b.Layout.AddListener(et, func(ev *dom.Event) {
			types = append(types, et)
			xs = append(xs, ev.X)
		}, dom.ListenerOptions{Passive: true})
	}

	b.Perform(swipetest.Gesture{FromX: 400, FromY: 300, ToX: 100, ToY: 300, Steps: 3})

	want := []dom.EventType{
		dom.EventTouchStart,
		dom.EventTouchMove, dom.EventTouchMove, dom.EventTouchMove,
		dom.EventTouchEnd,
	}
	if len(types) != len(want) {
		t.Fatalf("dispatched %d events, want %d", len(types), len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
	if xs[0] != 400 || xs[len(xs)-1] != 100 {
		t.Errorf("endpoint coordinates = %g..%g, want 400..100", xs[0], xs[len(xs)-1])
	}
	if xs[1] != 300 || xs[2] != 200 {
		t.Errorf("interpolated moves = %v, want evenly spaced", xs[1:3])
	}
}

func TestDashboard_MouseGestureUsesMouseEvents(t *testing.T) {
	b := swipetest.NewDashboard(threeTabs(), 0)

	mouse, touch := 0, 0
	b.Layout.AddListener(dom.EventMouseDown, func(*dom.Event) { mouse++ }, dom.ListenerOptions{Passive: true})
	b.Layout.AddListener(dom.EventTouchStart, func(*dom.Event) { touch++ }, dom.ListenerOptions{Passive: true})

	b.Perform(swipetest.Gesture{FromX: 400, ToX: 100, Steps: 1, Mouse: true})

	if mouse != 1 || touch != 0 {
		t.Errorf("mouse starts = %d, touch starts = %d, want 1 and 0", mouse, touch)
	}
}

// --- ScriptedSource tests ---

func TestScriptedSource_StartsUnready(t *testing.T) {
	src := swipetest.NewScriptedSource()

	if _, ok := src.Raw(); ok {
		t.Error("fresh source reports ready")
	}
	if got := src.Reads(); got != 1 {
		t.Errorf("Reads = %d, want 1", got)
	}
}

func TestScriptedSource_SetRawSignalsSubscribers(t *testing.T) {
	src := swipetest.NewScriptedSource()

	signals := 0
	cancel := src.Subscribe(func() { signals++ })

	src.SetRaw(map[string]any{"enable": true})
	if signals != 1 {
		t.Fatalf("signals = %d after SetRaw, want 1", signals)
	}
	raw, ok := src.Raw()
	if !ok {
		t.Fatal("source not ready after SetRaw")
	}
	if m, isMap := raw.(map[string]any); !isMap || m["enable"] != true {
		t.Errorf("Raw = %v, want the stored object", raw)
	}

	cancel()
	src.SetRaw(map[string]any{})
	if signals != 1 {
		t.Errorf("signals = %d after cancel, want still 1", signals)
	}
}

func TestScriptedSource_SetUnreadyIsSilent(t *testing.T) {
	src := swipetest.NewScriptedSource()
	src.SetRaw(map[string]any{})

	signals := 0
	src.Subscribe(func() { signals++ })

	src.SetUnready()
	if signals != 0 {
		t.Errorf("signals = %d after SetUnready, want 0", signals)
	}
	if _, ok := src.Raw(); ok {
		t.Error("source still ready after SetUnready")
	}
}
