package swipetest

import (
	"fmt"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/memdom"
)

// Tab describes one entry of the dashboard's tab strip.
type Tab struct {
	Label  string
	Hidden bool
}

// Gesture describes one scripted pointer interaction against the view
// content. Moves are interpolated linearly between the endpoints.
type Gesture struct {
	FromX, FromY float64
	ToX, ToY     float64
	Steps        int
	Mouse        bool
	Fingers      int
}

// Dashboard is an in-memory document shaped like the host application:
// the full shell-to-layout nesting with its shadow boundaries, a tab strip
// whose tabs react to clicks the way the host's tab bar does, and helpers
// that replay the host's characteristic DOM churn.
type Dashboard struct {
	Doc     *memdom.Document
	Shell   *memdom.Element
	Main    *memdom.Element
	Router  *memdom.Element
	Panel   *memdom.Element
	HuiRoot *memdom.Element
	Layout  *memdom.Element
	View    *memdom.Element
	Card    *memdom.Element
	Tabs    *memdom.Element

	// TabElems holds the tab strip children in index order. Navigated
	// records every tab activation, including clicks the host UI would
	// trigger itself.
	TabElems  []*memdom.Element
	Navigated []int

	panelShadow *memdom.ShadowRoot
	huiShadow   *memdom.ShadowRoot
	spec        []Tab
	active      int
}

// NewDashboard builds the document with the given tabs, activating the tab
// at index active.
func NewDashboard(tabs []Tab, active int) *Dashboard {
	d := &Dashboard{
		Doc:    memdom.NewDocument(),
		spec:   tabs,
		active: active,
	}

	d.Shell = d.Doc.CreateElement("home-assistant")
	d.Doc.Body().AppendChild(d.Shell)
	shellShadow := d.Shell.AttachShadow()

	d.Main = d.Doc.CreateElement("home-assistant-main")
	shellShadow.AppendChild(d.Main)
	mainShadow := d.Main.AttachShadow()

	d.Router = d.Doc.CreateElement("partial-panel-resolver")
	mainShadow.AppendChild(d.Router)

	d.Panel = d.Doc.CreateElement("ha-panel-lovelace")
	d.Router.AppendChild(d.Panel)
	d.panelShadow = d.Panel.AttachShadow()

	d.buildDashboardRoot()
	return d
}

// buildDashboardRoot creates a fresh hui-root subtree under the panel's
// shadow root.
func (d *Dashboard) buildDashboardRoot() {
	d.HuiRoot = d.Doc.CreateElement("hui-root")
	d.huiShadow = d.HuiRoot.AttachShadow()
	d.buildLayout()
	d.panelShadow.AppendChild(d.HuiRoot)
}

// buildLayout creates a fresh layout subtree, with the view and the tab
// strip, under the current hui-root's shadow root.
func (d *Dashboard) buildLayout() {
	d.Layout = d.Doc.CreateElement("ha-app-layout")

	d.Tabs = d.Doc.CreateElement("paper-tabs")
	d.TabElems = d.TabElems[:0]
	for i, tab := range d.spec {
		el := d.Doc.CreateElement("paper-tab")
		el.SetText(tab.Label)
		if tab.Hidden {
			el.SetAttr("hidden", "")
		}
		if i == d.active {
			el.AddClass("iron-selected")
		}
		index := i
		el.AddListener(dom.EventClick, func(*dom.Event) {
			d.ActivateTab(index)
		}, dom.ListenerOptions{})
		d.Tabs.AppendChild(el)
		d.TabElems = append(d.TabElems, el)
	}

	d.View = d.Doc.CreateElement("div")
	d.View.SetAttr("id", "view")
	d.Card = d.Doc.CreateElement("hui-card")
	d.View.AppendChild(d.Card)

	d.Layout.AppendChild(d.Tabs)
	d.Layout.AppendChild(d.View)
	d.huiShadow.AppendChild(d.Layout)
}

// ActivateTab moves the selected class to the given tab and swaps the view
// content, the way the host reacts to a tab click.
func (d *Dashboard) ActivateTab(index int) {
	for i, tab := range d.TabElems {
		if i == index {
			tab.AddClass("iron-selected")
		} else {
			tab.RemoveClass("iron-selected")
		}
	}
	d.active = index
	d.Navigated = append(d.Navigated, index)

	d.Card = d.Doc.CreateElement("hui-card")
	d.Card.SetText(fmt.Sprintf("content %d", index))
	d.View.ReplaceChildren(d.Card)
}

// ActiveTab returns the index of the currently selected tab.
func (d *Dashboard) ActiveTab() int {
	return d.active
}

// SetRTL switches the document to right-to-left layout.
func (d *Dashboard) SetRTL(rtl bool) {
	if rtl {
		d.Doc.SetDirection("rtl")
	} else {
		d.Doc.SetDirection("")
	}
}

// SetTabHidden toggles a tab's hidden attribute in place.
func (d *Dashboard) SetTabHidden(index int, hidden bool) {
	if hidden {
		d.TabElems[index].SetAttr("hidden", "")
	} else {
		d.TabElems[index].RemoveAttr("hidden")
	}
}

// ReplaceLayout discards the layout subtree and rebuilds it, preserving
// the active tab, the way the host re-renders a dashboard in place.
func (d *Dashboard) ReplaceLayout() {
	old := d.Layout
	d.Doc.Batch(func() {
		d.huiShadow.RemoveChild(old)
		d.buildLayout()
	})
}

// ReplaceDashboardRoot swaps the whole hui-root subtree for a fresh one,
// the way the host swaps dashboards.
func (d *Dashboard) ReplaceDashboardRoot() {
	old := d.HuiRoot
	d.Doc.Batch(func() {
		d.panelShadow.RemoveChild(old)
		d.buildDashboardRoot()
	})
}

// Perform replays one pointer interaction targeted at the view content.
func (d *Dashboard) Perform(g Gesture) {
	steps := g.Steps
	if steps < 1 {
		steps = 1
	}
	start, move, end := dom.EventTouchStart, dom.EventTouchMove, dom.EventTouchEnd
	fingers := g.Fingers
	if fingers < 1 {
		fingers = 1
	}
	if g.Mouse {
		start, move, end = dom.EventMouseDown, dom.EventMouseMove, dom.EventMouseUp
		fingers = 0
	}

	d.Doc.DispatchPointer(d.Card, start, g.FromX, g.FromY, fingers)
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		x := g.FromX + (g.ToX-g.FromX)*f
		y := g.FromY + (g.ToY-g.FromY)*f
		d.Doc.DispatchPointer(d.Card, move, x, y, fingers)
	}
	d.Doc.DispatchPointer(d.Card, end, g.ToX, g.ToY, fingers)
}

// Swipe performs a simple one-finger horizontal touch swipe across the
// view.
func (d *Dashboard) Swipe(fromX, toX float64) {
	d.Perform(Gesture{FromX: fromX, FromY: 300, ToX: toX, ToY: 300, Steps: 3})
}
