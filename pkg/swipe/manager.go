// Package swipe implements the gesture recognition and tab navigation
// engine. A Manager attaches pointer listeners to the dashboard's layout
// node, tracks one pointer-down-to-pointer-up session at a time, and on a
// completed horizontal swipe picks the next eligible tab and animates the
// transition.
//
// The manager never caches a DOM node across events; every decision point
// asks the resolver registry for the current layout, view, and tab strip
// nodes, so host-driven DOM churn at worst costs one gesture.
package swipe

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/clock"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/config"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/pageobject"
)

// interactiveSelector matches elements a swipe must not start on: the
// gesture belongs to the control itself, not to tab navigation.
const interactiveSelector = "a, button, input, select, textarea, audio, video, " +
	"mwc-button, ha-slider, paper-slider, round-slider, ha-switch, " +
	"ha-textfield, ha-sidebar, swipe-card, hui-map-card"

type state int

const (
	stateIdle state = iota
	stateTracking
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateTracking:
		return "tracking"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Manager is the gesture and navigation engine. It is single-threaded:
// all methods must be called from the host's event loop.
type Manager struct {
	doc   dom.Document
	pages *pageobject.Registry
	store *config.Store
	clock clock.Clock
	log   zerolog.Logger

	state  state
	startX float64
	startY float64
	deltaX float64
	deltaY float64
	moved  bool

	detach         func()
	pending        []clock.Timer
	overflowHidden bool
}

// NewManager creates an engine over the given document, resolver registry
// and settings store. A nil clk uses the system clock.
func NewManager(doc dom.Document, pages *pageobject.Registry, store *config.Store, clk clock.Clock, log zerolog.Logger) *Manager {
	if clk == nil {
		clk = clock.System()
	}
	return &Manager{
		doc:   doc,
		pages: pages,
		store: store,
		clock: clk,
		log:   log,
	}
}

// Arm registers with the layout resolver so the pointer listeners follow
// the layout node across host-driven replacements, then attaches them to
// the current node.
func (m *Manager) Arm() {
	m.pages.Layout.WatchChanges(pageobject.Callbacks{
		OnRefreshed: m.rearm,
		OnRemoved:   m.disarm,
	})
	m.rearm()
}

// Close detaches the listeners, stops watching the layout node and
// cancels any scheduled animation steps.
func (m *Manager) Close() {
	m.pages.Layout.StopWatching()
	m.disarm()
	m.cancelPending()
	m.clearSession()
}

// rearm re-attaches all pointer listeners to the current layout node. The
// previous attachment, if any, is removed first through its single
// cancellation handle.
func (m *Manager) rearm() {
	node := m.pages.Layout.Node()
	m.disarm()
	if node == nil {
		m.log.Debug().Msg("layout node unavailable, listeners not attached")
		return
	}

	// touchmove and mousemove are attached non-passive so an in-progress
	// horizontal swipe can suppress the host's native scroll handling.
	removes := []func(){
		node.AddListener(dom.EventTouchStart, m.pointerStart, dom.ListenerOptions{Passive: true}),
		node.AddListener(dom.EventTouchMove, m.pointerMove, dom.ListenerOptions{}),
		node.AddListener(dom.EventTouchEnd, m.pointerEnd, dom.ListenerOptions{Passive: true}),
		node.AddListener(dom.EventMouseDown, m.pointerStart, dom.ListenerOptions{Passive: true}),
		node.AddListener(dom.EventMouseMove, m.pointerMove, dom.ListenerOptions{}),
		node.AddListener(dom.EventMouseUp, m.pointerEnd, dom.ListenerOptions{Passive: true}),
	}
	m.detach = func() {
		for _, remove := range removes {
			remove()
		}
	}
	m.log.Debug().Msg("pointer listeners attached")
}

func (m *Manager) disarm() {
	if m.detach != nil {
		m.detach()
		m.detach = nil
	}
}

func (m *Manager) pointerStart(ev *dom.Event) {
	settings := m.store.Current()
	if !settings.Enabled {
		return
	}
	if ev.Type.IsTouch() && ev.Touches > 1 {
		// A second contact aborts the whole physical gesture; stray start
		// coordinates from the first contact must not survive it.
		m.log.Debug().Msg("ignoring multi-touch gesture")
		m.clearSession()
		return
	}
	if ev.Type.IsMouse() && !settings.MouseSwipe {
		return
	}
	if m.pathBlocked(ev) {
		m.log.Debug().Msg("ignoring gesture on interactive element")
		return
	}

	m.state = stateTracking
	m.startX = ev.X
	m.startY = ev.Y
	m.deltaX = 0
	m.deltaY = 0
	m.moved = false
}

func (m *Manager) pointerMove(ev *dom.Event) {
	if m.state != stateTracking {
		return
	}
	settings := m.store.Current()
	m.deltaX = m.startX - ev.X
	m.deltaY = m.startY - ev.Y
	m.moved = true

	if settings.Animation == config.AnimationSwipe {
		if view := m.pages.View.Node(); view != nil {
			d := math.Min(math.Abs(m.deltaX), 250)
			offset := (d - d*d/500) / 2
			view.SetStyle("transition", "")
			view.SetStyle("transform", fmt.Sprintf("translate(%gpx, 0)", -math.Copysign(offset, m.deltaX)))
		}
	}
	if settings.PreventDefault && math.Abs(m.deltaX) > math.Abs(m.deltaY) {
		ev.PreventDefault()
	}
}

func (m *Manager) pointerEnd(ev *dom.Event) {
	if m.state != stateTracking {
		return
	}
	defer m.clearSession()
	if !m.moved {
		return
	}

	settings := m.store.Current()
	if math.Abs(m.deltaY) >= math.Abs(m.deltaX) {
		m.log.Debug().Msg("ignoring vertical swipe")
		m.resetView(settings)
		return
	}
	if math.Abs(m.deltaX) < settings.SwipeFraction*m.doc.InnerWidth() {
		m.log.Debug().Float64("deltaX", m.deltaX).Msg("swipe too short")
		m.resetView(settings)
		return
	}

	tabs := m.pages.TabStrip.Node()
	if tabs == nil {
		m.log.Warn().Msg("tab strip not found")
		m.resetView(settings)
		return
	}

	// deltaX is start minus current, so a leftward swipe is positive and
	// advances to the next tab. Right-to-left layouts read the other way.
	step := 1
	if m.deltaX < 0 {
		step = -1
	}
	if tabs.ComputedStyle("direction") == "rtl" {
		step = -step
	}

	index, tab := m.nextTab(tabs, step, settings)
	if tab == nil {
		m.log.Debug().Int("step", step).Msg("no eligible tab in swipe direction")
		m.resetView(settings)
		return
	}
	m.log.Info().Int("tab", index).Msg("swipe detected, changing tab")
	m.animateTo(tab, settings)
}

// pathBlocked walks the event's composed path from the innermost target
// outward, stopping at the dashboard view boundary, and reports whether
// the gesture started on an interactive element.
func (m *Manager) pathBlocked(ev *dom.Event) bool {
	view := m.pages.View.Node()
	for _, el := range ev.ComposedPath() {
		if view != nil && el == view {
			break
		}
		if el.Matches(interactiveSelector) {
			return true
		}
	}
	return false
}

// clearSession resets all tracked coordinates as a unit. A session never
// spans two physical down-to-up interactions.
func (m *Manager) clearSession() {
	m.state = stateIdle
	m.startX = 0
	m.startY = 0
	m.deltaX = 0
	m.deltaY = 0
	m.moved = false
}
