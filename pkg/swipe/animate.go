package swipe

import (
	"fmt"
	"math"
	"time"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/config"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
)

// resetView eases the live drag transform back to neutral after a
// discarded swipe. Only the swipe animation mode applies a live transform,
// so there is nothing to reset in the other modes.
func (m *Manager) resetView(settings config.Settings) {
	if settings.Animation != config.AnimationSwipe {
		return
	}
	view := m.pages.View.Node()
	if view == nil {
		return
	}
	m.cancelPending()
	view.SetStyle("transition", "transform 200ms ease-in-out, opacity 200ms ease-in-out")
	view.SetStyle("transform", "")
	view.SetStyle("opacity", "1")
}

// animateTo runs the configured transition and dispatches the tab change.
// The view is left wherever the live drag put it; each mode starts its
// animation from that offset rather than snapping back first.
func (m *Manager) animateTo(tab dom.Element, settings config.Settings) {
	m.cancelPending()

	view := m.pages.View.Node()
	if view == nil {
		m.log.Debug().Msg("view not found, changing tab without animation")
		m.activate(tab)
		return
	}

	d := settings.AnimationDuration
	ms := d.Milliseconds()
	switch settings.Animation {
	case config.AnimationNone:
		m.activate(tab)

	case config.AnimationSwipe:
		// Slide out the way the finger travelled, snap to the far side
		// while the tab switches, then ease the new content in. The snap
		// happens at zero opacity, so it is invisible.
		out := -math.Copysign(m.doc.InnerWidth(), m.deltaX)
		layout := m.pages.Layout.Node()
		if layout != nil {
			layout.SetStyle("overflow", "hidden")
			m.overflowHidden = true
		}
		view.SetStyle("transition", fmt.Sprintf("transform %dms ease-out, opacity %dms ease-out", ms, ms))
		view.SetStyle("opacity", "0")
		view.SetStyle("transform", fmt.Sprintf("translate(%gpx, 0)", out))
		m.schedule(d+10*time.Millisecond, func() {
			view.SetStyle("transition", "")
			view.SetStyle("transform", fmt.Sprintf("translate(%gpx, 0)", -out))
			m.activate(tab)
		})
		m.schedule(d+50*time.Millisecond, func() {
			view.SetStyle("transition", fmt.Sprintf("transform %dms ease-in, opacity %dms ease-in", ms, ms))
			view.SetStyle("transform", "")
			view.SetStyle("opacity", "1")
		})
		m.schedule(2*d+100*time.Millisecond, func() {
			if layout != nil {
				layout.SetStyle("overflow", "")
			}
			m.overflowHidden = false
		})

	case config.AnimationFade:
		view.SetStyle("transition", fmt.Sprintf("opacity %dms ease-out", ms))
		view.SetStyle("opacity", "0")
		m.schedule(d+10*time.Millisecond, func() {
			m.activate(tab)
			// Hold the view invisible with no transition until the
			// ease-in below, so the new content does not pop in early.
			view.SetStyle("transition", "")
			view.SetStyle("opacity", "0")
		})
		m.schedule(d+50*time.Millisecond, func() {
			view.SetStyle("transition", fmt.Sprintf("opacity %dms ease-in", ms))
			view.SetStyle("opacity", "1")
		})
		m.schedule(2*d+100*time.Millisecond, func() {
			view.SetStyle("transition", "")
		})

	case config.AnimationFlip:
		view.SetStyle("transition", fmt.Sprintf("transform %dms ease-out, opacity %dms ease-out", ms, ms))
		view.SetStyle("transform", "rotatey(90deg)")
		view.SetStyle("opacity", "0.25")
		m.schedule(d+10*time.Millisecond, func() {
			m.activate(tab)
		})
		m.schedule(d+50*time.Millisecond, func() {
			view.SetStyle("transform", "")
			view.SetStyle("opacity", "1")
		})
		m.schedule(2*d+100*time.Millisecond, func() {
			view.SetStyle("transition", "")
		})

	default:
		panic(fmt.Sprintf("unhandled animation mode %v", settings.Animation))
	}
}

func (m *Manager) schedule(after time.Duration, fn func()) {
	m.pending = append(m.pending, m.clock.AfterFunc(after, fn))
}

// cancelPending stops the previous tab change's scheduled steps before a
// new sequence starts. Two live timer chains would stomp each other's
// transform and opacity writes, so the newer gesture wins.
func (m *Manager) cancelPending() {
	for _, timer := range m.pending {
		timer.Stop()
	}
	m.pending = nil
	if m.overflowHidden {
		if layout := m.pages.Layout.Node(); layout != nil {
			layout.SetStyle("overflow", "")
		}
		m.overflowHidden = false
	}
}

// activate dispatches a synthetic, non-bubbling click on the target tab.
// The host's own tab handling performs the actual navigation.
func (m *Manager) activate(tab dom.Element) {
	tab.DispatchEvent(dom.NewClick())
}
