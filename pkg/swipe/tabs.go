package swipe

import (
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/config"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
)

// activeTabClass marks the currently selected child of the tab strip.
const activeTabClass = "iron-selected"

func (m *Manager) nextTab(tabs dom.Element, step int, settings config.Settings) (int, dom.Element) {
	active := ActiveTab(tabs)
	if active < 0 {
		m.log.Warn().Msg("active tab not found")
		return -1, nil
	}
	return AdjacentTab(tabs, active, step, settings)
}

// ActiveTab returns the index of the tab strip's selected child, or -1 when
// no child carries the selection class.
func ActiveTab(tabs dom.Element) int {
	for i, child := range tabs.Children() {
		if child.HasClass(activeTabClass) {
			return i
		}
	}
	return -1
}

// AdjacentTab searches the tab strip for the nearest eligible tab from
// active in the given direction (step ±1). It steps by one index at a
// time, wrapping at the edges only when configured, and skips tabs that
// are in the skip list or, when configured, rendered with display none.
// The search is cycle-safe: it gives up after one full cycle, so
// degenerate strips (every tab skipped, a single tab) terminate with no
// target, returning -1 and nil.
func AdjacentTab(tabs dom.Element, active, step int, settings config.Settings) (int, dom.Element) {
	children := tabs.Children()
	index := active
	for remaining := len(children); remaining > 0; remaining-- {
		index += step
		if index < 0 {
			if !settings.Wrap {
				return -1, nil
			}
			index = len(children) - 1
		} else if index >= len(children) {
			if !settings.Wrap {
				return -1, nil
			}
			index = 0
		}
		if index == active {
			return -1, nil
		}
		if settings.SkipsTab(index) {
			continue
		}
		if settings.SkipHidden && children[index].ComputedStyle("display") == "none" {
			continue
		}
		return index, children[index]
	}
	return -1, nil
}
