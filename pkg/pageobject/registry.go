package pageobject

import (
	"github.com/rs/zerolog"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
)

// Registry is the fixed resolver tree mirroring the dashboard's expected
// DOM nesting. It is built once at startup and never re-wired; only the
// cached nodes underneath churn. Selector lists carry the alternate tag
// names the host has used across versions.
type Registry struct {
	Shell         *PageObject // outer application shell
	Main          *PageObject // main region, inside the shell's shadow root
	PanelRouter   *PageObject // panel router, inside the main region's shadow root
	Panel         *PageObject // dashboard panel
	DashboardRoot *PageObject // dashboard root element, inside the panel's shadow root
	Layout        *PageObject // layout container, inside the dashboard root's shadow root
	View          *PageObject // content view under the layout
	TabStrip      *PageObject // tab strip under the layout
}

// NewRegistry wires the resolver tree against doc.
func NewRegistry(doc dom.Document, log zerolog.Logger) *Registry {
	shell := NewRoot(doc, []string{"home-assistant"}, log)
	main := New(shell, []string{"home-assistant-main"}, true, log)
	router := New(main, []string{"partial-panel-resolver"}, true, log)
	panel := New(router, []string{"ha-panel-lovelace"}, false, log)
	dashboard := New(panel, []string{"hui-root"}, true, log)
	layout := New(dashboard, []string{"ha-app-layout", "div#layout"}, true, log)

	return &Registry{
		Shell:         shell,
		Main:          main,
		PanelRouter:   router,
		Panel:         panel,
		DashboardRoot: dashboard,
		Layout:        layout,
		View:          New(layout, []string{"#view"}, false, log),
		TabStrip:      New(layout, []string{"paper-tabs", "ha-tabs"}, false, log),
	}
}
