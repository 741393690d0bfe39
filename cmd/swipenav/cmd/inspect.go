package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MarkGodwin/hass-swipe-navigation/cmd/swipenav/internal/scenario"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/config"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/logging"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/pageobject"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/swipe"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/swipetest"
)

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Show effective settings and resolver state",
		Long: `Parse the scenario's settings object through the real configuration
path and print the resulting snapshot, then build the dashboard, report
which resolver nodes can be found in it and which tabs a swipe in each
direction would reach from the active tab.

Flags:
  --json   Emit the settings snapshot as JSON`,
		Usage: "swipenav inspect <scenario.yaml> [--json]",
		Run:   runInspect,
	})
}

type settingsView struct {
	Enabled           bool    `json:"enabled"`
	MouseSwipe        bool    `json:"mouse_swipe"`
	Animation         string  `json:"animation"`
	AnimationDuration string  `json:"animation_duration"`
	SwipeFraction     float64 `json:"swipe_fraction"`
	Wrap              bool    `json:"wrap"`
	SkipHidden        bool    `json:"skip_hidden"`
	SkipTabs          []int   `json:"skip_tabs"`
	PreventDefault    bool    `json:"prevent_default"`
	LogLevel          string  `json:"log_level"`
}

func runInspect(args []string) error {
	var jsonOut bool
	var rest []string
	for _, arg := range args {
		if arg == "--json" {
			jsonOut = true
			continue
		}
		rest = append(rest, arg)
	}
	if len(rest) == 0 {
		return fmt.Errorf("scenario file is required\n\nUsage: swipenav inspect <scenario.yaml>")
	}

	sc, err := scenario.Load(rest[0])
	if err != nil {
		return err
	}

	log := logging.New(logging.DefaultConfig())
	settings, err := config.Parse(sc.Settings, logging.WithComponent(log, "config"))
	if err != nil {
		return err
	}

	view := settingsView{
		Enabled:           settings.Enabled,
		MouseSwipe:        settings.MouseSwipe,
		Animation:         settings.Animation.String(),
		AnimationDuration: settings.AnimationDuration.String(),
		SwipeFraction:     settings.SwipeFraction,
		Wrap:              settings.Wrap,
		SkipHidden:        settings.SkipHidden,
		SkipTabs:          settings.SkipTabs,
		PreventDefault:    settings.PreventDefault,
		LogLevel:          settings.LogLevel.String(),
	}

	if jsonOut {
		out, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		fmt.Println("Effective settings:")
		fmt.Printf("  enabled            %v\n", view.Enabled)
		fmt.Printf("  mouse swipe        %v\n", view.MouseSwipe)
		fmt.Printf("  animation          %s\n", view.Animation)
		fmt.Printf("  animation duration %s\n", view.AnimationDuration)
		fmt.Printf("  swipe fraction     %g\n", view.SwipeFraction)
		fmt.Printf("  wrap               %v\n", view.Wrap)
		fmt.Printf("  skip hidden        %v\n", view.SkipHidden)
		fmt.Printf("  skip tabs          %s\n", formatSkipTabs(view.SkipTabs))
		fmt.Printf("  prevent default    %v\n", view.PreventDefault)
		fmt.Printf("  log level          %s\n", view.LogLevel)
	}

	board := swipetest.NewDashboard(boardTabs(sc), sc.Dashboard.Active)
	if sc.Screen.Width > 0 {
		board.Doc.SetInnerWidth(sc.Screen.Width)
	}
	if sc.Screen.RTL {
		board.SetRTL(true)
	}
	pages := pageobject.NewRegistry(board.Doc, logging.WithComponent(log, "pageobject"))

	fmt.Println()
	fmt.Println("Resolver state:")
	resolvers := []struct {
		name string
		po   *pageobject.PageObject
	}{
		{"shell", pages.Shell},
		{"main", pages.Main},
		{"panel router", pages.PanelRouter},
		{"panel", pages.Panel},
		{"dashboard root", pages.DashboardRoot},
		{"layout", pages.Layout},
		{"view", pages.View},
		{"tab strip", pages.TabStrip},
	}
	for _, r := range resolvers {
		status := "missing"
		if r.po.Node() != nil {
			status = "found"
		}
		fmt.Printf("  %-15s %-28s %s\n", r.name, r.po.String(), status)
	}

	fmt.Println()
	fmt.Println("Navigation from active tab:")
	strip := pages.TabStrip.Node()
	if strip == nil {
		fmt.Println("  tab strip unresolved")
		return nil
	}
	active := swipe.ActiveTab(strip)
	if active < 0 {
		fmt.Println("  no active tab")
		return nil
	}
	fmt.Printf("  %-12s %d %s\n", "active", active, tabLabel(sc, active))

	forward, back := 1, -1
	if strip.ComputedStyle("direction") == "rtl" {
		forward, back = back, forward
	}
	for _, dir := range []struct {
		gesture string
		step    int
	}{{"swipe left", forward}, {"swipe right", back}} {
		index, _ := swipe.AdjacentTab(strip, active, dir.step, settings)
		if index < 0 {
			fmt.Printf("  %-12s none\n", dir.gesture)
			continue
		}
		fmt.Printf("  %-12s %d %s\n", dir.gesture, index, tabLabel(sc, index))
	}
	return nil
}

func formatSkipTabs(tabs []int) string {
	if len(tabs) == 0 {
		return "none"
	}
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		parts[i] = fmt.Sprintf("%d", t)
	}
	return strings.Join(parts, ", ")
}
