// Package scenario loads the YAML scenario files the swipenav CLI
// replays: a dashboard description, a raw settings object and a scripted
// gesture sequence.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/errors"
)

// Scenario is one replayable session.
type Scenario struct {
	Screen    Screen         `yaml:"screen"`
	Dashboard Dashboard      `yaml:"dashboard"`
	Settings  map[string]any `yaml:"settings"`
	Gestures  []Gesture      `yaml:"gestures"`
}

// Screen describes the simulated viewport.
type Screen struct {
	Width float64 `yaml:"width,omitempty"`
	RTL   bool    `yaml:"rtl,omitempty"`
}

// Dashboard describes the tab strip to build.
type Dashboard struct {
	Tabs   []Tab `yaml:"tabs"`
	Active int   `yaml:"active,omitempty"`
}

// Tab is one tab strip entry.
type Tab struct {
	Label  string `yaml:"label,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`
}

// Gesture is one scripted pointer interaction. AdvanceMS advances the
// simulated clock after the gesture, letting scheduled animation steps
// run; when omitted, the runner advances far enough for a full animation
// to finish, and an explicit 0 keeps the clock frozen so overlapping
// gestures can be scripted. ReplaceLayout replays the host's layout
// re-render before the gesture starts.
type Gesture struct {
	FromX         float64 `yaml:"from_x"`
	FromY         float64 `yaml:"from_y"`
	ToX           float64 `yaml:"to_x"`
	ToY           float64 `yaml:"to_y"`
	Steps         int     `yaml:"steps,omitempty"`
	Mouse         bool    `yaml:"mouse,omitempty"`
	Fingers       int     `yaml:"fingers,omitempty"`
	AdvanceMS     *int    `yaml:"advance_ms,omitempty"`
	ReplaceLayout bool    `yaml:"replace_layout,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E("scenario.Load", errors.KindScenario,
			fmt.Errorf("failed to read scenario: %w", err))
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.E("scenario.Load", errors.KindScenario,
			fmt.Errorf("failed to parse scenario: %w", err))
	}

	if err := sc.Validate(); err != nil {
		return nil, errors.E("scenario.Load", errors.KindScenario, err)
	}
	return &sc, nil
}

// Validate checks the parts the runner cannot default sensibly. The
// settings object is deliberately not validated here; it feeds the same
// tolerant parsing path the host configuration does.
func (s *Scenario) Validate() error {
	if len(s.Dashboard.Tabs) == 0 {
		return fmt.Errorf("dashboard needs at least one tab")
	}
	if s.Dashboard.Active < 0 || s.Dashboard.Active >= len(s.Dashboard.Tabs) {
		return fmt.Errorf("active tab %d out of range (have %d tabs)", s.Dashboard.Active, len(s.Dashboard.Tabs))
	}
	if s.Screen.Width < 0 {
		return fmt.Errorf("screen width cannot be negative (got %g)", s.Screen.Width)
	}
	for i, g := range s.Gestures {
		if g.Steps < 0 {
			return fmt.Errorf("gesture %d: steps cannot be negative", i)
		}
		if g.Fingers < 0 {
			return fmt.Errorf("gesture %d: fingers cannot be negative", i)
		}
		if g.AdvanceMS != nil && *g.AdvanceMS < 0 {
			return fmt.Errorf("gesture %d: advance_ms cannot be negative", i)
		}
	}
	return nil
}
