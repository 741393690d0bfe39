// Package config parses the host's untyped swipe navigation settings object
// into immutable snapshots and notifies observers of effective changes.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// AnimationMode selects the visual style of a tab change.
type AnimationMode int

const (
	// AnimationNone switches tabs with no transition.
	AnimationNone AnimationMode = iota
	// AnimationSwipe slides the view out and back in horizontally.
	AnimationSwipe
	// AnimationFade fades the view out and back in.
	AnimationFade
	// AnimationFlip rotates the view out and back in.
	AnimationFlip
)

// String returns a human-readable representation of the animation mode.
func (m AnimationMode) String() string {
	switch m {
	case AnimationNone:
		return "none"
	case AnimationSwipe:
		return "swipe"
	case AnimationFade:
		return "fade"
	case AnimationFlip:
		return "flip"
	default:
		return fmt.Sprintf("AnimationMode(%d)", int(m))
	}
}

// ParseAnimationMode maps a settings-object animation name to its mode.
func ParseAnimationMode(s string) (AnimationMode, error) {
	switch s {
	case "none":
		return AnimationNone, nil
	case "swipe":
		return AnimationSwipe, nil
	case "fade":
		return AnimationFade, nil
	case "flip":
		return AnimationFlip, nil
	default:
		return AnimationNone, fmt.Errorf("unknown animation %q", s)
	}
}

// Settings is one immutable, fully-populated configuration snapshot.
// Callers must not modify SkipTabs.
type Settings struct {
	// Enabled is the master on/off switch.
	Enabled bool

	// MouseSwipe allows swipes performed with a mouse.
	MouseSwipe bool

	// Animation is the tab-change animation style.
	Animation AnimationMode

	// AnimationDuration is the base duration of one animation phase.
	AnimationDuration time.Duration

	// SwipeFraction is the minimum horizontal travel, as a fraction of
	// screen width, for a swipe to count as intentional.
	SwipeFraction float64

	// Wrap allows navigation past the first or last tab to the opposite
	// end.
	Wrap bool

	// SkipHidden excludes tabs computed as display:none from navigation.
	SkipHidden bool

	// SkipTabs lists tab indices excluded from navigation, in
	// first-occurrence order without duplicates.
	SkipTabs []int

	// PreventDefault suppresses the host's native handling of pointer
	// moves once a swipe is horizontally dominant.
	PreventDefault bool

	// LogLevel is the diagnostic level requested by the host settings.
	LogLevel zerolog.Level
}

// Defaults returns the snapshot in force before any host settings are read.
func Defaults() Settings {
	return Settings{
		Enabled:           true,
		MouseSwipe:        false,
		Animation:         AnimationNone,
		AnimationDuration: 200 * time.Millisecond,
		SwipeFraction:     0.15,
		Wrap:              true,
		SkipHidden:        true,
		SkipTabs:          nil,
		PreventDefault:    false,
		LogLevel:          zerolog.WarnLevel,
	}
}

// Equal reports whether two snapshots are deeply equal.
func (s Settings) Equal(o Settings) bool {
	return s.Enabled == o.Enabled &&
		s.MouseSwipe == o.MouseSwipe &&
		s.Animation == o.Animation &&
		s.AnimationDuration == o.AnimationDuration &&
		s.SwipeFraction == o.SwipeFraction &&
		s.Wrap == o.Wrap &&
		s.SkipHidden == o.SkipHidden &&
		slices.Equal(s.SkipTabs, o.SkipTabs) &&
		s.PreventDefault == o.PreventDefault &&
		s.LogLevel == o.LogLevel
}

// SkipsTab reports whether a tab index is in the skip list.
func (s Settings) SkipsTab(index int) bool {
	return slices.Contains(s.SkipTabs, index)
}
