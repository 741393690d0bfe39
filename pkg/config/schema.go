package config

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/errors"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/logging"
)

// rawSchema is the recognized shape of the host's settings sub-object. All
// fields are optional; pointer fields left nil fall back to defaults.
type rawSchema struct {
	Enable           *bool    `mapstructure:"enable"`
	EnableMouseSwipe *bool    `mapstructure:"enable_mouse_swipe"`
	Animate          *string  `mapstructure:"animate"`
	AnimateDuration  *float64 `mapstructure:"animate_duration"`
	SwipeAmount      *float64 `mapstructure:"swipe_amount"`
	Wrap             *bool    `mapstructure:"wrap"`
	SkipHidden       *bool    `mapstructure:"skip_hidden"`
	SkipTabs         *string  `mapstructure:"skip_tabs"`
	PreventDefault   *bool    `mapstructure:"prevent_default"`
	LoggerLevel      *string  `mapstructure:"logger_level"`
}

// Parse validates a raw settings value into a fully-populated snapshot.
//
// A nil raw value (the host exposes no settings sub-object) yields the
// defaults. A raw value that is not an object at all is rejected with an
// error and no snapshot. Individual fields of the wrong type are dropped
// with a warning and take their defaults; unknown fields are ignored.
func Parse(raw any, log zerolog.Logger) (Settings, error) {
	s := Defaults()
	if raw == nil {
		return s, nil
	}

	obj, ok := asObject(raw)
	if !ok {
		return s, errors.Errorf("config.Parse", errors.KindConfig,
			"settings value is not an object: %T", raw)
	}

	var sch rawSchema
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &sch})
	if err != nil {
		return s, errors.E("config.Parse", errors.KindConfig, err)
	}
	if err := dec.Decode(obj); err != nil {
		// Field-level type mismatches: the offending fields keep their
		// defaults, everything else decoded.
		log.Warn().Err(err).Msg("ignoring mistyped settings fields")
	}

	if sch.Enable != nil {
		s.Enabled = *sch.Enable
	}
	if sch.EnableMouseSwipe != nil {
		s.MouseSwipe = *sch.EnableMouseSwipe
	}
	if sch.Animate != nil {
		if mode, err := ParseAnimationMode(*sch.Animate); err != nil {
			log.Warn().Err(err).Msg("ignoring animate setting")
		} else {
			s.Animation = mode
		}
	}
	if sch.AnimateDuration != nil {
		if *sch.AnimateDuration < 0 {
			log.Warn().Float64("animate_duration", *sch.AnimateDuration).
				Msg("ignoring negative animate_duration")
		} else {
			s.AnimationDuration = time.Duration(*sch.AnimateDuration * float64(time.Millisecond))
		}
	}
	if sch.SwipeAmount != nil {
		s.SwipeFraction = *sch.SwipeAmount / 100
	}
	if sch.Wrap != nil {
		s.Wrap = *sch.Wrap
	}
	if sch.SkipHidden != nil {
		s.SkipHidden = *sch.SkipHidden
	}
	if sch.SkipTabs != nil {
		s.SkipTabs = parseSkipTabs(*sch.SkipTabs, log)
	}
	if sch.PreventDefault != nil {
		s.PreventDefault = *sch.PreventDefault
	}
	if sch.LoggerLevel != nil {
		if level, err := logging.ParseLevel(*sch.LoggerLevel); err != nil {
			log.Warn().Err(err).Msg("ignoring logger_level setting")
		} else {
			s.LogLevel = level
		}
	}

	return s, nil
}

// asObject accepts the map shapes hosts hand over for the settings
// sub-object, normalizing interface-keyed maps.
func asObject(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// parseSkipTabs parses a comma-separated list of tab indices, stripping all
// whitespace first. Invalid or duplicate entries are dropped.
func parseSkipTabs(raw string, log zerolog.Logger) []int {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if stripped == "" {
		return nil
	}

	var out []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(stripped, ",") {
		index, err := strconv.Atoi(part)
		if err != nil || index < 0 {
			log.Warn().Str("entry", part).Msg("ignoring invalid skip_tabs entry")
			continue
		}
		if seen[index] {
			continue
		}
		seen[index] = true
		out = append(out, index)
	}
	return out
}
