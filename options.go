package gesture

import (
	"math"
	"time"
)

// Option names recognized by the Recognizer.
const (
	OptPreventDefault    = "prevent_default"
	OptHold              = "hold"
	OptHoldTimeout       = "hold_timeout"
	OptTap               = "tap"
	OptTapDouble         = "tap_double"
	OptTapDoubleStrict   = "tap_double_strict"
	OptTapMaxInterval    = "tap_max_interval"
	OptTapMaxDistance    = "tap_max_distance"
	OptTapDoubleDistance = "tap_double_distance"
	OptSwipe             = "swipe"
	OptSwipeTime         = "swipe_time"
	OptSwipeMinDistance  = "swipe_min_distance"
	OptDrag              = "drag"
	OptDragVertical      = "drag_vertical"
	OptDragHorizontal    = "drag_horizontal"
	OptDragMinDistance   = "drag_min_distance"
	OptTransform         = "transform"
	OptScaleThreshold    = "scale_threshold"
	OptRotationThreshold = "rotation_threshold"
)

// legacyOptionNames maps historical misspellings onto current option names.
var legacyOptionNames = map[string]string{
	"scale_treshold":    OptScaleThreshold,
	"rotation_treshold": OptRotationThreshold,
}

// Options is a flat mapping of option name to value. Durations are in
// milliseconds; distances are in surface units (pixels).
type Options map[string]any

// DefaultOptions returns a fresh copy of the default option set.
func DefaultOptions() Options {
	return Options{
		OptPreventDefault:    false,
		OptHold:              true,
		OptHoldTimeout:       500,
		OptTap:               true,
		OptTapDouble:         true,
		OptTapDoubleStrict:   false,
		OptTapMaxInterval:    300,
		OptTapMaxDistance:    10,
		OptTapDoubleDistance: 20,
		OptSwipe:             true,
		OptSwipeTime:         200,
		OptSwipeMinDistance:  20,
		OptDrag:              true,
		OptDragVertical:      true,
		OptDragHorizontal:    true,
		OptDragMinDistance:   20,
		OptTransform:         true,
		OptScaleThreshold:    0.1,
		OptRotationThreshold: 15,
	}
}

// MergeOptions returns the defaults overlaid with overrides. A key that is
// absent or nil in overrides keeps its default. Keys without a default are
// copied through untouched.
func MergeOptions(overrides Options) Options {
	out := DefaultOptions()
	for k, v := range overrides {
		if v == nil {
			continue
		}
		if canon, ok := legacyOptionNames[k]; ok {
			if _, set := overrides[canon]; set {
				continue
			}
			k = canon
		}
		out[k] = v
	}
	return out
}

// Clone returns a shallow copy of o.
func (o Options) Clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Bool reads a boolean option, falling back to the default when the stored
// value is missing or not a bool.
func (o Options) Bool(name string) bool {
	if b, ok := o[name].(bool); ok {
		return b
	}
	b, _ := defaultOptions[name].(bool)
	return b
}

// Float reads a numeric option, falling back to the default when the stored
// value is missing or not numeric.
func (o Options) Float(name string) float64 {
	if f, ok := toFloat(o[name]); ok {
		return f
	}
	f, _ := toFloat(defaultOptions[name])
	return f
}

// Duration reads a millisecond option as a time.Duration. A stored
// time.Duration is used as is.
func (o Options) Duration(name string) time.Duration {
	if d, ok := o[name].(time.Duration); ok {
		return d
	}
	return time.Duration(o.Float(name) * float64(time.Millisecond))
}

var defaultOptions = DefaultOptions()

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case time.Duration:
		return float64(n) / float64(time.Millisecond), true
	}
	return 0, false
}
