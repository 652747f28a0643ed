package gesture

import (
	"time"

	"github.com/google/uuid"
)

// Point is a single contact location in the surface's coordinate space.
// ID identifies the physical contact for the lifetime of a session
// (touch sequence, pointer id). Mouse input uses ID 0.
type Point struct {
	ID int     `json:"id,omitempty"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Sample is an ordered list of contact points captured at one instant.
type Sample struct {
	Points []Point
	Time   time.Time
}

// Fingers returns the number of contacts in the sample.
func (s Sample) Fingers() int {
	return len(s.Points)
}

// Phase identifies which class of surface signal produced a sample.
type Phase uint8

const (
	PhaseStart  Phase = iota // a contact went down
	PhaseMove                // one or more contacts moved
	PhaseEnd                 // a contact was lifted
	PhaseCancel              // the surface aborted the interaction
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	case PhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Gesture is the tag of a recognized gesture. At most one gesture is live per
// session.
type Gesture uint8

const (
	GestureNone      Gesture = iota // nothing claimed the session yet
	GestureHold                     // press held past hold_timeout without moving
	GestureTap                      // short press and release in place
	GestureDoubleTap                // second tap close in time and space to a tap
	GestureSwipe                    // fast one-finger flick
	GestureDrag                     // one-finger movement past drag_min_distance
	GestureTransform                // two-finger pinch and/or rotate
)

// String returns the gesture name as used in option keys and release events.
func (g Gesture) String() string {
	switch g {
	case GestureHold:
		return "hold"
	case GestureTap:
		return "tap"
	case GestureDoubleTap:
		return "doubletap"
	case GestureSwipe:
		return "swipe"
	case GestureDrag:
		return "drag"
	case GestureTransform:
		return "transform"
	default:
		return ""
	}
}

// EventType identifies a dispatched gesture event.
type EventType uint8

const (
	EventHold           EventType = iota // hold timer fired with nothing else claimed
	EventTap                             // tap recognized on release
	EventDoubleTap                       // double tap recognized on release
	EventSwipe                           // swipe recognized on release
	EventDragStart                       // first move that claims a drag
	EventDrag                            // every move while dragging
	EventDragEnd                         // drag closed by release or a second finger
	EventTransformStart                  // first move that claims a transform
	EventTransform                       // every move while transforming
	EventTransformEnd                    // transform closed by release
	EventRelease                         // always last on end/cancel; carries the resolved gesture

	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	EventHold:           "hold",
	EventTap:            "tap",
	EventDoubleTap:      "doubletap",
	EventSwipe:          "swipe",
	EventDragStart:      "dragstart",
	EventDrag:           "drag",
	EventDragEnd:        "dragend",
	EventTransformStart: "transformstart",
	EventTransform:      "transform",
	EventTransformEnd:   "transformend",
	EventRelease:        "release",
}

// String returns the callback name of the event.
func (t EventType) String() string {
	if t < eventTypeCount {
		return eventTypeNames[t]
	}
	return "unknown"
}

// ParseEventType maps a callback name such as "dragstart" to its EventType.
func ParseEventType(name string) (EventType, bool) {
	for i, n := range eventTypeNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

// Direction is the dominant axis direction of a movement.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return ""
	}
}

// Vertical reports whether d is up or down.
func (d Direction) Vertical() bool {
	return d == DirectionUp || d == DirectionDown
}

// Event is the payload passed to callbacks and sinks.
//
// Geometry fields are populated per event type:
//   - swipe, drag*: Direction, Distance, DistanceX, DistanceY, Angle
//   - transform*: Scale, Rotation, and Distance* as the displacement of the
//     two-finger center from where the transform started
//   - release: Gesture holds the resolved tag of the session
type Event struct {
	Type      EventType
	Gesture   Gesture
	SessionID uuid.UUID
	Time      time.Time
	// Source is the raw surface event that produced this dispatch.
	Source any

	Touches  []Point
	Position Point

	Direction Direction
	Distance  float64
	DistanceX float64
	DistanceY float64
	Angle     float64

	Scale    float64
	Rotation float64
}
