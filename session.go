package gesture

import (
	"time"

	"github.com/google/uuid"
)

// session is the mutable record of one continuous interaction, from the
// first contact until every contact is lifted or the surface cancels.
type session struct {
	active bool
	id     uuid.UUID
	source any

	start     []Point
	move      []Point // nil until the first move
	startTime time.Time
	fingers   int

	gesture Gesture
	first   bool // no *start event fired yet for gesture
	canTap  bool

	// Transform anchor; meaningful only while gesture == GestureTransform.
	center      Point
	startCenter Point

	// Last drag/swipe geometry, reported again on dragend.
	distance  float64
	angle     float64
	direction Direction
}

// open initializes s from the first sample of a new interaction.
func (s *session) open(sample Sample, source any) {
	*s = session{
		active:    true,
		id:        uuid.New(),
		source:    source,
		start:     clonePoints(sample.Points),
		startTime: sample.Time,
		fingers:   sample.Fingers(),
		first:     true,
	}
}

// reset returns s to Idle. Calling it repeatedly is harmless.
func (s *session) reset() {
	*s = session{}
}

// position returns the last known primary contact.
func (s *session) position() Point {
	if len(s.move) > 0 {
		return s.move[0]
	}
	if len(s.start) > 0 {
		return s.start[0]
	}
	return Point{}
}

// tapMemory carries the previous tap across sessions for double-tap
// detection. It is only written by the tap branch of the classifier.
type tapMemory struct {
	valid bool
	pos   Point
	end   time.Time
}

func clonePoints(p []Point) []Point {
	if p == nil {
		return nil
	}
	out := make([]Point, len(p))
	copy(out, p)
	return out
}
