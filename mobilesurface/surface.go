// Package mobilesurface feeds golang.org/x/mobile touch events into a
// gesture.Recognizer.
package mobilesurface

import (
	"time"

	"golang.org/x/mobile/event/touch"

	"github.com/phanxgames/gesture"
)

// Surface tracks the fingers currently down, keyed by touch sequence.
// It is not safe for concurrent use; call Touch from the app's event loop.
type Surface struct {
	rec      *gesture.Recognizer
	now      func() time.Time
	contacts []gesture.Point
	detached bool
}

// New attaches a surface to rec. Hold timers keep using rec's scheduler.
func New(rec *gesture.Recognizer) *Surface {
	return &Surface{rec: rec, now: time.Now}
}

// Touch handles one touch event and reports whether the app should treat it
// as consumed by a gesture. The event is passed through as the Source of
// any dispatched gesture event.
func (s *Surface) Touch(e touch.Event) bool {
	if s.detached {
		return false
	}
	p := gesture.Point{ID: int(e.Sequence), X: float64(e.X), Y: float64(e.Y)}
	ev := gesture.RawEvent{Touch: true, Time: s.now(), Source: e}

	switch e.Type {
	case touch.TypeBegin:
		if i := s.index(p.ID); i >= 0 {
			s.contacts[i] = p
		} else {
			s.contacts = append(s.contacts, p)
		}
		ev.Phase = gesture.PhaseStart
	case touch.TypeMove:
		i := s.index(p.ID)
		if i < 0 || s.contacts[i] == p {
			return false
		}
		s.contacts[i] = p
		ev.Phase = gesture.PhaseMove
	case touch.TypeEnd:
		i := s.index(p.ID)
		if i < 0 {
			return false
		}
		s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
		ev.Phase = gesture.PhaseEnd
	default:
		return false
	}

	ev.Touches = make([]gesture.Point, len(s.contacts))
	copy(ev.Touches, s.contacts)
	return s.rec.Handle(ev)
}

// Fingers returns the number of contacts currently down.
func (s *Surface) Fingers() int {
	return len(s.contacts)
}

// Detach stops the surface and closes the recognizer.
func (s *Surface) Detach() {
	s.detached = true
	s.contacts = nil
	s.rec.Close()
}

func (s *Surface) index(id int) int {
	for i, c := range s.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}
