// Package ebitensurface feeds Ebitengine mouse and touch input into a
// gesture.Recognizer.
//
// Call Update once per frame from the game's Update method. Hold timers are
// driven by the frame clock, so every callback runs on the game goroutine.
package ebitensurface

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gesture"
)

// frameInput is the pointer state observed in one frame.
type frameInput struct {
	mouseDown bool
	mouse     gesture.Point
	touches   []gesture.Point
}

// Surface tracks contacts between frames and translates their changes into
// start, move and end events.
type Surface struct {
	rec   *gesture.Recognizer
	sched *gesture.ManualScheduler
	now   func() time.Time

	mouseDown bool
	mouse     gesture.Point
	contacts  []gesture.Point // touches down last frame, in contact order

	touchIDs    []ebiten.TouchID
	injectQueue []frameInput
	suppressed  bool
	detached    bool
}

// New attaches a surface to rec. It installs a frame-driven scheduler on rec,
// replacing any scheduler set before.
func New(rec *gesture.Recognizer) *Surface {
	s := &Surface{rec: rec, now: time.Now}
	s.sched = gesture.NewManualScheduler(s.now())
	rec.SetScheduler(s.sched)
	return s
}

// Recognizer returns the recognizer the surface feeds.
func (s *Surface) Recognizer() *gesture.Recognizer {
	return s.rec
}

// Suppressed reports whether any event of the last frame asked for native
// handling to be suppressed, e.g. because it was claimed as a drag. Games use
// it to skip their own click handling for that frame.
func (s *Surface) Suppressed() bool {
	return s.suppressed
}

// Detach stops the surface and closes the recognizer. No callbacks run after
// Detach returns.
func (s *Surface) Detach() {
	s.detached = true
	s.injectQueue = nil
	s.rec.Close()
}

// Update reads this frame's input and hands any changes to the recognizer.
// A queued synthetic frame, if any, is consumed instead of real input.
func (s *Surface) Update() {
	if s.detached {
		return
	}
	in, ok := s.popInjected()
	if !ok {
		in = s.readInput()
	}
	s.step(s.now(), in)
}

// readInput polls Ebitengine for the current mouse and touch state.
func (s *Surface) readInput() frameInput {
	var in frameInput
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	for _, id := range s.touchIDs {
		x, y := ebiten.TouchPosition(id)
		in.touches = append(in.touches, gesture.Point{ID: int(id), X: float64(x), Y: float64(y)})
	}
	mx, my := ebiten.CursorPosition()
	in.mouse = gesture.Point{X: float64(mx), Y: float64(my)}
	in.mouseDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return in
}

// step advances the hold clock to now and emits the events implied by the
// difference between in and the previous frame.
func (s *Surface) step(now time.Time, in frameInput) {
	s.suppressed = false
	s.sched.AdvanceTo(now)
	if s.detached {
		return
	}

	// Touch takes priority; the mouse is only tracked while no finger is down.
	if len(in.touches) > 0 || len(s.contacts) > 0 {
		if s.mouseDown {
			s.mouseDown = false
			s.handle(gesture.RawEvent{Phase: gesture.PhaseCancel, Pointer: s.mouse, Time: now})
		}
		s.stepTouches(now, in.touches)
		return
	}
	s.stepMouse(now, in)
}

func (s *Surface) stepMouse(now time.Time, in frameInput) {
	switch {
	case in.mouseDown && !s.mouseDown:
		s.handle(gesture.RawEvent{Phase: gesture.PhaseStart, Pointer: in.mouse, Time: now})
	case in.mouseDown && in.mouse != s.mouse:
		s.handle(gesture.RawEvent{Phase: gesture.PhaseMove, Pointer: in.mouse, Time: now})
	case !in.mouseDown && s.mouseDown:
		s.handle(gesture.RawEvent{Phase: gesture.PhaseEnd, Pointer: in.mouse, Time: now})
	}
	s.mouseDown = in.mouseDown
	s.mouse = in.mouse
}

// stepTouches emits one end per lifted contact, one start per new contact
// and a single move if any persisting contact changed position.
func (s *Surface) stepTouches(now time.Time, touches []gesture.Point) {
	current := make(map[int]gesture.Point, len(touches))
	for _, p := range touches {
		current[p.ID] = p
	}

	moved := false
	kept := s.contacts[:0:0]
	var lifted int
	for _, p := range s.contacts {
		cp, ok := current[p.ID]
		if !ok {
			lifted++
			continue
		}
		if cp != p {
			moved = true
		}
		kept = append(kept, cp)
	}
	for i := 0; i < lifted; i++ {
		// Each end lists what is still down once that contact is gone.
		remaining := kept
		if i < lifted-1 {
			remaining = append(clone(kept), s.liftedTail(current, lifted-1-i)...)
		}
		s.handle(gesture.RawEvent{Phase: gesture.PhaseEnd, Touch: true, Touches: clone(remaining), Time: now})
	}
	s.contacts = kept

	for _, p := range touches {
		if s.has(p.ID) {
			continue
		}
		s.contacts = append(s.contacts, p)
		s.handle(gesture.RawEvent{Phase: gesture.PhaseStart, Touch: true, Touches: clone(s.contacts), Time: now})
	}

	if moved {
		s.handle(gesture.RawEvent{Phase: gesture.PhaseMove, Touch: true, Touches: clone(s.contacts), Time: now})
	}
}

// liftedTail returns the last n contacts of the previous frame that are no
// longer down, at their last known positions.
func (s *Surface) liftedTail(current map[int]gesture.Point, n int) []gesture.Point {
	var out []gesture.Point
	for i := len(s.contacts) - 1; i >= 0 && len(out) < n; i-- {
		if _, ok := current[s.contacts[i].ID]; !ok {
			out = append(out, s.contacts[i])
		}
	}
	return out
}

func (s *Surface) has(id int) bool {
	for _, p := range s.contacts {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (s *Surface) handle(ev gesture.RawEvent) {
	if s.rec.Handle(ev) {
		s.suppressed = true
	}
}

func clone(p []gesture.Point) []gesture.Point {
	out := make([]gesture.Point, len(p))
	copy(out, p)
	return out
}
