package ebitensurface

import "github.com/phanxgames/gesture"

// InjectPress queues a left-button press at the given screen coordinates.
// Each queued event is consumed by one Update call, in place of real input.
func (s *Surface) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, frameInput{
		mouseDown: true,
		mouse:     gesture.Point{X: x, Y: y},
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Surface) InjectMove(x, y float64) {
	s.InjectPress(x, y)
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Surface) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, frameInput{
		mouse: gesture.Point{X: x, Y: y},
	})
}

// InjectTap queues a press followed by a release at the same point.
// Consumes two frames.
func (s *Surface) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). Minimum frames is 2 (press + release).
func (s *Surface) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectTouches queues a frame in which exactly the given contacts are down.
// An empty call lifts every finger.
func (s *Surface) InjectTouches(points ...gesture.Point) {
	s.injectQueue = append(s.injectQueue, frameInput{touches: clone(points)})
}

// Pending returns the number of queued synthetic frames.
func (s *Surface) Pending() int {
	return len(s.injectQueue)
}

func (s *Surface) popInjected() (frameInput, bool) {
	if len(s.injectQueue) == 0 {
		return frameInput{}, false
	}
	in := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	return in, true
}
