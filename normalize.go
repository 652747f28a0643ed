package gesture

import "time"

// RawEvent is what an input surface hands to Recognizer.Handle.
//
// Touch surfaces set Touch and list every contact still on the surface in
// Touches (so an end event lists the remaining contacts, possibly none).
// Pointer surfaces leave Touch false and report the cursor in Pointer.
type RawEvent struct {
	Phase   Phase
	Touch   bool
	Touches []Point
	Pointer Point
	// Time is when the surface saw the event. A zero Time is stamped by
	// Recognizer.Handle from its scheduler's clock, or the wall clock.
	Time time.Time
	// Source is passed through to dispatched events untouched.
	Source any
}

// OffsetFunc reports the origin of the surface in the coordinate space the
// raw positions are expressed in. It is consulted once per normalized event.
type OffsetFunc func() (x, y float64)

// Normalizer turns raw surface events into samples.
type Normalizer struct {
	// Offset, when set, is subtracted from every position.
	Offset OffsetFunc
}

// Normalize maps a raw event to a sample. Pointer input always yields a
// one-point sample. Time is copied unchanged.
func (n Normalizer) Normalize(ev RawEvent) Sample {
	var points []Point
	if ev.Touch {
		points = make([]Point, len(ev.Touches))
		copy(points, ev.Touches)
	} else {
		points = []Point{ev.Pointer}
	}

	if n.Offset != nil && len(points) > 0 {
		ox, oy := n.Offset()
		for i := range points {
			points[i].X -= ox
			points[i].Y -= oy
		}
	}

	return Sample{Points: points, Time: ev.Time}
}
