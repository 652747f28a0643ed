// Package gesture turns a live stream of pointer and touch samples into named
// gestures: tap, double tap, hold, swipe, drag, and two-finger transform
// (pinch and rotate).
//
// A [Recognizer] owns the classification state machine. An input surface
// feeds it [RawEvent] values for every start, move, end and cancel signal,
// and the recognizer dispatches [Event] values to the callbacks registered
// with [Recognizer.On]:
//
//	r := gesture.NewRecognizer(gesture.Options{
//		gesture.OptDragMinDistance: 12,
//	})
//	r.On(gesture.EventDoubleTap, func(ev gesture.Event) {
//		fmt.Println("double tap at", ev.Position)
//	})
//	r.On(gesture.EventTransform, func(ev gesture.Event) {
//		fmt.Printf("scale %.2f rotation %.1f°\n", ev.Scale, ev.Rotation)
//	})
//
//	r.Handle(gesture.RawEvent{Phase: gesture.PhaseStart, Touch: true,
//		Touches: []gesture.Point{{ID: 1, X: 10, Y: 10}}})
//
// # Sessions
//
// One session spans an interaction from the first contact until every
// contact is lifted. At most one gesture is claimed per session. Two-finger
// transform takes priority over drag on every move; a drag in progress is
// closed with dragend when a second finger touches down, and a transform
// whose second finger lifts hands the remaining finger to a fresh session.
// Every end or cancel produces a final release event carrying the resolved
// gesture.
//
// # Options
//
// Thresholds and per-gesture toggles live in an [Options] map merged over
// [DefaultOptions]. They can be changed at any time with
// [Recognizer.SetOption]; the classifier re-reads them on every tick. The
// config sub-package loads options from TOML, YAML or JSON files and can
// live-reload them.
//
// # Surfaces
//
// The ebitensurface and mobilesurface sub-packages adapt Ebitengine and
// golang.org/x/mobile touch input. Any other host can call
// [Recognizer.Handle] directly. Surfaces should report a stable contact id
// in [Point.ID]; two-finger geometry pairs contacts by id.
//
// # Timing
//
// The hold gesture needs a deferred check. By default it uses
// time.AfterFunc; frame-driven hosts and tests install a [ManualScheduler]
// with [Recognizer.SetScheduler] so hold fires on their own goroutine.
package gesture
