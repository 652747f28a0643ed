package gesture

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// driver feeds timed touch events to a recognizer on a manual clock and
// records everything it dispatches.
type driver struct {
	t      *testing.T
	r      *Recognizer
	sched  *ManualScheduler
	events []Event
}

func newDriver(t *testing.T, opts Options) *driver {
	t.Helper()
	d := &driver{
		t:     t,
		r:     NewRecognizer(opts),
		sched: NewManualScheduler(testEpoch),
	}
	d.r.SetScheduler(d.sched)
	for i := EventType(0); i < eventTypeCount; i++ {
		d.r.On(i, func(ev Event) { d.events = append(d.events, ev) })
	}
	return d
}

func (d *driver) at(ms int64) time.Time {
	return testEpoch.Add(time.Duration(ms) * time.Millisecond)
}

// touch advances the clock to ms and delivers a touch event listing pts as
// the contacts currently down.
func (d *driver) touch(phase Phase, ms int64, pts ...Point) bool {
	d.t.Helper()
	tm := d.at(ms)
	d.sched.AdvanceTo(tm)
	return d.r.Handle(RawEvent{Phase: phase, Touch: true, Touches: pts, Time: tm})
}

// mouse delivers a pointer event at ms.
func (d *driver) mouse(phase Phase, ms int64, x, y float64) bool {
	d.t.Helper()
	tm := d.at(ms)
	d.sched.AdvanceTo(tm)
	return d.r.Handle(RawEvent{Phase: phase, Pointer: Point{X: x, Y: y}, Time: tm})
}

func (d *driver) wait(ms int64) {
	d.sched.AdvanceTo(d.at(ms))
}

func (d *driver) names() []string {
	out := make([]string, len(d.events))
	for i, ev := range d.events {
		out[i] = ev.Type.String()
	}
	return out
}

func (d *driver) last(t EventType) (Event, bool) {
	for i := len(d.events) - 1; i >= 0; i-- {
		if d.events[i].Type == t {
			return d.events[i], true
		}
	}
	return Event{}, false
}

func pt(id int, x, y float64) Point {
	return Point{ID: id, X: x, Y: y}
}
