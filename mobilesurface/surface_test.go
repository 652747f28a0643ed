package mobilesurface

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/mobile/event/touch"

	"github.com/phanxgames/gesture"
)

type fixture struct {
	s     *Surface
	sched *gesture.ManualScheduler
	clock time.Time
	evs   []gesture.Event
}

func newFixture(t *testing.T, opts gesture.Options) *fixture {
	t.Helper()
	f := &fixture{clock: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	rec := gesture.NewRecognizer(opts)
	f.sched = gesture.NewManualScheduler(f.clock)
	rec.SetScheduler(f.sched)
	for _, name := range []string{"hold", "tap", "doubletap", "swipe", "dragstart", "drag", "dragend", "transformstart", "transform", "transformend", "release"} {
		rec.OnName(name, func(ev gesture.Event) { f.evs = append(f.evs, ev) })
	}
	f.s = New(rec)
	f.s.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) send(ms int, typ touch.Type, seq touch.Sequence, x, y float32) bool {
	f.clock = f.clock.Add(time.Duration(ms) * time.Millisecond)
	f.sched.AdvanceTo(f.clock)
	return f.s.Touch(touch.Event{X: x, Y: y, Sequence: seq, Type: typ})
}

func (f *fixture) names() []string {
	var out []string
	for _, ev := range f.evs {
		out = append(out, ev.Type.String())
	}
	return out
}

func TestTap(t *testing.T) {
	f := newFixture(t, nil)
	f.send(0, touch.TypeBegin, 7, 10, 10)
	if !f.send(80, touch.TypeEnd, 7, 10, 10) {
		t.Error("tap should be consumed")
	}
	if d := cmp.Diff([]string{"tap", "release"}, f.names()); d != "" {
		t.Error(d)
	}
	tap := f.evs[0]
	if tap.Position.ID != 7 {
		t.Errorf("position id = %d, want touch sequence 7", tap.Position.ID)
	}
	if src, ok := tap.Source.(touch.Event); !ok || src.Type != touch.TypeEnd {
		t.Errorf("source = %#v", tap.Source)
	}
}

func TestSwipe(t *testing.T) {
	f := newFixture(t, gesture.Options{gesture.OptDrag: false})
	f.send(0, touch.TypeBegin, 1, 100, 100)
	f.send(30, touch.TypeMove, 1, 60, 100)
	f.send(30, touch.TypeEnd, 1, 60, 100)
	if d := cmp.Diff([]string{"swipe", "release"}, f.names()); d != "" {
		t.Error(d)
	}
	if f.evs[0].Direction != gesture.DirectionLeft {
		t.Errorf("direction = %v", f.evs[0].Direction)
	}
}

func TestRotateTwoFingers(t *testing.T) {
	f := newFixture(t, nil)
	f.send(0, touch.TypeBegin, 1, 0, 0)
	f.send(10, touch.TypeBegin, 2, 100, 0)
	f.send(20, touch.TypeMove, 2, 100, 50) // 26.6 degrees
	f.send(20, touch.TypeEnd, 1, 0, 0)
	f.send(20, touch.TypeEnd, 2, 100, 50)

	want := []string{"transformstart", "transform", "transformend", "release", "release"}
	if d := cmp.Diff(want, f.names()); d != "" {
		t.Error(d)
	}
	if f.s.Fingers() != 0 {
		t.Errorf("fingers = %d", f.s.Fingers())
	}
}

func TestUnknownSequenceIgnored(t *testing.T) {
	f := newFixture(t, nil)
	if f.send(0, touch.TypeMove, 9, 1, 1) || f.send(0, touch.TypeEnd, 9, 1, 1) {
		t.Error("unknown sequence should not be consumed")
	}
	if len(f.evs) != 0 {
		t.Errorf("unexpected events %v", f.names())
	}
}

func TestDetach(t *testing.T) {
	f := newFixture(t, nil)
	f.send(0, touch.TypeBegin, 1, 0, 0)
	f.s.Detach()
	f.send(600, touch.TypeEnd, 1, 0, 0)
	if len(f.evs) != 0 {
		t.Errorf("events after detach: %v", f.names())
	}
}
