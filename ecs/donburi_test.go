package ecs

import (
	"testing"
	"time"

	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []gesture.Event
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(gesture.Event{
		Type:      gesture.EventSwipe,
		Gesture:   gesture.GestureSwipe,
		Direction: gesture.DirectionUp,
		Distance:  64,
	})
	sink.EmitEvent(gesture.Event{
		Type:  gesture.EventTransform,
		Scale: 2.0,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatal("events delivered before ProcessEvents")
	}
	GestureEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != gesture.EventSwipe || e.Direction != gesture.DirectionUp || e.Distance != 64 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != gesture.EventTransform || e.Scale != 2.0 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_FromRecognizer(t *testing.T) {
	world := donburi.NewWorld()
	epoch := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rec := gesture.NewRecognizer(gesture.Options{gesture.OptHold: false})
	rec.SetScheduler(gesture.NewManualScheduler(epoch))
	rec.SetEventSink(NewDonburiSink(world))

	var taps int
	SubscribeType(world, gesture.EventTap, func(w donburi.World, e gesture.Event) {
		taps++
	})

	rec.Handle(gesture.RawEvent{Phase: gesture.PhaseStart, Touch: true, Touches: []gesture.Point{{ID: 1}}, Time: epoch})
	rec.Handle(gesture.RawEvent{Phase: gesture.PhaseEnd, Touch: true, Touches: []gesture.Point{}, Time: epoch.Add(50 * time.Millisecond)})
	events.ProcessAllEvents(world)

	if taps != 1 {
		t.Errorf("taps = %d, want 1 (release filtered out)", taps)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		count1++
	})
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		count2++
	})

	sink.EmitEvent(gesture.Event{Type: gesture.EventHold})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
