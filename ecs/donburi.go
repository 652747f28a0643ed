package ecs

import (
	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for gesture events.
var GestureEventType = events.NewEventType[gesture.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on GestureEventType and delivered by ProcessEvents, typically from
// a system's update.
func NewDonburiSink(world donburi.World) gesture.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event gesture.Event) {
	GestureEventType.Publish(s.world, event)
}

// SubscribeType subscribes fn to gesture events of a single type.
func SubscribeType(world donburi.World, t gesture.EventType, fn func(donburi.World, gesture.Event)) {
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		if e.Type == t {
			fn(w, e)
		}
	})
}
