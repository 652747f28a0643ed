// Package ecs provides ECS adapters for gesture events.
//
// The primary adapter is [NewDonburiSink], which publishes every dispatched
// gesture event (tap, swipe, drag, transform, ...) into a [Donburi] world as
// a typed event. Subscribe to [GestureEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	recognizer.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
