package gesture

// HandlerFunc receives a dispatched gesture event.
type HandlerFunc func(Event)

// EventSink is an optional observer that receives every dispatched event,
// whether or not a callback is registered for it. Sinks must not block.
type EventSink interface {
	EmitEvent(event Event)
}

// MultiSink returns a sink that forwards every event to each of sinks in
// order. Nil entries are skipped.
func MultiSink(sinks ...EventSink) EventSink {
	var out multiSink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type multiSink []EventSink

func (m multiSink) EmitEvent(ev Event) {
	for _, s := range m {
		s.EmitEvent(ev)
	}
}

// handlerSlot is one entry of the fixed callback table.
type handlerSlot struct {
	id uint32
	fn HandlerFunc
}

type handlerRegistry struct {
	slots  [eventTypeCount]handlerSlot
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	r     *Recognizer
	event EventType
}

// Remove unregisters the callback. It is a no-op if another callback has
// since replaced it.
func (h CallbackHandle) Remove() {
	if h.r == nil || h.event >= eventTypeCount {
		return
	}
	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	if h.r.handlers.slots[h.event].id == h.id {
		h.r.handlers.slots[h.event] = handlerSlot{}
	}
}

// On registers fn as the callback for event type t, replacing any previous
// callback for t. A nil fn clears the slot.
func (r *Recognizer) On(t EventType, fn HandlerFunc) CallbackHandle {
	if t >= eventTypeCount {
		return CallbackHandle{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn == nil {
		r.handlers.slots[t] = handlerSlot{}
		return CallbackHandle{}
	}
	r.handlers.nextID++
	id := r.handlers.nextID
	r.handlers.slots[t] = handlerSlot{id: id, fn: fn}
	return CallbackHandle{id: id, r: r, event: t}
}

// OnName registers fn under a callback name such as "doubletap". Unknown
// names are ignored and report false.
func (r *Recognizer) OnName(name string, fn HandlerFunc) (CallbackHandle, bool) {
	t, ok := ParseEventType(name)
	if !ok {
		return CallbackHandle{}, false
	}
	return r.On(t, fn), true
}

// SetEventSink sets the optional observer for all dispatched events.
func (r *Recognizer) SetEventSink(sink EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink = sink
}

// emit queues an event for dispatch at the end of the current tick.
// Callers hold r.mu.
func (r *Recognizer) emit(ev Event, sample Sample) {
	ev.SessionID = r.sess.id
	ev.Source = r.cur
	if ev.Source == nil {
		ev.Source = r.sess.source
	}
	if ev.Time.IsZero() {
		ev.Time = sample.Time
	}
	if ev.Touches == nil {
		ev.Touches = clonePoints(sample.Points)
	}
	if r.debug {
		r.debugf("emit %s gesture=%s", ev.Type, ev.Gesture)
	}
	r.pending = append(r.pending, ev)
}

// flush hands queued events to callbacks and the sink, in order. It runs
// without r.mu held so callbacks may call back into the recognizer. Only one
// goroutine drains at a time; a flush that finds another drainer leaves its
// events to it.
func (r *Recognizer) flush() {
	r.mu.Lock()
	if r.delivering {
		r.mu.Unlock()
		return
	}
	r.delivering = true
	for {
		events := r.pending
		r.pending = nil
		if len(events) == 0 {
			r.delivering = false
			r.mu.Unlock()
			return
		}
		handlers := r.handlers.slots
		sink := r.sink
		r.mu.Unlock()

		for _, ev := range events {
			if r.closed.Load() {
				break
			}
			if fn := handlers[ev.Type].fn; fn != nil {
				fn(ev)
			}
			if sink != nil {
				sink.EmitEvent(ev)
			}
		}
		r.mu.Lock()
	}
}
