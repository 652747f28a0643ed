package gesture

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Recognizer classifies a stream of surface events into gestures and
// dispatches them to registered callbacks.
//
// Handle must be called with events in temporal order. Each call is processed
// to completion, including dispatch, before it returns. Callbacks run on the
// goroutine that called Handle, or on the scheduler's goroutine for hold.
// Delivery is never concurrent: events queued while another goroutine is
// inside a callback are delivered by that goroutine, after the current ones.
type Recognizer struct {
	mu sync.Mutex

	opts       Options
	normalizer Normalizer
	sched      Scheduler
	handlers   handlerRegistry
	sink       EventSink
	debug      bool

	sess session
	hold Timer
	cur  any // raw source of the tick being processed

	// Carried across sessions for double-tap.
	prevGesture Gesture
	lastTap     tapMemory

	pending    []Event
	delivering bool // a goroutine is draining pending
	closed     atomic.Bool
}

// NewRecognizer creates a recognizer with opts merged over the defaults.
// Hold timers use the wall clock until SetScheduler is called.
func NewRecognizer(opts Options) *Recognizer {
	return &Recognizer{
		opts:  MergeOptions(opts),
		sched: WallScheduler{},
	}
}

// Option returns the current value of the named option, or nil if unset.
// Legacy names read the option they alias.
func (r *Recognizer) Option(name string) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	if canon, ok := legacyOptionNames[name]; ok {
		name = canon
	}
	return r.opts[name]
}

// SetOption stores value under name. The change is visible to the next tick,
// including ticks of the session in progress. Unknown names are stored
// without validation.
func (r *Recognizer) SetOption(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if canon, ok := legacyOptionNames[name]; ok {
		name = canon
	}
	r.opts[name] = value
}

// Options returns a copy of the live option set.
func (r *Recognizer) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts.Clone()
}

// SetScheduler replaces the scheduler used for hold timers.
func (r *Recognizer) SetScheduler(s Scheduler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s == nil {
		s = WallScheduler{}
	}
	r.sched = s
}

// SetOffsetFunc sets the origin correction applied to every raw position.
func (r *Recognizer) SetOffsetFunc(fn OffsetFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalizer.Offset = fn
}

// Active returns the gesture currently claimed by the session in progress.
func (r *Recognizer) Active() Gesture {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sess.gesture
}

// Close cancels any pending hold timer. No events are dispatched after Close
// returns. Surfaces call it when they detach.
func (r *Recognizer) Close() {
	r.closed.Store(true)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelHold()
	r.pending = nil
	r.sess.reset()
}

// Handle processes one surface event and reports whether the surface should
// suppress its native handling of it.
func (r *Recognizer) Handle(ev RawEvent) bool {
	if r.closed.Load() {
		return false
	}
	r.mu.Lock()
	if ev.Time.IsZero() {
		ev.Time = r.now()
	}
	sample := r.normalizer.Normalize(ev)
	r.cur = ev.Source
	var suppress bool
	switch ev.Phase {
	case PhaseStart:
		suppress = r.onStart(sample)
	case PhaseMove:
		suppress = r.onMove(sample)
	case PhaseEnd, PhaseCancel:
		suppress = r.onEnd(sample)
	}
	r.cur = nil
	r.mu.Unlock()

	r.flush()
	return suppress
}

// now stamps events that arrive without a time. Schedulers with their own
// clock are preferred so hold timing and sample times agree.
func (r *Recognizer) now() time.Time {
	if c, ok := r.sched.(interface{ Now() time.Time }); ok {
		return c.Now()
	}
	return time.Now()
}

// --- start ---

func (r *Recognizer) onStart(sample Sample) bool {
	count := sample.Fingers()
	if count == 0 {
		return false
	}

	// A live drag or transform is closed before a new session opens.
	if r.sess.active {
		switch r.sess.gesture {
		case GestureDrag:
			r.emitDragEnd(sample)
		case GestureTransform:
			r.emitTransformEnd(sample)
		}
	}

	r.setup(sample, r.cur)
	r.sess.canTap = count == 1
	return r.opts.Bool(OptPreventDefault)
}

// setup opens a fresh session and arms the hold timer.
func (r *Recognizer) setup(sample Sample, source any) {
	r.cancelHold()
	r.sess.open(sample, source)
	if r.debug {
		r.debugf("session %s open fingers=%d", r.sess.id, r.sess.fingers)
	}
	if r.opts.Bool(OptHold) {
		id := r.sess.id
		r.hold = r.sched.AfterFunc(r.opts.Duration(OptHoldTimeout), func() {
			r.fireHold(id)
		})
	}
}

func (r *Recognizer) cancelHold() {
	if r.hold != nil {
		if r.hold.Stop() && r.debug {
			r.debugf("hold timer cancelled")
		}
		r.hold = nil
	}
}

// fireHold runs when the hold timer expires. A stale timer, or one whose
// session was claimed by another gesture, does nothing.
func (r *Recognizer) fireHold(id uuid.UUID) {
	if r.closed.Load() {
		return
	}
	r.mu.Lock()
	if !r.sess.active || r.sess.id != id || r.sess.gesture != GestureNone || !r.opts.Bool(OptHold) {
		r.mu.Unlock()
		return
	}
	r.hold = nil
	r.sess.gesture = GestureHold
	sample := Sample{Points: r.sess.start, Time: r.sess.startTime.Add(r.opts.Duration(OptHoldTimeout))}
	r.emit(Event{
		Type:     EventHold,
		Gesture:  GestureHold,
		Position: r.sess.start[0],
	}, sample)
	r.mu.Unlock()

	r.flush()
}

// --- move ---

func (r *Recognizer) onMove(sample Sample) bool {
	count := sample.Fingers()
	if count == 0 {
		return false
	}
	if !r.sess.active {
		// Two fingers moving with no open session: the surface skipped a
		// start for them, so open one here.
		if count != 2 {
			return false
		}
		r.setup(sample, r.cur)
		r.sess.canTap = false
	}

	r.sess.move = clonePoints(sample.Points)
	if r.transform(sample) {
		return true
	}
	return r.drag(sample)
}

// transform claims two-finger pinch/rotate. It reports whether it claimed
// this tick.
func (r *Recognizer) transform(sample Sample) bool {
	s := &r.sess
	if !r.opts.Bool(OptTransform) || sample.Fingers() != 2 || s.gesture == GestureDrag {
		return false
	}

	scale := Scale(s.start, s.move)
	rotation := Rotation(s.start, s.move)
	scaled := scale != 0 && math.Abs(1-scale) > r.opts.Float(OptScaleThreshold)
	rotated := math.Abs(rotation) > r.opts.Float(OptRotationThreshold)
	if s.gesture != GestureTransform && !scaled && !rotated {
		return false
	}

	s.gesture = GestureTransform
	s.center = Center(s.move)
	if s.first {
		s.startCenter = Center(s.start)
	}
	ev := r.transformEvent(scale, rotation)

	if s.first {
		ev.Type = EventTransformStart
		r.emit(ev, sample)
		s.first = false
	}
	ev.Type = EventTransform
	r.emit(ev, sample)
	return true
}

func (r *Recognizer) transformEvent(scale, rotation float64) Event {
	s := &r.sess
	dx := s.center.X - s.startCenter.X
	dy := s.center.Y - s.startCenter.Y
	return Event{
		Gesture:   GestureTransform,
		Position:  s.center,
		Scale:     scale,
		Rotation:  rotation,
		Distance:  math.Hypot(dx, dy),
		DistanceX: dx,
		DistanceY: dy,
	}
}

// drag claims one-finger movement. It reports whether it claimed this tick.
func (r *Recognizer) drag(sample Sample) bool {
	s := &r.sess
	if !r.opts.Bool(OptDrag) || s.gesture == GestureTransform {
		return false
	}

	from, to := primaryPair(s.start, s.move)
	distance := Distance(from, to)
	minDistance := r.opts.Float(OptDragMinDistance)
	if distance <= minDistance && s.gesture != GestureDrag {
		return false
	}

	angle := Angle(from, to)
	direction := DirectionFromAngle(angle)
	allowed := r.opts.Bool(OptDragHorizontal)
	if direction.Vertical() {
		allowed = r.opts.Bool(OptDragVertical)
	}
	if !allowed && distance > minDistance {
		return false
	}

	if s.gesture != GestureDrag && r.debug {
		r.debugf("session %s claimed by drag", s.id)
	}
	s.gesture = GestureDrag
	s.distance = distance
	s.angle = angle
	s.direction = direction

	ev := Event{
		Gesture:   GestureDrag,
		Position:  to,
		Direction: direction,
		Distance:  distance,
		DistanceX: to.X - from.X,
		DistanceY: to.Y - from.Y,
		Angle:     angle,
	}
	if s.first {
		ev.Type = EventDragStart
		r.emit(ev, sample)
		s.first = false
	}
	ev.Type = EventDrag
	r.emit(ev, sample)
	return true
}

// --- end / cancel ---

func (r *Recognizer) onEnd(sample Sample) bool {
	s := &r.sess
	if !s.active {
		return false
	}
	r.cancelHold()

	claimed := s.gesture
	var suppress, reopen bool

	if claimed != GestureTransform {
		r.swipe(sample)
	}

	switch {
	case claimed == GestureDrag:
		r.emitDragEnd(sample)
	case claimed == GestureTransform:
		r.emitTransformEnd(sample)
		reopen = sample.Fingers() == 1
	case s.canTap && s.gesture != GestureSwipe:
		suppress = r.tap(sample)
	}

	r.prevGesture = s.gesture
	r.emit(Event{
		Type:     EventRelease,
		Gesture:  s.gesture,
		Position: s.position(),
	}, sample)
	if r.debug {
		r.debugf("session %s resolved as %q", s.id, s.gesture.String())
	}

	if reopen {
		// The remaining finger carries on as a fresh one-finger session.
		r.setup(sample, r.cur)
		r.sess.canTap = false
	} else {
		s.reset()
	}
	return suppress
}

func (r *Recognizer) swipe(sample Sample) {
	s := &r.sess
	if len(s.move) == 0 || !r.opts.Bool(OptSwipe) {
		return
	}
	from, to := primaryPair(s.start, s.move)
	distance := Distance(from, to)
	elapsed := sample.Time.Sub(s.startTime)
	if elapsed >= r.opts.Duration(OptSwipeTime) || distance <= r.opts.Float(OptSwipeMinDistance) {
		return
	}

	angle := Angle(from, to)
	direction := DirectionFromAngle(angle)
	s.gesture = GestureSwipe
	r.emit(Event{
		Type:      EventSwipe,
		Gesture:   GestureSwipe,
		Position:  to,
		Direction: direction,
		Distance:  distance,
		DistanceX: to.X - from.X,
		DistanceY: to.Y - from.Y,
		Angle:     angle,
	}, sample)
}

// tap resolves tap or double tap and reports whether it dispatched one.
func (r *Recognizer) tap(sample Sample) bool {
	s := &r.sess
	elapsed := sample.Time.Sub(s.startTime)

	// A press that lasted long enough to be a hold is never a tap.
	if r.opts.Bool(OptHold) && (s.gesture == GestureHold || elapsed >= r.opts.Duration(OptHoldTimeout)) {
		return false
	}

	var moved float64
	if len(s.move) > 0 {
		from, to := primaryPair(s.start, s.move)
		moved = math.Max(math.Abs(to.X-from.X), math.Abs(to.Y-from.Y))
	}
	withinTap := moved < r.opts.Float(OptTapMaxDistance)

	if r.isDoubleTap() && (withinTap || !r.opts.Bool(OptTapDoubleStrict)) {
		s.gesture = GestureDoubleTap
		r.lastTap = tapMemory{}
		r.emit(Event{
			Type:     EventDoubleTap,
			Gesture:  GestureDoubleTap,
			Position: s.start[0],
		}, sample)
		return true
	}

	if !withinTap {
		return false
	}
	s.gesture = GestureTap
	r.lastTap = tapMemory{valid: true, pos: s.start[0], end: sample.Time}
	if !r.opts.Bool(OptTap) {
		return false
	}
	r.emit(Event{
		Type:     EventTap,
		Gesture:  GestureTap,
		Position: s.start[0],
	}, sample)
	return true
}

// isDoubleTap reports whether the session in progress completes a double
// tap with the remembered previous tap.
func (r *Recognizer) isDoubleTap() bool {
	s := &r.sess
	if !r.opts.Bool(OptTapDouble) || !r.lastTap.valid || r.prevGesture != GestureTap {
		return false
	}
	if s.startTime.Sub(r.lastTap.end) >= r.opts.Duration(OptTapMaxInterval) {
		return false
	}
	dx := math.Abs(r.lastTap.pos.X - s.start[0].X)
	dy := math.Abs(r.lastTap.pos.Y - s.start[0].Y)
	return math.Max(dx, dy) < r.opts.Float(OptTapDoubleDistance)
}

func (r *Recognizer) emitDragEnd(sample Sample) {
	s := &r.sess
	r.emit(Event{
		Type:      EventDragEnd,
		Gesture:   GestureDrag,
		Position:  s.position(),
		Direction: s.direction,
		Distance:  s.distance,
		Angle:     s.angle,
	}, sample)
}

func (r *Recognizer) emitTransformEnd(sample Sample) {
	s := &r.sess
	ev := r.transformEvent(Scale(s.start, s.move), Rotation(s.start, s.move))
	ev.Type = EventTransformEnd
	r.emit(ev, sample)
}
