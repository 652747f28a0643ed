package gesture

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep is a single surface event in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	At     int64   `json:"at"` // milliseconds from the start of the run
	Points []Point `json:"points,omitempty"`
	Label  string  `json:"label,omitempty"`
}

// scriptFile is the top-level JSON structure of a gesture script.
type scriptFile struct {
	Surface string       `json:"surface,omitempty"` // "touch" (default) or "mouse"
	Steps   []scriptStep `json:"steps"`
}

// Script replays a timed sequence of surface events into a Recognizer. It is
// used to reproduce recorded interactions and to drive scenario tests.
//
//	{"surface": "touch", "steps": [
//		{"action": "start", "at": 0,   "points": [{"id": 1, "x": 0, "y": 0}]},
//		{"action": "move",  "at": 50,  "points": [{"id": 1, "x": 30, "y": 0}]},
//		{"action": "end",   "at": 100, "points": []},
//		{"action": "wait",  "at": 600}
//	]}
//
// End steps list the contacts still down. For mouse scripts the first point
// of each step is the pointer position.
type Script struct {
	steps []scriptStep
	touch bool
}

var scriptPhases = map[string]Phase{
	"start":  PhaseStart,
	"move":   PhaseMove,
	"end":    PhaseEnd,
	"cancel": PhaseCancel,
}

// LoadScript parses a JSON gesture script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	var touch bool
	switch f.Surface {
	case "", "touch":
		touch = true
	case "mouse":
	default:
		return nil, fmt.Errorf("parse gesture script: unknown surface %q", f.Surface)
	}

	var last int64
	for i, st := range f.Steps {
		if _, ok := scriptPhases[st.Action]; !ok && st.Action != "wait" {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
		if st.At < last {
			return nil, fmt.Errorf("parse gesture script: step %d: time %dms before previous step", i, st.At)
		}
		if !touch && st.Action != "wait" && len(st.Points) == 0 {
			return nil, fmt.Errorf("parse gesture script: step %d: mouse step needs a point", i)
		}
		last = st.At
	}
	return &Script{steps: f.Steps, touch: touch}, nil
}

// Len returns the number of steps.
func (sc *Script) Len() int {
	return len(sc.steps)
}

// Run feeds every step to r. The scheduler's clock is advanced to each
// step's time first, so hold timers fire exactly where they would live.
// Steps are timed relative to the scheduler's clock when Run is called.
func (sc *Script) Run(r *Recognizer, sched *ManualScheduler) {
	base := sched.Now()
	for _, st := range sc.steps {
		at := base.Add(time.Duration(st.At) * time.Millisecond)
		sched.AdvanceTo(at)
		phase, ok := scriptPhases[st.Action]
		if !ok {
			continue
		}
		ev := RawEvent{Phase: phase, Touch: sc.touch, Time: at}
		if st.Label != "" {
			ev.Source = st.Label
		}
		if sc.touch {
			ev.Touches = st.Points
			if ev.Touches == nil {
				ev.Touches = []Point{}
			}
		} else {
			ev.Pointer = st.Points[0]
		}
		r.Handle(ev)
	}
}
