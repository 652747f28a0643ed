package record

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phanxgames/gesture"
)

// Record is one stored gesture event.
type Record struct {
	ID        uuid.UUID       `json:"id"`
	SessionID uuid.UUID       `json:"session_id"`
	Seq       int64           `json:"seq"`
	Type      string          `json:"type"`
	Gesture   string          `json:"gesture,omitempty"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Direction string          `json:"direction,omitempty"`
	Distance  float64         `json:"distance,omitempty"`
	DistanceX float64         `json:"distance_x,omitempty"`
	DistanceY float64         `json:"distance_y,omitempty"`
	Angle     float64         `json:"angle,omitempty"`
	Scale     float64         `json:"scale,omitempty"`
	Rotation  float64         `json:"rotation,omitempty"`
	Touches   []gesture.Point `json:"touches"`
	Time      time.Time       `json:"time"`
}

// Session summarizes the events recorded for one gesture session.
type Session struct {
	ID      uuid.UUID `json:"id"`
	Gesture string    `json:"gesture"` // resolved tag from the release event
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Events  int       `json:"events"`
}

func (s *Store) insert(ev gesture.Event, seq int64) error {
	touches, err := json.Marshal(ev.Touches)
	if err != nil {
		return fmt.Errorf("encoding touches: %w", err)
	}
	if ev.Touches == nil {
		touches = []byte("[]")
	}
	_, err = s.db.Exec(
		`INSERT INTO gesture_events
		 (id, session_id, seq, type, gesture, x, y, direction, distance, distance_x, distance_y, angle, scale, rotation, touches, time_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), ev.SessionID.String(), seq, ev.Type.String(), ev.Gesture.String(),
		ev.Position.X, ev.Position.Y, ev.Direction.String(),
		ev.Distance, ev.DistanceX, ev.DistanceY, ev.Angle, ev.Scale, ev.Rotation,
		string(touches), ev.Time.UnixMilli(),
	)
	return err
}

// Sessions lists recorded sessions in the order they started.
func (s *Store) Sessions() ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT e.session_id, MIN(e.seq) AS first_seq, MIN(e.time_ms), MAX(e.time_ms), COUNT(*),
		        COALESCE((SELECT r.gesture FROM gesture_events r
		                  WHERE r.session_id = e.session_id AND r.type = 'release'
		                  ORDER BY r.seq DESC LIMIT 1), '')
		 FROM gesture_events e
		 GROUP BY e.session_id
		 ORDER BY first_seq`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var id string
		var first, start, end int64
		if err := rows.Scan(&id, &first, &start, &end, &sess.Events, &sess.Gesture); err != nil {
			return nil, err
		}
		if sess.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("session id %q: %w", id, err)
		}
		sess.Start = time.UnixMilli(start)
		sess.End = time.UnixMilli(end)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Events returns the events of one session in dispatch order.
func (s *Store) Events(sessionID uuid.UUID) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, seq, type, gesture, x, y, direction,
		        distance, distance_x, distance_y, angle, scale, rotation, touches, time_ms
		 FROM gesture_events
		 WHERE session_id = ?
		 ORDER BY seq`,
		sessionID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var id, sid, touches string
		var ms int64
		if err := rows.Scan(&id, &sid, &r.Seq, &r.Type, &r.Gesture, &r.X, &r.Y, &r.Direction,
			&r.Distance, &r.DistanceX, &r.DistanceY, &r.Angle, &r.Scale, &r.Rotation, &touches, &ms); err != nil {
			return nil, err
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("event id %q: %w", id, err)
		}
		if r.SessionID, err = uuid.Parse(sid); err != nil {
			return nil, fmt.Errorf("session id %q: %w", sid, err)
		}
		if err := json.Unmarshal([]byte(touches), &r.Touches); err != nil {
			return nil, fmt.Errorf("decoding touches: %w", err)
		}
		r.Time = time.UnixMilli(ms)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records, nil
}

// DeleteSession removes every event of a session.
func (s *Store) DeleteSession(sessionID uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM gesture_events WHERE session_id = ?`, sessionID.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
