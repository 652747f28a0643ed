package record

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/phanxgames/gesture"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "gestures.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// playTapAndDrag records a tap session followed by a drag session.
func playTapAndDrag(t *testing.T, s *Store) {
	t.Helper()
	rec := gesture.NewRecognizer(gesture.Options{gesture.OptHold: false})
	sched := gesture.NewManualScheduler(epoch)
	rec.SetScheduler(sched)
	rec.SetEventSink(s)

	at := func(ms int) time.Time { return epoch.Add(time.Duration(ms) * time.Millisecond) }
	touch := func(phase gesture.Phase, ms int, pts ...gesture.Point) {
		sched.AdvanceTo(at(ms))
		rec.Handle(gesture.RawEvent{Phase: phase, Touch: true, Touches: pts, Time: at(ms)})
	}
	touch(gesture.PhaseStart, 0, gesture.Point{ID: 1, X: 10, Y: 10})
	touch(gesture.PhaseEnd, 60)
	touch(gesture.PhaseStart, 1000, gesture.Point{ID: 2, X: 0, Y: 0})
	touch(gesture.PhaseMove, 1050, gesture.Point{ID: 2, X: 0, Y: 40})
	touch(gesture.PhaseEnd, 1400)
	s.Sync()
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatal("database file should not exist before creating store")
	}

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file should exist after creating store")
	}

	var name string
	err = s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
		"gesture_events",
	).Scan(&name)
	if err != nil {
		t.Errorf("gesture_events table should exist after migrations: %v", err)
	}
}

func TestSessions(t *testing.T) {
	s := newTestStore(t)
	playTapAndDrag(t, s)

	sessions, err := s.Sessions()
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if sessions[0].Gesture != "tap" || sessions[0].Events != 2 {
		t.Errorf("first session = %+v", sessions[0])
	}
	if sessions[1].Gesture != "drag" || sessions[1].Events != 4 {
		t.Errorf("second session = %+v", sessions[1])
	}
	if !sessions[1].End.Equal(epoch.Add(1400 * time.Millisecond)) {
		t.Errorf("second session end = %v", sessions[1].End)
	}
	if err := s.Err(); err != nil {
		t.Errorf("write error: %v", err)
	}
}

func TestEvents(t *testing.T) {
	s := newTestStore(t)
	playTapAndDrag(t, s)

	sessions, err := s.Sessions()
	if err != nil || len(sessions) != 2 {
		t.Fatalf("Sessions: %v, %d", err, len(sessions))
	}
	events, err := s.Events(sessions[1].ID)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}

	var types []string
	for _, r := range events {
		types = append(types, r.Type)
		if r.SessionID != sessions[1].ID {
			t.Errorf("event %s has session %s", r.Type, r.SessionID)
		}
	}
	want := []string{"dragstart", "drag", "dragend", "release"}
	if len(types) != len(want) {
		t.Fatalf("types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("types = %v, want %v", types, want)
			break
		}
	}

	start := events[0]
	if start.Direction != "down" || start.Distance != 40 || start.Y != 40 {
		t.Errorf("dragstart = %+v", start)
	}
	if len(start.Touches) != 1 || start.Touches[0].ID != 2 {
		t.Errorf("touches = %+v", start.Touches)
	}
	if !start.Time.Equal(epoch.Add(1050 * time.Millisecond)) {
		t.Errorf("time = %v", start.Time)
	}
}

func TestEventsNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Events(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteSession(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete err = %v, want ErrNotFound", err)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	playTapAndDrag(t, s)
	sessions, _ := s.Sessions()
	if err := s.DeleteSession(sessions[0].ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	left, err := s.Sessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 1 || left[0].ID != sessions[1].ID {
		t.Errorf("sessions after delete = %+v", left)
	}
}

func TestReopenContinuesSequence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	playTapAndDrag(t, s)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Events emitted after close are ignored.
	s.EmitEvent(gesture.Event{Type: gesture.EventTap})

	s, err = New(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	playTapAndDrag(t, s)

	sessions, err := s.Sessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 4 {
		t.Fatalf("got %d sessions, want 4", len(sessions))
	}
	if sessions[3].Gesture != "drag" {
		t.Errorf("last session = %+v", sessions[3])
	}
}

func TestStore_Close(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("close should not return error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second close should be a no-op: %v", err)
	}
	if _, err := s.DB().Exec("SELECT 1"); err == nil {
		t.Error("DB operations should fail after close")
	}
}
