// Package record persists dispatched gesture events to SQLite so sessions can
// be inspected or replayed later.
package record

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/phanxgames/gesture"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a session has no recorded events.
var ErrNotFound = errors.New("session not found")

const queueSize = 256

// Store is a gesture.EventSink backed by a SQLite database. Events are
// written by a background goroutine so EmitEvent never waits on disk.
type Store struct {
	db   *sql.DB
	path string

	queue  chan item
	done   chan struct{}
	seq    atomic.Int64
	qmu    sync.RWMutex // guards sends on queue against Close
	closed bool

	mu      sync.Mutex
	lastErr error
	dropped int
}

type item struct {
	ev   gesture.Event
	seq  int64
	sync chan struct{}
}

// New opens (or creates) the database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer; avoids SQLITE_BUSY between the writer goroutine and queries.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:    db,
		path:  dbPath,
		queue: make(chan item, queueSize),
		done:  make(chan struct{}),
	}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := s.loadSeq(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read event sequence: %w", err)
	}

	go s.writeLoop()
	return s, nil
}

// EmitEvent implements gesture.EventSink. The event is queued for writing;
// if the queue is full it is dropped and counted.
func (s *Store) EmitEvent(ev gesture.Event) {
	s.qmu.RLock()
	defer s.qmu.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.queue <- item{ev: ev, seq: s.seq.Add(1)}:
	default:
		s.mu.Lock()
		s.dropped++
		n := s.dropped
		s.mu.Unlock()
		if n == 1 || n%100 == 0 {
			log.Printf("record: queue full, %d events dropped", n)
		}
	}
}

// Sync blocks until every event queued before the call has been written.
func (s *Store) Sync() {
	s.qmu.RLock()
	if s.closed {
		s.qmu.RUnlock()
		return
	}
	ch := make(chan struct{})
	s.queue <- item{sync: ch}
	s.qmu.RUnlock()
	<-ch
}

// Err returns the most recent write error, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Dropped returns the number of events discarded because the write queue
// was full.
func (s *Store) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Close flushes pending events and closes the database.
func (s *Store) Close() error {
	s.qmu.Lock()
	if s.closed {
		s.qmu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.qmu.Unlock()

	<-s.done
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) writeLoop() {
	defer close(s.done)
	for it := range s.queue {
		if it.sync != nil {
			close(it.sync)
			continue
		}
		if err := s.insert(it.ev, it.seq); err != nil {
			log.Printf("record: failed to write %s event: %v", it.ev.Type, err)
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
		}
	}
}

func (s *Store) loadSeq() error {
	var max sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(seq) FROM gesture_events`).Scan(&max); err != nil {
		return err
	}
	s.seq.Store(max.Int64)
	return nil
}
