package record

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// One row per dispatched event; geometry columns are zero where the
		// event type does not carry them.
		`CREATE TABLE IF NOT EXISTS gesture_events (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			type TEXT NOT NULL,
			gesture TEXT NOT NULL DEFAULT '',
			x REAL NOT NULL DEFAULT 0,
			y REAL NOT NULL DEFAULT 0,
			direction TEXT NOT NULL DEFAULT '',
			distance REAL NOT NULL DEFAULT 0,
			distance_x REAL NOT NULL DEFAULT 0,
			distance_y REAL NOT NULL DEFAULT 0,
			angle REAL NOT NULL DEFAULT 0,
			scale REAL NOT NULL DEFAULT 0,
			rotation REAL NOT NULL DEFAULT 0,
			touches TEXT NOT NULL DEFAULT '[]',
			time_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_gesture_events_session_id ON gesture_events(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_gesture_events_seq ON gesture_events(seq)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
