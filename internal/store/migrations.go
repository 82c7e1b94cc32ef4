package store

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS prospects (
			id      TEXT PRIMARY KEY,
			name    TEXT NOT NULL,
			address TEXT,
			segment TEXT,
			city    TEXT
		);

		CREATE TABLE IF NOT EXISTS visits (
			id             TEXT PRIMARY KEY,
			prospect_id    TEXT NOT NULL REFERENCES prospects(id),
			owner_id       TEXT NOT NULL,
			visit_date     DATE NOT NULL,
			start_time     TIME,
			end_time       TIME,
			status         TEXT DEFAULT 'scheduled' CHECK(status IN ('scheduled', 'done', 'canceled', 'rescheduled', 'no_answer', 'absent')),
			notes          TEXT,
			distance_km    REAL,
			travel_minutes INTEGER,
			route_rank     INTEGER,
			created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id          TEXT PRIMARY KEY,
			owner_id    TEXT NOT NULL,
			title       TEXT,
			description TEXT,
			due_date    DATE NOT NULL,
			due_time    TIME,
			priority    TEXT DEFAULT 'medium' CHECK(priority IN ('low', 'medium', 'high')),
			task_type   TEXT,
			status      TEXT DEFAULT 'pending' CHECK(status IN ('pending', 'in_progress', 'done', 'canceled')),
			client_name TEXT,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS calendar_entries (
			id         TEXT PRIMARY KEY,
			owner_id   TEXT NOT NULL,
			entry_date DATE NOT NULL,
			entry_time TIME,
			title      TEXT NOT NULL,
			entry_type TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS insights (
			prospect_id          TEXT PRIMARY KEY REFERENCES prospects(id),
			summary              TEXT NOT NULL,
			recommended_products TEXT,
			approach_tips        TEXT,
			generated_at         DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_owner_date ON visits(owner_id, visit_date);
		CREATE INDEX IF NOT EXISTS idx_tasks_owner_date ON tasks(owner_id, due_date);
		CREATE INDEX IF NOT EXISTS idx_calendar_owner_date ON calendar_entries(owner_id, entry_date);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
