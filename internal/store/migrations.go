package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Authentication for the device-data API (singleton row)
		`CREATE TABLE IF NOT EXISTS auth (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Import batches: every import or sync is tagged with a batch id
		`CREATE TABLE IF NOT EXISTS imports (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			kind TEXT NOT NULL,
			record_count INTEGER NOT NULL,
			imported_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Raw heart-rate samples at minute resolution
		`CREATE TABLE IF NOT EXISTS hr_samples (
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			heart_rate INTEGER NOT NULL,
			import_id TEXT REFERENCES imports(id),
			PRIMARY KEY (date, time)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_hr_samples_date ON hr_samples(date)`,

		// One sleep night per wake-up date
		`CREATE TABLE IF NOT EXISTS sleep_nights (
			date TEXT PRIMARY KEY,
			deep_minutes INTEGER NOT NULL,
			light_minutes INTEGER NOT NULL,
			rem_minutes INTEGER NOT NULL,
			wake_minutes INTEGER NOT NULL,
			start_ts INTEGER NOT NULL,
			end_ts INTEGER NOT NULL,
			import_id TEXT REFERENCES imports(id)
		)`,

		// Per-minute activity records
		`CREATE TABLE IF NOT EXISTS activity_minutes (
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			steps INTEGER NOT NULL,
			active_calories REAL NOT NULL,
			import_id TEXT REFERENCES imports(id),
			PRIMARY KEY (date, time)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activity_minutes_date ON activity_minutes(date)`,

		// Sync bookkeeping (key/value)
		`CREATE TABLE IF NOT EXISTS sync_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
