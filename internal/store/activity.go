package store

import (
	"fmt"

	"pulse/internal/records"
)

// InsertActivityMinutes stores per-minute activity records in one transaction.
func (db *DB) InsertActivityMinutes(minutes []records.ActivityMinute, importID string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO activity_minutes (date, time, steps, active_calories, import_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date, time) DO UPDATE SET
			steps = excluded.steps,
			active_calories = excluded.active_calories,
			import_id = excluded.import_id
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range minutes {
		if _, err := stmt.Exec(m.Date, m.Time, m.Steps, m.ActiveCalories, importID); err != nil {
			return fmt.Errorf("inserting activity minute %s %s: %w", m.Date, m.Time, err)
		}
	}

	return tx.Commit()
}

// ListActivityMinutes returns all stored activity records ordered by date and time.
func (db *DB) ListActivityMinutes() ([]records.ActivityMinute, error) {
	rows, err := db.Query(`
		SELECT date, time, steps, active_calories FROM activity_minutes ORDER BY date, time
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var minutes []records.ActivityMinute
	for rows.Next() {
		var m records.ActivityMinute
		if err := rows.Scan(&m.Date, &m.Time, &m.Steps, &m.ActiveCalories); err != nil {
			return nil, err
		}
		minutes = append(minutes, m)
	}
	return minutes, rows.Err()
}
