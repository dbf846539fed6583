package store

import (
	"fmt"

	"pulse/internal/records"
)

// InsertHeartRateSamples stores samples in a single transaction, replacing
// any existing sample at the same date and time.
func (db *DB) InsertHeartRateSamples(samples []records.HeartRateSample, importID string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO hr_samples (date, time, heart_rate, import_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date, time) DO UPDATE SET
			heart_rate = excluded.heart_rate,
			import_id = excluded.import_id
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range samples {
		if _, err := stmt.Exec(s.Date, s.Time, s.HeartRate, importID); err != nil {
			return fmt.Errorf("inserting sample %s %s: %w", s.Date, s.Time, err)
		}
	}

	return tx.Commit()
}

// ListHeartRateSamples returns all stored samples ordered by date and time.
func (db *DB) ListHeartRateSamples() ([]records.HeartRateSample, error) {
	rows, err := db.Query(`
		SELECT date, time, heart_rate FROM hr_samples ORDER BY date, time
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []records.HeartRateSample
	for rows.Next() {
		var s records.HeartRateSample
		if err := rows.Scan(&s.Date, &s.Time, &s.HeartRate); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// LatestSampleDate returns the most recent sample date, or "" when empty.
func (db *DB) LatestSampleDate() (string, error) {
	var date string
	err := db.QueryRow(`SELECT COALESCE(MAX(date), '') FROM hr_samples`).Scan(&date)
	return date, err
}
