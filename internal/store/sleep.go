package store

import (
	"fmt"
	"time"

	"pulse/internal/records"
)

// UpsertSleepNights stores sleep nights, one per wake-up date.
func (db *DB) UpsertSleepNights(nights []records.SleepNight, importID string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO sleep_nights (date, deep_minutes, light_minutes, rem_minutes, wake_minutes, start_ts, end_ts, import_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			deep_minutes = excluded.deep_minutes,
			light_minutes = excluded.light_minutes,
			rem_minutes = excluded.rem_minutes,
			wake_minutes = excluded.wake_minutes,
			start_ts = excluded.start_ts,
			end_ts = excluded.end_ts,
			import_id = excluded.import_id
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range nights {
		if _, err := stmt.Exec(n.Date, n.DeepMinutes, n.LightMinutes, n.REMMinutes,
			n.WakeMinutes, n.Start.Unix(), n.End.Unix(), importID); err != nil {
			return fmt.Errorf("inserting night %s: %w", n.Date, err)
		}
	}

	return tx.Commit()
}

// ListSleepNights returns all stored nights ordered by date.
func (db *DB) ListSleepNights() ([]records.SleepNight, error) {
	rows, err := db.Query(`
		SELECT date, deep_minutes, light_minutes, rem_minutes, wake_minutes, start_ts, end_ts
		FROM sleep_nights ORDER BY date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nights []records.SleepNight
	for rows.Next() {
		var n records.SleepNight
		var startTS, endTS int64
		if err := rows.Scan(&n.Date, &n.DeepMinutes, &n.LightMinutes, &n.REMMinutes,
			&n.WakeMinutes, &startTS, &endTS); err != nil {
			return nil, err
		}
		n.Start = time.Unix(startTS, 0)
		n.End = time.Unix(endTS, 0)
		nights = append(nights, n)
	}
	return nights, rows.Err()
}
