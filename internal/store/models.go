package store

import "time"

// Auth represents OAuth tokens for the device-data API
type Auth struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// ImportBatch records one import or sync run.
type ImportBatch struct {
	ID          string // uuid
	Source      string // "csv" or "device"
	Kind        string // "heartrate", "sleep", "activity"
	RecordCount int
	ImportedAt  time.Time
}
