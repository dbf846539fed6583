package store

import (
	"time"

	"github.com/google/uuid"
)

// NewImportBatch creates and records a batch row for an import or sync run,
// returning the generated batch id.
func (db *DB) NewImportBatch(source, kind string, recordCount int) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO imports (id, source, kind, record_count) VALUES (?, ?, ?, ?)
	`, id, source, kind, recordCount)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListImports returns all recorded batches, newest first.
func (db *DB) ListImports() ([]ImportBatch, error) {
	rows, err := db.Query(`
		SELECT id, source, kind, record_count, imported_at FROM imports
		ORDER BY imported_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []ImportBatch
	for rows.Next() {
		var b ImportBatch
		var importedAt string
		if err := rows.Scan(&b.ID, &b.Source, &b.Kind, &b.RecordCount, &importedAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse("2006-01-02 15:04:05", importedAt); err == nil {
			b.ImportedAt = t
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
