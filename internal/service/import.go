package service

import (
	"fmt"
	"io"

	"pulse/internal/importer"
	"pulse/internal/store"
)

// Import kinds accepted by ImportCSV.
const (
	KindHeartRate = "heartrate"
	KindSleep     = "sleep"
	KindActivity  = "activity"
)

// ImportService parses flat-file exports and stores the accepted records.
type ImportService struct {
	store *store.DB
}

// NewImportService creates a new import service.
func NewImportService(db *store.DB) *ImportService {
	return &ImportService{store: db}
}

// ImportCSV parses a CSV stream of the given kind, stores the accepted
// records under a fresh batch id, and returns the per-row result.
func (s *ImportService) ImportCSV(kind string, r io.Reader) (*importer.Result, error) {
	switch kind {
	case KindHeartRate:
		samples, result, err := importer.ReadHeartRateCSV(r)
		if err != nil {
			return nil, err
		}
		if len(samples) > 0 {
			batchID, err := s.store.NewImportBatch("csv", kind, len(samples))
			if err != nil {
				return result, fmt.Errorf("recording batch: %w", err)
			}
			if err := s.store.InsertHeartRateSamples(samples, batchID); err != nil {
				return result, fmt.Errorf("storing samples: %w", err)
			}
		}
		return result, nil

	case KindSleep:
		nights, result, err := importer.ReadSleepCSV(r)
		if err != nil {
			return nil, err
		}
		if len(nights) > 0 {
			batchID, err := s.store.NewImportBatch("csv", kind, len(nights))
			if err != nil {
				return result, fmt.Errorf("recording batch: %w", err)
			}
			if err := s.store.UpsertSleepNights(nights, batchID); err != nil {
				return result, fmt.Errorf("storing nights: %w", err)
			}
		}
		return result, nil

	case KindActivity:
		minutes, result, err := importer.ReadActivityCSV(r)
		if err != nil {
			return nil, err
		}
		if len(minutes) > 0 {
			batchID, err := s.store.NewImportBatch("csv", kind, len(minutes))
			if err != nil {
				return result, fmt.Errorf("recording batch: %w", err)
			}
			if err := s.store.InsertActivityMinutes(minutes, batchID); err != nil {
				return result, fmt.Errorf("storing activity minutes: %w", err)
			}
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unknown import kind %q (want %s, %s, or %s)",
			kind, KindHeartRate, KindSleep, KindActivity)
	}
}
