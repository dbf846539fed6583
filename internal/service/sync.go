package service

import (
	"context"
	"fmt"

	"pulse/internal/device"
	"pulse/internal/store"
)

// SyncService pulls raw records from the device-data API into the store.
type SyncService struct {
	client *device.Client
	store  *store.DB
}

// NewSyncService creates a new sync service.
func NewSyncService(client *device.Client, db *store.DB) *SyncService {
	return &SyncService{client: client, store: db}
}

// SyncResult contains the results of a sync operation.
type SyncResult struct {
	SamplesFetched int
	NightsFetched  int
	MinutesFetched int
}

// SyncAll fetches heart-rate, sleep, and activity records newer than the
// last synced date and upserts them. Re-fetching the boundary date is
// intentional: its records are upserted, so a partial day is completed.
func (s *SyncService) SyncAll(ctx context.Context) (*SyncResult, error) {
	since, err := s.store.GetSyncState("last_sync_date")
	if err != nil {
		return nil, fmt.Errorf("reading sync state: %w", err)
	}

	result := &SyncResult{}

	samples, err := s.client.GetHeartRateSamples(ctx, since)
	if err != nil {
		return result, fmt.Errorf("fetching heart-rate samples: %w", err)
	}
	result.SamplesFetched = len(samples)
	if len(samples) > 0 {
		batchID, err := s.store.NewImportBatch("device", "heartrate", len(samples))
		if err != nil {
			return result, fmt.Errorf("recording batch: %w", err)
		}
		if err := s.store.InsertHeartRateSamples(samples, batchID); err != nil {
			return result, fmt.Errorf("storing heart-rate samples: %w", err)
		}
	}

	nights, err := s.client.GetSleepNights(ctx, since)
	if err != nil {
		return result, fmt.Errorf("fetching sleep nights: %w", err)
	}
	result.NightsFetched = len(nights)
	if len(nights) > 0 {
		batchID, err := s.store.NewImportBatch("device", "sleep", len(nights))
		if err != nil {
			return result, fmt.Errorf("recording batch: %w", err)
		}
		if err := s.store.UpsertSleepNights(nights, batchID); err != nil {
			return result, fmt.Errorf("storing sleep nights: %w", err)
		}
	}

	minutes, err := s.client.GetActivityMinutes(ctx, since)
	if err != nil {
		return result, fmt.Errorf("fetching activity minutes: %w", err)
	}
	result.MinutesFetched = len(minutes)
	if len(minutes) > 0 {
		batchID, err := s.store.NewImportBatch("device", "activity", len(minutes))
		if err != nil {
			return result, fmt.Errorf("recording batch: %w", err)
		}
		if err := s.store.InsertActivityMinutes(minutes, batchID); err != nil {
			return result, fmt.Errorf("storing activity minutes: %w", err)
		}
	}

	latest, err := s.store.LatestSampleDate()
	if err != nil {
		return result, fmt.Errorf("finding latest sample: %w", err)
	}
	if latest != "" {
		if err := s.store.SetSyncState("last_sync_date", latest); err != nil {
			return result, fmt.Errorf("saving sync state: %w", err)
		}
	}

	return result, nil
}
