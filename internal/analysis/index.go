package analysis

import (
	"sort"

	"pulse/internal/records"
)

// Nocturnal window used for resting heart rate: [02:00, 05:00) local time.
const (
	nocturnalStartMinute = 2 * 60
	nocturnalEndMinute   = 5 * 60
)

// DailyHRSummary holds single-pass summary statistics for one date's
// heart-rate samples.
type DailyHRSummary struct {
	Date    string
	Min     int
	Max     int
	Avg     float64 // running mean, updated incrementally
	Resting int     // bpm; nocturnal-window min, or the day's min as fallback
	Count   int
}

// HeartRateIndex groups raw heart-rate samples by date and keeps a summary
// per date. Sample order within a date bucket follows insertion order.
type HeartRateIndex struct {
	Samples   map[string][]records.HeartRateSample
	Summaries map[string]*DailyHRSummary
}

// BuildHeartRateIndex indexes an unordered sample slice in a single linear
// pass. Empty input yields an index with empty maps, never an error.
func BuildHeartRateIndex(samples []records.HeartRateSample) *HeartRateIndex {
	ix := &HeartRateIndex{
		Samples:   make(map[string][]records.HeartRateSample),
		Summaries: make(map[string]*DailyHRSummary),
	}

	// Nocturnal minimum per date; -1 means no nocturnal sample seen yet.
	nocturnalMin := make(map[string]int)

	for _, s := range samples {
		ix.Samples[s.Date] = append(ix.Samples[s.Date], s)

		sum, ok := ix.Summaries[s.Date]
		if !ok {
			sum = &DailyHRSummary{Date: s.Date, Min: s.HeartRate, Max: s.HeartRate}
			ix.Summaries[s.Date] = sum
			nocturnalMin[s.Date] = -1
		}

		if s.HeartRate < sum.Min {
			sum.Min = s.HeartRate
		}
		if s.HeartRate > sum.Max {
			sum.Max = s.HeartRate
		}
		// Incremental mean avoids re-summing the bucket on every insert.
		sum.Avg = (sum.Avg*float64(sum.Count) + float64(s.HeartRate)) / float64(sum.Count+1)
		sum.Count++

		if minute, err := records.MinuteOfDay(s.Time); err == nil {
			if minute >= nocturnalStartMinute && minute < nocturnalEndMinute {
				if nocturnalMin[s.Date] < 0 || s.HeartRate < nocturnalMin[s.Date] {
					nocturnalMin[s.Date] = s.HeartRate
				}
			}
		}
	}

	for date, sum := range ix.Summaries {
		if nm := nocturnalMin[date]; nm >= 0 {
			sum.Resting = nm
		} else {
			// No nocturnal samples that day: fall back to the overall min.
			sum.Resting = sum.Min
		}
	}

	return ix
}

// Dates returns every indexed date in ascending order.
func (ix *HeartRateIndex) Dates() []string {
	dates := make([]string, 0, len(ix.Summaries))
	for d := range ix.Summaries {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// GroupSleepByDate maps sleep nights by wake-up date. Later entries for the
// same date overwrite earlier ones; sources deliver one night per date.
func GroupSleepByDate(nights []records.SleepNight) map[string]records.SleepNight {
	byDate := make(map[string]records.SleepNight, len(nights))
	for _, n := range nights {
		byDate[n.Date] = n
	}
	return byDate
}

// GroupActivityByDate groups per-minute activity records by date, preserving
// insertion order within each bucket.
func GroupActivityByDate(minutes []records.ActivityMinute) map[string][]records.ActivityMinute {
	byDate := make(map[string][]records.ActivityMinute)
	for _, m := range minutes {
		byDate[m.Date] = append(byDate[m.Date], m)
	}
	return byDate
}
