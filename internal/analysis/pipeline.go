package analysis

import (
	"sort"
	"time"

	"pulse/internal/records"
)

// Params holds every tunable scoring constant so tests and user config can
// exercise alternate thresholds deterministically.
type Params struct {
	// Heart-rate zones, as fractions of MaxHR.
	MaxHR          float64
	PeakZonePct    float64
	CardioZonePct  float64
	FatBurnZonePct float64

	// Strain saturation curve divisor.
	ImpulseScale float64

	// Recovery component weights (sum to 1).
	RHRWeight           float64
	RecoverySleepWeight float64
	StrainWeight        float64

	// Sleep score component weights (sum to 1).
	SufficiencyWeight  float64
	EfficiencyWeight   float64
	StageQualityWeight float64
	ConsistencyWeight  float64

	// Rolling windows and fallbacks.
	BaselineWindowDays int
	SleepTargetMinutes float64
	DefaultBaselineRHR float64 // bpm, used before any nightly history exists
}

// DefaultParams returns the standard scoring constants.
func DefaultParams() Params {
	return Params{
		MaxHR:               190,
		PeakZonePct:         0.85,
		CardioZonePct:       0.70,
		FatBurnZonePct:      0.50,
		ImpulseScale:        100,
		RHRWeight:           0.40,
		RecoverySleepWeight: 0.40,
		StrainWeight:        0.20,
		SufficiencyWeight:   0.30,
		EfficiencyWeight:    0.25,
		StageQualityWeight:  0.25,
		ConsistencyWeight:   0.20,
		BaselineWindowDays:  14,
		SleepTargetMinutes:  480,
		DefaultBaselineRHR:  65,
	}
}

// Results is the immutable output of one full pipeline run: one map per
// score type keyed by date string, plus the single VO2 max estimate.
type Results struct {
	Strain   map[string]DailyStrain
	Sleep    map[string]SleepScore
	Recovery map[string]RecoveryScore
	VO2Max   *VO2Max // nil when no heart-rate data exists

	Index  *HeartRateIndex
	Nights map[string]records.SleepNight
}

// Run drives every engine across the full date range. Scores are rebuilt in
// full on every call; the run is deterministic and idempotent.
func Run(samples []records.HeartRateSample, nights []records.SleepNight, p Params) *Results {
	ix := BuildHeartRateIndex(samples)
	dates := ix.Dates()

	res := &Results{
		Strain:   make(map[string]DailyStrain, len(dates)),
		Sleep:    make(map[string]SleepScore, len(nights)),
		Recovery: make(map[string]RecoveryScore, len(dates)),
		Index:    ix,
		Nights:   GroupSleepByDate(nights),
	}

	// Strain per date is independent of other dates.
	for _, date := range dates {
		res.Strain[date] = ComputeDailyStrain(date, ix.Samples[date], p)
	}

	// Sleep scores consume raw prior nights per window, in date order.
	sorted := sortNights(nights)
	for i, night := range sorted {
		start := i - p.BaselineWindowDays
		if start < 0 {
			start = 0
		}
		res.Sleep[night.Date] = ComputeSleepScore(night, sorted[start:i], p)
	}

	// Recovery has a genuine sequential dependency: the baseline at day i
	// uses resting values from the preceding days only, and the strain
	// component uses the prior calendar day. Fold over ascending dates.
	var restingHistory []float64
	for _, date := range dates {
		resting := NightlyRestingHR(ix.Samples[date])
		baseline := RestingBaseline(restingHistory, p)

		var night *records.SleepNight
		if n, ok := res.Nights[date]; ok {
			night = &n
		}

		var priorStrain *float64
		if st, ok := res.Strain[previousDate(date)]; ok {
			priorStrain = &st.Strain
		}

		res.Recovery[date] = ComputeRecovery(date, resting, baseline, night, priorStrain, p)

		if resting != nil {
			restingHistory = append(restingHistory, *resting)
			if len(restingHistory) > p.BaselineWindowDays {
				restingHistory = restingHistory[1:]
			}
		}
	}

	res.VO2Max = EstimateVO2Max(ix.Summaries)

	return res
}

// SleepNeedFor computes the recommended sleep for a date from that day's
// strain and the sleep debt accumulated over the trailing nights up to and
// including it.
func (r *Results) SleepNeedFor(date string, p Params) SleepNeed {
	strain := 0.0
	if st, ok := r.Strain[date]; ok {
		strain = st.Strain
	}

	var trailing []records.SleepNight
	for _, n := range sortNights(mapNights(r.Nights)) {
		if n.Date <= date {
			trailing = append(trailing, n)
		}
	}

	return ComputeSleepNeed(strain, SleepDebtMinutes(trailing, p), p)
}

// sortNights returns a date-ascending copy; the input is not modified.
func sortNights(nights []records.SleepNight) []records.SleepNight {
	sorted := make([]records.SleepNight, len(nights))
	copy(sorted, nights)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

func mapNights(byDate map[string]records.SleepNight) []records.SleepNight {
	nights := make([]records.SleepNight, 0, len(byDate))
	for _, n := range byDate {
		nights = append(nights, n)
	}
	return nights
}

// previousDate returns the calendar day before a DateLayout date. Invalid
// input yields an empty string, which never matches a strain map key.
func previousDate(date string) string {
	t, err := time.Parse(records.DateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(records.DateLayout)
}
