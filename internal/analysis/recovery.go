package analysis

import (
	"math"

	"pulse/internal/records"
)

// ScoreLevel is the traffic-light bucket shared by recovery and sleep scores.
type ScoreLevel string

const (
	LevelGreen  ScoreLevel = "green"
	LevelYellow ScoreLevel = "yellow"
	LevelRed    ScoreLevel = "red"
)

// RecoveryScore is the computed recovery for one date.
type RecoveryScore struct {
	Date            string
	Score           int      // [0, 100]
	RestingHR       *float64 // bpm; nil when no nocturnal samples that night
	Baseline        float64  // rolling resting-HR baseline, bpm
	RHRComponent    float64
	SleepComponent  float64
	StrainComponent float64
	Level           ScoreLevel
}

// NightlyRestingHR derives a night's resting heart rate as the median of
// samples within the nocturnal window. Returns nil when the window is empty.
func NightlyRestingHR(samples []records.HeartRateSample) *float64 {
	var nocturnal []float64
	for _, s := range samples {
		minute, err := records.MinuteOfDay(s.Time)
		if err != nil {
			continue
		}
		if minute >= nocturnalStartMinute && minute < nocturnalEndMinute {
			nocturnal = append(nocturnal, float64(s.HeartRate))
		}
	}
	if len(nocturnal) == 0 {
		return nil
	}
	m := median(nocturnal)
	return &m
}

// RestingBaseline returns the median of the supplied preceding nightly
// resting-HR values. With no history it falls back to the configured default.
func RestingBaseline(history []float64, p Params) float64 {
	if len(history) == 0 {
		return p.DefaultBaselineRHR
	}
	return median(history)
}

// ComputeRecovery blends resting HR deviation, last night's sleep, and the
// prior day's strain into a 0-100 recovery score. Every missing input has a
// neutral fallback so partial data degrades rather than failing.
func ComputeRecovery(date string, restingHR *float64, baseline float64, night *records.SleepNight, priorStrain *float64, p Params) RecoveryScore {
	// Elevated resting HR vs baseline penalizes at 5 points per bpm.
	rhrComponent := 50.0
	if restingHR != nil {
		rhrComponent = clamp(100-(*restingHR-baseline)*5, 0, 100)
	}

	sleepComponent := 50.0
	if night != nil {
		sleepComponent = clamp(float64(night.TotalSleepMinutes())/p.SleepTargetMinutes*100, 0, 100)
	}

	// A rest day (no prior strain) favors recovery.
	strainComponent := 75.0
	if priorStrain != nil {
		strainComponent = clamp(100-(*priorStrain/21)*100, 0, 100)
	}

	weighted := rhrComponent*p.RHRWeight + sleepComponent*p.RecoverySleepWeight + strainComponent*p.StrainWeight
	score := int(clamp(math.Round(weighted), 0, 100))

	return RecoveryScore{
		Date:            date,
		Score:           score,
		RestingHR:       restingHR,
		Baseline:        baseline,
		RHRComponent:    rhrComponent,
		SleepComponent:  sleepComponent,
		StrainComponent: strainComponent,
		Level:           recoveryLevel(score),
	}
}

func recoveryLevel(score int) ScoreLevel {
	switch {
	case score >= 67:
		return LevelGreen
	case score >= 34:
		return LevelYellow
	default:
		return LevelRed
	}
}
