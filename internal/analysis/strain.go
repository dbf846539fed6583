package analysis

import (
	"math"

	"pulse/internal/records"
)

// StrainLevel buckets a daily strain score for display.
type StrainLevel string

const (
	StrainRest     StrainLevel = "rest"
	StrainLight    StrainLevel = "light"
	StrainModerate StrainLevel = "moderate"
	StrainHigh     StrainLevel = "high"
	StrainAllOut   StrainLevel = "all-out"
)

// ZoneMinutes counts how many observed minutes fell into each heart-rate
// zone. One sample equals one minute of observation.
type ZoneMinutes struct {
	Rest    int
	FatBurn int
	Cardio  int
	Peak    int
}

// Total returns the total observed minutes across all zones.
func (z ZoneMinutes) Total() int {
	return z.Rest + z.FatBurn + z.Cardio + z.Peak
}

// Shares returns each zone's fraction of the day's observed minutes.
// A day with no samples reports all zeros (the divisor is treated as 1).
func (z ZoneMinutes) Shares() (rest, fatBurn, cardio, peak float64) {
	total := float64(z.Total())
	if total == 0 {
		total = 1
	}
	return float64(z.Rest) / total, float64(z.FatBurn) / total,
		float64(z.Cardio) / total, float64(z.Peak) / total
}

// DailyStrain is the computed strain for one date.
type DailyStrain struct {
	Date       string
	RawImpulse float64
	Strain     float64 // [0, 21], one decimal place
	Zones      ZoneMinutes
	Level      StrainLevel
}

// ComputeDailyStrain converts one day's heart-rate samples into zone minutes
// and a saturating strain score. Zero samples yield strain 0.
func ComputeDailyStrain(date string, samples []records.HeartRateSample, p Params) DailyStrain {
	var zones ZoneMinutes
	for _, s := range samples {
		ratio := float64(s.HeartRate) / p.MaxHR
		switch {
		case ratio >= p.PeakZonePct:
			zones.Peak++
		case ratio >= p.CardioZonePct:
			zones.Cardio++
		case ratio >= p.FatBurnZonePct:
			zones.FatBurn++
		default:
			zones.Rest++
		}
	}

	// Training impulse weights zone minutes by intensity; rest contributes 0.
	impulse := float64(zones.FatBurn)*1 + float64(zones.Cardio)*2 + float64(zones.Peak)*3

	// Exponential saturation caps strain at 21 and makes additional
	// high-zone minutes yield diminishing returns.
	strain := round1(21 * (1 - math.Exp(-impulse/p.ImpulseScale)))

	return DailyStrain{
		Date:       date,
		RawImpulse: impulse,
		Strain:     strain,
		Zones:      zones,
		Level:      strainLevel(strain),
	}
}

func strainLevel(strain float64) StrainLevel {
	switch {
	case strain < 2:
		return StrainRest
	case strain < 7:
		return StrainLight
	case strain < 14:
		return StrainModerate
	case strain < 18:
		return StrainHigh
	default:
		return StrainAllOut
	}
}
