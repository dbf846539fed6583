package analysis

import (
	"math"

	"pulse/internal/records"
)

// SleepNeed is tonight's recommended sleep duration, computed on demand.
type SleepNeed struct {
	RecommendedMinutes int
	BaseMinutes        int
	StrainAdjustment   int
	DebtAdjustment     int
}

// SleepDebtMinutes sums the shortfall against the recommended baseline over
// a trailing window of up to 14 nights. Oversleeping never produces credit.
func SleepDebtMinutes(nights []records.SleepNight, p Params) float64 {
	window := nights
	if len(window) > p.BaselineWindowDays {
		window = window[len(window)-p.BaselineWindowDays:]
	}
	debt := 0.0
	for _, n := range window {
		debt += math.Max(0, p.SleepTargetMinutes-float64(n.TotalSleepMinutes()))
	}
	return debt
}

// ComputeSleepNeed recommends a sleep duration from today's strain and the
// accumulated sleep debt.
func ComputeSleepNeed(todayStrain, debtMinutes float64, p Params) SleepNeed {
	strainAdj := strainAdjustment(todayStrain)
	debtAdj := int(clamp(debtMinutes*0.25, 0, 30))

	base := int(p.SleepTargetMinutes)
	return SleepNeed{
		RecommendedMinutes: base + strainAdj + debtAdj,
		BaseMinutes:        base,
		StrainAdjustment:   strainAdj,
		DebtAdjustment:     debtAdj,
	}
}

// strainAdjustment is a step function: harder days earn more sleep.
func strainAdjustment(strain float64) int {
	switch {
	case strain < 7:
		return 0
	case strain < 14:
		return 15
	case strain < 18:
		return 30
	default:
		return 45
	}
}
