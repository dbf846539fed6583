package analysis

import (
	"math"
	"time"

	"pulse/internal/records"
)

// Ideal stage proportions of total sleep: 20% deep, 25% REM, 55% light.
const (
	idealDeepPct  = 0.20
	idealREMPct   = 0.25
	idealLightPct = 0.55
)

// SleepScore is the computed sleep quality for one night.
type SleepScore struct {
	Date         string
	Score        int // [0, 100]
	Sufficiency  float64
	Efficiency   float64
	StageQuality float64
	Consistency  float64
	Level        ScoreLevel
}

// ComputeSleepScore scores one night against the target duration, stage
// proportions, and the bedtime pattern of up to the preceding 14 nights
// (oldest first). Missing history degrades to a neutral consistency score.
func ComputeSleepScore(night records.SleepNight, prior []records.SleepNight, p Params) SleepScore {
	totalSleep := float64(night.TotalSleepMinutes())
	totalInBed := float64(night.TimeInBedMinutes())

	sufficiency := math.Min(totalSleep/p.SleepTargetMinutes*100, 100)

	efficiency := 0.0
	if totalInBed > 0 {
		efficiency = (totalInBed - float64(night.WakeMinutes)) / totalInBed * 100
	}

	stageQuality := 0.0
	if totalSleep > 0 {
		deepPct := float64(night.DeepMinutes) / totalSleep
		remPct := float64(night.REMMinutes) / totalSleep
		lightPct := float64(night.LightMinutes) / totalSleep
		deviation := math.Abs(deepPct-idealDeepPct)/idealDeepPct +
			math.Abs(remPct-idealREMPct)/idealREMPct +
			math.Abs(lightPct-idealLightPct)/idealLightPct
		stageQuality = math.Max(0, 100-deviation*33.33)
	}

	consistency := bedtimeConsistency(night, prior)

	weighted := sufficiency*p.SufficiencyWeight +
		efficiency*p.EfficiencyWeight +
		stageQuality*p.StageQualityWeight +
		consistency*p.ConsistencyWeight
	score := int(clamp(math.Round(weighted), 0, 100))

	return SleepScore{
		Date:         night.Date,
		Score:        score,
		Sufficiency:  sufficiency,
		Efficiency:   efficiency,
		StageQuality: stageQuality,
		Consistency:  consistency,
		Level:        sleepLevel(score),
	}
}

// bedtimeConsistency compares tonight's bedtime hour against the median of
// prior nights, losing 25 points per hour of deviation. Fewer than 3 prior
// nights yields a neutral 75.
func bedtimeConsistency(night records.SleepNight, prior []records.SleepNight) float64 {
	if len(prior) < 3 {
		return 75
	}
	hours := make([]float64, 0, len(prior))
	for _, n := range prior {
		hours = append(hours, bedtimeHour(n.Start))
	}
	deviation := math.Abs(bedtimeHour(night.Start) - median(hours))
	return math.Max(0, 100-deviation*25)
}

// bedtimeHour maps a bedtime to a fractional hour, normalizing hours after
// midnight by adding 24 so a 00:30 bedtime sorts just after 23:xx.
func bedtimeHour(t time.Time) float64 {
	h := float64(t.Hour()) + float64(t.Minute())/60
	if h < 12 {
		h += 24
	}
	return h
}

func sleepLevel(score int) ScoreLevel {
	switch {
	case score >= 70:
		return LevelGreen
	case score >= 40:
		return LevelYellow
	default:
		return LevelRed
	}
}
