package device

import (
	"fmt"
	"time"

	"pulse/internal/records"
)

// heartRatePage is one page of the /v1/heartrate endpoint.
type heartRatePage struct {
	Samples []heartRateSample `json:"samples"`
	NextTok string            `json:"next_token"`
}

type heartRateSample struct {
	Date string `json:"date"` // "YYYY-MM-DD"
	Time string `json:"time"` // "HH:mm"
	BPM  int    `json:"bpm"`
}

// sleepPage is one page of the /v1/sleep endpoint.
type sleepPage struct {
	Nights  []sleepNight `json:"nights"`
	NextTok string       `json:"next_token"`
}

type sleepNight struct {
	Date         string    `json:"date"`
	DeepMinutes  int       `json:"deep_minutes"`
	LightMinutes int       `json:"light_minutes"`
	REMMinutes   int       `json:"rem_minutes"`
	WakeMinutes  int       `json:"wake_minutes"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
}

// activityPage is one page of the /v1/activity endpoint.
type activityPage struct {
	Minutes []activityMinute `json:"minutes"`
	NextTok string           `json:"next_token"`
}

type activityMinute struct {
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Steps          int     `json:"steps"`
	ActiveCalories float64 `json:"active_calories"`
}

// convertSample validates at the ingestion boundary so malformed payloads
// never reach the analysis pipeline.
func convertSample(s heartRateSample) (records.HeartRateSample, error) {
	rec := records.HeartRateSample{Date: s.Date, Time: s.Time, HeartRate: s.BPM}
	if err := rec.Validate(); err != nil {
		return records.HeartRateSample{}, fmt.Errorf("heart-rate sample: %w", err)
	}
	return rec, nil
}

func convertNight(n sleepNight) (records.SleepNight, error) {
	rec := records.SleepNight{
		Date:         n.Date,
		DeepMinutes:  n.DeepMinutes,
		LightMinutes: n.LightMinutes,
		REMMinutes:   n.REMMinutes,
		WakeMinutes:  n.WakeMinutes,
		Start:        n.Start,
		End:          n.End,
	}
	if err := rec.Validate(); err != nil {
		return records.SleepNight{}, fmt.Errorf("sleep night: %w", err)
	}
	return rec, nil
}

func convertMinute(m activityMinute) (records.ActivityMinute, error) {
	rec := records.ActivityMinute{Date: m.Date, Time: m.Time, Steps: m.Steps, ActiveCalories: m.ActiveCalories}
	if err := rec.Validate(); err != nil {
		return records.ActivityMinute{}, fmt.Errorf("activity minute: %w", err)
	}
	return rec, nil
}
