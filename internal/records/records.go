package records

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates ("YYYY-MM-DD", local wall clock).
const DateLayout = "2006-01-02"

// TimeLayout is the wire format for minute-resolution times of day ("HH:mm").
const TimeLayout = "15:04"

// HeartRateSample is one heart-rate observation at minute resolution.
// Samples are immutable once produced by a source adapter.
type HeartRateSample struct {
	Date      string // DateLayout
	Time      string // TimeLayout
	HeartRate int    // bpm
}

// SleepNight summarizes one calendar night of sleep. The night is keyed by
// the wake-up date; bedtime (Start) may fall on the previous calendar day.
type SleepNight struct {
	Date         string // DateLayout, wake-up date
	DeepMinutes  int
	LightMinutes int
	REMMinutes   int
	WakeMinutes  int
	Start        time.Time
	End          time.Time
}

// ActivityMinute is one minute of activity tracking data.
type ActivityMinute struct {
	Date           string // DateLayout
	Time           string // TimeLayout
	Steps          int
	ActiveCalories float64
}

// TotalSleepMinutes returns minutes actually asleep (deep + light + REM).
func (n SleepNight) TotalSleepMinutes() int {
	return n.DeepMinutes + n.LightMinutes + n.REMMinutes
}

// TimeInBedMinutes returns total minutes in bed including wake time.
func (n SleepNight) TimeInBedMinutes() int {
	return n.TotalSleepMinutes() + n.WakeMinutes
}

// MinuteOfDay parses a TimeLayout string into minutes after midnight.
func MinuteOfDay(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Validate checks that the sample is well-formed. Sources must validate
// before handing records to the analysis pipeline; the engines themselves
// never re-check.
func (s HeartRateSample) Validate() error {
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", s.Date, err)
	}
	if _, err := MinuteOfDay(s.Time); err != nil {
		return fmt.Errorf("invalid time: %w", err)
	}
	if s.HeartRate < 25 || s.HeartRate > 250 {
		return fmt.Errorf("heart rate %d bpm out of plausible range [25, 250]", s.HeartRate)
	}
	return nil
}

// Validate checks that the sleep night is well-formed.
func (n SleepNight) Validate() error {
	if _, err := time.Parse(DateLayout, n.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", n.Date, err)
	}
	if n.DeepMinutes < 0 || n.LightMinutes < 0 || n.REMMinutes < 0 || n.WakeMinutes < 0 {
		return fmt.Errorf("negative stage duration for %s", n.Date)
	}
	if n.TimeInBedMinutes() > 24*60 {
		return fmt.Errorf("stage durations for %s exceed 24 hours", n.Date)
	}
	if !n.Start.IsZero() && !n.End.IsZero() && !n.End.After(n.Start) {
		return fmt.Errorf("sleep end %v not after start %v", n.End, n.Start)
	}
	return nil
}

// Validate checks that the activity minute is well-formed.
func (a ActivityMinute) Validate() error {
	if _, err := time.Parse(DateLayout, a.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", a.Date, err)
	}
	if _, err := MinuteOfDay(a.Time); err != nil {
		return fmt.Errorf("invalid time: %w", err)
	}
	if a.Steps < 0 {
		return fmt.Errorf("negative step count %d", a.Steps)
	}
	if a.ActiveCalories < 0 {
		return fmt.Errorf("negative calorie value %v", a.ActiveCalories)
	}
	return nil
}
