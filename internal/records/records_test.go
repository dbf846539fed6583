package records

import (
	"testing"
	"time"
)

func TestMinuteOfDay(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"00:00", 0, false},
		{"02:00", 120, false},
		{"05:00", 300, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"7:30am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := MinuteOfDay(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("MinuteOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.expected {
			t.Errorf("MinuteOfDay(%q) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func TestHeartRateSampleValidate(t *testing.T) {
	valid := HeartRateSample{Date: "2024-03-01", Time: "08:30", HeartRate: 72}

	tests := []struct {
		name    string
		mutate  func(s *HeartRateSample)
		wantErr bool
	}{
		{"valid", func(s *HeartRateSample) {}, false},
		{"bad date", func(s *HeartRateSample) { s.Date = "03/01/2024" }, true},
		{"bad time", func(s *HeartRateSample) { s.Time = "8:30pm" }, true},
		{"heart rate too low", func(s *HeartRateSample) { s.HeartRate = 24 }, true},
		{"heart rate too high", func(s *HeartRateSample) { s.HeartRate = 251 }, true},
		{"boundary low ok", func(s *HeartRateSample) { s.HeartRate = 25 }, false},
		{"boundary high ok", func(s *HeartRateSample) { s.HeartRate = 250 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSleepNightValidate(t *testing.T) {
	start := time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)
	valid := SleepNight{
		Date: "2024-03-01", DeepMinutes: 90, LightMinutes: 240, REMMinutes: 110, WakeMinutes: 20,
		Start: start, End: start.Add(460 * time.Minute),
	}

	tests := []struct {
		name    string
		mutate  func(n *SleepNight)
		wantErr bool
	}{
		{"valid", func(n *SleepNight) {}, false},
		{"bad date", func(n *SleepNight) { n.Date = "yesterday" }, true},
		{"negative stage", func(n *SleepNight) { n.REMMinutes = -1 }, true},
		{"over 24 hours", func(n *SleepNight) { n.LightMinutes = 24 * 60 }, true},
		{"end before start", func(n *SleepNight) { n.End = n.Start.Add(-time.Hour) }, true},
		{"end equals start", func(n *SleepNight) { n.End = n.Start }, true},
		{"zero timestamps skip the order check", func(n *SleepNight) {
			n.Start = time.Time{}
			n.End = time.Time{}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := valid
			tt.mutate(&n)
			if err := n.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestActivityMinuteValidate(t *testing.T) {
	valid := ActivityMinute{Date: "2024-03-01", Time: "12:00", Steps: 110, ActiveCalories: 5.2}

	tests := []struct {
		name    string
		mutate  func(a *ActivityMinute)
		wantErr bool
	}{
		{"valid", func(a *ActivityMinute) {}, false},
		{"bad date", func(a *ActivityMinute) { a.Date = "2024-3-1" }, true},
		{"negative steps", func(a *ActivityMinute) { a.Steps = -1 }, true},
		{"negative calories", func(a *ActivityMinute) { a.ActiveCalories = -0.1 }, true},
		{"zeros are fine", func(a *ActivityMinute) { a.Steps = 0; a.ActiveCalories = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			if err := a.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSleepNightDurations(t *testing.T) {
	n := SleepNight{DeepMinutes: 96, LightMinutes: 264, REMMinutes: 120, WakeMinutes: 30}
	if got := n.TotalSleepMinutes(); got != 480 {
		t.Errorf("TotalSleepMinutes = %d, want 480", got)
	}
	if got := n.TimeInBedMinutes(); got != 510 {
		t.Errorf("TimeInBedMinutes = %d, want 510", got)
	}
}
