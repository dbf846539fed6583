package analysis

import (
	"reflect"
	"testing"
	"time"

	"pulse/internal/records"
)

func pipelineFixture() ([]records.HeartRateSample, []records.SleepNight) {
	samples := []records.HeartRateSample{
		// Day 1: nocturnal resting 55, some cardio work.
		hrSample("2024-03-01", "03:00", 55),
		hrSample("2024-03-01", "03:30", 55),
		hrSample("2024-03-01", "10:00", 140),
		hrSample("2024-03-01", "10:01", 142),
		hrSample("2024-03-01", "10:02", 138),
		// Day 2: nocturnal resting 60, quiet day.
		hrSample("2024-03-02", "02:30", 60),
		hrSample("2024-03-02", "04:00", 60),
		hrSample("2024-03-02", "12:00", 72),
		// Day 4: a gap on day 3, so its recovery has no prior-day strain.
		hrSample("2024-03-04", "03:00", 58),
		hrSample("2024-03-04", "09:00", 80),
	}
	nights := []records.SleepNight{
		{
			Date: "2024-03-02", DeepMinutes: 96, LightMinutes: 264, REMMinutes: 120,
			Start: time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 2, 7, 0, 0, 0, time.UTC),
		},
		{
			Date: "2024-03-01", DeepMinutes: 80, LightMinutes: 220, REMMinutes: 100,
			Start: time.Date(2024, 2, 29, 23, 30, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 1, 6, 10, 0, 0, time.UTC),
		},
	}
	return samples, nights
}

func TestRunCoversEveryDate(t *testing.T) {
	samples, nights := pipelineFixture()
	res := Run(samples, nights, DefaultParams())

	for _, date := range res.Index.Dates() {
		if _, ok := res.Strain[date]; !ok {
			t.Errorf("missing strain for %s", date)
		}
		if _, ok := res.Recovery[date]; !ok {
			t.Errorf("missing recovery for %s", date)
		}
	}
	if len(res.Sleep) != len(nights) {
		t.Errorf("got %d sleep scores, want %d", len(res.Sleep), len(nights))
	}
	if res.VO2Max == nil {
		t.Error("expected a VO2 max estimate")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	samples, nights := pipelineFixture()
	p := DefaultParams()

	first := Run(samples, nights, p)
	second := Run(samples, nights, p)

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same inputs diverged")
	}
}

func TestRunBaselineIsSequential(t *testing.T) {
	samples, nights := pipelineFixture()
	res := Run(samples, nights, DefaultParams())

	// Day 1 has no preceding resting history, so the default applies.
	if got := res.Recovery["2024-03-01"].Baseline; got != 65 {
		t.Errorf("day 1 baseline = %v, want default 65", got)
	}
	// Day 2's baseline is the median of the single preceding night.
	if got := res.Recovery["2024-03-02"].Baseline; got != 55 {
		t.Errorf("day 2 baseline = %v, want 55", got)
	}
	// Day 4 sees both preceding nights: median(55, 60) = 57.5.
	if got := res.Recovery["2024-03-04"].Baseline; got != 57.5 {
		t.Errorf("day 4 baseline = %v, want 57.5", got)
	}
}

func TestRunPriorDayStrain(t *testing.T) {
	samples, nights := pipelineFixture()
	res := Run(samples, nights, DefaultParams())

	// Day 2 follows a recorded day, so its strain component derives from
	// day 1's strain rather than the rest-day fallback.
	day1 := res.Strain["2024-03-01"]
	day2 := res.Recovery["2024-03-02"]
	expected := clamp(100-(day1.Strain/21)*100, 0, 100)
	if day2.StrainComponent != expected {
		t.Errorf("day 2 strain component = %v, want %v", day2.StrainComponent, expected)
	}

	// Day 4 follows the gap on day 3: no prior strain, neutral 75.
	if got := res.Recovery["2024-03-04"].StrainComponent; got != 75 {
		t.Errorf("day 4 strain component = %v, want 75", got)
	}
}

func TestRunSleepWindowOrder(t *testing.T) {
	// Nights arrive unsorted; the second night's window must contain only
	// the first, so with fewer than 3 prior nights consistency is neutral.
	samples, nights := pipelineFixture()
	res := Run(samples, nights, DefaultParams())

	for date, score := range res.Sleep {
		if score.Consistency != 75 {
			t.Errorf("%s consistency = %v, want neutral 75 with sparse history", date, score.Consistency)
		}
	}
}

func TestSleepNeedFor(t *testing.T) {
	samples, nights := pipelineFixture()
	p := DefaultParams()
	res := Run(samples, nights, p)

	// Night 1: 400 min (80 short). Night 2: 480 min (no debt).
	// Debt through 2024-03-02 is 80, so the adjustment is 20.
	need := res.SleepNeedFor("2024-03-02", p)
	if need.DebtAdjustment != 20 {
		t.Errorf("DebtAdjustment = %d, want 20", need.DebtAdjustment)
	}

	// Day 2's strain is minimal, below the first step.
	if need.StrainAdjustment != 0 {
		t.Errorf("StrainAdjustment = %d, want 0", need.StrainAdjustment)
	}
	if need.RecommendedMinutes != 500 {
		t.Errorf("RecommendedMinutes = %d, want 500", need.RecommendedMinutes)
	}

	// A date with no data still yields the base recommendation.
	empty := res.SleepNeedFor("2023-01-01", p)
	if empty.RecommendedMinutes != 480 {
		t.Errorf("RecommendedMinutes for unknown date = %d, want 480", empty.RecommendedMinutes)
	}
}

func TestPreviousDate(t *testing.T) {
	tests := []struct {
		date     string
		expected string
	}{
		{"2024-03-02", "2024-03-01"},
		{"2024-03-01", "2024-02-29"}, // leap year
		{"2024-01-01", "2023-12-31"},
		{"not-a-date", ""},
	}

	for _, tt := range tests {
		if got := previousDate(tt.date); got != tt.expected {
			t.Errorf("previousDate(%q) = %q, want %q", tt.date, got, tt.expected)
		}
	}
}
