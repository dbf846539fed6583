package service

import (
	"errors"
	"fmt"

	"pulse/internal/analysis"
	"pulse/internal/store"
)

// ErrNoData is returned when the store holds no heart-rate samples yet.
var ErrNoData = errors.New("no heart-rate data stored; run import or sync first")

// ReportService loads stored records, runs the scoring pipeline once, and
// assembles presentation-ready data. Scores are never persisted; every
// report is a fresh full recomputation.
type ReportService struct {
	store  *store.DB
	params analysis.Params
}

// NewReportService creates a new report service.
func NewReportService(db *store.DB, params analysis.Params) *ReportService {
	return &ReportService{store: db, params: params}
}

// DayActivity aggregates one date's activity minutes.
type DayActivity struct {
	Steps          int
	ActiveCalories float64
}

// Report is everything the report command prints.
type Report struct {
	Date string // most recent date with heart-rate data

	Strain    *analysis.DailyStrain
	Recovery  *analysis.RecoveryScore
	Sleep     *analysis.SleepScore
	SleepNeed analysis.SleepNeed
	VO2Max    *analysis.VO2Max
	Activity  *DayActivity

	// Trailing trend for charts, oldest first, aligned with TrendDates.
	TrendDates    []string
	StrainTrend   []float64
	RecoveryTrend []float64
}

// BuildReport runs the full pipeline over everything in the store.
func (s *ReportService) BuildReport() (*Report, error) {
	samples, err := s.store.ListHeartRateSamples()
	if err != nil {
		return nil, fmt.Errorf("loading heart-rate samples: %w", err)
	}
	if len(samples) == 0 {
		return nil, ErrNoData
	}

	nights, err := s.store.ListSleepNights()
	if err != nil {
		return nil, fmt.Errorf("loading sleep nights: %w", err)
	}
	minutes, err := s.store.ListActivityMinutes()
	if err != nil {
		return nil, fmt.Errorf("loading activity minutes: %w", err)
	}

	results := analysis.Run(samples, nights, s.params)
	dates := results.Index.Dates()
	today := dates[len(dates)-1]

	report := &Report{
		Date:      today,
		VO2Max:    results.VO2Max,
		SleepNeed: results.SleepNeedFor(today, s.params),
	}

	if st, ok := results.Strain[today]; ok {
		report.Strain = &st
	}
	if rec, ok := results.Recovery[today]; ok {
		report.Recovery = &rec
	}
	if sl, ok := results.Sleep[today]; ok {
		report.Sleep = &sl
	}

	if byDate := analysis.GroupActivityByDate(minutes); len(byDate[today]) > 0 {
		var act DayActivity
		for _, m := range byDate[today] {
			act.Steps += m.Steps
			act.ActiveCalories += m.ActiveCalories
		}
		report.Activity = &act
	}

	// Trailing window for the trend charts.
	window := dates
	if len(window) > s.params.BaselineWindowDays {
		window = window[len(window)-s.params.BaselineWindowDays:]
	}
	for _, d := range window {
		report.TrendDates = append(report.TrendDates, d)
		report.StrainTrend = append(report.StrainTrend, results.Strain[d].Strain)
		report.RecoveryTrend = append(report.RecoveryTrend, float64(results.Recovery[d].Score))
	}

	return report, nil
}
