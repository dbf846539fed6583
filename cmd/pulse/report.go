package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"pulse/internal/analysis"
	"pulse/internal/service"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute and show today's scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewReportService(db, cfg.Params())
		report, err := svc.BuildReport()
		if errors.Is(err, service.ErrNoData) {
			fmt.Println("No data yet. Import a CSV export or run `pulse sync` first.")
			return nil
		}
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		bold.Printf("Pulse report for %s\n\n", report.Date)

		if report.Strain != nil {
			fmt.Printf("Strain      %5.1f  %-9s  zones rest/fat/cardio/peak: %d/%d/%d/%d min\n",
				report.Strain.Strain, report.Strain.Level,
				report.Strain.Zones.Rest, report.Strain.Zones.FatBurn,
				report.Strain.Zones.Cardio, report.Strain.Zones.Peak)
		}
		if report.Recovery != nil {
			fmt.Printf("Recovery    %5d  %s  resting %s vs baseline %.0f bpm\n",
				report.Recovery.Score, levelColor(report.Recovery.Level),
				formatResting(report.Recovery.RestingHR), report.Recovery.Baseline)
		}
		if report.Sleep != nil {
			fmt.Printf("Sleep       %5d  %s  sufficiency %.0f / efficiency %.0f / stages %.0f / consistency %.0f\n",
				report.Sleep.Score, levelColor(report.Sleep.Level),
				report.Sleep.Sufficiency, report.Sleep.Efficiency,
				report.Sleep.StageQuality, report.Sleep.Consistency)
		}
		fmt.Printf("Sleep need  %dh%02dm tonight (base %d + strain %d + debt %d min)\n",
			report.SleepNeed.RecommendedMinutes/60, report.SleepNeed.RecommendedMinutes%60,
			report.SleepNeed.BaseMinutes, report.SleepNeed.StrainAdjustment,
			report.SleepNeed.DebtAdjustment)
		if report.VO2Max != nil {
			fmt.Printf("VO2 max     %5.1f  %s (%s)\n",
				report.VO2Max.Value, report.VO2Max.Classification, report.VO2Max.Percentile)
		}
		if report.Activity != nil {
			fmt.Printf("Activity    %d steps, %.0f active kcal\n",
				report.Activity.Steps, report.Activity.ActiveCalories)
		}

		if len(report.StrainTrend) >= 3 {
			bold.Printf("\nStrain, last %d days\n", len(report.StrainTrend))
			fmt.Println(asciigraph.Plot(report.StrainTrend, asciigraph.Height(6)))
		}
		if len(report.RecoveryTrend) >= 3 {
			bold.Printf("\nRecovery, last %d days\n", len(report.RecoveryTrend))
			fmt.Println(asciigraph.Plot(report.RecoveryTrend, asciigraph.Height(6)))
		}

		return nil
	},
}

func levelColor(level analysis.ScoreLevel) string {
	switch level {
	case analysis.LevelGreen:
		return color.GreenString("%-9s", level)
	case analysis.LevelYellow:
		return color.YellowString("%-9s", level)
	default:
		return color.RedString("%-9s", level)
	}
}

func formatResting(rhr *float64) string {
	if rhr == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", *rhr)
}
