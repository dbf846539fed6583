package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pulse/internal/config"
	"pulse/internal/store"
)

var (
	cfg *config.Config
	db  *store.DB
)

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Daily strain, recovery, and sleep scores from wearable data",
	Long: `Pulse derives daily physiological scores from wearable time-series data:
heart-rate samples, sleep stages, and activity minutes.

SCORES:

  Strain      0-21 training load from heart-rate zone minutes
  Recovery    0-100 readiness from resting HR, sleep, and prior strain
  Sleep       0-100 quality from duration, efficiency, stages, consistency
  VO2 Max     fitness estimate from max and resting heart rate
  Sleep need  recommended sleep for tonight

QUICK START:

  $ pulse import --kind heartrate hr.csv   # Import a flat-file export
  $ pulse import --kind sleep sleep.csv
  $ pulse sync                             # Or pull from the device API
  $ pulse report                           # Compute and show today's scores

Raw records live in ~/.pulse/data.db; scores are recomputed on every report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if errors.Is(err, config.ErrNoConfig) {
			if err := config.CreateExample(); err != nil {
				return fmt.Errorf("creating example config: %w", err)
			}
			configDir, _ := config.GetConfigDir()
			fmt.Printf("No config file found. Created one at %s/config.json\n", configDir)
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		db, err = store.Open()
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			return db.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(reportCmd)
}
