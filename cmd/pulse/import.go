package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pulse/internal/service"
)

var importKind string

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a flat-file export of wearable records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()

		svc := service.NewImportService(db)
		result, err := svc.ImportCSV(importKind, f)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d of %d rows (%d rejected)\n",
			result.Accepted, result.Total, result.Rejected)
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importKind, "kind", service.KindHeartRate,
		"record kind: heartrate, sleep, or activity")
}
