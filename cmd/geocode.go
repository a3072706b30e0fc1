package main

import (
	"context"
	"fmt"

	"github.com/maxaizer/jobbridge/internal/services"
	"github.com/spf13/cobra"
)

var geocodeCmd = &cobra.Command{
	Use:       "geocode jobs|profiles",
	Short:     "Fill in missing coordinates once and exit",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"jobs", "profiles"},
	RunE: func(cmd *cobra.Command, args []string) error {

		a, err := newApplication()
		if err != nil {
			return err
		}
		defer a.Close()

		geocoder, closeCache, err := a.geocoder(cmd.Context())
		if err != nil {
			return err
		}
		defer closeCache()

		var backfill func(ctx context.Context) (services.BackfillReport, error)
		if args[0] == "jobs" {
			backfill = geocoder.BackfillJobs
		} else {
			backfill = geocoder.BackfillProfiles
		}

		report, err := backfill(cmd.Context())
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d total, %d geocoded, %d failed (%d not found)\n",
			args[0], report.Total, report.Succeeded, report.Failed, report.NotFound)
		return err
	},
}
