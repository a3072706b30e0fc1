package main

import (
	"fmt"

	"github.com/maxaizer/jobbridge/internal/seed"
	"github.com/maxaizer/jobbridge/internal/services"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Load a YAML fixture into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		fixture, err := seed.Load(args[0])
		if err != nil {
			return err
		}

		a, err := newApplication()
		if err != nil {
			return err
		}
		defer a.Close()

		seeder := seed.NewSeeder(seed.Stores{
			Users:     a.users,
			Skills:    a.rawSkills,
			Profiles:  a.profiles,
			Jobs:      a.jobs,
			Searches:  services.NewSavedSearches(a.searches, a.skills, a.profiles),
			Evaluator: a.evaluator,
		})

		report, err := seeder.Seed(cmd.Context(), fixture)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(),
			"seeded %d skills, %d users, %d profiles, %d jobs, %d saved searches; %d notifications created\n",
			report.Skills, report.Users, report.Profiles, report.Jobs, report.SavedSearches, report.Notifications)
		return err
	},
}
