package main

import (
	"fmt"

	"github.com/maxaizer/jobbridge/internal/geo"
	"github.com/maxaizer/jobbridge/internal/services"
	"github.com/spf13/cobra"
)

var (
	candidatesLat    float64
	candidatesLon    float64
	candidatesRadius float64

	candidatesCmd = &cobra.Command{
		Use:   "candidates",
		Short: "List visible candidates around a point, closest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {

			a, err := newApplication()
			if err != nil {
				return err
			}
			defer a.Close()

			nearby, err := services.NewProfileSearch(a.profiles).
				Near(cmd.Context(), geo.NewPoint(candidatesLat, candidatesLon), candidatesRadius)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, candidate := range nearby {
				distance := "distance unknown"
				if candidate.DistanceMiles != nil {
					distance = fmt.Sprintf("%.1f mi", *candidate.DistanceMiles)
				}
				if _, err = fmt.Fprintf(out, "%s: %s, %s (%s)\n", candidate.Profile.Username(),
					candidate.Profile.Headline, candidate.Profile.LocationQuery(), distance); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(out, "%d candidates\n", len(nearby))
			return err
		},
	}
)

func init() {
	candidatesCmd.Flags().Float64Var(&candidatesLat, "lat", 0, "origin latitude")
	candidatesCmd.Flags().Float64Var(&candidatesLon, "lon", 0, "origin longitude")
	candidatesCmd.Flags().Float64Var(&candidatesRadius, "radius", 25, "radius in miles")
	_ = candidatesCmd.MarkFlagRequired("lat")
	_ = candidatesCmd.MarkFlagRequired("lon")
}
