package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/myusername/swim-scraper/internal/utils"
)

func rankingsCmd() *cobra.Command {
	var (
		gender string
		season int
		year   int
	)

	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Show the national team rankings for a season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.client.TeamRankings(cmd.Context(), gender, season, year)
			if err != nil {
				return fmt.Errorf("failed to scrape team rankings: %w", err)
			}
			utils.DisplayTeamRankings(os.Stdout, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&gender, "gender", "g", "M", "Gender: M or F")
	cmd.Flags().IntVar(&season, "season", 0, "swimcloud season ID")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Season year, takes precedence over --season")
	return cmd
}
