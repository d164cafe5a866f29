package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/myusername/swim-scraper/internal/utils"
	"github.com/myusername/swim-scraper/pkg/swimcloud"
)

func rosterCmd() *cobra.Command {
	var (
		q       swimcloud.RosterQuery
		csvFile string
	)

	cmd := &cobra.Command{
		Use:   "roster <team name | team ID>",
		Short: "Scrape a team roster for one gender and season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if id, err := strconv.Atoi(args[0]); err == nil {
				q.TeamID = id
			} else {
				q.Team = args[0]
			}

			roster, err := app.client.Roster(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("failed to scrape roster: %w", err)
			}

			title := fmt.Sprintf("%s roster (%s)", args[0], q.Gender)
			if len(roster) > 0 {
				title = fmt.Sprintf("%s roster (%s) %d", roster[0].TeamName, q.Gender, roster[0].Year)
			}
			utils.DisplayRoster(os.Stdout, title, roster)

			return saveCSV(csvFile, len(roster), func(path string) error {
				return utils.SaveRosterToCSV(roster, path)
			})
		},
	}
	cmd.Flags().StringVarP(&q.Gender, "gender", "g", "M", "Gender: M or F")
	cmd.Flags().IntVarP(&q.Year, "year", "y", 0, "Season year (default: current year)")
	cmd.Flags().IntVar(&q.SeasonID, "season", 0, "swimcloud season ID, ignored when --year is set")
	cmd.Flags().BoolVar(&q.Pro, "pro", false, "Parse a professional roster without a grade column")
	cmd.Flags().StringVar(&csvFile, "csv", "", "Write the roster to this CSV file")
	return cmd
}
