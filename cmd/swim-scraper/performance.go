package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/myusername/swim-scraper/internal/utils"
	"github.com/myusername/swim-scraper/pkg/swimcloud"
	"github.com/myusername/swim-scraper/pkg/teams"
)

func performanceCmd() *cobra.Command {
	var (
		q       swimcloud.PerformanceQuery
		csvFile string
	)

	cmd := &cobra.Command{
		Use:   "performance <team name | team ID>",
		Short: "Show the performance rankings of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				id = app.teams.Current().TeamID(args[0])
				if id == teams.NotFound {
					return fmt.Errorf("%w: %s", swimcloud.ErrUnknownTeam, args[0])
				}
			}
			q.TeamID = id

			rows, err := app.client.TeamPerformance(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("failed to fetch performance: %w", err)
			}

			utils.DisplayPerformance(os.Stdout, fmt.Sprintf("Performance of %s", args[0]), rows)

			return saveCSV(csvFile, len(rows), func(path string) error {
				return utils.SavePerformanceToCSV(rows, path)
			})
		},
	}
	cmd.Flags().StringVarP(&q.Gender, "gender", "g", "", "Gender: M or F (default M)")
	cmd.Flags().StringVar(&q.EventCourse, "course", "", "Event course: Y, S or L (default Y)")
	cmd.Flags().StringVar(&q.RankType, "rank-type", "", "Rank type (default D)")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "Number of rankings to fetch (default 200)")
	cmd.Flags().StringVar(&csvFile, "csv", "", "Write the rankings to this CSV file")
	return cmd
}
