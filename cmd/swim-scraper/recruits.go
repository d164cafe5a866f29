package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/myusername/swim-scraper/internal/utils"
	"github.com/myusername/swim-scraper/pkg/swimcloud"
)

func recruitsCmd() *cobra.Command {
	var (
		q       swimcloud.RecruitQuery
		csvFile string
	)

	cmd := &cobra.Command{
		Use:   "recruits",
		Short: "Scrape high school recruiting rankings for a class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if q.ClassYear == 0 {
				q.ClassYear = app.cfg.ClassYear
			}

			recruits, err := app.client.HSRecruitRankings(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("failed to scrape recruits: %w", err)
			}

			utils.DisplayRecruits(os.Stdout, fmt.Sprintf("Class of %d (%s)", q.ClassYear, q.Gender), recruits)

			return saveCSV(csvFile, len(recruits), func(path string) error {
				return utils.SaveRecruitsToCSV(recruits, path)
			})
		},
	}
	cmd.Flags().IntVar(&q.ClassYear, "class", 0, "Graduating class year (default: class_year from config)")
	cmd.Flags().StringVarP(&q.Gender, "gender", "g", "M", "Gender: M or F")
	cmd.Flags().StringVar(&q.State, "state", "", "US state name or abbreviation")
	cmd.Flags().BoolVar(&q.International, "international", false, "Rank international recruits")
	cmd.Flags().StringVar(&csvFile, "csv", "", "Write the rankings to this CSV file")
	return cmd
}
