package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/myusername/swim-scraper/internal/utils"
	"github.com/myusername/swim-scraper/pkg/batch"
)

func dumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Run batch scrapes and write the results to CSV files",
	}
	cmd.AddCommand(dumpRostersCmd(), dumpRecruitsCmd(), dumpAllTimesCmd(), dumpTopRecruitCmd())
	return cmd
}

func dumpRostersCmd() *cobra.Command {
	var (
		start, end int
		csvFile    string
		idsFile    string
	)

	cmd := &cobra.Command{
		Use:   "rosters <team config CSV>",
		Short: "Scrape the rosters of every configured team for a range of years",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if start == 0 {
				start = app.cfg.StartYear
			}
			if end == 0 {
				end = app.cfg.EndYear
			}
			if end < start {
				return fmt.Errorf("end year %d is before start year %d", end, start)
			}

			cfgs, err := batch.ReadTeamConfig(args[0], app.logger)
			if err != nil {
				return err
			}

			runner := batch.NewRunner(app.client, app.logger)
			rows, report := runner.GatherRosters(cmd.Context(), cfgs, start, end)
			utils.DisplayReport(os.Stdout, report)

			if err := saveCSV(csvFile, len(rows), func(path string) error {
				return utils.SaveRosterToCSV(rows, path)
			}); err != nil {
				return err
			}
			unique := batch.UniqueTeams(cfgs)
			return saveCSV(idsFile, len(unique), func(path string) error {
				return utils.SaveTeamIDsToCSV(unique, path)
			})
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "First season year (default: start_year from config)")
	cmd.Flags().IntVar(&end, "end", 0, "Last season year (default: end_year from config)")
	cmd.Flags().StringVar(&csvFile, "csv", "rosters.csv", "Roster CSV file")
	cmd.Flags().StringVar(&idsFile, "team-ids", "team_ids.csv", "Team ID CSV file, empty to skip")
	return cmd
}

func dumpRecruitsCmd() *cobra.Command {
	var (
		class   int
		csvFile string
	)

	cmd := &cobra.Command{
		Use:   "recruits",
		Short: "Scrape the recruiting rankings of a class for every configured gender",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if class == 0 {
				class = app.cfg.ClassYear
			}

			runner := batch.NewRunner(app.client, app.logger)
			rows, report := runner.GatherRecruits(cmd.Context(), class, app.cfg.GenderList())
			utils.DisplayReport(os.Stdout, report)

			if csvFile == "" {
				csvFile = fmt.Sprintf("recruits_%d.csv", class)
			}
			return saveCSV(csvFile, len(rows), func(path string) error {
				return utils.SaveRecruitsToCSV(rows, path)
			})
		},
	}
	cmd.Flags().IntVar(&class, "class", 0, "Graduating class year (default: class_year from config)")
	cmd.Flags().StringVar(&csvFile, "csv", "", "Recruit CSV file (default: recruits_<class>.csv)")
	return cmd
}

func dumpAllTimesCmd() *cobra.Command {
	var csvFile string

	cmd := &cobra.Command{
		Use:   "all-times <roster CSV>",
		Short: "Scrape every recorded swim of every swimmer in a roster CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := batch.LoadSwimmerIDs(args[0])
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				color.Yellow("⚠ No swimmer IDs in %s", args[0])
				return nil
			}

			runner := batch.NewRunner(app.client, app.logger)
			rows, report := runner.GatherAllTimes(cmd.Context(), ids)
			utils.DisplayReport(os.Stdout, report)

			return saveCSV(csvFile, len(rows), func(path string) error {
				return utils.SaveSwimsToCSV(rows, path)
			})
		},
	}
	cmd.Flags().StringVar(&csvFile, "csv", "all_times.csv", "Swim CSV file")
	return cmd
}

func dumpTopRecruitCmd() *cobra.Command {
	var csvFile string

	cmd := &cobra.Command{
		Use:   "top-recruit <recruit CSV>",
		Short: "Scrape every recorded swim of the best ranked recruit in a recruit CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name, err := batch.TopRecruit(args[0])
			if err != nil {
				return err
			}
			color.Green("✓ Top recruit is %s (%s)", name, id)

			rows, err := app.client.SwimmerAllTimes(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to scrape times for %s: %w", name, err)
			}

			if csvFile == "" {
				csvFile = strings.ReplaceAll(strings.ToLower(name), " ", "_") + "_times.csv"
			}
			return showSwims(fmt.Sprintf("All times for %s", name), rows, csvFile)
		},
	}
	cmd.Flags().StringVar(&csvFile, "csv", "", "Swim CSV file (default: <name>_times.csv)")
	return cmd
}
