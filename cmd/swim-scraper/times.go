package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/myusername/swim-scraper/internal/utils"
	"github.com/myusername/swim-scraper/pkg/flatten"
	"github.com/myusername/swim-scraper/pkg/models"
)

func timesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "times",
		Short: "Scrape a swimmer's times",
	}
	cmd.AddCommand(timesFastestCmd(), timesAllCmd(), timesEventCmd())
	return cmd
}

func timesFastestCmd() *cobra.Command {
	var csvFile string

	cmd := &cobra.Command{
		Use:   "fastest <swimmer ID>",
		Short: "Show a swimmer's fastest time in each event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.client.SwimmerFastestTimes(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to scrape fastest times: %w", err)
			}
			return showSwims(fmt.Sprintf("Fastest times for %s", args[0]), rows, csvFile)
		},
	}
	cmd.Flags().StringVar(&csvFile, "csv", "", "Write the times to this CSV file")
	return cmd
}

func timesAllCmd() *cobra.Command {
	var csvFile string

	cmd := &cobra.Command{
		Use:   "all <swimmer ID>",
		Short: "Show every recorded swim of a swimmer across all events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.client.SwimmerAllTimes(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to scrape times: %w", err)
			}
			return showSwims(fmt.Sprintf("All times for %s", args[0]), rows, csvFile)
		},
	}
	cmd.Flags().StringVar(&csvFile, "csv", "", "Write the times to this CSV file")
	return cmd
}

func timesEventCmd() *cobra.Command {
	var csvFile string

	cmd := &cobra.Command{
		Use:   "event <swimmer ID> <event>",
		Short: "Show every swim of a swimmer in one event",
		Long: `Show every swim of a swimmer in one event. The event is either a
label such as "100 Y FREE" or a token such as "1|100|Y|1".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, want := args[0], args[1]

			tokens, err := app.client.SwimmerEventTokens(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}
			tok, ok := findToken(tokens, want)
			if !ok {
				color.Yellow("⚠ Swimmer %s has no times in %q", id, want)
				labels := make([]string, 0, len(tokens))
				for _, t := range tokens {
					labels = append(labels, t.Label)
				}
				fmt.Printf("Events: %s\n", strings.Join(labels, ", "))
				return nil
			}

			recs, err := app.client.TimesByEvent(ctx, id, tok.Token)
			if err != nil {
				return fmt.Errorf("failed to scrape %s: %w", tok.Label, err)
			}
			rows := flatten.EventRows(id, tok, recs)
			flatten.SortSwims(rows)
			return showSwims(fmt.Sprintf("%s times for %s", tok.Label, id), rows, csvFile)
		},
	}
	cmd.Flags().StringVar(&csvFile, "csv", "", "Write the times to this CSV file")
	return cmd
}

func findToken(tokens []models.EventToken, want string) (models.EventToken, bool) {
	for _, t := range tokens {
		if t.Token == want || strings.EqualFold(t.Label, want) {
			return t, true
		}
	}
	return models.EventToken{}, false
}

func showSwims(title string, rows []models.SwimRow, csvFile string) error {
	utils.DisplaySwims(os.Stdout, title, rows)
	return saveCSV(csvFile, len(rows), func(path string) error {
		return utils.SaveSwimsToCSV(rows, path)
	})
}
