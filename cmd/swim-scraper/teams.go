package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/myusername/swim-scraper/internal/utils"
	"github.com/myusername/swim-scraper/pkg/teams"
)

func teamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Manage and query the college teams table",
	}
	cmd.AddCommand(teamsRefreshCmd(), teamsLookupCmd(), teamsListCmd())
	return cmd
}

func teamsRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Scrape the swimcloud team index and rewrite the teams table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.client.TeamList(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to scrape team list: %w", err)
			}
			if len(list) == 0 {
				color.Yellow("⚠ No teams scraped, keeping %s", app.cfg.TeamsCSV)
				return nil
			}

			if err := teams.Write(app.cfg.TeamsCSV, list); err != nil {
				return fmt.Errorf("failed to write teams table: %w", err)
			}
			app.teams.Reload(app.cfg.TeamsCSV)
			color.Green("✓ Wrote %d teams to %s", len(list), app.cfg.TeamsCSV)
			return nil
		},
	}
}

func teamsLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <team name | team ID>",
		Short: "Look up a team ID by name, or a team name by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.teams.Current()

			if id, err := strconv.Atoi(args[0]); err == nil {
				name := snap.TeamName(id)
				if name == "" {
					color.Yellow("⚠ No team with ID %d", id)
					return nil
				}
				fmt.Printf("%d\t%s\n", id, name)
				return nil
			}

			id := snap.TeamID(args[0])
			if id == teams.NotFound {
				color.Yellow("⚠ No team named %q", args[0])
				if s := snap.Suggest(args[0], 5); len(s) > 0 {
					fmt.Println("Did you mean:")
					for _, name := range s {
						fmt.Printf("  %s\n", name)
					}
				}
				return nil
			}
			fmt.Printf("%d\t%s\n", id, args[0])
			return nil
		},
	}
}

func teamsListCmd() *cobra.Command {
	var names, conferences, divisions []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List teams, optionally filtered by name, division or conference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := app.teams.Current().Filter(names, conferences, divisions)
			app.logger.Debug("filtered teams", zap.Int("teams", len(list)))
			utils.DisplayTeams(os.Stdout, list)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&names, "name", nil, "Team names to include")
	cmd.Flags().StringSliceVar(&conferences, "conference", nil, "Conferences to include")
	cmd.Flags().StringSliceVar(&divisions, "division", nil, "Divisions to include")
	return cmd
}
