package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/myusername/swim-scraper/internal/utils"
	"github.com/myusername/swim-scraper/pkg/codec"
)

func eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List the legacy event labels and codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			utils.DisplayEvents(os.Stdout, codec.EventLabels(), codec.EventCode)
			return nil
		},
	}
}
