package main

import (
	"context"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:     "events <date>",
	Short:   "Show the raw event log for a day (YYYY-MM-DD)",
	GroupID: "visits",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		evts, err := apiClient.EventsByDate(context.Background(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(evts)
		} else {
			printEventsTable(evts)
		}
		return nil
	},
}
