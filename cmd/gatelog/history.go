package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "Show reconstructed visit sessions",
	GroupID: "visits",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		roll, _ := cmd.Flags().GetString("roll")
		date, _ := cmd.Flags().GetString("date")
		if roll == "" && date == "" {
			return fmt.Errorf("at least one of --roll or --date is required")
		}

		sessions, err := apiClient.History(context.Background(), roll, date)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(sessions)
		} else {
			printSessionsTable(sessions)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("roll", "", "filter by student roll number")
	historyCmd.Flags().String("date", "", "filter by date (YYYY-MM-DD)")
}
