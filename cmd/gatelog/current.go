package main

import (
	"context"

	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:     "current",
	Short:   "Show who is inside the library right now",
	GroupID: "visits",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		occ, err := apiClient.Current(context.Background())
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(occ)
		} else {
			printOccupancyTable(occ)
		}
		return nil
	},
}
