package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exitCmd = &cobra.Command{
	Use:     "exit <roll>",
	Short:   "Record a student leaving the library",
	GroupID: "visits",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roll := args[0]

		result, err := apiClient.RecordExit(context.Background(), roll)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(result)
		} else {
			fmt.Printf("%s: %s (stayed %s)\n", roll, result.Message, result.Duration)
		}
		return nil
	},
}
