package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var entryCmd = &cobra.Command{
	Use:     "entry <roll>",
	Short:   "Record a student entering the library",
	GroupID: "visits",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roll := args[0]
		laptopFlag, _ := cmd.Flags().GetString("laptop")
		books, _ := cmd.Flags().GetStringSlice("books")

		var laptop *string
		if laptopFlag != "" {
			laptop = &laptopFlag
		}

		msg, err := apiClient.RecordEntry(context.Background(), roll, laptop, books)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(map[string]string{"message": msg})
		} else {
			fmt.Printf("%s: %s\n", roll, msg)
		}
		return nil
	},
}

func init() {
	entryCmd.Flags().String("laptop", "", "laptop identifier carried in")
	entryCmd.Flags().StringSlice("books", nil, "books carried in (comma-separated)")
}
