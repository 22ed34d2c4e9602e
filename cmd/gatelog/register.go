package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:     "register <roll> <name>",
	Short:   "Register a student and issue a library card",
	GroupID: "visits",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		visitor, err := apiClient.RegisterVisitor(context.Background(), args[0], args[1])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(visitor)
		} else {
			fmt.Printf("registered %s (%s), card %s\n", visitor.Name, visitor.Roll, visitor.CardID)
		}
		return nil
	},
}

var visitorsCmd = &cobra.Command{
	Use:     "visitors [roll]",
	Short:   "List registered students, or show one by roll",
	GroupID: "visits",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			visitor, err := apiClient.GetVisitor(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(visitor)
			} else {
				fmt.Printf("Roll:       %s\n", visitor.Roll)
				fmt.Printf("Name:       %s\n", visitor.Name)
				fmt.Printf("Card:       %s\n", visitor.CardID)
				fmt.Printf("Registered: %s\n", visitor.RegisteredAt.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		}

		visitors, err := apiClient.ListVisitors(context.Background())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(visitors)
		} else {
			printVisitorsTable(visitors)
		}
		return nil
	},
}
