package main

import (
	"context"

	"github.com/spf13/cobra"
)

var dayCmd = &cobra.Command{
	Use:     "day <date>",
	Short:   "Show statistics for a day (YYYY-MM-DD)",
	GroupID: "stats",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := apiClient.DayStats(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(stats)
		} else {
			printDayStats(stats)
		}
		return nil
	},
}

var monthCmd = &cobra.Command{
	Use:     "month <month>",
	Short:   "Show statistics for a month (YYYY-MM)",
	GroupID: "stats",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := apiClient.MonthStats(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(stats)
		} else {
			printMonthStats(stats)
		}
		return nil
	},
}

var yearCmd = &cobra.Command{
	Use:     "year <year>",
	Short:   "Show statistics for a year (YYYY)",
	GroupID: "stats",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := apiClient.YearStats(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(stats)
		} else {
			printYearStats(stats)
		}
		return nil
	},
}

var rangeCmd = &cobra.Command{
	Use:     "range <start> <end>",
	Short:   "Show the per-day entry series for a date range",
	GroupID: "stats",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		series, err := apiClient.RangeStats(context.Background(), args[0], args[1])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(series)
		} else {
			printRangeSeries(series)
		}
		return nil
	},
}
