package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/groblegark/gatelog/internal/model"
	"github.com/groblegark/gatelog/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printOccupancyTable(occ *model.Occupancy) {
	if occ.Count == 0 {
		fmt.Println("library is empty")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROLL\tENTRY TIME\tMINUTES\tLAPTOP")
	for _, v := range occ.Current {
		laptop := ""
		if v.HasLaptop {
			laptop = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			v.Roll,
			v.EntryTime.Local().Format("2006-01-02 15:04:05"),
			v.DurationMinutes,
			laptop,
		)
	}
	w.Flush()
	fmt.Printf("\n%d inside (%d with laptops)\n", occ.Count, occ.LaptopCount)
}

func printSessionsTable(sessions []model.Session) {
	if len(sessions) == 0 {
		fmt.Println("no sessions found")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROLL\tENTRY\tEXIT\tDURATION\tLAPTOP\tBOOKS")
	for _, s := range sessions {
		exit := "-"
		duration := ui.RenderWarn("(inside)")
		if s.ExitTime != nil {
			exit = s.ExitTime.Local().Format("15:04:05")
		}
		if s.Duration != nil {
			duration = s.Duration.String()
		}
		laptop := ""
		if s.Laptop != nil {
			laptop = *s.Laptop
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Roll,
			s.EntryTime.Local().Format("2006-01-02 15:04:05"),
			exit,
			duration,
			laptop,
			strings.Join(s.Books, ", "),
		)
	}
	w.Flush()
	fmt.Printf("\n%d sessions\n", len(sessions))
}

func printEventsTable(evts []model.Event) {
	if len(evts) == 0 {
		fmt.Println("no events recorded")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tROLL\tKIND\tLAPTOP\tBOOKS\tSTAY")
	for _, e := range evts {
		laptop := ""
		if e.Laptop != nil {
			laptop = *e.Laptop
		}
		stay := ""
		if e.StayDuration != nil {
			stay = e.StayDuration.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.EventTime.Local().Format("15:04:05"),
			e.Roll,
			e.Kind,
			laptop,
			strings.Join(e.Books, ", "),
			stay,
		)
	}
	w.Flush()
	fmt.Printf("\n%d events\n", len(evts))
}

func printVisitorsTable(visitors []model.Visitor) {
	if len(visitors) == 0 {
		fmt.Println("no visitors registered")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROLL\tNAME\tCARD\tREGISTERED")
	for _, v := range visitors {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			v.Roll,
			v.Name,
			v.CardID,
			v.RegisteredAt.Local().Format("2006-01-02"),
		)
	}
	w.Flush()
	fmt.Printf("\n%d visitors\n", len(visitors))
}

func printDayStats(stats *model.DayStats) {
	fmt.Printf("Date:            %s\n", stats.Date)
	fmt.Printf("Total entries:   %d\n", stats.TotalEntries)
	fmt.Printf("Unique students: %d\n", stats.TotalUniqueStudents)
	fmt.Printf("Avg stay:        %dm\n", stats.AvgStayMinutes)
	fmt.Printf("Laptop users:    %d\n", stats.LaptopUsersCount)
}

func printMonthStats(stats *model.MonthStats) {
	fmt.Printf("Month:           %s\n", stats.Month)
	fmt.Printf("Total entries:   %d\n", stats.TotalEntries)
	fmt.Printf("Unique students: %d\n", stats.UniqueStudents)
	fmt.Printf("Laptop users:    %d\n", stats.LaptopUsers)
	printBreakdown("DATE", stats.DailyBreakdown)
}

func printYearStats(stats *model.YearStats) {
	fmt.Printf("Year:            %s\n", stats.Year)
	fmt.Printf("Total entries:   %d\n", stats.TotalEntries)
	fmt.Printf("Unique students: %d\n", stats.UniqueStudents)
	fmt.Printf("Laptop entries:  %d\n", stats.TotalLaptopEntries)
	printBreakdown("MONTH", stats.MonthWiseBreakdown)
}

// printBreakdown prints a period-to-count map sorted by period key. The keys
// are ISO date fragments, so lexical order is chronological order.
func printBreakdown(label string, breakdown map[string]int) {
	if len(breakdown) == 0 {
		return
	}
	keys := make([]string, 0, len(breakdown))
	for k := range breakdown {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tENTRIES\n", label)
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%d\n", k, breakdown[k])
	}
	w.Flush()
}

func printRangeSeries(series []model.RangePoint) {
	if len(series) == 0 {
		fmt.Println("no data in range")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tENTRIES")
	total := 0
	for _, p := range series {
		fmt.Fprintf(w, "%s\t%d\n", p.Date, p.Entries)
		total += p.Entries
	}
	w.Flush()
	fmt.Printf("\n%d entries over %d days\n", total, len(series))
}
