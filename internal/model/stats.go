package model

import "time"

// CurrentVisitor is one row of the live occupancy view.
type CurrentVisitor struct {
	Roll            string    `json:"roll"`
	EntryTime       time.Time `json:"entryTime"`
	DurationMinutes int       `json:"durationMinutes"`
	HasLaptop       bool      `json:"hasLaptop"`
}

// Occupancy is the point-in-time "who is inside" summary.
type Occupancy struct {
	Count       int              `json:"count"`
	LaptopCount int              `json:"laptopCount"`
	Current     []CurrentVisitor `json:"current"`
}

// DayStats summarizes one calendar day.
type DayStats struct {
	Date                string `json:"date"`
	TotalEntries        int    `json:"totalEntries"`
	TotalUniqueStudents int    `json:"totalUniqueStudents"`
	AvgStayMinutes      int    `json:"avgStayMinutes"`
	LaptopUsersCount    int    `json:"laptopUsersCount"`
}

// MonthStats summarizes one calendar month. DailyBreakdown maps
// "YYYY-MM-DD" to entry count; dates with no entries are absent, not zero.
type MonthStats struct {
	Month          string         `json:"month"`
	TotalEntries   int            `json:"totalEntries"`
	UniqueStudents int            `json:"uniqueStudents"`
	LaptopUsers    int            `json:"laptopUsers"`
	DailyBreakdown map[string]int `json:"dailyBreakdown"`
}

// YearStats summarizes one calendar year. MonthWiseBreakdown maps
// "YYYY-MM" to entry count; months with no entries are absent.
type YearStats struct {
	Year               string         `json:"year"`
	TotalEntries       int            `json:"totalEntries"`
	UniqueStudents     int            `json:"uniqueStudents"`
	TotalLaptopEntries int            `json:"totalLaptopEntries"`
	MonthWiseBreakdown map[string]int `json:"monthWiseBreakdown"`
}

// RangePoint is one element of a dense per-day entry series. Unlike the
// breakdown maps, every calendar day in the requested range appears,
// zero-filled when nothing happened.
type RangePoint struct {
	Date    string `json:"date"`
	Entries int    `json:"entries"`
}

// HistoryFilter selects events for session reconstruction. At least one
// of Roll or Date must be set.
type HistoryFilter struct {
	Roll string
	Date string // YYYY-MM-DD
}
