package model

import (
	"fmt"
	"slices"
	"time"
)

// ResolvePeriod maps a ranking period selector to a concrete datetime
// interval. Matches count for the period when start < kickoff <= end.
//
//   - year == 0 selects the all-time period: from the pool creation to the
//     end of the current day. month and week are ignored.
//   - month == 0 selects the annual period of year.
//   - week == 0 selects the monthly period of year/month.
//   - otherwise the weekly period: the ISO-8601 week of year, Monday 00:00:00
//     through Sunday 23:59:59. The month parameter does not constrain the
//     week, so a (month, week) combination that does not line up still
//     resolves; restricting the offered choices is the form layer's job.
func ResolvePeriod(year, month, week int, poolCreated, now time.Time) (time.Time, time.Time) {
	loc := now.Location()

	if year == 0 {
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, loc)
		return poolCreated, end
	}

	if month == 0 {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		end := time.Date(year, time.December, 31, 23, 59, 59, 0, loc)
		return start, end
	}

	if week == 0 {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		// time.Date normalizes month 13 into January of the next year, so
		// December needs no special case.
		end := time.Date(year, time.Month(month)+1, 1, 23, 59, 59, 0, loc).AddDate(0, 0, -1)
		return start, end
	}

	monday := FirstDayOfISOWeek(year, week, loc)
	sunday := monday.AddDate(0, 0, 6)
	end := time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, loc)
	return monday, end
}

// FirstDayOfISOWeek returns the Monday of the given ISO-8601 week.
func FirstDayOfISOWeek(year, week int, loc *time.Location) time.Time {
	// January 4th always falls inside the first ISO week of its year.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7 // Go counts Sunday as 0, ISO counts it as 7
	}
	firstMonday := jan4.AddDate(0, 0, 1-wd)
	return firstMonday.AddDate(0, 0, (week-1)*7)
}

// PeriodChoice is one selectable option in the ranking period form.
type PeriodChoice struct {
	Value int
	Label string
}

// PeriodOptions groups the selector lists for the ranking period form. Weeks
// depend on the selected year and month and are empty until both are picked.
type PeriodOptions struct {
	Years  []PeriodChoice
	Months []PeriodChoice
	Weeks  []PeriodChoice
}

// YearChoices enumerates the selectable ranking years: the all-time option
// followed by every year in poolYears plus the current year, ascending.
func YearChoices(poolYears []int, now time.Time) []PeriodChoice {
	seen := map[int]bool{now.Year(): true}
	for _, y := range poolYears {
		seen[y] = true
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	slices.Sort(years)

	choices := make([]PeriodChoice, 0, len(years)+1)
	choices = append(choices, PeriodChoice{Value: 0, Label: "All times"})
	for _, y := range years {
		choices = append(choices, PeriodChoice{Value: y, Label: fmt.Sprintf("%d", y)})
	}
	return choices
}

// MonthChoices enumerates the selectable months, starting with the annual
// option.
func MonthChoices() []PeriodChoice {
	choices := make([]PeriodChoice, 0, 13)
	choices = append(choices, PeriodChoice{Value: 0, Label: "Annual"})
	for m := time.January; m <= time.December; m++ {
		choices = append(choices, PeriodChoice{Value: int(m), Label: m.String()})
	}
	return choices
}

// WeekChoices enumerates the selectable ISO weeks whose Monday falls inside
// the given month, starting with the monthly option.
func WeekChoices(year, month int, loc *time.Location) []PeriodChoice {
	choices := []PeriodChoice{{Value: 0, Label: "Monthly"}}
	for week := 1; week <= 53; week++ {
		monday := FirstDayOfISOWeek(year, week, loc)
		if monday.Year() == year && int(monday.Month()) == month {
			choices = append(choices, PeriodChoice{Value: week, Label: fmt.Sprintf("Week #%d", week)})
		}
	}
	return choices
}
