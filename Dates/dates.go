package Dates

import "time"

const dateLayout = "2006-01-02"

// Window is the reporting range for one run. Yesterday is the last working
// day to include; FirstDayOfWeek is the Sunday starting the current week.
// Valid is false when "yesterday" lands on a weekend, meaning the run
// should be skipped entirely.
type Window struct {
	Yesterday      string
	FirstDayOfWeek string
	Valid          bool
}

// ComputeWindow derives the reporting window from the current time.
//
// "Yesterday" is used a bit liberally: in most cases the previous working
// day is the literal yesterday, the only exception being Monday runs where
// it rolls back to the preceding Friday.
func ComputeWindow(now time.Time) Window {
	firstDay := now.AddDate(0, 0, -int(now.Weekday()))
	yesterday := now.AddDate(0, 0, -1)

	// Friday or Saturday: nothing to check until the week resumes.
	if yesterday.Weekday() >= time.Friday {
		return Window{}
	}

	if yesterday.Weekday() == time.Sunday {
		yesterday = yesterday.AddDate(0, 0, -2)
	}

	return Window{
		Yesterday:      yesterday.Format(dateLayout),
		FirstDayOfWeek: firstDay.Format(dateLayout),
		Valid:          true,
	}
}

// RequiredHours is the expected week-to-date tracked hours: seven hours per
// elapsed workday, counted from the calendar weekday. Note this yields 0 on
// Monday, so any tracked time satisfies that day's check. That is the
// long-standing behavior of the report and is kept as is.
func RequiredHours(now time.Time) float64 {
	return float64((int(now.Weekday()) - 1) * 7)
}
