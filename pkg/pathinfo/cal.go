package pathinfo

import "time"

// Cal checks whether a timestamp falls inside calendar windows anchored at
// the base time. Window offsets count whole calendar units from the base:
// negative offsets reach into the past, zero is the current unit, positive
// offsets the future. Start and end are inclusive unit offsets; a reversed
// pair is swapped rather than rejected.
//
// For example, WinDays(-7, -1) matches timestamps from seven days ago
// through yesterday, and WinMonths(0, 0) matches the current calendar month.
type Cal struct {
	t    time.Time
	base time.Time
}

// WinMinutes reports whether the timestamp falls within the minute window
// from start to end, counted in whole minutes from the base time.
func (c Cal) WinMinutes(start, end int) bool {
	start, end = ordered(start, end)

	first := c.base.Add(time.Duration(start) * time.Minute).Truncate(time.Minute)
	last := c.base.Add(time.Duration(end) * time.Minute).Truncate(time.Minute).Add(time.Minute)

	return !c.t.Before(first) && c.t.Before(last)
}

// WinHours reports whether the timestamp falls within the hour window from
// start to end, counted in whole hours from the base time.
func (c Cal) WinHours(start, end int) bool {
	start, end = ordered(start, end)

	first := c.base.Add(time.Duration(start) * time.Hour).Truncate(time.Hour)
	last := c.base.Add(time.Duration(end) * time.Hour).Truncate(time.Hour).Add(time.Hour)

	return !c.t.Before(first) && c.t.Before(last)
}

// WinDays reports whether the timestamp's date falls within the day window
// from start to end, counted in calendar days from the base time.
func (c Cal) WinDays(start, end int) bool {
	start, end = ordered(start, end)

	fileDate := dateOf(c.t)
	firstDate := dateOf(c.base.AddDate(0, 0, start))
	lastDate := dateOf(c.base.AddDate(0, 0, end))

	return !fileDate.Before(firstDate) && !fileDate.After(lastDate)
}

// WinWeeks reports whether the timestamp's date falls within the week window
// from start to end, counted in whole weeks from the base time. Weeks begin
// on weekStart: time.Monday gives ISO weeks, time.Sunday the US convention.
// The window runs from the first day of the start week through the last day
// of the end week, inclusive.
func (c Cal) WinWeeks(start, end int, weekStart time.Weekday) bool {
	start, end = ordered(start, end)

	fileDate := dateOf(c.t)
	baseDate := dateOf(c.base)

	sinceWeekStart := (int(baseDate.Weekday()) - int(weekStart) + 7) % 7
	currentWeek := baseDate.AddDate(0, 0, -sinceWeekStart)

	firstDate := currentWeek.AddDate(0, 0, start*7)
	lastDate := currentWeek.AddDate(0, 0, end*7+6)

	return !fileDate.Before(firstDate) && !fileDate.After(lastDate)
}

// WinMonths reports whether the timestamp falls within the calendar-month
// window from start to end, counted in months from the base time.
func (c Cal) WinMonths(start, end int) bool {
	start, end = ordered(start, end)

	fileIndex := monthIndex(c.t)
	baseIndex := monthIndex(c.base)

	return baseIndex+start <= fileIndex && fileIndex <= baseIndex+end
}

// WinQuarters reports whether the timestamp falls within the calendar-quarter
// window from start to end (Q1 Jan-Mar through Q4 Oct-Dec).
func (c Cal) WinQuarters(start, end int) bool {
	start, end = ordered(start, end)

	fileIndex := quarterIndex(c.t)
	baseIndex := quarterIndex(c.base)

	return baseIndex+start <= fileIndex && fileIndex <= baseIndex+end
}

// WinYears reports whether the timestamp falls within the calendar-year
// window from start to end.
func (c Cal) WinYears(start, end int) bool {
	start, end = ordered(start, end)

	return c.base.Year()+start <= c.t.Year() && c.t.Year() <= c.base.Year()+end
}

// Today reports whether the timestamp falls on the base time's date.
func (c Cal) Today() bool {
	return c.WinDays(0, 0)
}

// Yesterday reports whether the timestamp falls on the day before the base
// time's date.
func (c Cal) Yesterday() bool {
	return c.WinDays(-1, -1)
}

// Weekday reports whether the timestamp falls on the given weekday.
func (c Cal) Weekday(day time.Weekday) bool {
	return c.t.Weekday() == day
}

func ordered(start, end int) (int, int) {
	if start > end {
		return end, start
	}
	return start, end
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// monthIndex maps a timestamp to a comparable year*12+month ordinal.
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// quarterIndex maps a timestamp to a comparable year*4+quarter ordinal.
func quarterIndex(t time.Time) int {
	return t.Year()*4 + (int(t.Month())-1)/3
}
