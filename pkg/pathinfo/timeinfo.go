package pathinfo

import "time"

// Time is a view over one file timestamp (modification, access, or change
// time) paired with the base time used for age and calendar calculations.
type Time struct {
	t    time.Time
	base time.Time
}

// NewTime creates a Time view for an arbitrary timestamp. Useful for
// calendar and age calculations on timestamps that did not come from a file.
func NewTime(t, base time.Time) Time {
	return Time{t: t, base: base}
}

// Time returns the timestamp itself.
func (t Time) Time() time.Time { return t.t }

// Unix returns the timestamp as Unix seconds.
func (t Time) Unix() int64 { return t.t.Unix() }

// Age returns how far the timestamp lies before the base time.
func (t Time) Age() Age {
	return Age{dur: t.base.Sub(t.t)}
}

// Cal returns the calendar-window view of the timestamp.
func (t Time) Cal() Cal {
	return Cal{t: t.t, base: t.base}
}
