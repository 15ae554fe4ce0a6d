package pathinfo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Time conversion constants. Months and years use calendar averages so ages
// stay meaningful across leap years.
const (
	SecondsPerMinute = 60
	SecondsPerHour   = 3600
	SecondsPerDay    = 86400
	SecondsPerWeek   = 7 * SecondsPerDay

	DaysPerMonth = 30.44
	DaysPerYear  = 365.25

	SecondsPerMonth = int64(DaysPerMonth * SecondsPerDay) // 2630016
	SecondsPerYear  = int64(DaysPerYear * SecondsPerDay)  // 31557600
)

// Age is a view over an elapsed duration offering calendar-flavored units.
// Negative values mean the timestamp lies in the future of the base time.
type Age struct {
	dur time.Duration
}

// Duration returns the underlying duration.
func (a Age) Duration() time.Duration { return a.dur }

// Seconds returns the age in seconds.
func (a Age) Seconds() float64 { return a.dur.Seconds() }

// Minutes returns the age in minutes.
func (a Age) Minutes() float64 { return a.Seconds() / SecondsPerMinute }

// Hours returns the age in hours.
func (a Age) Hours() float64 { return a.Seconds() / SecondsPerHour }

// Days returns the age in days.
func (a Age) Days() float64 { return a.Seconds() / SecondsPerDay }

// Weeks returns the age in weeks.
func (a Age) Weeks() float64 { return a.Days() / 7 }

// Months returns the age in average months (30.44 days).
func (a Age) Months() float64 { return a.Days() / DaysPerMonth }

// Years returns the age in average years (365.25 days).
func (a Age) Years() float64 { return a.Days() / DaysPerYear }

var agePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-zA-Z]+)$`)

var ageMultipliers = map[string]float64{
	"s": 1, "sec": 1, "second": 1, "seconds": 1,
	"m": SecondsPerMinute, "min": SecondsPerMinute, "minute": SecondsPerMinute, "minutes": SecondsPerMinute,
	"h": SecondsPerHour, "hr": SecondsPerHour, "hour": SecondsPerHour, "hours": SecondsPerHour,
	"d": SecondsPerDay, "day": SecondsPerDay, "days": SecondsPerDay,
	"w": SecondsPerWeek, "week": SecondsPerWeek, "weeks": SecondsPerWeek,
	"month": float64(SecondsPerMonth), "months": float64(SecondsPerMonth),
	"y": float64(SecondsPerYear), "year": float64(SecondsPerYear), "years": float64(SecondsPerYear),
}

// ParseAge parses an age string and returns the equivalent duration.
//
// Examples:
//
//	"30"      -> 30 seconds
//	"5m"      -> 5 minutes
//	"2h"      -> 2 hours
//	"3d"      -> 3 days
//	"1w"      -> 1 week
//	"2months" -> 2 average months
//	"1y"      -> 1 average year
func ParseAge(ageStr string) (time.Duration, error) {
	ageStr = strings.ToLower(strings.TrimSpace(ageStr))

	// Plain numbers are seconds
	if n, err := strconv.ParseFloat(ageStr, 64); err == nil {
		return time.Duration(n * float64(time.Second)), nil
	}

	match := agePattern.FindStringSubmatch(ageStr)
	if match == nil {
		return 0, fmt.Errorf("invalid age format: %s", ageStr)
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid age value: %w", err)
	}

	multiplier, known := ageMultipliers[match[2]]
	if !known {
		return 0, fmt.Errorf("unknown age unit: %s", match[2])
	}

	return time.Duration(value * multiplier * float64(time.Second)), nil
}
