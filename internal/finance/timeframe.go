package finance

import (
	"errors"
	"fmt"
	"time"
)

// Timeframe names a reporting window relative to the current day.
type Timeframe string

const (
	TimeframeWeek    Timeframe = "week"
	TimeframeMonth   Timeframe = "month"
	TimeframeQuarter Timeframe = "quarter"
	TimeframeYear    Timeframe = "year"
	TimeframeCustom  Timeframe = "custom"
)

// Day windows the billing reports have always used for the relative
// timeframes. The month window is 90 days, not a calendar month.
var timeframeDays = map[Timeframe]int{
	TimeframeWeek:    7,
	TimeframeMonth:   90,
	TimeframeQuarter: 180,
	TimeframeYear:    365,
}

// ErrCustomRangeRequired is returned when the custom timeframe is requested
// without explicit bounds.
var ErrCustomRangeRequired = errors.New("finance: custom timeframe requires from and to dates")

// ParseTimeframe validates a timeframe token. Empty defaults to month.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case "":
		return TimeframeMonth, nil
	case TimeframeWeek, TimeframeMonth, TimeframeQuarter, TimeframeYear, TimeframeCustom:
		return Timeframe(s), nil
	}
	return "", fmt.Errorf("finance: unknown timeframe %q", s)
}

// ResolveRange maps a timeframe to inclusive day bounds. Relative
// timeframes end today; the custom timeframe uses the explicit from/to.
func ResolveRange(tf Timeframe, now, from, to time.Time) (time.Time, time.Time, error) {
	if tf == TimeframeCustom {
		if from.IsZero() || to.IsZero() {
			return time.Time{}, time.Time{}, ErrCustomRangeRequired
		}
		return StartOfDay(from), EndOfDay(to), nil
	}
	days, ok := timeframeDays[tf]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("finance: unknown timeframe %q", tf)
	}
	return StartOfDay(now.AddDate(0, 0, -days)), EndOfDay(now), nil
}

// StartOfDay truncates to midnight in the time's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
