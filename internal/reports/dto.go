package reports

import (
	"fmt"
	"net/url"
	"time"

	"github.com/freightwise/freightwise/internal/finance"
)

// Window is a resolved reporting range. Relative timeframes end today;
// the custom timeframe uses explicit bounds.
type Window struct {
	Timeframe finance.Timeframe
	From      time.Time
	To        time.Time
}

// ParseWindow reads timeframe, from and to query parameters and resolves
// them to inclusive day bounds.
func ParseWindow(q url.Values, now time.Time) (Window, error) {
	tf, err := finance.ParseTimeframe(q.Get("timeframe"))
	if err != nil {
		return Window{}, err
	}

	var from, to time.Time
	if v := q.Get("from"); v != "" {
		if from, err = time.Parse("2006-01-02", v); err != nil {
			return Window{}, fmt.Errorf("reports: invalid from date %q, expected YYYY-MM-DD", v)
		}
	}
	if v := q.Get("to"); v != "" {
		if to, err = time.Parse("2006-01-02", v); err != nil {
			return Window{}, fmt.Errorf("reports: invalid to date %q, expected YYYY-MM-DD", v)
		}
	}
	// explicit bounds win even when a relative timeframe token was sent
	if !from.IsZero() && !to.IsZero() {
		tf = finance.TimeframeCustom
	}

	resolvedFrom, resolvedTo, err := finance.ResolveRange(tf, now, from, to)
	if err != nil {
		return Window{}, err
	}
	return Window{Timeframe: tf, From: resolvedFrom, To: resolvedTo}, nil
}
