package finance

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeframe(t *testing.T) {
	if tf, err := ParseTimeframe(""); err != nil || tf != TimeframeMonth {
		t.Fatalf("empty timeframe = %s, %v; want month default", tf, err)
	}
	if _, err := ParseTimeframe("decade"); err == nil {
		t.Fatalf("expected error for unknown timeframe")
	}
}

func TestResolveRangeRelativeWindows(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	cases := []struct {
		tf   Timeframe
		days int
	}{
		{TimeframeWeek, 7},
		{TimeframeMonth, 90},
		{TimeframeQuarter, 180},
		{TimeframeYear, 365},
	}
	for _, tc := range cases {
		from, to, err := ResolveRange(tc.tf, now, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.tf, err)
		}
		wantFrom := StartOfDay(now.AddDate(0, 0, -tc.days))
		if !from.Equal(wantFrom) {
			t.Fatalf("%s: from = %s, want %s", tc.tf, from, wantFrom)
		}
		if to.Before(now) {
			t.Fatalf("%s: to = %s precedes now", tc.tf, to)
		}
		if to.Day() != now.Day() || to.Hour() != 23 {
			t.Fatalf("%s: to = %s, want end of today", tc.tf, to)
		}
	}
}

func TestResolveRangeCustom(t *testing.T) {
	from := time.Date(2025, 1, 5, 11, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 20, 3, 0, 0, 0, time.UTC)
	gotFrom, gotTo, err := ResolveRange(TimeframeCustom, time.Now(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFrom.Hour() != 0 || gotFrom.Day() != 5 {
		t.Fatalf("from = %s, want start of Jan 5", gotFrom)
	}
	if gotTo.Hour() != 23 || gotTo.Day() != 20 {
		t.Fatalf("to = %s, want end of Jan 20", gotTo)
	}

	_, _, err = ResolveRange(TimeframeCustom, time.Now(), time.Time{}, to)
	if !errors.Is(err, ErrCustomRangeRequired) {
		t.Fatalf("expected ErrCustomRangeRequired, got %v", err)
	}
}
