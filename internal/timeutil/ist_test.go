package timeutil

import (
	"testing"
	"time"
)

func TestDayBoundsInShopLocation(t *testing.T) {
	// 20:00 UTC is already the next day in IST.
	ts := time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC)
	start := StartOfDay(ts)
	if start.Day() != 10 || start.Hour() != 0 {
		t.Fatalf("start of day: got=%v", start)
	}
	end := EndOfDay(ts)
	if !end.After(start) || end.Day() != 10 || end.Hour() != 23 {
		t.Fatalf("end of day: got=%v", end)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"2026-03-10", false},
		{"2026-03-10T08:30:00Z", false},
		{"2026-03-10T08:30:00.123+05:30", false},
		{"2026-03-10T08:30", false},
		{"10/03/2026", true},
	}
	for _, tc := range cases {
		_, err := ParseDate(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseDate(%q): wantErr=%v got=%v", tc.in, tc.wantErr, err)
		}
	}
}
