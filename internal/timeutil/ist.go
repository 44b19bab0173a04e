package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30)
var IST *time.Location

// shop is the location that defines calendar-day boundaries. Defaults to IST.
var shop *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
	shop = IST
}

// SetLocation changes the shop location. An empty or unknown name keeps the current one.
func SetLocation(name string) error {
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	shop = loc
	return nil
}

// Location returns the shop location
func Location() *time.Location {
	return shop
}

// Now returns the current time in the shop location
func Now() time.Time {
	return time.Now().In(shop)
}

// StartOfDay returns 00:00:00 of t's calendar day in the shop location
func StartOfDay(t time.Time) time.Time {
	l := t.In(shop)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, shop)
}

// EndOfDay returns the last nanosecond of t's calendar day in the shop location
func EndOfDay(t time.Time) time.Time {
	l := t.In(shop)
	return time.Date(l.Year(), l.Month(), l.Day(), 23, 59, 59, 999999999, shop)
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
// Plain dates are midnight in the shop location.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04", value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, shop), nil
	}
	return time.ParseInLocation(DateLayout, value, shop)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	PrintLayout    = "02/01/2006"
)
