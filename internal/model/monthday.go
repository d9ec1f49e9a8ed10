package model

import (
	"fmt"
	"time"
)

// MonthDay is a recurring calendar date. Year is kept when known (a birth
// year, say) but never used for recurrence.
type MonthDay struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseMonthDay accepts "YYYY-MM-DD" or "MM-DD".
func ParseMonthDay(s string) (MonthDay, error) {
	var md MonthDay
	var month int
	switch len(s) {
	case len("2006-01-02"):
		if _, err := fmt.Sscanf(s, "%4d-%2d-%2d", &md.Year, &month, &md.Day); err != nil {
			return MonthDay{}, fmt.Errorf("parse date %q: %w", s, err)
		}
	case len("01-02"):
		if _, err := fmt.Sscanf(s, "%2d-%2d", &month, &md.Day); err != nil {
			return MonthDay{}, fmt.Errorf("parse date %q: %w", s, err)
		}
	default:
		return MonthDay{}, fmt.Errorf("parse date %q: want YYYY-MM-DD or MM-DD", s)
	}
	md.Month = time.Month(month)
	if err := md.validate(); err != nil {
		return MonthDay{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return md, nil
}

// Valid reports whether md names a real calendar day. Feb 29 is valid.
func (md MonthDay) Valid() bool {
	return md.validate() == nil
}

func (md MonthDay) validate() error {
	if md.Month < time.January || md.Month > time.December {
		return fmt.Errorf("month %d out of range", int(md.Month))
	}
	// Checked against a leap year so Feb 29 is accepted; it recurs as Mar 1
	// in common years.
	last := time.Date(2024, md.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if md.Day < 1 || md.Day > last {
		return fmt.Errorf("day %d out of range for %s", md.Day, md.Month)
	}
	return nil
}

// In returns the date in the given year and location at midnight.
func (md MonthDay) In(year int, loc *time.Location) time.Time {
	return time.Date(year, md.Month, md.Day, 0, 0, 0, 0, loc)
}

func (md MonthDay) String() string {
	if md.Year != 0 {
		return fmt.Sprintf("%04d-%02d-%02d", md.Year, int(md.Month), md.Day)
	}
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

func (md MonthDay) MarshalText() ([]byte, error) {
	return []byte(md.String()), nil
}

func (md *MonthDay) UnmarshalText(b []byte) error {
	parsed, err := ParseMonthDay(string(b))
	if err != nil {
		return err
	}
	*md = parsed
	return nil
}
