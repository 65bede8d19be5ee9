package calendar

import (
	"fmt"
	"time"
)

// TimeOfDay is a clock time within a single day, stored as minutes since
// midnight. Events never span midnight, so a pair of TimeOfDay values plus a
// calendar date fully describes an event's interval.
type TimeOfDay int

// ParseTimeOfDay parses a strict 24h "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: must be HH:MM", s)
	}
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid time %q: must be HH:MM", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// MustTimeOfDay is a convenience for constants and tests; panics on bad input.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Minutes returns the offset from midnight in minutes.
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// Sub returns the duration between two times of the same day.
func (t TimeOfDay) Sub(other TimeOfDay) time.Duration {
	return time.Duration(int(t)-int(other)) * time.Minute
}

const dateLayout = "2006-01-02"

// ParseDate validates a "YYYY-MM-DD" calendar date and returns it in
// canonical form.
func ParseDate(s string) (string, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: must be YYYY-MM-DD", s)
	}
	return d.Format(dateLayout), nil
}
