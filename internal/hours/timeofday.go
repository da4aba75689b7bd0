package hours

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time without a date or timezone, stored as
// minutes since midnight. Values compare chronologically as integers.
type TimeOfDay int

// ParseTimeOfDay parses a 24-hour "HH:MM" string.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	trimmed := strings.TrimSpace(value)
	parts := strings.SplitN(trimmed, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("hours: invalid time of day %q", value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("hours: invalid time of day %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("hours: invalid time of day %q", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("hours: time of day %q out of range", value)
	}

	return TimeOfDay(hour*60 + minute), nil
}

// Hour returns the hour component in the range 0-23.
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute returns the minute component in the range 0-59.
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// String renders the 24-hour "HH:MM" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Clock12 renders the guest-facing 12-hour form, e.g. "10:00 PM".
func (t TimeOfDay) Clock12() string {
	hour := t.Hour()
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), period)
}

// TimeSlot is an ordered open/close pair within a weekly schedule. A slot
// whose close precedes its open spans midnight into the following day.
type TimeSlot struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// Overnight reports whether the slot crosses midnight.
func (s TimeSlot) Overnight() bool {
	return s.Open > s.Close
}
