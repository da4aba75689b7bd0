package hours

import (
	"fmt"
	"strings"
	"time"
)

// Schedule is a department's weekly operating hours: a shared default slot
// list plus optional per-weekday overrides. Schedules are authored in an
// external content system; this package only evaluates snapshots.
type Schedule struct {
	Timezone  string
	Default   []TimeSlot
	Overrides map[time.Weekday][]TimeSlot
}

// SlotsFor returns the operating slots for the given weekday. An override
// entry wins over the default even when it is empty, which marks the day as
// explicitly closed.
func (s Schedule) SlotsFor(day time.Weekday) []TimeSlot {
	if s.Overrides != nil {
		if slots, ok := s.Overrides[day]; ok {
			return slots
		}
	}
	return s.Default
}

// Configured reports whether any operating hours have been authored. An
// unconfigured schedule always evaluates as closed.
func (s Schedule) Configured() bool {
	return len(s.Default) > 0 || len(s.Overrides) > 0
}

// Location resolves the schedule's IANA timezone. An empty or unresolvable
// identifier is a hard error rather than a silent fallback to UTC, since a
// wrong timezone yields a plausible but wrong open/closed answer.
func (s Schedule) Location() (*time.Location, error) {
	name := strings.TrimSpace(s.Timezone)
	if name == "" {
		return nil, &InvalidTimezoneError{Name: s.Timezone}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &InvalidTimezoneError{Name: name}
	}
	return loc, nil
}

// InvalidTimezoneError reports an empty or unresolvable IANA timezone
// identifier on a schedule.
type InvalidTimezoneError struct {
	Name string
}

// Error implements the error interface.
func (e *InvalidTimezoneError) Error() string {
	return fmt.Sprintf("hours: invalid timezone %q", e.Name)
}

// ParseWeekday maps content-system weekday names onto time.Weekday. Both
// abbreviated ("MON") and full ("Monday") forms are accepted, case
// insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SUN", "SUNDAY":
		return time.Sunday, nil
	case "MON", "MONDAY":
		return time.Monday, nil
	case "TUE", "TUES", "TUESDAY":
		return time.Tuesday, nil
	case "WED", "WEDNESDAY":
		return time.Wednesday, nil
	case "THU", "THUR", "THURS", "THURSDAY":
		return time.Thursday, nil
	case "FRI", "FRIDAY":
		return time.Friday, nil
	case "SAT", "SATURDAY":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("hours: invalid weekday %q", name)
}
