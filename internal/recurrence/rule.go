package recurrence

import (
	"errors"
	"strings"
	"time"
)

// Frequency represents supported recurrence cadences.
type Frequency int

const (
	// FrequencyUnspecified indicates the rule frequency is not recognised.
	FrequencyUnspecified Frequency = iota
	// FrequencyDaily recurs every Interval days.
	FrequencyDaily
	// FrequencyWeekly recurs on the selected weekdays every Interval weeks.
	FrequencyWeekly
	// FrequencyMonthly recurs on the anchor's day of month every Interval months.
	FrequencyMonthly
)

// String returns the content-system name for the frequency.
func (f Frequency) String() string {
	switch f {
	case FrequencyDaily:
		return "daily"
	case FrequencyWeekly:
		return "weekly"
	case FrequencyMonthly:
		return "monthly"
	default:
		return "unspecified"
	}
}

// ParseFrequency maps a content-system frequency name onto Frequency.
// Unknown names map to FrequencyUnspecified so display code can fall back to
// a generic label instead of failing.
func ParseFrequency(name string) Frequency {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "daily":
		return FrequencyDaily
	case "weekly":
		return FrequencyWeekly
	case "monthly":
		return FrequencyMonthly
	default:
		return FrequencyUnspecified
	}
}

// Rule describes a recurrence configuration for an event. Weekdays apply
// only to weekly rules; Until is an inclusive calendar-date bound whose
// clock and zone are ignored.
type Rule struct {
	Frequency Frequency
	Interval  int
	Weekdays  []time.Weekday
	Until     *time.Time
}

// Daily returns a rule recurring every interval days.
func Daily(interval int) Rule {
	return Rule{Frequency: FrequencyDaily, Interval: interval}
}

// Weekly returns a rule recurring on the given weekdays every interval
// weeks. An empty weekday list falls back to the anchor's weekday.
func Weekly(interval int, days ...time.Weekday) Rule {
	return Rule{Frequency: FrequencyWeekly, Interval: interval, Weekdays: days}
}

// Monthly returns a rule recurring on the anchor's day of month every
// interval months.
func Monthly(interval int) Rule {
	return Rule{Frequency: FrequencyMonthly, Interval: interval}
}

var (
	// ErrInvalidFrequency indicates the rule frequency is not supported.
	ErrInvalidFrequency = errors.New("recurrence: invalid frequency")
	// ErrInvalidInterval indicates the interval is below 1.
	ErrInvalidInterval = errors.New("recurrence: interval must be at least 1")
	// ErrWeekdaysNotAllowed indicates weekday selections on a non-weekly rule.
	ErrWeekdaysNotAllowed = errors.New("recurrence: weekday selections apply only to weekly rules")
	// ErrUntilBeforeStart indicates the until date precedes the anchor start.
	ErrUntilBeforeStart = errors.New("recurrence: until date precedes the event start")
)

// Validate reports structural problems with the rule relative to its anchor
// start. These are authoring errors that must surface at edit time rather
// than be silently corrected.
func (r Rule) Validate(anchor time.Time) error {
	switch r.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return ErrInvalidFrequency
	}
	if r.Interval < 1 {
		return ErrInvalidInterval
	}
	if len(r.Weekdays) > 0 && r.Frequency != FrequencyWeekly {
		return ErrWeekdaysNotAllowed
	}
	if r.Until != nil && !anchor.IsZero() && dateBefore(*r.Until, anchor) {
		return ErrUntilBeforeStart
	}
	return nil
}

// dateBefore compares calendar dates only, ignoring clock and zone.
func dateBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// onOrBeforeUntil reports whether the candidate's calendar date falls inside
// the rule's inclusive until bound.
func onOrBeforeUntil(until *time.Time, candidate time.Time) bool {
	if until == nil {
		return true
	}
	return !dateBefore(*until, candidate)
}
