package recurrence

import (
	"fmt"
	"strings"
	"time"
)

// Describe renders a stable guest-facing phrase for the rule, e.g.
// "Every Mon, Wed, Fri at 7 PM" or "Monthly on the 15th". The time suffix is
// omitted for all-day events. An unrecognised frequency yields a generic
// "Recurring" label rather than an error, since only display text is at
// stake.
func Describe(rule Rule, anchor time.Time, allDay bool, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	local := anchor.In(loc)

	suffix := ""
	if !allDay {
		suffix = " at " + clockPhrase(local)
	}

	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	switch rule.Frequency {
	case FrequencyDaily:
		if interval == 1 {
			return "Every day" + suffix
		}
		return fmt.Sprintf("Every %d days%s", interval, suffix)

	case FrequencyWeekly:
		days := normalizeWeekdays(rule.Weekdays)
		switch {
		case len(days) == 0:
			if interval == 1 {
				return "Weekly" + suffix
			}
			return fmt.Sprintf("Every %d weeks%s", interval, suffix)
		case interval > 1:
			return fmt.Sprintf("Every %d weeks on %s%s", interval, shortWeekdayList(days), suffix)
		case len(days) == 1:
			return "Every " + days[0].String() + suffix
		default:
			return "Every " + shortWeekdayList(days) + suffix
		}

	case FrequencyMonthly:
		if interval == 1 {
			return fmt.Sprintf("Monthly on the %s%s", ordinal(local.Day()), suffix)
		}
		return fmt.Sprintf("Every %d months%s", interval, suffix)

	default:
		return "Recurring" + suffix
	}
}

// clockPhrase renders an anchor time compactly: "7 PM" or "7:30 PM".
func clockPhrase(t time.Time) string {
	hour := t.Hour()
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	if t.Minute() == 0 {
		return fmt.Sprintf("%d %s", hour, period)
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), period)
}

// normalizeWeekdays deduplicates and orders weekdays in calendar order.
func normalizeWeekdays(days []time.Weekday) []time.Weekday {
	var seen [7]bool
	for _, day := range days {
		if day >= time.Sunday && day <= time.Saturday {
			seen[day] = true
		}
	}
	out := make([]time.Weekday, 0, len(days))
	for day := time.Sunday; day <= time.Saturday; day++ {
		if seen[day] {
			out = append(out, day)
		}
	}
	return out
}

func shortWeekdayList(days []time.Weekday) string {
	names := make([]string, len(days))
	for i, day := range days {
		names[i] = day.String()[:3]
	}
	return strings.Join(names, ", ")
}

func ordinal(day int) string {
	suffix := "th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", day, suffix)
}
