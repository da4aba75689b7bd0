package recurrence

import "time"

// maxSearchSteps bounds the candidate walk so rules with no until date still
// terminate.
const maxSearchSteps = 1000

// NextOccurrence returns the earliest instant at or after now that matches
// the rule: on or after the anchor start, carrying the anchor's time of day
// in loc, falling on a qualifying day for the rule's frequency and interval,
// and on or before the rule's until date. The lower bound is inclusive, so an
// occurrence starting exactly at now still counts. The second return value is
// false when the pattern has ended or never produces an occurrence.
func NextOccurrence(rule Rule, anchor, now time.Time, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	anchorLocal := anchor.In(loc)
	from := now.In(loc)
	if from.Before(anchorLocal) {
		from = anchorLocal
	}

	switch rule.Frequency {
	case FrequencyDaily:
		return nextDaily(rule, anchorLocal, from, interval)
	case FrequencyWeekly:
		return nextWeekly(rule, anchorLocal, from, interval)
	case FrequencyMonthly:
		return nextMonthly(rule, anchorLocal, from, interval)
	default:
		// An unrecognised frequency is a degenerate pattern, not an error.
		return time.Time{}, false
	}
}

func nextDaily(rule Rule, anchor, from time.Time, interval int) (time.Time, bool) {
	days := dayNumber(from) - dayNumber(anchor)
	steps := days / interval
	if days%interval != 0 {
		steps++
	}

	ay, am, ad := anchor.Date()
	base := time.Date(ay, am, ad, 0, 0, 0, 0, anchor.Location())
	date := base.AddDate(0, 0, steps*interval)
	candidate := atAnchorClock(date.Year(), date.Month(), date.Day(), anchor)
	if candidate.Before(from) {
		date = date.AddDate(0, 0, interval)
		candidate = atAnchorClock(date.Year(), date.Month(), date.Day(), anchor)
	}

	if !onOrBeforeUntil(rule.Until, candidate) {
		return time.Time{}, false
	}
	return candidate, true
}

func nextWeekly(rule Rule, anchor, from time.Time, interval int) (time.Time, bool) {
	set := make(map[time.Weekday]struct{}, len(rule.Weekdays))
	for _, day := range rule.Weekdays {
		set[day] = struct{}{}
	}
	if len(set) == 0 {
		set[anchor.Weekday()] = struct{}{}
	}

	anchorWeek := mondayWeekStart(anchor)

	fy, fm, fd := from.Date()
	day := time.Date(fy, fm, fd, 0, 0, 0, 0, from.Location())

	// A qualifying weekday exists within every interval-th week, so the next
	// occurrence is at most interval+1 weeks out.
	limit := (interval + 2) * 7
	for i := 0; i < limit; i++ {
		if _, ok := set[day.Weekday()]; ok {
			weeks := (mondayWeekStart(day) - anchorWeek) / 7
			if weeks%interval == 0 {
				candidate := atAnchorClock(day.Year(), day.Month(), day.Day(), anchor)
				if !candidate.Before(from) {
					if !onOrBeforeUntil(rule.Until, candidate) {
						return time.Time{}, false
					}
					return candidate, true
				}
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

func nextMonthly(rule Rule, anchor, from time.Time, interval int) (time.Time, bool) {
	ay, am, _ := anchor.Date()
	fy, fm, _ := from.Date()
	months := (fy-ay)*12 + int(fm) - int(am)
	steps := months / interval
	if months%interval != 0 {
		steps++
	}

	for i := 0; i < maxSearchSteps; i++ {
		total := int(am) - 1 + (steps+i)*interval
		year := ay + total/12
		month := time.Month(total%12 + 1)
		day := anchor.Day()
		// Clamp to the last day of short months.
		if last := daysIn(year, month); day > last {
			day = last
		}
		candidate := atAnchorClock(year, month, day, anchor)
		if candidate.Before(from) {
			continue
		}
		if !onOrBeforeUntil(rule.Until, candidate) {
			return time.Time{}, false
		}
		return candidate, true
	}
	return time.Time{}, false
}

// atAnchorClock places the anchor's time of day onto the given calendar date
// in the anchor's location.
func atAnchorClock(year int, month time.Month, day int, anchor time.Time) time.Time {
	return time.Date(year, month, day,
		anchor.Hour(), anchor.Minute(), anchor.Second(), anchor.Nanosecond(),
		anchor.Location())
}

// dayNumber converts a calendar date to a continuous day count so date
// differences stay exact across DST transitions.
func dayNumber(t time.Time) int {
	year, month, day := t.Date()
	m := int(month)
	a := (14 - m) / 12
	y := year + 4800 - a
	mm := m + 12*a - 3
	return day + (153*mm+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// mondayWeekStart returns the day number of the Monday beginning t's week.
// Weekly interval parity is counted in Monday-start weeks.
func mondayWeekStart(t time.Time) int {
	sinceMonday := (int(t.Weekday()) + 6) % 7
	return dayNumber(t) - sinceMonday
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}
