package hours

import "time"

// DayStatus is the guest-facing answer to "is this department open right now".
type DayStatus struct {
	Label  string
	IsOpen bool
}

// Status evaluates the schedule against now in the schedule's timezone.
//
// Slots are checked in authored order and the first match wins. A slot
// spanning midnight counts as open from its open time today through its
// close time tomorrow, so the after-midnight tail of yesterday's overnight
// slot also reports open.
func Status(schedule Schedule, now time.Time) (DayStatus, error) {
	if !schedule.Configured() {
		return DayStatus{Label: "Hours not set"}, nil
	}

	loc, err := schedule.Location()
	if err != nil {
		return DayStatus{}, err
	}

	local := now.In(loc)
	at := TimeOfDay(local.Hour()*60 + local.Minute())

	today := schedule.SlotsFor(local.Weekday())
	for _, slot := range today {
		if !slot.Overnight() && slot.Open <= at && at <= slot.Close {
			return DayStatus{Label: "Open · Closes " + slot.Close.Clock12(), IsOpen: true}, nil
		}
		if slot.Overnight() && at >= slot.Open {
			// The window runs into tomorrow; the label names tomorrow's close.
			return DayStatus{Label: "Open · Closes " + slot.Close.Clock12(), IsOpen: true}, nil
		}
	}

	yesterday := schedule.SlotsFor(previousWeekday(local.Weekday()))
	for _, slot := range yesterday {
		if slot.Overnight() && at <= slot.Close {
			return DayStatus{Label: "Open · Closes " + slot.Close.Clock12(), IsOpen: true}, nil
		}
	}

	var nextOpen TimeOfDay
	found := false
	for _, slot := range today {
		if slot.Open > at && (!found || slot.Open < nextOpen) {
			nextOpen = slot.Open
			found = true
		}
	}
	if found {
		return DayStatus{Label: "Opens " + nextOpen.Clock12()}, nil
	}

	return DayStatus{Label: "Closed today"}, nil
}

func previousWeekday(day time.Weekday) time.Weekday {
	return time.Weekday((int(day) + 6) % 7)
}
