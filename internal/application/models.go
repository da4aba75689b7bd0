package application

import (
	"time"

	"github.com/example/concierge-availability/internal/booking"
	"github.com/example/concierge-availability/internal/recurrence"
)

// DepartmentStatus is the availability answer for a department at a single
// instant.
type DepartmentStatus struct {
	DepartmentID string
	Name         string
	Timezone     string
	IsOpen       bool
	Label        string
	CheckedAt    time.Time
}

// EventAvailability is the availability answer for an event at a single
// instant.
type EventAvailability struct {
	EventID   string
	Title     string
	Recurring bool

	// RecurrenceLabel is the guest-facing pattern phrase for recurring
	// events, empty otherwise.
	RecurrenceLabel string

	// EffectiveStart is the event's start, or the next live occurrence for
	// recurring events. Nil when the recurrence pattern has ended.
	EffectiveStart *time.Time

	// Ended reports that the event is over: a one-time event whose end (or
	// start, when no end is authored) has passed, or a recurring event with
	// no future occurrence.
	Ended bool

	BookingState booking.State

	// AcceptingRequests folds in the caller-side concerns layered on top of
	// the booking window: the event must be bookable, not ended, and have a
	// routing destination.
	AcceptingRequests bool

	CheckedAt time.Time
}

// EventInput carries authoring-time event fields submitted for validation.
// Nothing is persisted; the CMS saves the record after a clean validation
// pass.
type EventInput struct {
	Title              string
	Timezone           string
	Start              time.Time
	AllDay             bool
	Recurring          bool
	Rule               *recurrence.Rule
	BookingOpensHours  *float64
	BookingClosesHours *float64
}
