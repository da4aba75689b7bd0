// Package testfixtures provides deterministic builders for availability
// tests: a controllable clock, department and event fixtures, and a seeded
// SQLite content harness mirroring the CMS schema.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"
)

var (
	departmentCounter uint64
	eventCounter      uint64
)

// referenceTime is a Monday morning, which keeps weekday-sensitive scenarios
// easy to reason about.
var referenceTime = time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// -------------------------- Department fixtures --------------------------

// DepartmentFixture represents a deterministic department row shaped the way
// the CMS publishes it: timezone as a column, operating hours as a JSON
// document.
type DepartmentFixture struct {
	ID        string
	Name      string
	Timezone  string
	HoursJSON string
	UpdatedAt time.Time
}

// DepartmentOption configures the generated department fixture.
type DepartmentOption func(*DepartmentFixture)

// NewDepartmentFixture returns a deterministic department fixture with
// optional overrides. The default is open 09:00-22:00 every day.
func NewDepartmentFixture(opts ...DepartmentOption) DepartmentFixture {
	idx := atomic.AddUint64(&departmentCounter, 1)
	fixture := DepartmentFixture{
		ID:        fmt.Sprintf("dept-%03d", idx),
		Name:      fmt.Sprintf("Department %03d", idx),
		Timezone:  "Asia/Kolkata",
		HoursJSON: `{"default":[["09:00","22:00"]]}`,
		UpdatedAt: referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithDepartmentID overrides the generated department ID.
func WithDepartmentID(id string) DepartmentOption {
	return func(f *DepartmentFixture) {
		f.ID = id
	}
}

// WithDepartmentName overrides the generated department name.
func WithDepartmentName(name string) DepartmentOption {
	return func(f *DepartmentFixture) {
		f.Name = name
	}
}

// WithDepartmentTimezone overrides the department timezone.
func WithDepartmentTimezone(timezone string) DepartmentOption {
	return func(f *DepartmentFixture) {
		f.Timezone = timezone
	}
}

// WithDepartmentHours overrides the operating-hours JSON document. An empty
// string produces an unconfigured department.
func WithDepartmentHours(doc string) DepartmentOption {
	return func(f *DepartmentFixture) {
		f.HoursJSON = doc
	}
}

// WithDepartmentUpdatedAt sets the publication timestamp on the fixture.
func WithDepartmentUpdatedAt(t time.Time) DepartmentOption {
	return func(f *DepartmentFixture) {
		f.UpdatedAt = t
	}
}

// ---------------------------- Event fixtures -----------------------------

// EventFixture represents a deterministic event row shaped the way the CMS
// publishes it, with the recurrence rule as a JSON document.
type EventFixture struct {
	ID                 string
	Title              string
	Timezone           string
	StartAt            time.Time
	EndAt              *time.Time
	AllDay             bool
	Recurring          bool
	RuleJSON           string
	BookingOpensHours  *float64
	BookingClosesHours *float64
	Destination        string
	UpdatedAt          time.Time
}

// EventOption configures the generated event fixture.
type EventOption func(*EventFixture)

// NewEventFixture returns a deterministic one-time event fixture with
// optional overrides. The default starts a day after ReferenceTime and
// routes requests to guest services.
func NewEventFixture(opts ...EventOption) EventFixture {
	idx := atomic.AddUint64(&eventCounter, 1)
	fixture := EventFixture{
		ID:          fmt.Sprintf("event-%03d", idx),
		Title:       fmt.Sprintf("Event %03d", idx),
		Timezone:    "Asia/Kolkata",
		StartAt:     referenceTime.AddDate(0, 0, 1).Add(time.Duration(idx) * time.Minute),
		Destination: "guest-services",
		UpdatedAt:   referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEventID overrides the generated event ID.
func WithEventID(id string) EventOption {
	return func(f *EventFixture) {
		f.ID = id
	}
}

// WithEventTitle overrides the generated event title.
func WithEventTitle(title string) EventOption {
	return func(f *EventFixture) {
		f.Title = title
	}
}

// WithEventTimezone overrides the event timezone.
func WithEventTimezone(timezone string) EventOption {
	return func(f *EventFixture) {
		f.Timezone = timezone
	}
}

// WithEventStart sets the event start instant.
func WithEventStart(start time.Time) EventOption {
	return func(f *EventFixture) {
		f.StartAt = start
	}
}

// WithEventEnd sets the event end instant.
func WithEventEnd(end time.Time) EventOption {
	return func(f *EventFixture) {
		f.EndAt = &end
	}
}

// WithEventAllDay marks the event as all-day.
func WithEventAllDay(allDay bool) EventOption {
	return func(f *EventFixture) {
		f.AllDay = allDay
	}
}

// WithEventRule marks the event recurring with the given rule JSON document.
func WithEventRule(doc string) EventOption {
	return func(f *EventFixture) {
		f.Recurring = true
		f.RuleJSON = doc
	}
}

// WithEventBookingWindow sets both booking-window bounds in hours before the
// effective start.
func WithEventBookingWindow(opensHours, closesHours float64) EventOption {
	return func(f *EventFixture) {
		f.BookingOpensHours = &opensHours
		f.BookingClosesHours = &closesHours
	}
}

// WithEventDestination overrides the request-routing destination. An empty
// string produces an event that cannot accept requests.
func WithEventDestination(destination string) EventOption {
	return func(f *EventFixture) {
		f.Destination = destination
	}
}

// WithEventUpdatedAt sets the publication timestamp on the fixture.
func WithEventUpdatedAt(t time.Time) EventOption {
	return func(f *EventFixture) {
		f.UpdatedAt = t
	}
}
