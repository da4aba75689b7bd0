package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/concierge-availability/internal/booking"
	"github.com/example/concierge-availability/internal/content"
	"github.com/example/concierge-availability/internal/hours"
	"github.com/example/concierge-availability/internal/recurrence"
)

type contentStoreStub struct {
	department    content.Department
	departmentErr error
	event         content.Event
	eventErr      error
}

func (s *contentStoreStub) GetDepartment(ctx context.Context, id string) (content.Department, error) {
	if s.departmentErr != nil {
		return content.Department{}, s.departmentErr
	}
	if s.department.ID != id {
		return content.Department{}, content.ErrNotFound
	}
	return s.department, nil
}

func (s *contentStoreStub) GetEvent(ctx context.Context, id string) (content.Event, error) {
	if s.eventErr != nil {
		return content.Event{}, s.eventErr
	}
	if s.event.ID != id {
		return content.Event{}, content.ErrNotFound
	}
	return s.event, nil
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func hoursPtr(h float64) *float64 {
	return &h
}

func mustIST(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("failed to load Asia/Kolkata: %v", err)
	}
	return loc
}

func TestDepartmentStatus_Open(t *testing.T) {
	t.Parallel()

	ist := mustIST(t)
	store := &contentStoreStub{department: content.Department{
		ID:   "dept-1",
		Name: "Spa",
		Schedule: hours.Schedule{
			Timezone: "Asia/Kolkata",
			Default:  []hours.TimeSlot{{Open: 9 * 60, Close: 22 * 60}},
		},
	}}

	now := time.Date(2026, time.September, 7, 10, 0, 0, 0, ist)
	svc := NewAvailabilityService(store, fixedNow(now))

	status, err := svc.DepartmentStatus(context.Background(), "dept-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.IsOpen || status.Label != "Open · Closes 10:00 PM" {
		t.Fatalf("unexpected status %+v", status)
	}
	if !status.CheckedAt.Equal(now) {
		t.Fatalf("expected CheckedAt %v, got %v", now, status.CheckedAt)
	}
	if status.Name != "Spa" || status.Timezone != "Asia/Kolkata" {
		t.Fatalf("unexpected snapshot fields %+v", status)
	}
}

func TestDepartmentStatus_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewAvailabilityService(&contentStoreStub{}, fixedNow(time.Now()))
	_, err := svc.DepartmentStatus(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDepartmentStatus_RequiresID(t *testing.T) {
	t.Parallel()

	svc := NewAvailabilityService(&contentStoreStub{}, fixedNow(time.Now()))
	_, err := svc.DepartmentStatus(context.Background(), "  ")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDepartmentStatus_InvalidTimezoneSurfaces(t *testing.T) {
	t.Parallel()

	store := &contentStoreStub{department: content.Department{
		ID: "dept-1",
		Schedule: hours.Schedule{
			Timezone: "Not/AZone",
			Default:  []hours.TimeSlot{{Open: 9 * 60, Close: 17 * 60}},
		},
	}}
	svc := NewAvailabilityService(store, fixedNow(time.Now()))

	_, err := svc.DepartmentStatus(context.Background(), "dept-1")
	var tzErr *hours.InvalidTimezoneError
	if !errors.As(err, &tzErr) {
		t.Fatalf("expected InvalidTimezoneError to surface, got %v", err)
	}
}

func TestEventAvailability_OneTimeEvent(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.September, 10, 19, 0, 0, 0, time.UTC)
	store := &contentStoreStub{event: content.Event{
		ID:                 "event-1",
		Title:              "Wine Tasting",
		Timezone:           "UTC",
		Start:              start,
		BookingOpensHours:  hoursPtr(48),
		BookingClosesHours: hoursPtr(2),
		Destination:        "concierge-desk",
	}}

	now := start.Add(-10 * time.Hour)
	svc := NewAvailabilityService(store, fixedNow(now))

	result, err := svc.EventAvailability(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BookingState != booking.StateBookable {
		t.Fatalf("expected bookable 10 hours out, got %v", result.BookingState)
	}
	if !result.AcceptingRequests {
		t.Fatalf("expected requests to be accepted, got %+v", result)
	}
	if result.EffectiveStart == nil || !result.EffectiveStart.Equal(start) {
		t.Fatalf("expected effective start %v, got %v", start, result.EffectiveStart)
	}
	if result.Ended || result.Recurring || result.RecurrenceLabel != "" {
		t.Fatalf("unexpected one-time fields %+v", result)
	}
}

func TestEventAvailability_WindowNotYetOpen(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.September, 10, 19, 0, 0, 0, time.UTC)
	store := &contentStoreStub{event: content.Event{
		ID:                 "event-1",
		Title:              "Wine Tasting",
		Start:              start,
		BookingOpensHours:  hoursPtr(48),
		BookingClosesHours: hoursPtr(2),
		Destination:        "concierge-desk",
	}}

	svc := NewAvailabilityService(store, fixedNow(start.Add(-60*time.Hour)))
	result, err := svc.EventAvailability(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BookingState != booking.StateNotYetOpen {
		t.Fatalf("expected not_yet_open 60 hours out, got %v", result.BookingState)
	}
	if result.AcceptingRequests {
		t.Fatalf("requests must not be accepted before the window opens")
	}
}

func TestEventAvailability_EndedOneTimeEvent(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.September, 1, 19, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	store := &contentStoreStub{event: content.Event{
		ID:          "event-1",
		Title:       "Wine Tasting",
		Start:       start,
		End:         &end,
		Destination: "concierge-desk",
	}}

	t.Run("during the event it is not ended", func(t *testing.T) {
		t.Parallel()
		svc := NewAvailabilityService(store, fixedNow(start.Add(time.Hour)))
		result, err := svc.EventAvailability(context.Background(), "event-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Ended {
			t.Fatalf("event with a future end must not be ended")
		}
		// Past the start instant the gate is closed regardless.
		if result.BookingState != booking.StateClosed {
			t.Fatalf("expected closed after start, got %v", result.BookingState)
		}
	})

	t.Run("after the end it is ended", func(t *testing.T) {
		t.Parallel()
		svc := NewAvailabilityService(store, fixedNow(end.Add(time.Hour)))
		result, err := svc.EventAvailability(context.Background(), "event-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Ended || result.AcceptingRequests {
			t.Fatalf("expected ended event, got %+v", result)
		}
	})
}

func TestEventAvailability_RecurringEvent(t *testing.T) {
	t.Parallel()

	ist := mustIST(t)
	anchor := time.Date(2026, time.September, 7, 19, 0, 0, 0, ist)
	rule := recurrence.Weekly(1, time.Monday, time.Wednesday, time.Friday)
	store := &contentStoreStub{event: content.Event{
		ID:                 "event-1",
		Title:              "Sunset Yoga",
		Timezone:           "Asia/Kolkata",
		Start:              anchor,
		Recurring:          true,
		Rule:               &rule,
		BookingOpensHours:  hoursPtr(48),
		BookingClosesHours: hoursPtr(2),
		Destination:        "spa-desk",
	}}

	// Tuesday noon IST; the next occurrence is Wednesday 19:00.
	now := time.Date(2026, time.September, 8, 12, 0, 0, 0, ist)
	svc := NewAvailabilityService(store, fixedNow(now))

	result, err := svc.EventAvailability(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantStart := time.Date(2026, time.September, 9, 19, 0, 0, 0, ist)
	if result.EffectiveStart == nil || !result.EffectiveStart.Equal(wantStart) {
		t.Fatalf("expected next occurrence %v, got %v", wantStart, result.EffectiveStart)
	}
	if result.RecurrenceLabel != "Every Mon, Wed, Fri at 7 PM" {
		t.Fatalf("unexpected recurrence label %q", result.RecurrenceLabel)
	}
	if result.BookingState != booking.StateBookable || !result.AcceptingRequests {
		t.Fatalf("expected bookable occurrence, got %+v", result)
	}
}

func TestEventAvailability_RecurrenceEnded(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2026, time.January, 5, 19, 0, 0, 0, time.UTC)
	until := time.Date(2026, time.March, 30, 0, 0, 0, 0, time.UTC)
	rule := recurrence.Rule{Frequency: recurrence.FrequencyWeekly, Interval: 1, Until: &until}
	store := &contentStoreStub{event: content.Event{
		ID:          "event-1",
		Title:       "Winter Series",
		Start:       anchor,
		Recurring:   true,
		Rule:        &rule,
		Destination: "concierge-desk",
	}}

	svc := NewAvailabilityService(store, fixedNow(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)))
	result, err := svc.EventAvailability(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Ended || result.EffectiveStart != nil {
		t.Fatalf("expected ended pattern, got %+v", result)
	}
	if result.BookingState != booking.StateClosed || result.AcceptingRequests {
		t.Fatalf("expected closed gate for ended pattern, got %+v", result)
	}
}

func TestEventAvailability_NoDestinationBlocksRequests(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.September, 10, 19, 0, 0, 0, time.UTC)
	store := &contentStoreStub{event: content.Event{
		ID:    "event-1",
		Title: "Wine Tasting",
		Start: start,
	}}

	svc := NewAvailabilityService(store, fixedNow(start.Add(-10*time.Hour)))
	result, err := svc.EventAvailability(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BookingState != booking.StateBookable {
		t.Fatalf("expected bookable window, got %v", result.BookingState)
	}
	if result.AcceptingRequests {
		t.Fatalf("events without a destination must not accept requests")
	}
}

func TestEventAvailability_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewAvailabilityService(&contentStoreStub{}, fixedNow(time.Now()))
	if _, err := svc.EventAvailability(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidateEvent(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.September, 10, 19, 0, 0, 0, time.UTC)

	t.Run("clean input passes", func(t *testing.T) {
		t.Parallel()
		svc := NewAvailabilityService(&contentStoreStub{}, nil)
		rule := recurrence.Weekly(1, time.Friday)
		err := svc.ValidateEvent(context.Background(), EventInput{
			Title:              "Wine Tasting",
			Timezone:           "Asia/Kolkata",
			Start:              start,
			Recurring:          true,
			Rule:               &rule,
			BookingOpensHours:  hoursPtr(48),
			BookingClosesHours: hoursPtr(2),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("collects field errors", func(t *testing.T) {
		t.Parallel()
		svc := NewAvailabilityService(&contentStoreStub{}, nil)
		rule := recurrence.Daily(0)
		err := svc.ValidateEvent(context.Background(), EventInput{
			Timezone:           "Not/AZone",
			Recurring:          true,
			Rule:               &rule,
			BookingOpensHours:  hoursPtr(2),
			BookingClosesHours: hoursPtr(48),
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"title", "start", "timezone", "recurrence", "booking_window"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected field error for %s, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("rule on non-recurring event is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewAvailabilityService(&contentStoreStub{}, nil)
		rule := recurrence.Daily(1)
		err := svc.ValidateEvent(context.Background(), EventInput{
			Title: "Wine Tasting",
			Start: start,
			Rule:  &rule,
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["recurrence"]; !ok {
			t.Fatalf("expected recurrence field error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("missing rule on recurring event is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewAvailabilityService(&contentStoreStub{}, nil)
		err := svc.ValidateEvent(context.Background(), EventInput{
			Title:     "Wine Tasting",
			Start:     start,
			Recurring: true,
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}
