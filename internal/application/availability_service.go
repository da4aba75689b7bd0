package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/concierge-availability/internal/booking"
	"github.com/example/concierge-availability/internal/content"
	"github.com/example/concierge-availability/internal/hours"
	"github.com/example/concierge-availability/internal/recurrence"
)

// ContentStore captures the snapshot reads needed by the service.
type ContentStore interface {
	GetDepartment(ctx context.Context, id string) (content.Department, error)
	GetEvent(ctx context.Context, id string) (content.Event, error)
}

// AvailabilityService answers open-hours, recurrence, and booking-window
// questions for the hosting layer. Every evaluation reads the clock exactly
// once so the composed answer reflects a single consistent instant.
type AvailabilityService struct {
	store  ContentStore
	now    func() time.Time
	logger *slog.Logger
}

// NewAvailabilityService wires dependencies for availability evaluations.
func NewAvailabilityService(store ContentStore, now func() time.Time) *AvailabilityService {
	return NewAvailabilityServiceWithLogger(store, now, nil)
}

// NewAvailabilityServiceWithLogger wires dependencies including a base logger.
func NewAvailabilityServiceWithLogger(store ContentStore, now func() time.Time, logger *slog.Logger) *AvailabilityService {
	if now == nil {
		now = time.Now
	}
	return &AvailabilityService{
		store:  store,
		now:    now,
		logger: defaultLogger(logger),
	}
}

// DepartmentStatus evaluates whether the department is open right now.
func (s *AvailabilityService) DepartmentStatus(ctx context.Context, departmentID string) (DepartmentStatus, error) {
	if s == nil || s.store == nil {
		return DepartmentStatus{}, fmt.Errorf("AvailabilityService is not initialised")
	}
	logger := serviceLogger(ctx, s.logger, "availability", "department_status", "department_id", departmentID)

	id := strings.TrimSpace(departmentID)
	if id == "" {
		vErr := &ValidationError{}
		vErr.add("department_id", "department id is required")
		return DepartmentStatus{}, vErr
	}

	dept, err := s.store.GetDepartment(ctx, id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return DepartmentStatus{}, ErrNotFound
		}
		logger.ErrorContext(ctx, "failed to load department snapshot", "error", err)
		return DepartmentStatus{}, fmt.Errorf("load department %s: %w", id, err)
	}

	now := s.now()
	status, err := hours.Status(dept.Schedule, now)
	if err != nil {
		// A bad timezone is an authoring defect; surface it rather than
		// guessing at UTC and returning a plausible but wrong answer.
		logger.ErrorContext(ctx, "department schedule is misconfigured", "error", err)
		return DepartmentStatus{}, fmt.Errorf("department %s: %w", id, err)
	}

	return DepartmentStatus{
		DepartmentID: dept.ID,
		Name:         dept.Name,
		Timezone:     dept.Schedule.Timezone,
		IsOpen:       status.IsOpen,
		Label:        status.Label,
		CheckedAt:    now,
	}, nil
}

// EventAvailability evaluates the event's effective start, recurrence label,
// and booking eligibility at a single instant.
func (s *AvailabilityService) EventAvailability(ctx context.Context, eventID string) (EventAvailability, error) {
	if s == nil || s.store == nil {
		return EventAvailability{}, fmt.Errorf("AvailabilityService is not initialised")
	}
	logger := serviceLogger(ctx, s.logger, "availability", "event_availability", "event_id", eventID)

	id := strings.TrimSpace(eventID)
	if id == "" {
		vErr := &ValidationError{}
		vErr.add("event_id", "event id is required")
		return EventAvailability{}, vErr
	}

	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return EventAvailability{}, ErrNotFound
		}
		logger.ErrorContext(ctx, "failed to load event snapshot", "error", err)
		return EventAvailability{}, fmt.Errorf("load event %s: %w", id, err)
	}

	loc, err := eventLocation(event.Timezone)
	if err != nil {
		logger.ErrorContext(ctx, "event timezone is misconfigured", "error", err)
		return EventAvailability{}, fmt.Errorf("event %s: %w", id, err)
	}

	now := s.now()
	result := EventAvailability{
		EventID:   event.ID,
		Title:     event.Title,
		Recurring: event.Recurring,
		CheckedAt: now,
	}

	var effectiveStart time.Time
	haveStart := false
	if event.Recurring && event.Rule != nil {
		result.RecurrenceLabel = recurrence.Describe(*event.Rule, event.Start, event.AllDay, loc)
		if next, ok := recurrence.NextOccurrence(*event.Rule, event.Start, now, loc); ok {
			effectiveStart = next
			haveStart = true
		}
	} else {
		effectiveStart = event.Start
		haveStart = true
	}

	if haveStart {
		start := effectiveStart
		result.EffectiveStart = &start
	}

	switch {
	case !haveStart:
		// Recurrence pattern has ended; nothing left to book.
		result.Ended = true
		result.BookingState = booking.StateClosed
	default:
		if !event.Recurring {
			endBoundary := effectiveStart
			if event.End != nil {
				endBoundary = *event.End
			}
			result.Ended = now.After(endBoundary)
		}
		result.BookingState = booking.Evaluate(effectiveStart, event.BookingOpensHours, event.BookingClosesHours, now)
	}

	result.AcceptingRequests = !result.Ended &&
		result.BookingState == booking.StateBookable &&
		strings.TrimSpace(event.Destination) != ""

	return result, nil
}

// ValidateEvent runs the edit-time checks the CMS must pass before saving an
// event record: a resolvable timezone, a structurally valid recurrence rule,
// and an internally consistent booking window.
func (s *AvailabilityService) ValidateEvent(ctx context.Context, input EventInput) error {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if input.Start.IsZero() {
		vErr.add("start", "start is required")
	}
	if tz := strings.TrimSpace(input.Timezone); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			vErr.add("timezone", "timezone must be a valid IANA identifier")
		}
	}

	if input.Recurring {
		if input.Rule == nil {
			vErr.add("recurrence", "recurrence rule is required for recurring events")
		} else if err := input.Rule.Validate(input.Start); err != nil {
			vErr.add("recurrence", ruleValidationMessage(err))
		}
	} else if input.Rule != nil {
		vErr.add("recurrence", "recurrence rule is only allowed on recurring events")
	}

	if err := booking.ValidateWindow(input.BookingOpensHours, input.BookingClosesHours); err != nil {
		var ambiguous *booking.AmbiguousWindowError
		switch {
		case errors.As(err, &ambiguous):
			vErr.add("booking_window", "booking must open at least as many hours before start as it closes")
		case errors.Is(err, booking.ErrNegativeBound):
			vErr.add("booking_window", "booking window hours must not be negative")
		default:
			vErr.add("booking_window", err.Error())
		}
	}

	if vErr.HasErrors() {
		serviceLogger(ctx, s.logger, "availability", "validate_event").
			InfoContext(ctx, "event input failed validation", "fields", len(vErr.FieldErrors))
		return vErr
	}
	return nil
}

func ruleValidationMessage(err error) string {
	switch {
	case errors.Is(err, recurrence.ErrInvalidFrequency):
		return "frequency must be daily, weekly, or monthly"
	case errors.Is(err, recurrence.ErrInvalidInterval):
		return "interval must be at least 1"
	case errors.Is(err, recurrence.ErrWeekdaysNotAllowed):
		return "weekday selections apply only to weekly rules"
	case errors.Is(err, recurrence.ErrUntilBeforeStart):
		return "until date must not precede the event start"
	default:
		return "recurrence rule is invalid"
	}
}

// eventLocation resolves an event's timezone. An absent timezone is not a
// constraint and falls back to UTC; an unresolvable one is an authoring
// error.
func eventLocation(timezone string) (*time.Location, error) {
	name := strings.TrimSpace(timezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q", name)
	}
	return loc, nil
}
