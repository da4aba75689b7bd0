// Package booking evaluates the lead-time window during which a guest may
// submit a request for an event. Both bounds are measured in hours before
// the event's effective start.
package booking

import (
	"errors"
	"fmt"
	"time"
)

// State classifies booking eligibility for an instant.
type State string

const (
	// StateNotYetOpen means the window has not opened yet.
	StateNotYetOpen State = "not_yet_open"
	// StateBookable means requests are currently accepted.
	StateBookable State = "bookable"
	// StateClosed means the window has closed.
	StateClosed State = "closed"
)

// AmbiguousWindowError reports a window that would close for booking before
// it opens: measured backward from the start, opens must be at least as
// large as closes.
type AmbiguousWindowError struct {
	OpensHours  float64
	ClosesHours float64
}

// Error implements the error interface.
func (e *AmbiguousWindowError) Error() string {
	return fmt.Sprintf("booking: window opens %v hours before start but already closes %v hours before start",
		e.OpensHours, e.ClosesHours)
}

// ErrNegativeBound indicates a lead-time bound below zero.
var ErrNegativeBound = errors.New("booking: window bounds must not be negative")

// ValidateWindow checks the internal consistency of a booking window at edit
// time. A nil bound means "no constraint from this field"; zero means "no
// advance-notice floor" for opens and "no cutoff" for closes, so the
// ordering requirement only applies when both bounds are present and
// strictly positive.
func ValidateWindow(opensHours, closesHours *float64) error {
	if opensHours != nil && *opensHours < 0 {
		return ErrNegativeBound
	}
	if closesHours != nil && *closesHours < 0 {
		return ErrNegativeBound
	}
	if opensHours != nil && closesHours != nil && *opensHours > 0 && *closesHours > 0 && *opensHours < *closesHours {
		return &AmbiguousWindowError{OpensHours: *opensHours, ClosesHours: *closesHours}
	}
	return nil
}

// Evaluate classifies now against the window anchored at effectiveStart.
// With no opens bound the window has always been open; with no closes bound
// it stays open right up to the start instant. The result is monotone over
// increasing now: not_yet_open, then bookable, then closed, with no
// reversals.
func Evaluate(effectiveStart time.Time, opensHours, closesHours *float64, now time.Time) State {
	if opensHours != nil && *opensHours > 0 {
		opensAt := effectiveStart.Add(-hoursBefore(*opensHours))
		if now.Before(opensAt) {
			return StateNotYetOpen
		}
	}

	closesAt := effectiveStart
	if closesHours != nil && *closesHours > 0 {
		closesAt = effectiveStart.Add(-hoursBefore(*closesHours))
	}
	if now.After(closesAt) {
		return StateClosed
	}

	return StateBookable
}

func hoursBefore(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
