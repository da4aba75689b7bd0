// Package content defines read-only snapshots of the records owned by the
// external content-management system. The availability service never
// creates, mutates, or deletes them.
package content

import (
	"context"
	"errors"
	"time"

	"github.com/example/concierge-availability/internal/hours"
	"github.com/example/concierge-availability/internal/recurrence"
)

// Department is a guest-services department with authored operating hours.
type Department struct {
	ID        string
	Name      string
	Schedule  hours.Schedule
	UpdatedAt time.Time
}

// Event is a guest-facing event, one-time or recurring.
type Event struct {
	ID        string
	Title     string
	Timezone  string
	Start     time.Time
	End       *time.Time
	AllDay    bool
	Recurring bool
	Rule      *recurrence.Rule

	// Lead-time bounds in hours before the effective start. Nil means the
	// hotel-level default applies, which is resolved outside this service.
	BookingOpensHours  *float64
	BookingClosesHours *float64

	// Destination is the routing target for accepted requests. Events
	// without one cannot accept requests.
	Destination string

	UpdatedAt time.Time
}

// ErrNotFound is returned when a requested snapshot does not exist.
var ErrNotFound = errors.New("content: not found")

// Store reads immutable snapshots from the content database.
type Store interface {
	GetDepartment(ctx context.Context, id string) (Department, error)
	GetEvent(ctx context.Context, id string) (Event, error)
}
