// Package sqlite reads department and event snapshots from the content
// database published by the CMS. The CMS owns the schema, all writes, and
// migrations; this adapter only queries.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/concierge-availability/internal/content"
	"github.com/example/concierge-availability/internal/hours"
	"github.com/example/concierge-availability/internal/recurrence"
	_ "modernc.org/sqlite"
)

// Store is a read-only view over the CMS SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the content database at the given DSN.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("content: open database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetDepartment loads a department snapshot, decoding its hours document
// into the schedule model. Structural problems in the document (unknown
// weekday names, malformed times) are hard errors surfaced to the content
// author, not silently corrected.
func (s *Store) GetDepartment(ctx context.Context, id string) (content.Department, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, timezone, hours_json, updated_at FROM departments WHERE id = ?`, id)

	var (
		dept      content.Department
		timezone  string
		hoursJSON sql.NullString
		updatedAt string
	)
	if err := row.Scan(&dept.ID, &dept.Name, &timezone, &hoursJSON, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return content.Department{}, content.ErrNotFound
		}
		return content.Department{}, fmt.Errorf("content: load department %s: %w", id, err)
	}

	schedule, err := decodeSchedule(timezone, hoursJSON.String)
	if err != nil {
		return content.Department{}, fmt.Errorf("content: department %s: %w", id, err)
	}
	dept.Schedule = schedule

	if dept.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return content.Department{}, fmt.Errorf("content: department %s: %w", id, err)
	}
	return dept, nil
}

// GetEvent loads an event snapshot, decoding its recurrence document when
// present.
func (s *Store) GetEvent(ctx context.Context, id string) (content.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, timezone, start_at, end_at, all_day, recurring, rule_json,
		        booking_opens_hours, booking_closes_hours, destination, updated_at
		 FROM events WHERE id = ?`, id)

	var (
		event       content.Event
		startAt     string
		endAt       sql.NullString
		ruleJSON    sql.NullString
		opensHours  sql.NullFloat64
		closesHours sql.NullFloat64
		destination sql.NullString
		updatedAt   string
	)
	if err := row.Scan(&event.ID, &event.Title, &event.Timezone, &startAt, &endAt,
		&event.AllDay, &event.Recurring, &ruleJSON, &opensHours, &closesHours,
		&destination, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return content.Event{}, content.ErrNotFound
		}
		return content.Event{}, fmt.Errorf("content: load event %s: %w", id, err)
	}

	var err error
	if event.Start, err = parseTimestamp(startAt); err != nil {
		return content.Event{}, fmt.Errorf("content: event %s: %w", id, err)
	}
	if endAt.Valid && strings.TrimSpace(endAt.String) != "" {
		end, err := parseTimestamp(endAt.String)
		if err != nil {
			return content.Event{}, fmt.Errorf("content: event %s: %w", id, err)
		}
		event.End = &end
	}
	if ruleJSON.Valid && strings.TrimSpace(ruleJSON.String) != "" {
		rule, err := decodeRule(ruleJSON.String)
		if err != nil {
			return content.Event{}, fmt.Errorf("content: event %s: %w", id, err)
		}
		event.Rule = rule
	}
	if opensHours.Valid {
		v := opensHours.Float64
		event.BookingOpensHours = &v
	}
	if closesHours.Valid {
		v := closesHours.Float64
		event.BookingClosesHours = &v
	}
	event.Destination = destination.String
	if event.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return content.Event{}, fmt.Errorf("content: event %s: %w", id, err)
	}
	return event, nil
}

// hoursDocument mirrors the CMS JSON layout for operating hours:
//
//	{"default":[["09:00","22:00"]],"overrides":{"SUN":[["10:00","18:00"]],"TUE":[]}}
type hoursDocument struct {
	Default   [][2]string            `json:"default"`
	Overrides map[string][][2]string `json:"overrides"`
}

func decodeSchedule(timezone, doc string) (hours.Schedule, error) {
	schedule := hours.Schedule{Timezone: timezone}
	if strings.TrimSpace(doc) == "" {
		return schedule, nil
	}

	var parsed hoursDocument
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return hours.Schedule{}, fmt.Errorf("decode hours document: %w", err)
	}

	slots, err := decodeSlots(parsed.Default)
	if err != nil {
		return hours.Schedule{}, err
	}
	if len(parsed.Default) > 0 {
		schedule.Default = slots
	}

	for name, rawSlots := range parsed.Overrides {
		day, err := hours.ParseWeekday(name)
		if err != nil {
			return hours.Schedule{}, err
		}
		decoded, err := decodeSlots(rawSlots)
		if err != nil {
			return hours.Schedule{}, err
		}
		if schedule.Overrides == nil {
			schedule.Overrides = make(map[time.Weekday][]hours.TimeSlot, len(parsed.Overrides))
		}
		schedule.Overrides[day] = decoded
	}

	return schedule, nil
}

func decodeSlots(raw [][2]string) ([]hours.TimeSlot, error) {
	slots := make([]hours.TimeSlot, 0, len(raw))
	for _, pair := range raw {
		open, err := hours.ParseTimeOfDay(pair[0])
		if err != nil {
			return nil, err
		}
		close, err := hours.ParseTimeOfDay(pair[1])
		if err != nil {
			return nil, err
		}
		slots = append(slots, hours.TimeSlot{Open: open, Close: close})
	}
	return slots, nil
}

// ruleDocument mirrors the CMS JSON layout for recurrence rules:
//
//	{"freq":"weekly","interval":1,"days":["MON","WED","FRI"],"until":"2026-12-31"}
type ruleDocument struct {
	Freq     string   `json:"freq"`
	Interval *int     `json:"interval"`
	Days     []string `json:"days"`
	Until    string   `json:"until"`
}

func decodeRule(doc string) (*recurrence.Rule, error) {
	var parsed ruleDocument
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return nil, fmt.Errorf("decode recurrence document: %w", err)
	}

	// Unknown frequency names pass through as unspecified so display code
	// can fall back; weekday names must parse.
	rule := recurrence.Rule{
		Frequency: recurrence.ParseFrequency(parsed.Freq),
		Interval:  1,
	}
	if parsed.Interval != nil {
		rule.Interval = *parsed.Interval
	}
	for _, name := range parsed.Days {
		day, err := hours.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		rule.Weekdays = append(rule.Weekdays, day)
	}
	if strings.TrimSpace(parsed.Until) != "" {
		until, err := time.Parse("2006-01-02", parsed.Until)
		if err != nil {
			return nil, fmt.Errorf("decode until date: %w", err)
		}
		rule.Until = &until
	}
	return &rule, nil
}

func parseTimestamp(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return parsed, nil
}
