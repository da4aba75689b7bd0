package testfixtures

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/concierge-availability/internal/content/sqlite"
	_ "modernc.org/sqlite"
)

const contentSchema = `
CREATE TABLE departments (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	timezone   TEXT NOT NULL DEFAULT '',
	hours_json TEXT,
	updated_at TEXT NOT NULL
);
CREATE TABLE events (
	id                   TEXT PRIMARY KEY,
	title                TEXT NOT NULL,
	timezone             TEXT NOT NULL DEFAULT '',
	start_at             TEXT NOT NULL,
	end_at               TEXT,
	all_day              INTEGER NOT NULL DEFAULT 0,
	recurring            INTEGER NOT NULL DEFAULT 0,
	rule_json            TEXT,
	booking_opens_hours  REAL,
	booking_closes_hours REAL,
	destination          TEXT,
	updated_at           TEXT NOT NULL
);`

// ContentHarness provides a read adapter backed by a temporary SQLite content
// database shaped like the one the CMS publishes. The harness owns a separate
// write connection so tests can seed rows the adapter then reads.
type ContentHarness struct {
	Store *sqlite.Store

	db *sql.DB
}

// NewContentHarness creates a temporary content database with the CMS schema
// and opens the read adapter against it. Cleanup is registered with the
// provided testing.TB.
func NewContentHarness(tb testing.TB) *ContentHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "content.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		tb.Fatalf("failed to open content database: %v", err)
	}
	if _, err := db.Exec(contentSchema); err != nil {
		_ = db.Close()
		tb.Fatalf("failed to create content schema: %v", err)
	}

	store, err := sqlite.Open(path)
	if err != nil {
		_ = db.Close()
		tb.Fatalf("failed to open content adapter: %v", err)
	}

	harness := &ContentHarness{Store: store, db: db}
	tb.Cleanup(func() {
		_ = store.Close()
		_ = db.Close()
	})
	return harness
}

// SeedDepartment inserts a department fixture into the content database.
func (h *ContentHarness) SeedDepartment(tb testing.TB, fixture DepartmentFixture) {
	tb.Helper()

	var hoursJSON any
	if fixture.HoursJSON != "" {
		hoursJSON = fixture.HoursJSON
	}
	_, err := h.db.Exec(
		`INSERT INTO departments (id, name, timezone, hours_json, updated_at) VALUES (?, ?, ?, ?, ?)`,
		fixture.ID, fixture.Name, fixture.Timezone, hoursJSON, fixture.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		tb.Fatalf("failed to seed department %s: %v", fixture.ID, err)
	}
}

// SeedEvent inserts an event fixture into the content database.
func (h *ContentHarness) SeedEvent(tb testing.TB, fixture EventFixture) {
	tb.Helper()

	var (
		endAt    any
		ruleJSON any
		opens    any
		closes   any
	)
	if fixture.EndAt != nil {
		endAt = fixture.EndAt.Format(time.RFC3339)
	}
	if fixture.RuleJSON != "" {
		ruleJSON = fixture.RuleJSON
	}
	if fixture.BookingOpensHours != nil {
		opens = *fixture.BookingOpensHours
	}
	if fixture.BookingClosesHours != nil {
		closes = *fixture.BookingClosesHours
	}

	_, err := h.db.Exec(
		`INSERT INTO events (id, title, timezone, start_at, end_at, all_day, recurring, rule_json,
		                     booking_opens_hours, booking_closes_hours, destination, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fixture.ID, fixture.Title, fixture.Timezone, fixture.StartAt.Format(time.RFC3339), endAt,
		fixture.AllDay, fixture.Recurring, ruleJSON, opens, closes, fixture.Destination,
		fixture.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		tb.Fatalf("failed to seed event %s: %v", fixture.ID, err)
	}
}
