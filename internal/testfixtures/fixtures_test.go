package testfixtures

import (
	"testing"
	"time"
)

func TestDepartmentFixtureDefaultsAndOverrides(t *testing.T) {
	first := NewDepartmentFixture()
	second := NewDepartmentFixture()

	if first.ID == second.ID {
		t.Fatalf("expected unique department ids, got %q twice", first.ID)
	}
	if first.Timezone != "Asia/Kolkata" {
		t.Fatalf("unexpected default timezone: %q", first.Timezone)
	}
	if first.HoursJSON == "" {
		t.Fatalf("expected a default hours document")
	}

	custom := NewDepartmentFixture(
		WithDepartmentID("spa"),
		WithDepartmentName("The Spa"),
		WithDepartmentHours(""),
	)
	if custom.ID != "spa" || custom.Name != "The Spa" {
		t.Fatalf("overrides not applied: %+v", custom)
	}
	if custom.HoursJSON != "" {
		t.Fatalf("expected unconfigured hours, got %q", custom.HoursJSON)
	}
}

func TestEventFixtureDefaultsAndOverrides(t *testing.T) {
	fixture := NewEventFixture()
	if fixture.Recurring {
		t.Fatalf("expected one-time event by default")
	}
	if fixture.Destination == "" {
		t.Fatalf("expected a default destination")
	}
	if !fixture.StartAt.After(ReferenceTime()) {
		t.Fatalf("expected start after the reference time, got %v", fixture.StartAt)
	}

	end := ReferenceTime().AddDate(0, 0, 2)
	custom := NewEventFixture(
		WithEventRule(`{"freq":"weekly","interval":1,"days":["MON"]}`),
		WithEventBookingWindow(48, 2),
		WithEventEnd(end),
		WithEventDestination(""),
	)
	if !custom.Recurring || custom.RuleJSON == "" {
		t.Fatalf("expected a recurring fixture, got %+v", custom)
	}
	if custom.BookingOpensHours == nil || *custom.BookingOpensHours != 48 {
		t.Fatalf("booking window override not applied: %+v", custom)
	}
	if custom.EndAt == nil || !custom.EndAt.Equal(end) {
		t.Fatalf("end override not applied: %+v", custom)
	}
	if custom.Destination != "" {
		t.Fatalf("destination override not applied: %q", custom.Destination)
	}
}

func TestReferenceTimeIsStable(t *testing.T) {
	if got := ReferenceTime(); !got.Equal(time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("reference time moved: %v", got)
	}
}
