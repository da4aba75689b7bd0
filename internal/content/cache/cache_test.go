package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/concierge-availability/internal/content"
)

type countingStore struct {
	departmentReads int
	eventReads      int
	departmentErr   error
	eventErr        error
}

func (s *countingStore) GetDepartment(ctx context.Context, id string) (content.Department, error) {
	s.departmentReads++
	if s.departmentErr != nil {
		return content.Department{}, s.departmentErr
	}
	return content.Department{ID: id, Name: "Spa"}, nil
}

func (s *countingStore) GetEvent(ctx context.Context, id string) (content.Event, error) {
	s.eventReads++
	if s.eventErr != nil {
		return content.Event{}, s.eventErr
	}
	return content.Event{ID: id, Title: "Wine Tasting"}, nil
}

func TestStore_CachesDepartmentReads(t *testing.T) {
	t.Parallel()

	backing := &countingStore{}
	store := New(backing, 8, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		dept, err := store.GetDepartment(ctx, "dept-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dept.ID != "dept-1" {
			t.Fatalf("unexpected department %+v", dept)
		}
	}
	if backing.departmentReads != 1 {
		t.Fatalf("expected a single backing read, got %d", backing.departmentReads)
	}
}

func TestStore_CachesEventReads(t *testing.T) {
	t.Parallel()

	backing := &countingStore{}
	store := New(backing, 8, time.Minute)
	ctx := context.Background()

	if _, err := store.GetEvent(ctx, "event-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.GetEvent(ctx, "event-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backing.eventReads != 1 {
		t.Fatalf("expected a single backing read, got %d", backing.eventReads)
	}
}

func TestStore_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	backing := &countingStore{departmentErr: content.ErrNotFound}
	store := New(backing, 8, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := store.GetDepartment(ctx, "missing"); !errors.Is(err, content.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	}
	if backing.departmentReads != 2 {
		t.Fatalf("misses must not be cached, got %d reads", backing.departmentReads)
	}

	// Once the record exists it is served and cached.
	backing.departmentErr = nil
	if _, err := store.GetDepartment(ctx, "missing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.GetDepartment(ctx, "missing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backing.departmentReads != 3 {
		t.Fatalf("expected one read after publication, got %d", backing.departmentReads)
	}
}

func TestStore_PurgeDropsSnapshots(t *testing.T) {
	t.Parallel()

	backing := &countingStore{}
	store := New(backing, 8, time.Minute)
	ctx := context.Background()

	if _, err := store.GetEvent(ctx, "event-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.Purge()
	if _, err := store.GetEvent(ctx, "event-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backing.eventReads != 2 {
		t.Fatalf("expected a fresh read after purge, got %d", backing.eventReads)
	}
}
