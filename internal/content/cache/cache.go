// Package cache decorates a content store with an expiring LRU so hot
// departments and events are not re-read from the CMS database on every
// render. Staleness is bounded by the TTL; misses and errors pass through.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/example/concierge-availability/internal/content"
)

const (
	defaultSize = 256
	defaultTTL  = 30 * time.Second
)

// Store wraps a content.Store with per-record snapshot caches.
type Store struct {
	next        content.Store
	departments *expirable.LRU[string, content.Department]
	events      *expirable.LRU[string, content.Event]
}

// New builds a caching store of the given capacity and TTL. Non-positive
// values fall back to defaults.
func New(next content.Store, size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = defaultSize
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{
		next:        next,
		departments: expirable.NewLRU[string, content.Department](size, nil, ttl),
		events:      expirable.NewLRU[string, content.Event](size, nil, ttl),
	}
}

// GetDepartment returns a cached snapshot when fresh, otherwise reads
// through. Negative results are not cached so newly published records appear
// immediately.
func (s *Store) GetDepartment(ctx context.Context, id string) (content.Department, error) {
	if dept, ok := s.departments.Get(id); ok {
		return dept, nil
	}
	dept, err := s.next.GetDepartment(ctx, id)
	if err != nil {
		return content.Department{}, err
	}
	s.departments.Add(id, dept)
	return dept, nil
}

// GetEvent returns a cached snapshot when fresh, otherwise reads through.
func (s *Store) GetEvent(ctx context.Context, id string) (content.Event, error) {
	if event, ok := s.events.Get(id); ok {
		return event, nil
	}
	event, err := s.next.GetEvent(ctx, id)
	if err != nil {
		return content.Event{}, err
	}
	s.events.Add(id, event)
	return event, nil
}

// Purge drops all cached snapshots.
func (s *Store) Purge() {
	s.departments.Purge()
	s.events.Purge()
}
