package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// NotifiedSet remembers which meetings already had their reminder sent.
// Entries live until the meeting ends. It is process-local and starts empty
// after a restart.
type NotifiedSet struct {
	mu      sync.Mutex
	entries map[uuid.UUID]time.Time
}

func NewNotifiedSet() *NotifiedSet {
	return &NotifiedSet{entries: make(map[uuid.UUID]time.Time)}
}

func (s *NotifiedSet) Contains(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	return ok
}

// Add records id as notified; it is evicted once until has passed.
func (s *NotifiedSet) Add(id uuid.UUID, until time.Time) {
	s.mu.Lock()
	s.entries[id] = until
	s.mu.Unlock()
}

// EvictEnded drops every entry whose meeting ended before now and returns
// how many were removed.
func (s *NotifiedSet) EvictEnded(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, end := range s.entries {
		if end.Before(now) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *NotifiedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
