// Package interest tracks the entities a user asked to be notified about.
package interest

import (
	"sort"
	"sync"

	"spacescope/internal/domain"
)

// Set is a session-scoped set of entity ids. The zero value is ready to use.
type Set struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// Toggle flips membership of the entity's resolved id and returns the new
// membership. Without the entitlement it returns domain.ErrUpgradeRequired
// and leaves the set untouched.
func (s *Set) Toggle(entitled bool, e domain.Entity) (bool, error) {
	return s.ToggleID(entitled, domain.ResolveID(e))
}

// ToggleID is Toggle for an already resolved id
func (s *Set) ToggleID(entitled bool, id string) (bool, error) {
	if !entitled {
		return s.HasID(id), domain.ErrUpgradeRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false, nil
	}
	s.ids[id] = struct{}{}
	return true, nil
}

// Has reports whether the entity is in the set
func (s *Set) Has(e domain.Entity) bool {
	return s.HasID(domain.ResolveID(e))
}

// HasID reports whether id is in the set
func (s *Set) HasID(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the members in sorted order
func (s *Set) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of members
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
