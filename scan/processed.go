package scan

import "sync"

// ProcessedSet records every domain that passed the blacklist. Membership
// is exact: a domain is dispatched at most once and never wrongly skipped.
// It is safe for concurrent use.
type ProcessedSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewProcessedSet creates a set with room for n domains.
func NewProcessedSet(n uint) *ProcessedSet {
	return &ProcessedSet{seen: make(map[string]struct{}, n)}
}

// TryAdd inserts domain and reports whether it was new. The check and the
// insert are atomic.
func (s *ProcessedSet) TryAdd(domain string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[domain]; ok {
		return false
	}
	s.seen[domain] = struct{}{}
	return true
}

// Contains reports whether domain was added.
func (s *ProcessedSet) Contains(domain string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[domain]
	return ok
}

// Len returns the number of domains in the set.
func (s *ProcessedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
