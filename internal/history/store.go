// Package history keeps the per-session ledger of successful lookups.
package history

import (
	"sync"

	"github.com/TomasB/ipcheck/internal/data"
)

// Entry pairs a queried address with the record returned for it.
type Entry struct {
	Address string      `json:"ip"`
	Record  data.Record `json:"record"`
}

// Store is an insertion-ordered, deduplicated ledger owned by one session.
// The zero value is not usable; create stores with NewStore.
type Store struct {
	mu      sync.Mutex
	entries []Entry
	seen    map[string]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{seen: make(map[string]struct{})}
}

// Record appends an entry unless address is already present. The first
// record seen for an address is kept. It reports whether an entry was added.
func (s *Store) Record(address string, rec data.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[address]; ok {
		return false
	}
	s.seen[address] = struct{}{}
	s.entries = append(s.entries, Entry{Address: address, Record: rec})
	return true
}

// All returns a copy of the entries, most recently added first.
func (s *Store) All() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[len(s.entries)-1-i] = e
	}
	return out
}

// Len returns the number of distinct addresses recorded.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
