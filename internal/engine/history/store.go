package history

import "sync"

// DefaultMaxEntries bounds the store when no explicit limit is given.
const DefaultMaxEntries = 1000

// Store holds committed calculations, newest first.
// All methods are safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	entries    []Entry
	maxEntries int
}

// NewStore creates a history store keeping at most maxEntries entries.
// A non-positive limit selects DefaultMaxEntries.
func NewStore(maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{maxEntries: maxEntries}
}

// Append adds entry at the front of the list. When the store is full,
// the oldest entries are dropped.
func (s *Store) Append(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]Entry{entry}, s.entries...)
	s.trimLocked()
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// All returns a copy of the entries, newest first.
func (s *Store) All() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Find returns the entry with the given ID.
func (s *Store) Find(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// ByDay returns the entries grouped by calendar day, newest day first
// and newest entry first within each day. The grouping is derived on
// every call.
func (s *Store) ByDay() []DayGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	var groups []DayGroup
	for _, e := range s.entries {
		day := dayOf(e.Timestamp)
		if n := len(groups); n > 0 && groups[n-1].Day.Equal(day) {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, DayGroup{Day: day, Entries: []Entry{e}})
	}
	return groups
}

// SetMaxEntries changes the store limit, dropping the oldest entries if
// the store is already over it. A non-positive limit selects
// DefaultMaxEntries.
func (s *Store) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxEntries = max
	s.trimLocked()
}

// MaxEntries returns the store limit.
func (s *Store) MaxEntries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxEntries
}

// trimLocked drops the oldest entries beyond the limit. Entries are
// newest first, so the tail goes.
func (s *Store) trimLocked() {
	if len(s.entries) > s.maxEntries {
		s.entries = s.entries[:s.maxEntries]
	}
}

// replace swaps in a new entry list, trimming to the limit. Used by
// persistence loading.
func (s *Store) replace(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = entries
	s.trimLocked()
}
