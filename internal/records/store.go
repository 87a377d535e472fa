package records

import "sync"

// Store is the client-side cache of daily records, keyed by YYYY-MM-DD. It is
// not a source of truth: it holds whatever prior fetches and successful saves
// produced this session. Entries are never removed and never expire.
//
// The grid reads it to mark recorded days, the record form reads it to
// pre-fill on reopen, and the reconciler is the only writer. All writes go
// through Merge, which touches only the named slots, so two saves for the
// same date cannot lose each other's untouched slot.
type Store struct {
	mu     sync.RWMutex
	byDate map[string]DailyRecord
}

func NewStore() *Store {
	return &Store{byDate: make(map[string]DailyRecord)}
}

// Get returns the cached record for a date, if any.
func (s *Store) Get(date string) (DailyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byDate[date]
	return rec, ok
}

// Has reports whether a record is cached for the date.
func (s *Store) Has(date string) bool {
	_, ok := s.Get(date)
	return ok
}

// Merge folds the named slots into the date's record. Unnamed slots keep
// their previous cached values, or zero if the date had no entry yet.
func (s *Store) Merge(date string, upd SlotUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.byDate[date]
	if upd.Lunch != nil {
		rec.LunchMissed = upd.Lunch.Missed
		rec.LunchLeftoversKg = upd.Lunch.LeftoversKg
	}
	if upd.Dinner != nil {
		rec.DinnerMissed = upd.Dinner.Missed
		rec.DinnerLeftoversKg = upd.Dinner.LeftoversKg
	}
	s.byDate[date] = rec
}

// Snapshot returns a copy of the cache, for read-only consumers such as
// report generation.
func (s *Store) Snapshot() map[string]DailyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]DailyRecord, len(s.byDate))
	for date, rec := range s.byDate {
		out[date] = rec
	}
	return out
}
