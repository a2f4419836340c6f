// Package session holds the calibration records for one interactive
// session. Records live only as long as the process; nothing is
// persisted, by design.
package session

import (
	"sync"

	pkgerrors "github.com/pkg/errors"

	"diptab/pkg/dip"
	"diptab/pkg/events"
)

// Store is the mutable record list behind the session daemon. All
// mutations re-derive the DIPMM display column and publish a
// records.changed event; readers get snapshot copies so the table engine
// never sees a list mutated under it.
type Store struct {
	mu      sync.RWMutex
	records []dip.Record
	hub     *events.Hub
}

// New creates an empty store. hub may be nil when nobody listens.
func New(hub *events.Hub) *Store {
	return &Store{hub: hub}
}

func (s *Store) Add(r dip.Record) {
	s.mu.Lock()
	s.records = append(s.records, r)
	dip.Normalize(s.records)
	n := len(s.records)
	s.mu.Unlock()

	s.notify(n)
}

func (s *Store) Update(i int, r dip.Record) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.records) {
		n := len(s.records)
		s.mu.Unlock()
		return pkgerrors.Errorf("record index %d out of range (have %d records)", i, n)
	}
	s.records[i] = r
	dip.Normalize(s.records)
	n := len(s.records)
	s.mu.Unlock()

	s.notify(n)
	return nil
}

func (s *Store) Delete(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.records) {
		n := len(s.records)
		s.mu.Unlock()
		return pkgerrors.Errorf("record index %d out of range (have %d records)", i, n)
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	n := len(s.records)
	s.mu.Unlock()

	s.notify(n)
	return nil
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()

	s.notify(0)
}

// Snapshot returns a copy of the current record list, safe to hand to
// the table engine while other callers keep mutating the store.
func (s *Store) Snapshot() []dip.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]dip.Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) notify(count int) {
	s.hub.PublishRecordsChanged(count)
}
