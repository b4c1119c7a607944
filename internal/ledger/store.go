package ledger

import (
	"sync"
)

// RecordStore keeps ingested records in memory, preserving ingestion
// order for listing. Records never change after Put and there is no
// delete; the store only grows until process teardown.
type RecordStore struct {
	mu      sync.RWMutex
	byID    map[string]Record
	ordered []string
}

func NewRecordStore() *RecordStore {
	return &RecordStore{byID: map[string]Record{}}
}

func (s *RecordStore) Put(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[rec.ID]; !ok {
		s.ordered = append(s.ordered, rec.ID)
	}
	s.byID[rec.ID] = rec
}

func (s *RecordStore) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	return rec, ok
}

func (s *RecordStore) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.ordered))
	for _, id := range s.ordered {
		out = append(out, s.byID[id])
	}
	return out
}
