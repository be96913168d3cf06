// Package state holds the dashboard's current snapshot of backend data.
//
// Refresh passes can overlap on slow networks. Each pass reserves a sequence
// number before its request goes out; an apply carrying a sequence at or
// below the last applied one is discarded, so an older response can never
// overwrite a newer snapshot.
package state

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hamed0406/anomalydash/internal/domain"
)

type Store struct {
	seq atomic.Uint64

	mu          sync.RWMutex
	appliedSeq  uint64
	records     []domain.Record
	stats       *domain.Statistics
	lastUpdated time.Time
}

func New() *Store {
	return &Store{}
}

// NextSeq reserves a sequence number for a fetch pass. Call it before the
// request is issued.
func (s *Store) NextSeq() uint64 {
	return s.seq.Add(1)
}

// ApplyRecords installs a fetched result set. It reports false when the pass
// is stale (a later pass already applied).
func (s *Store) ApplyRecords(seq uint64, records []domain.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.appliedSeq {
		return false
	}
	s.appliedSeq = seq
	s.records = records
	s.lastUpdated = time.Now().UTC()
	return true
}

// ApplyStatistics installs the summary independently of the record list; the
// two may be momentarily inconsistent.
func (s *Store) ApplyStatistics(stats *domain.Statistics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
}

// Records returns the current result set. Callers must not mutate it.
func (s *Store) Records() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Statistics returns the latest summary, or nil if none was fetched yet.
func (s *Store) Statistics() *domain.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// LastUpdated is the local apply time of the current record set.
func (s *Store) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}
