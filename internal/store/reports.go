package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

// Entry is a report together with the time it was stored.
type Entry struct {
	Report    *types.AnalysisReport
	UpdatedAt time.Time
}

// ReportStore is a thread-safe in-memory store of the latest analysis
// report per machine. A background goroutine (Run) evicts entries that
// have not been refreshed within the TTL.
type ReportStore struct {
	mu   sync.RWMutex
	data map[string]*Entry
	ttl  time.Duration
	now  func() time.Time // injectable for deterministic tests
}

// NewReportStore creates a ReportStore with the given TTL.
func NewReportStore(ttl time.Duration) *ReportStore {
	return &ReportStore{
		data: make(map[string]*Entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Put stores or replaces the report for report.Machine.
// Callers must not modify report after calling Put.
func (s *ReportStore) Put(report *types.AnalysisReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[report.Machine] = &Entry{
		Report:    report,
		UpdatedAt: s.now(),
	}
}

// Get returns the Entry for machine and whether one exists. The entry may
// be stale if the TTL has elapsed but eviction has not run yet.
func (s *ReportStore) Get(machine string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[machine]
	return e, ok
}

// List returns all entries refreshed within the TTL.
func (s *ReportStore) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-s.ttl)
	out := make([]*Entry, 0, len(s.data))
	for _, e := range s.data {
		if e.UpdatedAt.After(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the total number of entries held, including stale ones.
func (s *ReportStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// TTL returns the configured entry lifetime.
func (s *ReportStore) TTL() time.Duration {
	return s.ttl
}

// Evict removes entries older than now minus TTL and returns how many
// were removed.
func (s *ReportStore) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for machine, e := range s.data {
		if !e.UpdatedAt.After(cutoff) {
			delete(s.data, machine)
			removed++
		}
	}
	return removed
}

// Run starts the background eviction loop, ticking at half the TTL
// (minimum 1 second). Blocks until ctx is cancelled.
func (s *ReportStore) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				slog.Debug("store: evicted stale reports", "count", n)
			}
		}
	}
}
