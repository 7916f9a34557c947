package store

import (
	"testing"
	"time"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

func report(machine string) *types.AnalysisReport {
	return &types.AnalysisReport{
		ID:          "r-" + machine,
		Machine:     machine,
		State:       types.StateHealthy,
		HealthScore: 92,
	}
}

func TestReportStore_PutGet(t *testing.T) {
	s := NewReportStore(time.Minute)
	s.Put(report("m1"))

	e, ok := s.Get("m1")
	if !ok {
		t.Fatal("Get returned no entry")
	}
	if e.Report.Machine != "m1" || e.Report.HealthScore != 92 {
		t.Errorf("entry = %+v", e.Report)
	}
	if _, ok := s.Get("absent"); ok {
		t.Error("Get found entry for unknown machine")
	}
}

func TestReportStore_PutReplaces(t *testing.T) {
	s := NewReportStore(time.Minute)
	s.Put(report("m1"))
	fresh := report("m1")
	fresh.State = types.StateDegraded
	s.Put(fresh)

	if s.Count() != 1 {
		t.Fatalf("Count = %d, want 1", s.Count())
	}
	e, _ := s.Get("m1")
	if e.Report.State != types.StateDegraded {
		t.Errorf("state = %s, want degraded after replace", e.Report.State)
	}
}

func TestReportStore_ListSkipsStale(t *testing.T) {
	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	s := NewReportStore(time.Minute)
	s.now = func() time.Time { return clock }

	s.Put(report("old"))
	clock = base.Add(2 * time.Minute)
	s.Put(report("fresh"))

	got := s.List()
	if len(got) != 1 || got[0].Report.Machine != "fresh" {
		t.Errorf("List = %d entries, want only fresh", len(got))
	}
	if s.Count() != 2 {
		t.Errorf("Count = %d, want 2 (stale kept until eviction)", s.Count())
	}
}

func TestReportStore_Evict(t *testing.T) {
	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	s := NewReportStore(time.Minute)
	s.now = func() time.Time { return clock }

	s.Put(report("old"))
	clock = base.Add(30 * time.Second)
	s.Put(report("fresh"))

	if n := s.Evict(base.Add(90 * time.Second)); n != 1 {
		t.Fatalf("Evict removed %d, want 1", n)
	}
	if _, ok := s.Get("old"); ok {
		t.Error("stale entry survived eviction")
	}
	if _, ok := s.Get("fresh"); !ok {
		t.Error("fresh entry was evicted")
	}
}
