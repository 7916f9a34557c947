package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

func testBaseline(machine string) *types.Baseline {
	return &types.Baseline{
		ID:                 "b-1",
		Machine:            machine,
		EstablishedAt:      time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC),
		LearningPeriodDays: 14,
		SampleCount:        42,
		Metrics: map[types.Category]types.StatSummary{
			types.CategoryCPU: {Mean: 20, P50: 18, StdDev: 4, Min: 10, Max: 35, P95: 30, Count: 42},
		},
		TimePatterns: types.TimePatterns{
			ByHour:    map[int]types.PatternBucket{9: {Count: 6, Total: 120}},
			ByWeekday: map[int]types.PatternBucket{1: {Count: 10, Total: 200}},
		},
	}
}

func TestBaselineStore_SaveLoadRoundTrip(t *testing.T) {
	s := NewBaselineStore(filepath.Join(t.TempDir(), "baselines"))
	want := testBaseline("workstation-1")

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load("workstation-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != want.ID || got.SampleCount != want.SampleCount {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if !got.EstablishedAt.Equal(want.EstablishedAt) {
		t.Errorf("EstablishedAt = %v, want %v", got.EstablishedAt, want.EstablishedAt)
	}
	cpu, ok := got.Metrics[types.CategoryCPU]
	if !ok || cpu.P95 != 30 {
		t.Errorf("cpu summary = %+v, want P95 30", cpu)
	}
	if got.TimePatterns.ByHour[9].Average() != 20 {
		t.Errorf("hour 9 average = %v, want 20", got.TimePatterns.ByHour[9].Average())
	}
}

func TestBaselineStore_SaveReplaces(t *testing.T) {
	s := NewBaselineStore(t.TempDir())
	first := testBaseline("m")
	if err := s.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := testBaseline("m")
	second.ID = "b-2"
	second.SampleCount = 100
	if err := s.Save(second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load("m")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != "b-2" || got.SampleCount != 100 {
		t.Errorf("got %s/%d, want replacement b-2/100", got.ID, got.SampleCount)
	}
}

func TestBaselineStore_LoadMissing(t *testing.T) {
	s := NewBaselineStore(t.TempDir())
	if _, err := s.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBaselineStore_RejectsEmptyMachine(t *testing.T) {
	s := NewBaselineStore(t.TempDir())
	if err := s.Save(&types.Baseline{}); err == nil {
		t.Error("Save accepted baseline without machine")
	}
	if err := s.Save(nil); err == nil {
		t.Error("Save accepted nil baseline")
	}
}

func TestBaselineStore_SanitizesMachineName(t *testing.T) {
	dir := t.TempDir()
	s := NewBaselineStore(dir)
	b := testBaseline("../escape/../../etc")
	if err := s.Save(b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries in store dir, want 1", len(entries))
	}
	if _, err := s.Load(b.Machine); err != nil {
		t.Errorf("Load with same name: %v", err)
	}
}
