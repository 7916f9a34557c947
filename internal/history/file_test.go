package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

func tempHistory(t *testing.T) *File {
	t.Helper()
	return NewFile(filepath.Join(t.TempDir(), "nested", "history.jsonl"))
}

func scanAt(ts time.Time, cpu float64) types.Scan {
	return types.Scan{
		Timestamp: ts,
		Samples: []types.Sample{
			{Category: types.CategoryCPU, Value: cpu, Timestamp: ts},
		},
		Indicators: map[string]float64{"wear": cpu * 2},
	}
}

func TestFile_AppendLoadRoundTrip(t *testing.T) {
	f := tempHistory(t)
	start := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if err := f.Append(scanAt(start.Add(time.Duration(i)*time.Hour), float64(i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d scans, want 5", len(got))
	}
	for i, s := range got {
		if !s.Timestamp.Equal(start.Add(time.Duration(i) * time.Hour)) {
			t.Errorf("scan %d timestamp = %v", i, s.Timestamp)
		}
		if s.Samples[0].Value != float64(i) {
			t.Errorf("scan %d cpu = %v, want %d", i, s.Samples[0].Value, i)
		}
		if s.Indicators["wear"] != float64(i)*2 {
			t.Errorf("scan %d indicator = %v", i, s.Indicators["wear"])
		}
	}
}

func TestFile_MissingFileIsEmpty(t *testing.T) {
	f := tempHistory(t)
	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil for missing file", got)
	}
}

func TestFile_Window(t *testing.T) {
	f := tempHistory(t)
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		if err := f.Append(scanAt(start.AddDate(0, 0, i), float64(i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := f.Window(start.AddDate(0, 0, 2), start.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("Window: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d scans, want 4 (inclusive bounds)", len(got))
	}
	if got[0].Samples[0].Value != 2 || got[3].Samples[0].Value != 5 {
		t.Errorf("window edges = %v..%v, want 2..5", got[0].Samples[0].Value, got[3].Samples[0].Value)
	}
}

func TestFile_Tail(t *testing.T) {
	f := tempHistory(t)
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		if err := f.Append(scanAt(start.AddDate(0, 0, i), float64(i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := f.Tail(3)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d scans, want 3", len(got))
	}
	if got[0].Samples[0].Value != 7 {
		t.Errorf("tail starts at %v, want 7", got[0].Samples[0].Value)
	}

	all, err := f.Tail(100)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(all) != 10 {
		t.Errorf("Tail(100) = %d scans, want all 10", len(all))
	}
}

func TestFile_CorruptLine(t *testing.T) {
	f := tempHistory(t)
	if err := f.Append(scanAt(time.Now(), 1)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	file.WriteString("{not json\n") //nolint:errcheck
	file.Close()

	if _, err := f.Load(); err == nil {
		t.Fatal("Load succeeded on corrupt history, want error")
	}
}

func TestIndicatorSeries(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	scans := []types.Scan{
		scanAt(start, 1),
		{Timestamp: start.AddDate(0, 0, 1)}, // no indicators
		scanAt(start.AddDate(0, 0, 2), 3),
	}

	got := IndicatorSeries(scans, "wear")
	if len(got) != 2 || got[0] != 2 || got[1] != 6 {
		t.Errorf("series = %v, want [2 6]", got)
	}
	if s := IndicatorSeries(scans, "missing"); s != nil {
		t.Errorf("missing indicator series = %v, want nil", s)
	}
}
