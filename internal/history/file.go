package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

// maxLineBytes bounds a single serialized scan when reading the file back.
const maxLineBytes = 4 << 20

// File is an append-only JSON-lines scan history: one scan per line,
// ordered by append time. Safe for concurrent use within one process; the
// file itself is owned by a single daemon.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a history over path. The file is created lazily on the
// first Append; a missing file reads back as empty history.
func NewFile(path string) *File {
	return &File{path: path}
}

// Append writes scan as one JSON line, creating parent directories as
// needed.
func (f *File) Append(scan types.Scan) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("history: mkdir: %w", err)
	}

	line, err := json.Marshal(scan)
	if err != nil {
		return fmt.Errorf("history: marshal scan: %w", err)
	}

	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("history: open: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("history: write: %w", err)
	}
	return nil
}

// Load returns every scan in the history, oldest first. A missing file is
// empty history, not an error.
func (f *File) Load() ([]types.Scan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("history: open: %w", err)
	}
	defer file.Close()

	var out []types.Scan
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var scan types.Scan
		if err := json.Unmarshal(line, &scan); err != nil {
			return nil, fmt.Errorf("history: corrupt line: %w", err)
		}
		out = append(out, scan)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("history: read: %w", err)
	}
	return out, nil
}

// Window returns the scans whose timestamps fall in [from, to], oldest
// first.
func (f *File) Window(from, to time.Time) ([]types.Scan, error) {
	all, err := f.Load()
	if err != nil {
		return nil, err
	}
	var out []types.Scan
	for _, s := range all {
		if s.Timestamp.Before(from) || s.Timestamp.After(to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Tail returns the newest n scans, oldest first. Fewer are returned when
// the history is shorter than n.
func (f *File) Tail(n int) ([]types.Scan, error) {
	all, err := f.Load()
	if err != nil {
		return nil, err
	}
	if n <= 0 || len(all) == 0 {
		return nil, nil
	}
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

// IndicatorSeries extracts the ordered raw-value series recorded under
// name across scans. Scans without the indicator are skipped.
func IndicatorSeries(scans []types.Scan, name string) []float64 {
	var out []float64
	for _, s := range scans {
		if v, ok := s.Indicators[name]; ok {
			out = append(out, v)
		}
	}
	return out
}
