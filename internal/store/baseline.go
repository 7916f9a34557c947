package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

// ErrNotFound reports that no baseline has been saved for a machine yet.
// A normal state for young machines — callers fall back to "no opinion".
var ErrNotFound = errors.New("store: baseline not found")

// BaselineStore persists one Baseline JSON document per machine under a
// directory. Saves are atomic (temp file + rename), so a concurrent Load
// never observes a torn write.
type BaselineStore struct {
	dir string
}

// NewBaselineStore creates a store rooted at dir. The directory is created
// on first save.
func NewBaselineStore(dir string) *BaselineStore {
	return &BaselineStore{dir: dir}
}

// Save writes b for its machine, replacing any prior baseline wholesale.
func (s *BaselineStore) Save(b *types.Baseline) error {
	if b == nil || b.Machine == "" {
		return fmt.Errorf("store: baseline without a machine")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("store: mkdir: %w", err)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal baseline: %w", err)
	}

	final := s.pathFor(b.Machine)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write baseline: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("store: rename baseline: %w", err)
	}
	return nil
}

// Load returns the saved baseline for machine, or ErrNotFound.
func (s *BaselineStore) Load(machine string) (*types.Baseline, error) {
	data, err := os.ReadFile(s.pathFor(machine))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, machine)
		}
		return nil, fmt.Errorf("store: read baseline: %w", err)
	}

	var b types.Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("store: parse baseline: %w", err)
	}
	return &b, nil
}

// pathFor maps a machine name to its baseline file, flattening any path
// separators so a hostile name cannot escape the store directory.
func (s *BaselineStore) pathFor(machine string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(machine)
	return filepath.Join(s.dir, safe+".json")
}
