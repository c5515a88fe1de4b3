package testing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/go-cmp/cmp"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Trace records an ordered list of events, typically animation state
// changes, for golden-file comparison. Record is safe for concurrent use.
type Trace struct {
	mu     sync.Mutex
	Events []string `json:"events"`
}

// Record appends an event formatted with fmt.Sprint.
func (tr *Trace) Record(v any) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.Events = append(tr.Events, fmt.Sprint(v))
}

// Snapshot returns a copy of the recorded events.
func (tr *Trace) Snapshot() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]string(nil), tr.Events...)
}

// MatchesFile compares the trace against a golden file. On mismatch it
// reports a diff and instructions for updating. When RINGVIEW_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (tr *Trace) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("RINGVIEW_UPDATE_SNAPSHOTS") == "1" {
		if err := tr.UpdateFile(path); err != nil {
			t.Fatalf("failed to update trace: %v", err)
		}
		return
	}

	expected, err := loadTrace(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("trace file missing: %s\n\nTo create: RINGVIEW_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load trace: %v", err)
		return
	}

	if diff := cmp.Diff(expected, tr.Snapshot()); diff != "" {
		t.Errorf("trace mismatch: %s (-want +got):\n%s\n\nTo update: RINGVIEW_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes the trace to the given path, creating directories
// as needed.
func (tr *Trace) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(struct {
		Events []string `json:"events"`
	}{tr.Snapshot()}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func loadTrace(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file struct {
		Events []string `json:"events"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return file.Events, nil
}
