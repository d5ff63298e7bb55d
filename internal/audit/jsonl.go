package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// JSONLSink appends entries to <root>/<run_id>/events.jsonl, one JSON
// object per line. Sequence numbers are assigned per run in arrival order
// under the sink's lock, so the file is totally ordered even when tool
// dispatches record concurrently.
type JSONLSink struct {
	root string
	mu   sync.Mutex
	seq  map[string]int
}

// NewJSONLSink creates the root directory if needed.
func NewJSONLSink(root string) (*JSONLSink, error) {
	if root == "" {
		return nil, fmt.Errorf("audit: root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &JSONLSink{root: root, seq: map[string]int{}}, nil
}

// Record implements Logger.
func (s *JSONLSink) Record(ctx context.Context, entry Entry) error {
	if err := validateRunID(entry.RunID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry.Seq = s.seq[entry.RunID]
	s.seq[entry.RunID]++
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	dir := filepath.Join(s.root, entry.RunID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "events.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("audit: marshal entry: %w", err)
	}
	if _, err := f.Write(append(raw, '\n')); err != nil {
		return err
	}
	return nil
}

// ReadRun returns all entries recorded for a run, in file order.
func (s *JSONLSink) ReadRun(runID string) ([]Entry, error) {
	if err := validateRunID(runID); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(filepath.Join(s.root, runID, "events.jsonl"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("audit: decode entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Run IDs become directory names, so they must be clean path components.
func validateRunID(runID string) error {
	runID = strings.TrimSpace(runID)
	if runID == "" || runID == "." || runID == ".." {
		return fmt.Errorf("audit: invalid run id %q", runID)
	}
	if strings.ContainsAny(runID, `/\`) || filepath.Clean(runID) != runID {
		return fmt.Errorf("audit: invalid run id %q", runID)
	}
	return nil
}
