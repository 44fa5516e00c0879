package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/slate-integrations/ipman/internal/logging"
)

// Record is one route addition as the tool made it. Timestamp is the
// human-readable wall-clock string, not RFC 3339, so the file stays
// pleasant to read directly.
type Record struct {
	Destination string `json:"destination"`
	Mask        string `json:"mask"`
	Gateway     string `json:"gateway"`
	Interface   string `json:"interface"`
	Persistent  bool   `json:"persistent"`
	Timestamp   string `json:"timestamp"`
}

// UnmarshalJSON tolerates older history files that stored persistence as
// the display strings "Yes"/"No" instead of a bool.
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	aux := struct {
		*alias
		Persistent json.RawMessage `json:"persistent"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Persistent) == 0 {
		return nil
	}
	var b bool
	if err := json.Unmarshal(aux.Persistent, &b); err == nil {
		r.Persistent = b
		return nil
	}
	var s string
	if err := json.Unmarshal(aux.Persistent, &s); err == nil {
		r.Persistent = s == "Yes" || s == "yes" || s == "true"
		return nil
	}
	return fmt.Errorf("persistent: unsupported value %s", aux.Persistent)
}

// PersistenceError wraps a ledger file operation failure.
type PersistenceError struct {
	Path string
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store is the append-only history of route additions this tool made.
// It is a record of intent, not a mirror of the OS table: deletes never
// remove entries, and routes added outside the tool never appear.
type Store struct {
	mu      sync.Mutex
	path    string
	records []Record
	log     *logging.Logger
}

// Open loads the history file at path, creating parent directories as
// needed. A missing file is an empty history; a corrupt file is logged
// and treated as empty rather than blocking startup.
func Open(path string, log *logging.Logger) (*Store, error) {
	s := &Store{
		path: path,
		log:  log.WithComponent("ledger"),
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &PersistenceError{Path: path, Op: "create dir for", Err: err}
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, &PersistenceError{Path: path, Op: "read", Err: err}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		s.log.Warn("history file unreadable, starting empty", "path", path, "error", err)
		s.records = nil
	}
	return s, nil
}

// Records returns a copy of the history, oldest first.
func (s *Store) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Append adds a record and rewrites the file. The in-memory history is
// updated even when the write fails, so the session view stays complete.
func (s *Store) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return s.write()
}

// Clear empties the history and rewrites the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return s.write()
}

// write rewrites the whole file pretty-printed, via a temp file and
// rename so a crash mid-write never leaves a truncated history.
func (s *Store) write() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return &PersistenceError{Path: s.path, Op: "encode", Err: err}
	}
	if s.records == nil {
		data = []byte("[]")
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &PersistenceError{Path: s.path, Op: "write", Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return &PersistenceError{Path: s.path, Op: "replace", Err: err}
	}
	return nil
}
