package divtrack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/etnz/divtrack/date"
)

// This file implements the snapshot store: an append-only directory of daily
// snapshot files keyed by calendar day. A date slot is either absent or holds
// exactly one snapshot; saving on an existing day overwrites it, and nothing
// here ever deletes one.

const (
	snapshotPrefix = "projection_"
	snapshotExt    = ".json"
)

// ErrSnapshotNotFound reports that no snapshot was saved for a date. It is
// non-fatal and distinct from a corrupt record.
var ErrSnapshotNotFound = errors.New("no snapshot for this date")

// CorruptSnapshotError reports a snapshot file that exists but cannot be
// decoded. It is a data-integrity failure, never to be conflated with
// ErrSnapshotNotFound.
type CorruptSnapshotError struct {
	Path string
	Err  error
}

func (e *CorruptSnapshotError) Error() string {
	return fmt.Sprintf("corrupt snapshot %q: %v", e.Path, e.Err)
}

func (e *CorruptSnapshotError) Unwrap() error { return e.Err }

// History is a directory of daily snapshots, one JSON file per calendar day.
type History struct {
	dir string
}

// NewHistory returns a snapshot store backed by the given directory. The
// directory is created lazily on first save.
func NewHistory(dir string) *History { return &History{dir: dir} }

// Dir returns the backing directory.
func (h *History) Dir() string { return h.dir }

func (h *History) filename(on date.Date) string {
	return filepath.Join(h.dir, snapshotPrefix+on.String()+snapshotExt)
}

// Exists reports whether a snapshot has been saved for that day.
func (h *History) Exists(on date.Date) bool {
	_, err := os.Stat(h.filename(on))
	return err == nil
}

// Save persists the snapshot under its calendar day and returns the file
// written. Any previous snapshot for the same day is overwritten, with a
// warning.
func (h *History) Save(s *Snapshot) (string, error) {
	if err := os.MkdirAll(h.dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create history directory %q: %w", h.dir, err)
	}

	on := s.Day()
	if h.Exists(on) {
		log.Printf("snapshot for %s already exists, overwriting", on)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot encode snapshot for %s: %w", on, err)
	}
	file := h.filename(on)
	if err := os.WriteFile(file, data, 0644); err != nil {
		return "", fmt.Errorf("cannot write snapshot %q: %w", file, err)
	}
	log.Printf("saved snapshot to %s", file)
	return file, nil
}

// Load reads the snapshot for a day. It returns an error wrapping
// ErrSnapshotNotFound when no snapshot was saved for that day, and a
// *CorruptSnapshotError when the file exists but cannot be decoded.
func (h *History) Load(on date.Date) (*Snapshot, error) {
	file := h.filename(on)
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, on)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read snapshot %q: %w", file, err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &CorruptSnapshotError{Path: file, Err: err}
	}
	return &s, nil
}

// Latest loads the most recent snapshot, or ErrSnapshotNotFound when the
// store is empty.
func (h *History) Latest() (*Snapshot, error) {
	dates := h.Dates()
	if len(dates) == 0 {
		return nil, ErrSnapshotNotFound
	}
	return h.Load(dates[len(dates)-1])
}

// Dates lists the days with a saved snapshot, in ascending order. A file
// whose name does not carry a parseable date is skipped with a warning.
func (h *History) Dates() []date.Date {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		return nil
	}

	var dates []date.Date
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		stem := strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix), snapshotExt)
		on, err := date.Parse(stem)
		if err != nil {
			log.Printf("invalid snapshot filename %q: %v", name, err)
			continue
		}
		dates = append(dates, on)
	}

	slices.SortFunc(dates, func(a, b date.Date) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		default:
			return 0
		}
	})
	return dates
}

// LoadSince loads the snapshots saved on or after cutoff, in ascending order.
// A corrupt snapshot is skipped with a warning: one bad day must not take the
// whole trend down.
func (h *History) LoadSince(cutoff date.Date) []*Snapshot {
	var snapshots []*Snapshot
	for _, on := range h.Dates() {
		if on.Before(cutoff) {
			continue
		}
		s, err := h.Load(on)
		if err != nil {
			log.Printf("skipping snapshot for %s: %v", on, err)
			continue
		}
		snapshots = append(snapshots, s)
	}
	return snapshots
}

// HistorySummary is a quick census of the saved snapshots.
type HistorySummary struct {
	Count int
	First date.Date
	Last  date.Date
	Dates []date.Date
}

// Summary returns the census of all saved snapshots.
func (h *History) Summary() HistorySummary {
	dates := h.Dates()
	if len(dates) == 0 {
		return HistorySummary{}
	}
	return HistorySummary{
		Count: len(dates),
		First: dates[0],
		Last:  dates[len(dates)-1],
		Dates: dates,
	}
}
