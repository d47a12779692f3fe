package divtrack

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/divtrack/date"
)

func testSnapshot(on time.Time, value float64) *Snapshot {
	return &Snapshot{
		Date:            on,
		PortfolioFile:   "data/portfolio.csv",
		TotalValue:      value,
		AnnualDividends: map[string]float64{"AAPL": value / 100},
	}
}

func TestHistorySaveLoad(t *testing.T) {
	h := NewHistory(t.TempDir())
	on := time.Date(2026, time.August, 23, 15, 0, 0, 0, time.UTC)

	file, err := h.Save(testSnapshot(on, 1000))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if got, want := filepath.Base(file), "projection_2026-08-23.json"; got != want {
		t.Errorf("snapshot file = %q, want %q", got, want)
	}

	day := date.New(2026, time.August, 23)
	if !h.Exists(day) {
		t.Error("Exists() = false after save")
	}

	back, err := h.Load(day)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if back.TotalValue != 1000 {
		t.Errorf("loaded value = %v, want 1000", back.TotalValue)
	}
}

// Saving twice on the same day keeps one snapshot, the newer one.
func TestHistoryOverwriteSameDay(t *testing.T) {
	h := NewHistory(t.TempDir())
	on := time.Date(2026, time.August, 23, 9, 0, 0, 0, time.UTC)

	if _, err := h.Save(testSnapshot(on, 1000)); err != nil {
		t.Fatalf("first Save() error: %v", err)
	}
	if _, err := h.Save(testSnapshot(on.Add(4*time.Hour), 1100)); err != nil {
		t.Fatalf("second Save() error: %v", err)
	}

	if got := h.Dates(); len(got) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(got))
	}
	back, err := h.Load(date.New(2026, time.August, 23))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if back.TotalValue != 1100 {
		t.Errorf("loaded value = %v, want the newer 1100", back.TotalValue)
	}
}

func TestHistoryNotFoundVsCorrupt(t *testing.T) {
	dir := t.TempDir()
	h := NewHistory(dir)

	_, err := h.Load(date.New(2026, time.August, 23))
	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Load() on missing day = %v, want ErrSnapshotNotFound", err)
	}

	file := filepath.Join(dir, "projection_2026-08-23.json")
	if err := os.WriteFile(file, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = h.Load(date.New(2026, time.August, 23))
	var corrupt *CorruptSnapshotError
	if !errors.As(err, &corrupt) {
		t.Fatalf("Load() on corrupt file = %v, want *CorruptSnapshotError", err)
	}
	if errors.Is(err, ErrSnapshotNotFound) {
		t.Error("a corrupt snapshot must not look like a missing one")
	}
	if corrupt.Path != file {
		t.Errorf("corrupt path = %q, want %q", corrupt.Path, file)
	}
}

func TestHistoryDates(t *testing.T) {
	dir := t.TempDir()
	h := NewHistory(dir)

	// saved out of order, listed in order
	for _, day := range []time.Time{
		time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC),
	} {
		if _, err := h.Save(testSnapshot(day, 1000)); err != nil {
			t.Fatal(err)
		}
	}
	// stray files are ignored
	os.WriteFile(filepath.Join(dir, "projection_garbage.json"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644)

	dates := h.Dates()
	if len(dates) != 3 {
		t.Fatalf("got %d dates, want 3", len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			t.Errorf("dates not ascending: %v", dates)
		}
	}
}

func TestHistoryLatest(t *testing.T) {
	h := NewHistory(t.TempDir())

	if _, err := h.Latest(); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Latest() on empty store = %v, want ErrSnapshotNotFound", err)
	}

	h.Save(testSnapshot(time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC), 1000))
	h.Save(testSnapshot(time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC), 1200))

	latest, err := h.Latest()
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if latest.TotalValue != 1200 {
		t.Errorf("Latest() value = %v, want 1200", latest.TotalValue)
	}
}

func TestHistoryLoadSince(t *testing.T) {
	dir := t.TempDir()
	h := NewHistory(dir)

	h.Save(testSnapshot(time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), 900))
	h.Save(testSnapshot(time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC), 1000))
	h.Save(testSnapshot(time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC), 1100))
	// a corrupt day is skipped, not fatal
	os.WriteFile(filepath.Join(dir, "projection_2026-08-15.json"), []byte("{not json"), 0644)

	got := h.LoadSince(date.New(2026, time.August, 1))
	if len(got) != 2 {
		t.Fatalf("got %d snapshots, want 2 (cutoff filters, corrupt skipped)", len(got))
	}
	if got[0].TotalValue != 1000 || got[1].TotalValue != 1100 {
		t.Errorf("snapshots = %v then %v, want 1000 then 1100", got[0].TotalValue, got[1].TotalValue)
	}
}

func TestHistorySummary(t *testing.T) {
	h := NewHistory(t.TempDir())

	if s := h.Summary(); s.Count != 0 {
		t.Errorf("Summary() on empty store = %+v, want zero", s)
	}

	h.Save(testSnapshot(time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC), 1000))
	h.Save(testSnapshot(time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC), 1200))

	s := h.Summary()
	if s.Count != 2 {
		t.Errorf("Count = %d, want 2", s.Count)
	}
	if got, want := s.First.String(), "2026-08-10"; got != want {
		t.Errorf("First = %q, want %q", got, want)
	}
	if got, want := s.Last.String(), "2026-08-20"; got != want {
		t.Errorf("Last = %q, want %q", got, want)
	}
}
