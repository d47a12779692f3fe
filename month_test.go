package divtrack

import (
	"slices"
	"testing"
	"time"
)

func TestMonthLabel(t *testing.T) {
	on := time.Date(2026, time.February, 14, 10, 30, 0, 0, time.UTC)
	if got, want := MonthLabel(on), "February 2026"; got != want {
		t.Errorf("MonthLabel() = %q, want %q", got, want)
	}

	back, err := ParseMonthLabel("February 2026")
	if err != nil {
		t.Fatalf("ParseMonthLabel() error: %v", err)
	}
	if back.Year() != 2026 || back.Month() != time.February {
		t.Errorf("ParseMonthLabel() = %v, want February 2026", back)
	}
}

func TestSortMonthLabels(t *testing.T) {
	labels := []string{"January 2026", "February 2025", "December 2025", "March 2026"}
	SortMonthLabels(labels)

	want := []string{"February 2025", "December 2025", "January 2026", "March 2026"}
	if !slices.Equal(labels, want) {
		t.Errorf("SortMonthLabels() = %v, want %v", labels, want)
	}
}

func TestSortMonthLabelsInvalid(t *testing.T) {
	// unparseable labels keep a stable lexical position instead of panicking
	labels := []string{"zzz", "abc", "January 2026"}
	SortMonthLabels(labels)
	if len(labels) != 3 {
		t.Fatalf("lost labels: %v", labels)
	}
}
