package divtrack

import (
	"slices"
	"strings"
	"time"
)

// monthLabelFormat renders a calendar month as a label like "January 2026".
const monthLabelFormat = "January 2006"

// MonthLabel returns the month bucket label for a payment date.
func MonthLabel(t time.Time) string { return t.Format(monthLabelFormat) }

// ParseMonthLabel parses a month bucket label back into its calendar month.
func ParseMonthLabel(label string) (time.Time, error) {
	return time.Parse(monthLabelFormat, label)
}

// SortMonthLabels sorts month labels chronologically. Lexical order is wrong
// here: it would sort "February 2025" after "January 2026". Labels that fail
// to parse keep a stable lexical position.
func SortMonthLabels(labels []string) {
	slices.SortFunc(labels, func(a, b string) int {
		ta, errA := ParseMonthLabel(a)
		tb, errB := ParseMonthLabel(b)
		if errA != nil || errB != nil {
			return strings.Compare(a, b)
		}
		return ta.Compare(tb)
	})
}
