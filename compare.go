package divtrack

import (
	"log"
)

// ComparisonEntry is one portfolio's calculation in a comparison.
type ComparisonEntry struct {
	Name   string
	Result *Result
}

// Comparison holds side-by-side calculations of several portfolio files.
type Comparison struct {
	Entries []ComparisonEntry
}

// Compare runs the calculator over several portfolio files. A file that fails
// to load is reported and skipped; the comparison carries on with the others.
func Compare(c *Calculator, files []string) *Comparison {
	cmp := &Comparison{}
	for _, file := range files {
		p, err := LoadPortfolio(file)
		if err != nil {
			log.Printf("skipping portfolio %q: %v", file, err)
			continue
		}
		cmp.Entries = append(cmp.Entries, ComparisonEntry{Name: p.Name(), Result: c.Run(p)})
	}
	return cmp
}

// Months returns the union of month labels across all entries, chronologically.
func (cmp *Comparison) Months() []string {
	seen := make(map[string]bool)
	var labels []string
	for _, e := range cmp.Entries {
		for label := range e.Result.MonthlyDividends {
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	SortMonthLabels(labels)
	return labels
}
