package divtrack

import "fmt"

type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// RatioPercent returns part as a percentage of whole. A whole of zero (or
// less) yields a defined zero percent instead of a division by zero.
func RatioPercent(part, whole float64) Percent {
	if whole <= 0 {
		return 0
	}
	return Percent(part / whole * 100)
}
