package divtrack

import "time"

// Frequency classifies the cadence of a dividend payment schedule.
type Frequency int

const (
	// FrequencyUnknown means the history is too short to classify.
	FrequencyUnknown Frequency = iota
	Monthly
	Quarterly
	SemiAnnual
	Annual
)

func (f Frequency) String() string {
	switch f {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case SemiAnnual:
		return "semi-annual"
	case Annual:
		return "annual"
	default:
		return "unknown"
	}
}

// Cadence thresholds, in days between payments. Each bound is exclusive and
// tested in order.
const (
	monthlyIntervalMax    = 40
	quarterlyIntervalMax  = 100
	semiAnnualIntervalMax = 200
)

// Classify determines the payment cadence from historical payment dates,
// which must be sorted in ascending order. It averages the gaps between the
// most recent payments (at most the last four gaps) and returns the cadence
// together with the average gap in days.
//
// Fewer than two payments cannot establish a cadence: the result is
// FrequencyUnknown and callers must not project from it.
func Classify(dates []time.Time) (Frequency, float64) {
	if len(dates) < 2 {
		return FrequencyUnknown, 0
	}

	n := len(dates)
	var total float64
	var gaps int
	for i := 1; i < 5 && i < n; i++ {
		total += dates[n-i].Sub(dates[n-i-1]).Hours() / 24
		gaps++
	}
	avg := total / float64(gaps)

	switch {
	case avg < monthlyIntervalMax:
		return Monthly, avg
	case avg < quarterlyIntervalMax:
		return Quarterly, avg
	case avg < semiAnnualIntervalMax:
		return SemiAnnual, avg
	default:
		return Annual, avg
	}
}
