package engine

// LegacyWindow is the fixed divisor of the legacy spatial summary.
const LegacyWindow = 100

// Sample is one entry of the cooperation trace.
type Sample struct {
	Step     int
	Fraction float64
}

// Trace is the ordered, append-only record of a run.
type Trace []Sample

// LegacyMean is the historical spatial summary value: the sum of the
// fractions of every update step (step 0 excluded) divided by exactly 100. It is not an average unless the run has exactly
// 100 update steps.
func LegacyMean(t Trace) float64 {
	sum := 0.0
	for _, s := range t {
		if s.Step == 0 {
			continue
		}
		sum += s.Fraction
	}
	return sum / LegacyWindow
}

// TailMean returns the mean fraction of the last window recorded samples,
// or of all samples if fewer were recorded.
func TailMean(t Trace, window int) float64 {
	if len(t) == 0 || window <= 0 {
		return 0
	}
	if window > len(t) {
		window = len(t)
	}
	sum := 0.0
	for _, s := range t[len(t)-window:] {
		sum += s.Fraction
	}
	return sum / float64(window)
}

// tally accumulates the summary statistics while samples stream past, so a
// run does not need to retain its trace to report them.
type tally struct {
	updateSum float64
	ring      []float64
	next      int
	filled    int
}

func newTally(window int) *tally {
	return &tally{ring: make([]float64, window)}
}

func (t *tally) add(step int, fraction float64) {
	if step > 0 {
		t.updateSum += fraction
	}
	t.ring[t.next] = fraction
	t.next = (t.next + 1) % len(t.ring)
	if t.filled < len(t.ring) {
		t.filled++
	}
}

func (t *tally) legacyMean() float64 {
	return t.updateSum / LegacyWindow
}

func (t *tally) tailMean() float64 {
	if t.filled == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < t.filled; i++ {
		sum += t.ring[i]
	}
	return sum / float64(t.filled)
}
