// Package analysis measures colourizer behaviour: steady-state filter
// bank response at a probe frequency, and spectral pitch-class profiles
// of rendered audio.
package analysis

import (
	"fmt"
	"math"

	"github.com/cwbudde/colourizer/colour"
)

// MeanAbsResponse drives a filter bank with a unit sine at freqHz and
// returns the mean absolute output over the second half of the probe.
// The first half is discarded so the narrow resonators settle before
// measuring.
func MeanAbsResponse(fb *colour.FilterBank, freqHz, seconds float64) (float64, error) {
	if fb == nil {
		return 0, fmt.Errorf("analysis: nil filter bank")
	}
	if freqHz <= 0 {
		return 0, fmt.Errorf("analysis: invalid probe frequency %g Hz", freqHz)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("analysis: invalid probe duration %g s", seconds)
	}

	sr := fb.SampleRate()
	n := int(seconds * sr)
	if n < 2 {
		n = 2
	}

	fb.Reset()
	w := 2 * math.Pi * freqHz / sr
	half := n / 2
	var sum float64
	for i := 0; i < n; i++ {
		y := fb.ProcessSample(math.Sin(w * float64(i)))
		if i >= half {
			sum += math.Abs(y)
		}
	}
	return sum / float64(n-half), nil
}

// ProfileDistance is the RMS distance between two pitch-class profiles.
func ProfileDistance(a, b [12]float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum / 12)
}
