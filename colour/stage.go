package colour

import (
	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

// resonantStage is one narrow peaking section of the bank, tagged with
// the pitch class of the note it is tuned to. Coefficients are fixed at
// construction; only the section's delay state mutates during
// processing.
type resonantStage struct {
	pitchClass int
	section    biquad.Section
}

// newResonantStage designs an RBJ peaking biquad at centerFreq and
// returns a stage with zero delay state. A center frequency at or above
// Nyquist yields zeroed coefficients and a permanently silent stage;
// keeping centerFreq below Nyquist is the caller's responsibility, not
// a runtime failure.
func newResonantStage(pitchClass int, centerFreq, q, peakGainDB, sampleRate float64) resonantStage {
	return resonantStage{
		pitchClass: pitchClass,
		section:    *biquad.NewSection(design.Peak(centerFreq, peakGainDB, q, sampleRate)),
	}
}
