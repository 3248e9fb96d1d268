package colour

import (
	"fmt"
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
)

const (
	defaultQ          = 100.0
	defaultPeakGainDB = 20.0
)

// FilterBank decomposes a signal through one peaking stage per semitone
// of the piano range (MIDI 12..119) and recombines the stage outputs
// weighted by a per-pitch-class gain vector.
type FilterBank struct {
	stages     [numNotes]resonantStage
	gains      [numPitchClasses]float64
	sampleRate float64
	q          float64
	peakGainDB float64
	correction bool
}

type bankConfig struct {
	q          float64
	peakGainDB float64
	correction bool
	gains      [numPitchClasses]float64
}

func defaultBankConfig() bankConfig {
	cfg := bankConfig{
		q:          defaultQ,
		peakGainDB: defaultPeakGainDB,
		correction: true,
	}
	for i := range cfg.gains {
		cfg.gains[i] = 1
	}
	return cfg
}

// BankOption configures a FilterBank.
type BankOption func(*bankConfig)

// WithQ sets the quality factor shared by all 108 stages. Higher Q
// gives a narrower, more resonant peak. Non-positive values are
// ignored; defaults to 100.
func WithQ(q float64) BankOption {
	return func(cfg *bankConfig) {
		if q > 0 && !math.IsNaN(q) && !math.IsInf(q, 0) {
			cfg.q = q
		}
	}
}

// WithPeakGainDB sets the peak gain in dB shared by all 108 stages.
// Defaults to +20 dB.
func WithPeakGainDB(db float64) BankOption {
	return func(cfg *bankConfig) {
		if !math.IsNaN(db) && !math.IsInf(db, 0) {
			cfg.peakGainDB = db
		}
	}
}

// WithUnityGainCorrection toggles subtraction of weightSum*input from
// the summed stage outputs. The correction removes the broadband energy
// that many simultaneously active peaking stages would otherwise add,
// at the cost of changing overall loudness. Enabled by default.
func WithUnityGainCorrection(enabled bool) BankOption {
	return func(cfg *bankConfig) {
		cfg.correction = enabled
	}
}

// WithGains sets the initial pitch-class weight vector (index 0 = C ..
// 11 = B). Defaults to all ones.
func WithGains(gains [numPitchClasses]float64) BankOption {
	return func(cfg *bankConfig) {
		cfg.gains = gains
	}
}

// NewFilterBank builds one resonant stage per MIDI note 12..119 in
// ascending note order. It fails on a non-positive, NaN, or infinite
// sample rate; silently propagating such a rate would corrupt every
// subsequent sample with NaN coefficients.
func NewFilterBank(sampleRate float64, opts ...BankOption) (*FilterBank, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("colour: invalid sample rate %g", sampleRate)
	}

	cfg := defaultBankConfig()
	for _, o := range opts {
		o(&cfg)
	}

	fb := &FilterBank{
		gains:      cfg.gains,
		sampleRate: sampleRate,
		q:          cfg.q,
		peakGainDB: cfg.peakGainDB,
		correction: cfg.correction,
	}
	fb.rebuild()
	return fb, nil
}

func (fb *FilterBank) rebuild() {
	for i := range fb.stages {
		note := lowestNote + i
		fb.stages[i] = newResonantStage(
			note%numPitchClasses,
			MIDINoteToFreq(note),
			fb.q,
			fb.peakGainDB,
			fb.sampleRate,
		)
	}
}

// SetGains replaces the full pitch-class weight vector. Callers apply
// it at most once per block, between blocks, so no partial update is
// ever observable mid-block.
func (fb *FilterBank) SetGains(gains [numPitchClasses]float64) {
	fb.gains = gains
}

// Gains returns the current pitch-class weight vector.
func (fb *FilterBank) Gains() [numPitchClasses]float64 { return fb.gains }

// NumFilters returns the number of stages in the bank, always 108
// regardless of sample rate.
func (fb *FilterBank) NumFilters() int { return numNotes }

// SampleRate returns the sample rate the bank was built for.
func (fb *FilterBank) SampleRate() float64 { return fb.sampleRate }

// ProcessSample filters one input sample through every stage and
// returns the weighted sum. Every stage runs even when its pitch class
// currently has zero weight: skipping a stage would desynchronize its
// delay state from the input history and produce audible artifacts when
// its weight is later raised.
func (fb *FilterBank) ProcessSample(x float64) float64 {
	var sum, weightSum float64
	for i := range fb.stages {
		w := fb.gains[fb.stages[i].pitchClass]
		sum += fb.stages[i].section.ProcessSample(x) * w
		weightSum += w
	}
	if fb.correction {
		sum -= weightSum * x
	}
	return dspcore.FlushDenormals(sum)
}

// Reset zeroes the delay state of every stage, discarding all filter
// memory. Coefficients are untouched.
func (fb *FilterBank) Reset() {
	for i := range fb.stages {
		fb.stages[i].section.Reset()
	}
}
