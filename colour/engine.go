package colour

import (
	"fmt"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
)

// Status reports the outcome of processing one block.
type Status int

// StatusNormal is the only status a well-behaved block produces.
const StatusNormal Status = iota

// Engine drives one or more FilterBanks over host-delivered blocks. It
// owns a shared bank for mono processing, one bank per channel for
// multi processing, and the smoothed master gain. An Engine mirrors the
// enclosing stream's lifecycle: Initialize on stream start or
// reconfiguration, Reset to discard filter memory, Process once per
// host callback.
type Engine struct {
	sampleRate float64
	bank       *FilterBank
	banks      []*FilterBank
	gain       *gainSmoother
	pool       *WorkerPool
	opts       []BankOption
	ramp       []float64
}

// NewEngine returns an engine that builds its banks with opts. pool is
// the process-wide worker pool used to parallelize multi-mode blocks;
// nil means channels are processed serially.
func NewEngine(pool *WorkerPool, opts ...BankOption) *Engine {
	return &Engine{pool: pool, opts: opts}
}

// Initialize builds the filter banks for the given stream
// configuration. Calling it again with a new sample rate rebuilds every
// bank and discards all filter memory; the resulting discontinuity is
// audible but only occurs on stream reconfiguration.
func (e *Engine) Initialize(sampleRate float64, channels int) error {
	bank, err := NewFilterBank(sampleRate, e.opts...)
	if err != nil {
		return fmt.Errorf("colour: initialize: %w", err)
	}
	if channels < 0 {
		channels = 0
	}
	banks := make([]*FilterBank, channels)
	for i := range banks {
		banks[i], err = NewFilterBank(sampleRate, e.opts...)
		if err != nil {
			return fmt.Errorf("colour: initialize: %w", err)
		}
	}

	e.sampleRate = sampleRate
	e.bank = bank
	e.banks = banks
	e.gain = newGainSmoother(sampleRate, defaultSmoothingMs, 1.0)
	return nil
}

// Reset zeroes the state of every owned bank. The smoothed gain is
// left where it is so a reset does not itself cause a gain step.
func (e *Engine) Reset() {
	if e.bank != nil {
		e.bank.Reset()
	}
	for _, fb := range e.banks {
		fb.Reset()
	}
}

// SampleRate returns the rate the engine was last initialized with.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Process filters one block in place. block is indexed
// [channel][frame]; all channels carry the same number of frames. Zero
// channels or zero frames is a no-op, as is a not-yet-initialized
// engine.
//
// The gain ramp is advanced once per output sample in mono mode, but in
// multi mode it is precomputed once per block (advanced per frame
// index) and shared across the parallel channel tasks. The asymmetry is
// an implementation choice, not a guaranteed invariant.
func (e *Engine) Process(block [][]float64, p Params) Status {
	if e.bank == nil || len(block) == 0 || len(block[0]) == 0 {
		return StatusNormal
	}

	mix := dspcore.Clamp(p.DryWet, 0, 1)
	e.gain.setTarget(p.Gain)

	switch p.Mode {
	case ModeMulti:
		e.processMulti(block, p.NoteGains, mix)
	default:
		e.processMono(block, p.NoteGains, mix)
	}
	return StatusNormal
}

func (e *Engine) processMono(block [][]float64, gains [numPitchClasses]float64, mix float64) {
	e.bank.SetGains(gains)

	frames := len(block[0])
	inv := 1.0 / float64(len(block))
	for i := 0; i < frames; i++ {
		g := e.gain.next()

		var sum float64
		for ch := range block {
			sum += block[ch][i]
		}
		wet := e.bank.ProcessSample(sum*inv) * g

		for ch := range block {
			dry := block[ch][i]
			block[ch][i] = dry*(1-mix) + wet*mix
		}
	}
}

func (e *Engine) processMulti(block [][]float64, gains [numPitchClasses]float64, mix float64) {
	// A channel-count change is recoverable: reallocate matching banks
	// with zeroed state before touching any samples.
	if len(e.banks) != len(block) {
		banks := make([]*FilterBank, len(block))
		for i := range banks {
			fb, err := NewFilterBank(e.sampleRate, e.opts...)
			if err != nil {
				// Initialize validated the rate, so this cannot happen;
				// degrade to passthrough rather than corrupt the block.
				return
			}
			banks[i] = fb
		}
		e.banks = banks
	}

	frames := len(block[0])
	e.ramp = dspcore.EnsureLen(e.ramp, frames)
	for i := range e.ramp {
		e.ramp[i] = e.gain.next()
	}
	for _, fb := range e.banks {
		fb.SetGains(gains)
	}

	// Each task has exclusive access to its channel's bank and slice,
	// so the parallel region needs no locking.
	run := func(ch int) {
		fb := e.banks[ch]
		samples := block[ch]
		for i := range samples {
			dry := samples[i]
			wet := fb.ProcessSample(dry) * e.ramp[i]
			samples[i] = dry*(1-mix) + wet*mix
		}
	}

	if e.pool == nil {
		for ch := range block {
			run(ch)
		}
		return
	}
	e.pool.Run(len(block), run)
}
