package colour

import "math"

// defaultSmoothingMs is the master-gain ramp time constant.
const defaultSmoothingMs = 50.0

// smootherMinGain floors the ramp endpoints; a logarithmic ramp cannot
// start from or pass through zero.
const smootherMinGain = 1e-6

// gainSmoother ramps a linear gain toward its target along a
// logarithmic curve, one multiplicative step per sample, so host gain
// changes never produce an audible discontinuity.
type gainSmoother struct {
	current   float64
	target    float64
	factor    float64
	steps     float64
	remaining int
}

func newGainSmoother(sampleRate, timeMs, initial float64) *gainSmoother {
	steps := sampleRate * timeMs / 1000.0
	if steps < 1 {
		steps = 1
	}
	if initial < smootherMinGain {
		initial = smootherMinGain
	}
	return &gainSmoother{
		current: initial,
		target:  initial,
		steps:   steps,
	}
}

// setTarget retargets the ramp. Setting the current target again is a
// no-op so an in-flight ramp keeps its original duration across block
// boundaries.
func (g *gainSmoother) setTarget(target float64) {
	if target < smootherMinGain || math.IsNaN(target) {
		target = smootherMinGain
	}
	if target == g.target {
		return
	}
	g.target = target
	if g.current < smootherMinGain {
		g.current = smootherMinGain
	}
	g.remaining = int(g.steps)
	g.factor = math.Pow(target/g.current, 1.0/g.steps)
}

// next advances the ramp by one sample and returns the smoothed gain.
func (g *gainSmoother) next() float64 {
	if g.remaining > 0 {
		g.remaining--
		if g.remaining == 0 {
			g.current = g.target
		} else {
			g.current *= g.factor
		}
	}
	return g.current
}
