package main

import (
	"math"
	"testing"
)

func TestNewMayflyConfigRejectsUnknownVariant(t *testing.T) {
	if _, err := newMayflyConfig("simplex", 10, 12, 5); err == nil {
		t.Error("unknown variant: expected error")
	}
}

func TestNewMayflyConfigBounds(t *testing.T) {
	cfg, err := newMayflyConfig("ma", 20, 12, 50)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ProblemSize != 12 || cfg.LowerBound != 0 || cfg.UpperBound != 1 {
		t.Errorf("search space wrong: size=%d bounds=[%g,%g]",
			cfg.ProblemSize, cfg.LowerBound, cfg.UpperBound)
	}
	if cfg.NM < 1 {
		t.Errorf("NM = %d, want >= 1", cfg.NM)
	}
}

func TestEvaluateWeightsPrefersMatchingClass(t *testing.T) {
	// Two tones, A4 and C5. A matching mask keeps one and rejects the
	// other, shifting the wet profile towards the kept class.
	const sr = 44100
	source := make([]float64, sr/2)
	for i := range source {
		sec := float64(i) / sr
		source[i] = 0.5*math.Sin(2*math.Pi*440*sec) + 0.5*math.Sin(2*math.Pi*523.25*sec)
	}
	cfg := &fitConfig{
		source:     source,
		sampleRate: sr,
		target:     [12]float64{9: 1}, // all energy at A
		q:          100,
		peakGainDB: 20,
	}

	matching, err := evaluateWeights(cfg, [12]float64{9: 1})
	if err != nil {
		t.Fatal(err)
	}
	mismatching, err := evaluateWeights(cfg, [12]float64{0: 1})
	if err != nil {
		t.Fatal(err)
	}
	if matching >= mismatching {
		t.Errorf("matching mask distance %g, mismatching %g, want matching lower",
			matching, mismatching)
	}
}

func TestNormalizeProfile(t *testing.T) {
	p := normalizeProfile([12]float64{0: 1, 5: 1, 7: 2})
	var sum float64
	for _, v := range p {
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("normalized profile sums to %g, want 1", sum)
	}
	var zero [12]float64
	if normalizeProfile(zero) != zero {
		t.Error("all-zero mask must pass through unchanged")
	}
}
