package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/mayfly"

	"github.com/cwbudde/colourizer/analysis"
	"github.com/cwbudde/colourizer/colour"
)

type fitConfig struct {
	source     []float64
	sampleRate int
	target     [12]float64
	q          float64
	peakGainDB float64
	variant    string
	pop        int
	iterations int
	seed       int64
}

type fitResult struct {
	weights  [12]float64
	distance float64
	evals    int
}

// runFit searches the 12-dimensional weight cube for the mask whose
// colourized output profile is closest to the target.
func runFit(cfg *fitConfig) (*fitResult, error) {
	mayflyConfig, err := newMayflyConfig(cfg.variant, cfg.pop, 12, cfg.iterations)
	if err != nil {
		return nil, err
	}
	mayflyConfig.Rand = rand.New(rand.NewSource(cfg.seed))

	res := &fitResult{distance: math.Inf(1)}
	mayflyConfig.ObjectiveFunc = func(pos []float64) float64 {
		var weights [12]float64
		copy(weights[:], pos)
		d, err := evaluateWeights(cfg, weights)
		if err != nil {
			return math.Inf(1)
		}
		res.evals++
		if d < res.distance {
			res.distance = d
			res.weights = weights
		}
		return d
	}

	if _, err := runMayfly(mayflyConfig); err != nil {
		return nil, err
	}
	if math.IsInf(res.distance, 1) {
		return nil, fmt.Errorf("no candidate evaluated successfully")
	}
	return res, nil
}

// evaluateWeights colourizes the source with the candidate mask and
// measures the profile distance to the target.
func evaluateWeights(cfg *fitConfig, weights [12]float64) (float64, error) {
	fb, err := colour.NewFilterBank(float64(cfg.sampleRate),
		colour.WithQ(cfg.q),
		colour.WithPeakGainDB(cfg.peakGainDB),
		colour.WithGains(weights),
	)
	if err != nil {
		return 0, err
	}
	wet := make([]float64, len(cfg.source))
	for i, x := range cfg.source {
		wet[i] = fb.ProcessSample(x)
	}
	profile, err := analysis.PitchClassProfile(wet, cfg.sampleRate)
	if err != nil {
		return 0, err
	}
	return analysis.ProfileDistance(profile, cfg.target), nil
}

func newMayflyConfig(variant string, pop, dims, iters int) (*mayfly.Config, error) {
	var cfg *mayfly.Config
	switch variant {
	case "ma":
		cfg = mayfly.NewDefaultConfig()
	case "desma":
		cfg = mayfly.NewDESMAConfig()
	case "olce":
		cfg = mayfly.NewOLCEConfig()
	case "eobbma":
		cfg = mayfly.NewEOBBMAConfig()
	case "gsasma":
		cfg = mayfly.NewGSASMAConfig()
	case "mpma":
		cfg = mayfly.NewMPMAConfig()
	case "aoblmoa":
		cfg = mayfly.NewAOBLMOAConfig()
	default:
		return nil, fmt.Errorf("unsupported variant %q", variant)
	}
	cfg.ProblemSize = dims
	cfg.LowerBound = 0.0
	cfg.UpperBound = 1.0
	cfg.MaxIterations = iters
	cfg.NPop = pop
	cfg.NPopF = pop
	cfg.NC = 2 * pop
	nm := int(math.Round(0.05 * float64(pop)))
	if nm < 1 {
		nm = 1
	}
	cfg.NM = nm
	return cfg, nil
}

func runMayfly(cfg *mayfly.Config) (_ *mayfly.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mayfly panic: %v", r)
		}
	}()
	return mayfly.Optimize(cfg)
}
