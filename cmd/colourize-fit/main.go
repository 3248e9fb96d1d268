// Command colourize-fit searches for the per-pitch-class weights that
// make the colourized input sound closest to a reference recording,
// then writes the result as a preset.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/colourizer/analysis"
	"github.com/cwbudde/colourizer/colour"
	"github.com/cwbudde/colourizer/internal/wavio"
	"github.com/cwbudde/colourizer/preset"
)

func main() {
	input := flag.String("input", "", "Input WAV to colourize")
	reference := flag.String("reference", "", "Reference WAV whose pitch-class profile is the fit target")
	targetScale := flag.String("target-scale", "", "Fit towards a built-in scale instead of a reference WAV")
	output := flag.String("output", "fitted.json", "Output preset JSON path")
	maxSeconds := flag.Float64("max-seconds", 4.0, "Analyze at most this many seconds of audio")
	variant := flag.String("variant", "ma", "Mayfly variant: ma, desma, olce, eobbma, gsasma, mpma, aoblmoa")
	pop := flag.Int("pop", 20, "Mayfly population size")
	iterations := flag.Int("iterations", 60, "Mayfly iterations")
	seed := flag.Int64("seed", 1, "Random seed")
	q := flag.Float64("q", 100, "Resonator Q")
	peakGainDB := flag.Float64("peak-gain-db", 20, "Resonator peak gain in dB")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "missing -input")
		flag.Usage()
		os.Exit(2)
	}
	if (*reference == "") == (*targetScale == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -reference or -target-scale is required")
		os.Exit(2)
	}

	source, sr, err := loadMono(*input, *maxSeconds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", *input, err)
		os.Exit(1)
	}

	var target [12]float64
	if *reference != "" {
		ref, refSR, err := loadMono(*reference, *maxSeconds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", *reference, err)
			os.Exit(1)
		}
		target, err = analysis.PitchClassProfile(ref, refSR)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error analyzing reference: %v\n", err)
			os.Exit(1)
		}
	} else {
		mask, ok := preset.Named(*targetScale)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown scale %q (available: %v)\n", *targetScale, preset.ScaleNames())
			os.Exit(1)
		}
		target = normalizeProfile(mask)
	}

	cfg := &fitConfig{
		source:     source,
		sampleRate: sr,
		target:     target,
		q:          *q,
		peakGainDB: *peakGainDB,
		variant:    strings.ToLower(*variant),
		pop:        *pop,
		iterations: *iterations,
		seed:       *seed,
	}

	fmt.Printf("Fitting %d weights over %d frames @ %d Hz (%s, pop %d, %d iterations)...\n",
		12, len(source), sr, cfg.variant, cfg.pop, cfg.iterations)

	res, err := runFit(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nBest distance %.6f after %d evaluations:\n", res.distance, res.evals)
	for pc, w := range res.weights {
		fmt.Printf("  %-2s %.4f\n", colour.NoteNames[pc], w)
	}

	settings := preset.NewDefaultSettings()
	settings.NoteGains = res.weights
	settings.Q = *q
	settings.PeakGainDB = *peakGainDB
	if err := preset.SaveJSON(*output, settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("\nWrote %s\n", *output)
}

func loadMono(path string, maxSeconds float64) ([]float64, int, error) {
	channels, sr, err := wavio.ReadWAV(path)
	if err != nil {
		return nil, 0, err
	}
	mono := wavio.Downmix(channels)
	if maxSeconds > 0 {
		if limit := int(maxSeconds * float64(sr)); len(mono) > limit {
			mono = mono[:limit]
		}
	}
	return mono, sr, nil
}

func normalizeProfile(mask [12]float64) [12]float64 {
	var sum float64
	for _, v := range mask {
		sum += v
	}
	if sum == 0 {
		return mask
	}
	for i := range mask {
		mask[i] /= sum
	}
	return mask
}
