// Command colourize applies the resonant filter bank effect to a WAV
// file and writes the processed result.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/colourizer/colour"
	"github.com/cwbudde/colourizer/internal/wavio"
	"github.com/cwbudde/colourizer/preset"
)

func main() {
	input := flag.String("input", "", "Input WAV file path")
	output := flag.String("output", "output.wav", "Output WAV file path")
	presetPath := flag.String("preset", "", "Preset JSON file path (optional)")
	scale := flag.String("scale", "", "Built-in scale name override (chromatic, major, natural-minor, minor-pentatonic, miyako-bushi)")
	noteGains := flag.String("note-gains", "", "Per-note weight overrides, e.g. \"c=1,g=0.5\"")
	gainDB := flag.Float64("gain-db", 0, "Master output gain in dB (-30..30)")
	mix := flag.Float64("mix", 1.0, "Dry/wet mix (0 = dry, 1 = wet)")
	mode := flag.String("mode", "", "Channel mode override: mono or multi")
	blockSize := flag.Int("block", 128, "Processing block size in frames")
	workers := flag.Int("workers", 0, "Worker goroutines for multi mode (0 = GOMAXPROCS)")
	sampleRate := flag.Int("sample-rate", 0, "Resample input to this rate before processing (0 = keep)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "missing -input")
		flag.Usage()
		os.Exit(2)
	}

	settings := preset.NewDefaultSettings()
	if *presetPath != "" {
		loaded, err := preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
		settings = loaded
	}
	if *scale != "" {
		mask, ok := preset.Named(*scale)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown scale %q (available: %v)\n", *scale, preset.ScaleNames())
			os.Exit(1)
		}
		settings.NoteGains = mask
	}
	if *noteGains != "" {
		if err := applyNoteGains(&settings.NoteGains, *noteGains); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	if *mode != "" {
		m, err := preset.ParseMode(*mode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		settings.Mode = m
	}
	settings.GainDB = *gainDB
	settings.DryWet = *mix

	channels, sr, err := wavio.ReadWAV(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", *input, err)
		os.Exit(1)
	}
	if *sampleRate > 0 && *sampleRate != sr {
		channels, err = wavio.ResampleIfNeeded(channels, sr, *sampleRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resampling: %v\n", err)
			os.Exit(1)
		}
		sr = *sampleRate
	}

	frames := len(channels[0])
	fmt.Printf("Colourizing %d frames x %d channels @ %d Hz (%s, mix %.2f, gain %+.1f dB)...\n",
		frames, len(channels), sr, settings.Mode, settings.DryWet, settings.GainDB)

	engine := colour.NewEngine(colour.NewWorkerPool(*workers), settings.BankOptions()...)
	if err := engine.Initialize(float64(sr), len(channels)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	block := *blockSize
	if block < 1 {
		block = 128
	}
	params := settings.Params()
	view := make([][]float64, len(channels))
	for pos := 0; pos < frames; pos += block {
		end := pos + block
		if end > frames {
			end = frames
		}
		for ch := range channels {
			view[ch] = channels[ch][pos:end]
		}
		engine.Process(view, params)
	}

	if err := wavio.WriteWAV(*output, channels, sr); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *output)
}

// applyNoteGains parses "note=weight" pairs separated by commas and
// writes them into the mask.
func applyNoteGains(mask *[12]float64, spec string) error {
	for _, pair := range strings.Split(spec, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid note-gains entry %q (want note=weight)", pair)
		}
		pc, ok := colour.ParseNote(name)
		if !ok {
			return fmt.Errorf("invalid note name %q in note-gains", name)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || w < 0 || w > 1 {
			return fmt.Errorf("invalid weight %q for note %q (want 0..1)", value, name)
		}
		mask[pc] = w
	}
	return nil
}
