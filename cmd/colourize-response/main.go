// Command colourize-response probes a filter bank with sine tones and
// prints the steady-state response per semitone.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/cwbudde/colourizer/analysis"
	"github.com/cwbudde/colourizer/colour"
	"github.com/cwbudde/colourizer/preset"
)

func main() {
	presetPath := flag.String("preset", "", "Preset JSON file path (optional)")
	scale := flag.String("scale", "", "Built-in scale name override")
	sampleRate := flag.Float64("sample-rate", 44100, "Sample rate in Hz")
	lowNote := flag.Int("low", 48, "Lowest MIDI note to probe")
	highNote := flag.Int("high", 84, "Highest MIDI note to probe")
	seconds := flag.Float64("seconds", 0.5, "Probe duration per note in seconds")
	flag.Parse()

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
	if *lowNote > *highNote {
		fmt.Fprintln(os.Stderr, "-low must not exceed -high")
		os.Exit(2)
	}

	fb, err := colour.NewFilterBank(*sampleRate, settings.BankOptions()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Response @ %.0f Hz, Q=%.0f, peak %+.1f dB, %d resonators\n\n",
		*sampleRate, settings.Q, settings.PeakGainDB, fb.NumFilters())
	fmt.Printf("%-5s %-3s %-3s %9s %10s %9s\n", "note", "pc", "on", "freq", "response", "dB")

	for note := *lowNote; note <= *highNote; note++ {
		freq := colour.MIDINoteToFreq(note)
		if freq >= *sampleRate/2 {
			break
		}
		resp, err := analysis.MeanAbsResponse(fb, freq, *seconds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error probing note %d: %v\n", note, err)
			os.Exit(1)
		}
		enabled := " "
		if settings.NoteGains[note%12] > 0 {
			enabled = "*"
		}
		db := 20 * math.Log10(math.Max(resp, 1e-12))
		bar := strings.Repeat("#", barLen(db))
		fmt.Printf("%-5s %-3d %-3s %8.2f %10.4f %8.1f  %s\n",
			noteName(note), note%12, enabled, freq, resp, db, bar)
	}
}

func noteName(note int) string {
	return fmt.Sprintf("%s%d", colour.NoteNames[note%12], note/12-1)
}

// barLen maps -60..+40 dB onto 0..50 characters.
func barLen(db float64) int {
	n := int((db + 60) / 2)
	if n < 0 {
		return 0
	}
	if n > 50 {
		return 50
	}
	return n
}
