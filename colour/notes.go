package colour

import (
	"strings"

	"github.com/cwbudde/algo-approx"
)

// The bank covers the equal-tempered piano range C0..B8.
const (
	lowestNote  = 12
	highestNote = 119
	numNotes    = highestNote - lowestNote + 1

	numPitchClasses = 12
)

// NoteNames lists the canonical names for pitch classes 0 (C) .. 11 (B).
var NoteNames = [numPitchClasses]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// MIDINoteToFreq converts a MIDI note number to its equal-tempered
// frequency in Hz (69 = A4 = 440 Hz).
func MIDINoteToFreq(note int) float64 {
	const a4Freq = 440.0
	const a4Note = 69
	return a4Freq * pow2Approx(float64(note-a4Note)/12.0)
}

func pow2Approx(x float64) float64 {
	const ln2 = 0.69314718055994530942
	return float64(approx.FastExp(float32(x * ln2)))
}

// ParseNote maps a note name to its pitch class (0 = C .. 11 = B).
// Matching ignores case and accepts the common enharmonic aliases
// (c#/db, d#/eb, f#/gb, g#/ab, a#/bb, b/cb).
func ParseNote(name string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "c":
		return 0, true
	case "c#", "db":
		return 1, true
	case "d":
		return 2, true
	case "d#", "eb":
		return 3, true
	case "e":
		return 4, true
	case "f":
		return 5, true
	case "f#", "gb":
		return 6, true
	case "g":
		return 7, true
	case "g#", "ab":
		return 8, true
	case "a":
		return 9, true
	case "a#", "bb":
		return 10, true
	case "b", "cb":
		return 11, true
	}
	return 0, false
}
