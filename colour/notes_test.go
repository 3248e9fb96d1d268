package colour

import (
	"math"
	"testing"
)

func TestParseNote(t *testing.T) {
	cases := []struct {
		name string
		pc   int
		ok   bool
	}{
		{"c", 0, true},
		{"c#", 1, true},
		{"db", 1, true},
		{"d", 2, true},
		{"eb", 3, true},
		{"e", 4, true},
		{"f", 5, true},
		{"gb", 6, true},
		{"g", 7, true},
		{"ab", 8, true},
		{"a", 9, true},
		{"bb", 10, true},
		{"b", 11, true},
		{"cb", 11, true},
		{"C", 0, true},
		{"F#", 6, true},
		{"Gb", 6, true},
		{" a ", 9, true},
		{"e#", 0, false},
		{"h", 0, false},
		{"r", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		pc, ok := ParseNote(c.name)
		if ok != c.ok || (ok && pc != c.pc) {
			t.Errorf("ParseNote(%q) = (%d, %v), want (%d, %v)", c.name, pc, ok, c.pc, c.ok)
		}
	}
}

func TestMIDINoteToFreq(t *testing.T) {
	cases := []struct {
		note int
		freq float64
	}{
		{69, 440},
		{57, 220},
		{81, 880},
		{60, 261.63},
	}
	for _, c := range cases {
		got := MIDINoteToFreq(c.note)
		if math.Abs(got-c.freq)/c.freq > 1e-3 {
			t.Errorf("MIDINoteToFreq(%d) = %g, want ~%g", c.note, got, c.freq)
		}
	}
}

func TestMIDINoteToFreqMonotonic(t *testing.T) {
	prev := MIDINoteToFreq(lowestNote)
	for note := lowestNote + 1; note <= highestNote; note++ {
		f := MIDINoteToFreq(note)
		if f <= prev {
			t.Fatalf("note %d: %g Hz not above note %d: %g Hz", note, f, note-1, prev)
		}
		prev = f
	}
}
