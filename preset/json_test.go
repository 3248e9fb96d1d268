package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/colourizer/colour"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSONDefaultsWhenEmpty(t *testing.T) {
	s, err := LoadJSON(writeTemp(t, `{}`))
	if err != nil {
		t.Fatal(err)
	}
	def := NewDefaultSettings()
	if *s != *def {
		t.Errorf("empty preset changed defaults: %+v != %+v", s, def)
	}
}

func TestLoadJSONFullPreset(t *testing.T) {
	s, err := LoadJSON(writeTemp(t, `{
		"gain_db": -6,
		"dry_wet": 0.25,
		"mode": "multi",
		"scale": ["c", "e", "g"],
		"q": 50,
		"peak_gain_db": 12,
		"unity_gain_correction": false
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if s.GainDB != -6 || s.DryWet != 0.25 || s.Mode != colour.ModeMulti {
		t.Errorf("core fields wrong: %+v", s)
	}
	if s.Q != 50 || s.PeakGainDB != 12 || s.UnityGainCorrection {
		t.Errorf("bank fields wrong: %+v", s)
	}
	want := [12]float64{0: 1, 4: 1, 7: 1}
	if s.NoteGains != want {
		t.Errorf("scale mask = %v, want %v", s.NoteGains, want)
	}
}

func TestLoadJSONNoteGainsOverrideScale(t *testing.T) {
	s, err := LoadJSON(writeTemp(t, `{
		"scale": ["c", "g"],
		"note_gains": {"g": 0.5, "a": 0.25}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	want := [12]float64{0: 1, 7: 0.5, 9: 0.25}
	if s.NoteGains != want {
		t.Errorf("gains = %v, want %v", s.NoteGains, want)
	}
}

func TestLoadJSONRejectsBadValues(t *testing.T) {
	cases := []string{
		`{"gain_db": 31}`,
		`{"gain_db": -31}`,
		`{"dry_wet": 1.5}`,
		`{"dry_wet": -0.1}`,
		`{"mode": "stereo"}`,
		`{"q": 0}`,
		`{"q": -10}`,
		`{"scale": ["h"]}`,
		`{"note_gains": {"x": 1}}`,
		`{"note_gains": {"c": 2}}`,
		`{"note_gains": {"c": -0.5}}`,
		`{not json`,
	}
	for _, c := range cases {
		if _, err := LoadJSON(writeTemp(t, c)); err == nil {
			t.Errorf("preset %s: expected error", c)
		}
	}
}

func TestNamedScales(t *testing.T) {
	cases := []struct {
		name string
		want [12]float64
	}{
		{"chromatic", [12]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{"major", [12]float64{1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 0, 1}},
		{"natural-minor", [12]float64{1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 0}},
		{"minor-pentatonic", [12]float64{1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 0}},
		{"miyako-bushi", colour.MiyakoBushi},
	}
	for _, c := range cases {
		got, ok := Named(c.name)
		if !ok {
			t.Errorf("Named(%q): not found", c.name)
			continue
		}
		if got != c.want {
			t.Errorf("Named(%q) = %v, want %v", c.name, got, c.want)
		}
	}
	if _, ok := Named("phrygian"); ok {
		t.Error("Named(\"phrygian\"): expected miss")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewDefaultSettings()
	s.GainDB = -3
	s.DryWet = 0.75
	s.Mode = colour.ModeMulti
	s.NoteGains = [12]float64{0: 1, 3: 0.5, 7: 0.25}
	s.Q = 80
	s.PeakGainDB = 18
	s.UnityGainCorrection = false

	path := filepath.Join(t.TempDir(), "out.json")
	if err := SaveJSON(path, s); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *s {
		t.Errorf("round trip mismatch: %+v != %+v", loaded, s)
	}
}

func TestSettingsParams(t *testing.T) {
	s := NewDefaultSettings()
	s.GainDB = 0
	p := s.Params()
	if p.Gain != 1 {
		t.Errorf("0 dB should map to linear gain 1, got %g", p.Gain)
	}
	if p.NoteGains != s.NoteGains || p.DryWet != s.DryWet || p.Mode != s.Mode {
		t.Errorf("params snapshot does not match settings: %+v", p)
	}
}
