// Package preset loads and stores colourizer settings as JSON, and
// provides the built-in named scales.
package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/cwbudde/colourizer/colour"
)

// Settings holds everything needed to configure an engine and its
// per-block parameter snapshot.
type Settings struct {
	GainDB    float64
	DryWet    float64
	Mode      colour.Mode
	NoteGains [12]float64

	Q                   float64
	PeakGainDB          float64
	UnityGainCorrection bool
}

// NewDefaultSettings mirrors the engine defaults: miyako-bushi mask,
// 0 dB master gain, fully wet, mono, Q=100 / +20 dB stages with
// unity-gain correction.
func NewDefaultSettings() *Settings {
	return &Settings{
		GainDB:              0,
		DryWet:              1,
		Mode:                colour.ModeMono,
		NoteGains:           colour.MiyakoBushi,
		Q:                   100,
		PeakGainDB:          20,
		UnityGainCorrection: true,
	}
}

// Params converts the settings into a per-block snapshot.
func (s *Settings) Params() colour.Params {
	return colour.Params{
		NoteGains: s.NoteGains,
		Gain:      dspcore.DBToLinear(s.GainDB),
		DryWet:    s.DryWet,
		Mode:      s.Mode,
	}
}

// BankOptions returns the options to build banks with these settings.
func (s *Settings) BankOptions() []colour.BankOption {
	return []colour.BankOption{
		colour.WithQ(s.Q),
		colour.WithPeakGainDB(s.PeakGainDB),
		colour.WithUnityGainCorrection(s.UnityGainCorrection),
		colour.WithGains(s.NoteGains),
	}
}

// File is the JSON schema for colourizer presets. Pointer fields are
// applied only when present.
type File struct {
	GainDB              *float64           `json:"gain_db"`
	DryWet              *float64           `json:"dry_wet"`
	Mode                string             `json:"mode"`
	Scale               []string           `json:"scale"`
	NoteGains           map[string]float64 `json:"note_gains"`
	Q                   *float64           `json:"q"`
	PeakGainDB          *float64           `json:"peak_gain_db"`
	UnityGainCorrection *bool              `json:"unity_gain_correction"`
}

// LoadJSON loads a preset JSON file and applies it on top of defaults.
func LoadJSON(path string) (*Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	s := NewDefaultSettings()
	if err := ApplyFile(s, &f); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveJSON writes the settings as a preset file.
func SaveJSON(path string, s *Settings) error {
	if s == nil {
		return fmt.Errorf("nil settings")
	}
	gainDB := s.GainDB
	dryWet := s.DryWet
	q := s.Q
	peak := s.PeakGainDB
	correction := s.UnityGainCorrection
	f := File{
		GainDB:              &gainDB,
		DryWet:              &dryWet,
		Mode:                s.Mode.String(),
		NoteGains:           make(map[string]float64, 12),
		Q:                   &q,
		PeakGainDB:          &peak,
		UnityGainCorrection: &correction,
	}
	for pc, name := range colour.NoteNames {
		f.NoteGains[strings.ToLower(name)] = s.NoteGains[pc]
	}
	b, err := json.MarshalIndent(&f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// ApplyFile applies a parsed preset file onto existing settings.
func ApplyFile(dst *Settings, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination settings")
	}
	if f == nil {
		return nil
	}

	if f.GainDB != nil {
		if *f.GainDB < -30 || *f.GainDB > 30 {
			return fmt.Errorf("gain_db must be in [-30,30]")
		}
		dst.GainDB = *f.GainDB
	}
	if f.DryWet != nil {
		if *f.DryWet < 0 || *f.DryWet > 1 {
			return fmt.Errorf("dry_wet must be in [0,1]")
		}
		dst.DryWet = *f.DryWet
	}
	if f.Mode != "" {
		mode, err := ParseMode(f.Mode)
		if err != nil {
			return err
		}
		dst.Mode = mode
	}
	if f.Q != nil {
		if *f.Q <= 0 {
			return fmt.Errorf("q must be > 0")
		}
		dst.Q = *f.Q
	}
	if f.PeakGainDB != nil {
		dst.PeakGainDB = *f.PeakGainDB
	}
	if f.UnityGainCorrection != nil {
		dst.UnityGainCorrection = *f.UnityGainCorrection
	}

	// A scale list replaces the whole mask; note_gains then override
	// individual classes on top of it.
	if f.Scale != nil {
		mask, err := ScaleMask(f.Scale)
		if err != nil {
			return err
		}
		dst.NoteGains = mask
	}
	if len(f.NoteGains) > 0 {
		keys := make([]string, 0, len(f.NoteGains))
		for k := range f.NoteGains {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pc, ok := colour.ParseNote(k)
			if !ok {
				return fmt.Errorf("invalid note_gains key %q", k)
			}
			w := f.NoteGains[k]
			if w < 0 || w > 1 {
				return fmt.Errorf("note_gains[%q] must be in [0,1]", k)
			}
			dst.NoteGains[pc] = w
		}
	}
	return nil
}

// ParseMode maps a mode name to its processing mode.
func ParseMode(name string) (colour.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mono":
		return colour.ModeMono, nil
	case "multi":
		return colour.ModeMulti, nil
	}
	return colour.ModeMono, fmt.Errorf("invalid mode %q (expected mono or multi)", name)
}

// ScaleMask converts a list of note names into a boolean weight mask.
func ScaleMask(notes []string) ([12]float64, error) {
	var mask [12]float64
	for _, name := range notes {
		pc, ok := colour.ParseNote(name)
		if !ok {
			return mask, fmt.Errorf("invalid note name %q in scale", name)
		}
		mask[pc] = 1
	}
	return mask, nil
}
