package colour

// Mode selects how the channels of a block are processed. The two modes
// are a closed set dispatched once per block.
type Mode int

const (
	// ModeMono downmixes every frame to its arithmetic mean, runs the
	// shared bank once, and writes the processed value back to every
	// channel.
	ModeMono Mode = iota
	// ModeMulti runs an independently owned bank per channel.
	ModeMulti
)

func (m Mode) String() string {
	switch m {
	case ModeMono:
		return "mono"
	case ModeMulti:
		return "multi"
	}
	return "unknown"
}

// Params is the read-only parameter snapshot for one block. The host
// adapter refreshes it at least once per block and passes it by value;
// the engine never mutates it, and values never change mid-block.
type Params struct {
	// NoteGains holds the pitch-class weights (index 0 = C .. 11 = B),
	// conventionally in [0,1] but not clamped.
	NoteGains [numPitchClasses]float64
	// Gain is the master gain target as linear amplitude. Hosts
	// typically derive it from a skewed -30..+30 dB control.
	Gain float64
	// DryWet blends unprocessed and processed signal: 0 is exact
	// passthrough, 1 is fully processed.
	DryWet float64
	Mode   Mode
}

// MiyakoBushi is the pitch-class mask of the miyako-bushi scale
// (C C# F G G#), the shipped default colour.
var MiyakoBushi = [numPitchClasses]float64{1, 1, 0, 0, 0, 1, 0, 1, 1, 0, 0, 0}

// NewDefaultParams returns the default snapshot: miyako-bushi mask,
// unity gain, fully wet, mono processing.
func NewDefaultParams() Params {
	return Params{
		NoteGains: MiyakoBushi,
		Gain:      1.0,
		DryWet:    1.0,
		Mode:      ModeMono,
	}
}
