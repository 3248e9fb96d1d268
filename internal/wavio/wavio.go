// Package wavio reads and writes WAV files as per-channel float64
// buffers for the colourizer command-line tools.
package wavio

import (
	"fmt"
	"os"
	"path/filepath"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// ReadWAV decodes a WAV file into de-interleaved channels with samples
// normalized to [-1, 1].
func ReadWAV(path string) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}
	if buf.Format.SampleRate <= 0 {
		return nil, 0, fmt.Errorf("invalid wav sample-rate: %d", buf.Format.SampleRate)
	}

	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	if frames == 0 {
		return nil, 0, fmt.Errorf("empty wav data: %s", path)
	}

	out := make([][]float64, ch)
	for c := 0; c < ch; c++ {
		out[c] = make([]float64, frames)
		for i := 0; i < frames; i++ {
			out[c][i] = float64(buf.Data[i*ch+c])
		}
	}
	return out, buf.Format.SampleRate, nil
}

// WriteWAV encodes de-interleaved channels as a 16-bit PCM WAV file,
// creating parent directories as needed. All channels must have the
// same length.
func WriteWAV(path string, channels [][]float64, sampleRate int) error {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return fmt.Errorf("no audio to write")
	}
	frames := len(channels[0])
	for c := range channels {
		if len(channels[c]) != frames {
			return fmt.Errorf("channel length mismatch: %d vs %d", len(channels[c]), frames)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ch := len(channels)
	enc := wav.NewEncoder(f, sampleRate, 16, ch, 1)
	defer enc.Close()

	data := make([]float32, frames*ch)
	for i := 0; i < frames; i++ {
		for c := 0; c < ch; c++ {
			data[i*ch+c] = float32(channels[c][i])
		}
	}
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: ch,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}

// Downmix averages all channels into a single mono signal.
func Downmix(channels [][]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	out := make([]float64, frames)
	inv := 1.0 / float64(len(channels))
	for i := 0; i < frames; i++ {
		var sum float64
		for c := range channels {
			sum += channels[c][i]
		}
		out[i] = sum * inv
	}
	return out
}

// ResampleIfNeeded converts every channel from fromRate to toRate.
// When the rates match the input is returned unchanged.
func ResampleIfNeeded(channels [][]float64, fromRate, toRate int) ([][]float64, error) {
	if fromRate == toRate {
		return channels, nil
	}
	out := make([][]float64, len(channels))
	for c := range channels {
		r, err := dspresample.NewForRates(
			float64(fromRate),
			float64(toRate),
			dspresample.WithQuality(dspresample.QualityBest),
		)
		if err != nil {
			return nil, err
		}
		out[c] = r.Process(channels[c])
	}
	return out, nil
}
