package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

const (
	profileFFTSize = 4096
	profileHop     = 2048

	// Bins outside the resonator range contribute noise, not colour.
	profileLowHz  = 16.0
	profileHighHz = 8000.0
)

// PitchClassProfile computes the distribution of spectral energy across
// the twelve pitch classes. It averages Hann-windowed STFT magnitudes,
// assigns each bin to the pitch class of its nearest equal-tempered
// note, and normalizes the result to sum to one. A signal shorter than
// one FFT frame is analyzed as a single zero-padded frame.
func PitchClassProfile(samples []float64, sampleRate int) ([12]float64, error) {
	var profile [12]float64
	if sampleRate <= 0 {
		return profile, fmt.Errorf("analysis: invalid sample rate %d", sampleRate)
	}
	if len(samples) == 0 {
		return profile, fmt.Errorf("analysis: empty signal")
	}

	plan, err := algofft.NewPlanReal64(profileFFTSize)
	if err != nil {
		return profile, fmt.Errorf("analysis: fft plan: %w", err)
	}

	hann := make([]float64, profileFFTSize)
	for i := range hann {
		hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(profileFFTSize-1))
	}

	spec := make([]complex128, profileFFTSize/2+1)
	buf := make([]float64, profileFFTSize)
	nBins := profileFFTSize / 2
	avg := make([]float64, nBins)

	nFrames := 0
	for pos := 0; pos+profileFFTSize <= len(samples); pos += profileHop {
		for i := 0; i < profileFFTSize; i++ {
			buf[i] = samples[pos+i] * hann[i]
		}
		plan.Forward(spec, buf)
		for k := 1; k < nBins; k++ {
			avg[k] += cmplx.Abs(spec[k])
		}
		nFrames++
	}
	if nFrames == 0 {
		for i := range buf {
			buf[i] = 0
		}
		for i := 0; i < len(samples) && i < profileFFTSize; i++ {
			buf[i] = samples[i] * hann[i]
		}
		plan.Forward(spec, buf)
		for k := 1; k < nBins; k++ {
			avg[k] = cmplx.Abs(spec[k])
		}
	}

	binHz := float64(sampleRate) / profileFFTSize
	var total float64
	for k := 1; k < nBins; k++ {
		freq := float64(k) * binHz
		if freq < profileLowHz || freq > profileHighHz {
			continue
		}
		pc, ok := pitchClassOf(freq)
		if !ok {
			continue
		}
		e := avg[k] * avg[k]
		profile[pc] += e
		total += e
	}
	if total > 0 {
		for i := range profile {
			profile[i] /= total
		}
	}
	return profile, nil
}

// pitchClassOf maps a frequency to the pitch class of the nearest
// equal-tempered note, rejecting frequencies outside the resonator
// range (MIDI 12..119).
func pitchClassOf(freq float64) (int, bool) {
	if freq <= 0 {
		return 0, false
	}
	note := int(math.Round(69 + 12*math.Log2(freq/440)))
	if note < 12 || note > 119 {
		return 0, false
	}
	return note % 12, true
}
