package analysis

import (
	"math"
	"testing"

	"github.com/cwbudde/colourizer/colour"
)

func TestMeanAbsResponseValidation(t *testing.T) {
	fb, err := colour.NewFilterBank(44100)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := MeanAbsResponse(nil, 440, 1); err == nil {
		t.Error("nil bank: expected error")
	}
	if _, err := MeanAbsResponse(fb, 0, 1); err == nil {
		t.Error("zero frequency: expected error")
	}
	if _, err := MeanAbsResponse(fb, 440, 0); err == nil {
		t.Error("zero duration: expected error")
	}
}

func TestMeanAbsResponseSelectsEnabledClass(t *testing.T) {
	// Only pitch class 9 (A) enabled: A440 should resonate, C should not.
	gains := [12]float64{9: 1}
	fb, err := colour.NewFilterBank(44100, colour.WithGains(gains))
	if err != nil {
		t.Fatal(err)
	}

	enabled, err := MeanAbsResponse(fb, 440, 1)
	if err != nil {
		t.Fatal(err)
	}
	blocked, err := MeanAbsResponse(fb, 261.63, 1)
	if err != nil {
		t.Fatal(err)
	}
	if enabled < 1.0 {
		t.Errorf("response at enabled note = %g, want > 1 (resonant boost)", enabled)
	}
	if blocked >= enabled/10 {
		t.Errorf("response at disabled note = %g vs enabled %g, want strong rejection",
			blocked, enabled)
	}
}

func TestProfileDistance(t *testing.T) {
	a := [12]float64{0: 1}
	if d := ProfileDistance(a, a); d != 0 {
		t.Errorf("distance to self = %g, want 0", d)
	}
	b := [12]float64{1: 1}
	want := math.Sqrt(2.0 / 12.0)
	if d := ProfileDistance(a, b); math.Abs(d-want) > 1e-12 {
		t.Errorf("distance = %g, want %g", d, want)
	}
	if ProfileDistance(a, b) != ProfileDistance(b, a) {
		t.Error("distance must be symmetric")
	}
}
