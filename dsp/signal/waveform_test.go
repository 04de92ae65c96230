package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-grain/dsp/core"
)

func TestWaveformKeyPoints(t *testing.T) {
	tests := []struct {
		w     Waveform
		phase float64
		want  float64
	}{
		{Sine, 0.25, 1},
		{Sine, 0.75, -1},
		{Triangle, 0, 0},
		{Triangle, 0.25, 1},
		{Triangle, 0.5, 0},
		{Triangle, 0.75, -1},
		{Square, 0.1, 1},
		{Square, 0.6, -1},
		{Saw, 0.25, 0.5},
		{Saw, 0.75, -0.5},
		{Triangle, 1.25, 1},
		{Saw, -0.25, -0.5},
	}
	for _, tt := range tests {
		if got := tt.w.At(tt.phase); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("%v.At(%v) = %v, want %v", tt.w, tt.phase, got, tt.want)
		}
	}
}

func TestWaveformBounded(t *testing.T) {
	for _, w := range []Waveform{Sine, Triangle, Square, Saw} {
		for i := range 1000 {
			v := w.At(float64(i) / 997)
			if v < -1 || v > 1 {
				t.Fatalf("%v out of [-1,1]: %v", w, v)
			}
		}
	}
}

func TestParseWaveform(t *testing.T) {
	for name, want := range map[string]Waveform{"sine": Sine, "TRI": Triangle, "sqr": Square, "saw": Saw} {
		got, err := ParseWaveform(name)
		if err != nil || got != want {
			t.Fatalf("ParseWaveform(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseWaveform("noise"); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}
