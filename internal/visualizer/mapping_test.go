package visualizer

import (
	"math"
	"testing"
	"time"
)

const eps = 1e-9

func TestScaleRange(t *testing.T) {
	if got := Scale(0, DefaultScaleBase); math.Abs(got-0.75) > eps {
		t.Fatalf("Scale(0) = %v, want 0.75", got)
	}
	if got := Scale(255, DefaultScaleBase); math.Abs(got-1.75) > eps {
		t.Fatalf("Scale(255) = %v, want 1.75", got)
	}
	prev := -1.0
	for s := 0; s <= 255; s++ {
		got := Scale(uint8(s), DefaultScaleBase)
		if got < 0.75-eps || got > 1.75+eps {
			t.Fatalf("Scale(%d) = %v outside [0.75, 1.75]", s, got)
		}
		if got <= prev {
			t.Fatalf("Scale(%d) = %v not above Scale(%d) = %v", s, got, s-1, prev)
		}
		prev = got
	}
}

func TestHueIsPeriodic(t *testing.T) {
	for _, tt := range []float64{0, 0.05, 0.3, 12.7, 84000.125} {
		h := Hue(tt, DefaultHueOffset)
		if h < 0 || h >= 1 {
			t.Fatalf("Hue(%v) = %v outside [0, 1)", tt, h)
		}
		for _, shift := range []float64{1, 2, 180} {
			if got := Hue(tt+shift, DefaultHueOffset); math.Abs(got-h) > 1e-6 {
				t.Fatalf("Hue(%v) = %v, Hue(%v) = %v", tt, h, tt+shift, got)
			}
		}
	}
}

func TestHueValues(t *testing.T) {
	tests := []struct{ t, want float64 }{
		{0, 0.95},
		{0.05, 0},
		{0.55, 0.5},
	}
	for _, tt := range tests {
		if got := Hue(tt.t, DefaultHueOffset); math.Abs(got-tt.want) > 1e-9 && math.Abs(got-tt.want-1) > 1e-9 {
			t.Fatalf("Hue(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestStarRate(t *testing.T) {
	want := []float64{1, 2, 3, 4, -5, -6}
	for i, w := range want {
		if got := StarRate(i); got != w {
			t.Fatalf("StarRate(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestPhase(t *testing.T) {
	now := time.UnixMilli(2_000_000)
	if got := Phase(now, DefaultPhaseScale); math.Abs(got-100) > 1e-9 {
		t.Fatalf("Phase = %v, want 100", got)
	}
}
