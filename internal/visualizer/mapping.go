// Package visualizer maps the audio signal and the passing of time onto the
// scene, once per display refresh.
package visualizer

import (
	"math"
	"time"
)

const (
	DefaultPhaseScale = 0.00005
	DefaultHueOffset  = 0.95
	DefaultScaleBase  = 0.75
)

// Phase turns a wall-clock time into the slow animation phase:
// milliseconds since the epoch times k.
func Phase(now time.Time, k float64) float64 {
	ms := float64(now.UnixNano()) / float64(time.Millisecond)
	return ms * k
}

// Hue sweeps the colour wheel with period 1 in t. The result is in [0, 1).
func Hue(t, offset float64) float64 {
	h := math.Mod(180*(offset+t), 180)
	if h < 0 {
		h += 180
	}
	return h / 180
}

// StarRate is the rotation multiplier of the starfield at list index i.
func StarRate(i int) float64 {
	if i < 4 {
		return float64(i + 1)
	}
	return -float64(i + 1)
}

// Scale maps a bass sample onto the cube's uniform scale, no smoothing.
func Scale(sample uint8, base float64) float64 {
	return float64(sample)/255 + base
}
