// Package spectrum turns recently played samples into byte-scaled frequency
// magnitudes, following the behaviour of a Web Audio AnalyserNode.
package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

var ErrInvalidFFTSize = errors.New("fft size must be a power of two in [32, 32768]")

type Config struct {
	FFTSize   int
	Smoothing float64
	MinDB     float64
	MaxDB     float64
}

func DefaultConfig() Config {
	return Config{
		FFTSize:   512,
		Smoothing: 0.8,
		MinDB:     -100,
		MaxDB:     -30,
	}
}

// Analyser keeps the smoothed magnitude of every bin between calls, so it must
// be fed once per frame from a single goroutine.
type Analyser struct {
	cfg      Config
	window   []float64
	buf      []float64
	smoothed []float64
}

func New(cfg Config) (*Analyser, error) {
	n := cfg.FFTSize
	if n < 32 || n > 32768 || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFFTSize, n)
	}
	if cfg.Smoothing < 0 || cfg.Smoothing > 1 {
		return nil, fmt.Errorf("smoothing must be in [0, 1], got %g", cfg.Smoothing)
	}
	if cfg.MinDB >= cfg.MaxDB {
		return nil, fmt.Errorf("min dB (%g) must be below max dB (%g)", cfg.MinDB, cfg.MaxDB)
	}
	return &Analyser{
		cfg:      cfg,
		window:   window.Blackman(n),
		buf:      make([]float64, n),
		smoothed: make([]float64, n/2),
	}, nil
}

func (a *Analyser) FFTSize() int { return a.cfg.FFTSize }

func (a *Analyser) FrequencyBinCount() int { return a.cfg.FFTSize / 2 }

// ByteFrequencyData analyses the newest FFTSize samples (older samples are
// ignored, missing ones are zero-padded at the front) and writes one byte per
// bin into dst, growing it if needed.
func (a *Analyser) ByteFrequencyData(samples []float64, dst []uint8) []uint8 {
	n := a.cfg.FFTSize
	if len(samples) > n {
		samples = samples[len(samples)-n:]
	}
	pad := n - len(samples)
	for i := 0; i < pad; i++ {
		a.buf[i] = 0
	}
	for i, s := range samples {
		a.buf[pad+i] = s * a.window[pad+i]
	}

	spectrum := fft.FFTReal(a.buf)

	bins := a.FrequencyBinCount()
	if cap(dst) < bins {
		dst = make([]uint8, bins)
	}
	dst = dst[:bins]

	tau := a.cfg.Smoothing
	span := a.cfg.MaxDB - a.cfg.MinDB
	for k := 0; k < bins; k++ {
		c := spectrum[k]
		mag := math.Hypot(real(c), imag(c)) / float64(n)
		a.smoothed[k] = tau*a.smoothed[k] + (1-tau)*mag
		dst[k] = toByte(a.smoothed[k], a.cfg.MinDB, span)
	}
	return dst
}

// Reset drops the smoothing history, e.g. after a track change.
func (a *Analyser) Reset() {
	for i := range a.smoothed {
		a.smoothed[i] = 0
	}
}

func toByte(mag, minDB, span float64) uint8 {
	if mag <= 0 || math.IsNaN(mag) {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := math.Floor(255 / span * (db - minDB))
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
