package playback

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and records a mono mix of the last N samples into
// a ring buffer so the analyser can read what was actually played.
type Tap struct {
	Source    beep.Streamer
	buffer    []float64
	nextIndex int
	mu        sync.RWMutex
}

func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		buffer: make([]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = (samples[i][0] + samples[i][1]) * 0.5
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Samples copies the last n samples into dst in chronological order.
func (t *Tap) Samples(n int, dst []float64) []float64 {
	if n > len(t.buffer) {
		n = len(t.buffer)
	}
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]

	t.mu.RLock()
	start := t.nextIndex - n
	if start < 0 {
		start += len(t.buffer)
	}
	for i := 0; i < n; i++ {
		dst[i] = t.buffer[(start+i)%len(t.buffer)]
	}
	t.mu.RUnlock()
	return dst
}
