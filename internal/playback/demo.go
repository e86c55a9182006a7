package playback

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

const (
	demoLength = 8 * time.Second
	demoBPM    = 120
)

// DemoSource is the built-in default track: a looping 55 Hz kick on every beat
// under a soft pad, so the cube has a clear bass pulse to react to.
func DemoSource(label string, sr beep.SampleRate) Source {
	return Source{
		Label: label,
		Open: func() (beep.StreamSeekCloser, beep.Format, error) {
			format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
			return &demoTone{sr: sr, length: sr.N(demoLength)}, format, nil
		},
	}
}

type demoTone struct {
	sr     beep.SampleRate
	pos    int
	length int
}

func (d *demoTone) Stream(samples [][2]float64) (int, bool) {
	if d.pos >= d.length {
		return 0, false
	}
	beat := 60.0 / demoBPM
	n := 0
	for i := range samples {
		if d.pos >= d.length {
			break
		}
		t := float64(d.pos) / float64(d.sr)
		since := math.Mod(t, beat)
		kick := math.Sin(2*math.Pi*55*since) * math.Exp(-since*9)
		pad := 0.12*math.Sin(2*math.Pi*220*t) + 0.08*math.Sin(2*math.Pi*277.18*t)
		v := 0.7*kick + pad
		samples[i] = [2]float64{v, v}
		d.pos++
		n++
	}
	return n, true
}

func (d *demoTone) Err() error    { return nil }
func (d *demoTone) Len() int      { return d.length }
func (d *demoTone) Position() int { return d.pos }
func (d *demoTone) Close() error  { return nil }

func (d *demoTone) Seek(p int) error {
	if p < 0 {
		p = 0
	}
	if p > d.length {
		p = d.length
	}
	d.pos = p
	return nil
}
