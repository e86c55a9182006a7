package visualizer

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/cubeviz/internal/scene"
)

// Spectrum is the analyser the loop samples each frame.
type Spectrum interface {
	AnalyserReady() bool
	BassEnergy() uint8
}

type Playback interface {
	Loading() bool
}

type Params struct {
	PhaseScale float64
	HueOffset  float64
	ScaleBase  float64
	RotationX  float64
	RotationY  float64
}

func DefaultParams() Params {
	return Params{
		PhaseScale: DefaultPhaseScale,
		HueOffset:  DefaultHueOffset,
		ScaleBase:  DefaultScaleBase,
		RotationX:  0.04,
		RotationY:  0.025,
	}
}

// State is the animation state carried between frames.
type State struct {
	Elapsed   float64
	RotationX float64
	RotationY float64
	Scale     float64
	Hue       float64
}

type Loop struct {
	params   Params
	scene    *scene.Scene
	spectrum Spectrum
	playback Playback
	state    State
}

func NewLoop(p Params, sc *scene.Scene, spectrum Spectrum, playback Playback) *Loop {
	return &Loop{
		params:   p,
		scene:    sc,
		spectrum: spectrum,
		playback: playback,
		state:    State{Scale: p.ScaleBase},
	}
}

func (l *Loop) State() State { return l.state }

// Tick advances the animation to now and writes the result into the scene.
// It never blocks; the scene is drawn afterwards by the caller.
func (l *Loop) Tick(now time.Time) {
	if t := Phase(now, l.params.PhaseScale); t > l.state.Elapsed {
		l.state.Elapsed = t
	}
	t := l.state.Elapsed
	l.state.Hue = Hue(t, l.params.HueOffset)
	starColor := colorful.Hsl(l.state.Hue*360, 1, 0.5)

	l.scene.Each(scene.KindStarfield, func(e *scene.Element) {
		a := float32(t * StarRate(e.Index))
		e.Stars.Rotation = mgl32.Vec3{a, a, a}
		e.Stars.Color = starColor
	})

	if !l.playback.Loading() {
		l.state.RotationX += l.params.RotationX
		l.state.RotationY += l.params.RotationY
	}
	if l.spectrum.AnalyserReady() {
		l.state.Scale = Scale(l.spectrum.BassEnergy(), l.params.ScaleBase)
	}

	l.scene.Each(scene.KindMesh, func(e *scene.Element) {
		e.Mesh.Rotation = mgl32.Vec3{float32(l.state.RotationX), float32(l.state.RotationY), 0}
		e.Mesh.SetScale(float32(l.state.Scale))
	})
}
